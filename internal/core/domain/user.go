package domain

import "time"

// User models an authenticated member of an organization.
type User struct {
	ID             int64     `json:"id_usuario"`
	OrganizationID int64     `json:"id_organizacion_usuario"`
	FullName       string    `json:"nombre_completo_usuario"`
	Email          string    `json:"correo_usuario"`
	PasswordHash   string    `json:"-"`
	Role           Role      `json:"rol_usuario"`
	CreatedAt      time.Time `json:"fecha_creacion_usuario"`
}
