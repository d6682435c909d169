package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

const constraintUserEmail = "usuarios_correo_key"

// mapPostgresError maps PostgreSQL errors to domain sentinels. Anything it
// does not recognise is wrapped and returned as is.
func mapPostgresError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		if pgErr.ConstraintName == constraintUserEmail {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("%w: duplicate value for %s", domain.ErrInvalidInput, pgErr.ConstraintName)

	case pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, pgErr.Detail)

	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation,
		pgerrcode.InvalidTextRepresentation, pgerrcode.NumericValueOutOfRange,
		pgerrcode.StringDataRightTruncationDataException:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, pgErr.Message)

	case pgerrcode.QueryCanceled:
		return fmt.Errorf("query canceled: %w", err)

	default:
		return fmt.Errorf("postgres error [%s]: %s: %w", pgErr.Code, pgErr.Message, err)
	}
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
