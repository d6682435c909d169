package domain

import "errors"

// Authentication and authorization.
var (
	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrForbidden          = errors.New("you do not have permission to access this resource")
)

// ErrNotFound is returned both when an entity does not exist and when it
// belongs to another organization. Callers must not be able to tell the two
// apart.
var ErrNotFound = errors.New("not found")

// Input errors. All of them surface as 400.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidZone      = errors.New("the selected zone does not exist")
	ErrInvalidProject   = errors.New("project is not valid")
	ErrInvalidObjective = errors.New("strategic objective is not valid")
	ErrInvalidTarget    = errors.New("target organization does not exist")
	ErrEmailTaken       = errors.New("email already registered")
	ErrUnsupportedMedia = errors.New("file type not allowed")
)

// ErrUpstreamFailure wraps failures of external collaborators (blob store).
var ErrUpstreamFailure = errors.New("upstream failure")
