package playground

import "github.com/pkg/errors"

var (
	ErrInvalidGeometry     = errors.New("invalid geometry")
	ErrInvalidConfig       = errors.New("invalid entity configuration")
	ErrPlacementFailed     = errors.New("placement failed")
	ErrInvalidActionSpace  = errors.New("invalid action space")
	ErrInvalidAction       = errors.New("invalid action")
	ErrGraspConflict       = errors.New("element already held")
	ErrUnknownKind         = errors.New("unknown kind")
	ErrAlreadyInPlayground = errors.New("already in a playground")
	ErrNotInPlayground     = errors.New("not in the playground")
)
