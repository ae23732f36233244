package movement

import "errors"

var (
	ErrMovementNotFound  = errors.New("movement not found")
	ErrMovementNotLatest = errors.New("only the latest movement of an employee can be reverted")
)
