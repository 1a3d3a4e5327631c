package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrValidation        = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrPersistence       = errors.New("error de persistencia")
)

// PersistenceError envuelve una falla del backend (red, servidor, timeout).
// errors.Is(err, ErrPersistence) es verdadero para cualquier *PersistenceError.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Is permite comparar contra ErrPersistence sin perder la causa original.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// Persistence construye un *PersistenceError. Devuelve nil si err es nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// Validation agrega detalle a ErrValidation conservando el sentinel.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
