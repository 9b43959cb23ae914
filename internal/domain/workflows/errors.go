package workflows

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput: precondición local fallida (campo requerido, cero
	// imágenes, fecha futura). Se detecta antes de cualquier llamada remota.
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// StepError es cualquier falla remota (insert/update/upload) durante la
// secuencia. Identifica el paso que falló; los pasos posteriores no corren y
// lo ya escrito no se revierte (los huérfanos son invisibles para las
// lecturas, que siempre joinean la cadena completa).
type StepError struct {
	Flow string
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: step %s: %v", e.Flow, e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
