package models

import "errors"

// Error kinds shared by the store, the ingestion pipeline and the reporting layer.
// Callers wrap them with fmt.Errorf("%w: ...") and inspect them with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrStore      = errors.New("store error")
	ErrNotFound   = errors.New("not found")
)
