package domain

import "errors"

var (
	ErrNotFound    = errors.New("proyecto not found")
	ErrNoProyectos = errors.New("no proyectos available")
)
