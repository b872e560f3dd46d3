package domain

import "time"

// Known estado values. The column is free text for compatibility with
// existing rows; these are the values the frontend writes.
const (
	EstadoEnProgreso = "en progreso"
	EstadoPendiente  = "pendiente"
	EstadoFinalizado = "finalizado"
)

// EstadoDesconocido labels the chart bucket for rows without an estado.
const EstadoDesconocido = "Desconocido"

// Proyecto is the single persisted entity. It is storage-agnostic and
// shared across the repository, service and HTTP layers.
type Proyecto struct {
	ID          int64     `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion"`
	Estado      string    `json:"estado"`
	FechaInicio time.Time `json:"fechaInicio"`
	FechaFin    time.Time `json:"fechaFin"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
