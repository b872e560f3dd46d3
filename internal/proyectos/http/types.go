package http

import (
	"fmt"
	"time"
)

type createReq struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Estado      string `json:"estado"`
	FechaInicio string `json:"fechaInicio"`
	FechaFin    string `json:"fechaFin"`
}

type updateReq struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Estado      *string `json:"estado"`
	FechaInicio *string `json:"fechaInicio"`
	FechaFin    *string `json:"fechaFin"`
}

// parseFecha accepts the two formats clients actually send: a plain
// date or a full RFC 3339 timestamp. Anything else is rejected instead
// of being coerced into a garbage date.
func parseFecha(campo, valor string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", valor); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, valor); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%s: fecha inválida %q", campo, valor)
}
