package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"

	"github.com/gestion-proyectos/proyectos-backend/internal/proyectos/domain"
	"github.com/gestion-proyectos/proyectos-backend/internal/proyectos/repository"
)

// GraficosStore is the read surface the chart aggregation needs.
type GraficosStore interface {
	CountAll(ctx context.Context) (int64, error)
	CountByEstado(ctx context.Context) ([]repository.EstadoCount, error)
	FechasInicio(ctx context.Context) ([]sql.NullTime, error)
}

// EstadoBucket is one per-estado count for the dashboard.
type EstadoBucket struct {
	Estado string `json:"estado"`
	Count  int64  `json:"count"`
}

// AnioBucket is one per-year count for the dashboard. The year travels
// as a string on the wire.
type AnioBucket struct {
	Anio  string `json:"year"`
	Count int64  `json:"count"`
}

// GraficosResumen carries the three dashboard metrics.
type GraficosResumen struct {
	TotalProyectos int64
	PorEstado      []EstadoBucket
	PorAnio        []AnioBucket
}

// GraficosService computes grouped counts over all proyectos.
type GraficosService struct {
	store GraficosStore
}

// NewGraficosService creates a new graficos service
func NewGraficosService(store GraficosStore) *GraficosService {
	return &GraficosService{store: store}
}

// Resumen returns the total count plus per-estado and per-year buckets.
// An empty table is a valid result, not an error.
func (s *GraficosService) Resumen(ctx context.Context) (*GraficosResumen, error) {
	total, err := s.store.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count proyectos: %w", err)
	}

	rawEstados, err := s.store.CountByEstado(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by estado: %w", err)
	}

	porEstado := make([]EstadoBucket, 0, len(rawEstados))
	for _, ec := range rawEstados {
		label := ec.Estado
		if label == "" {
			label = domain.EstadoDesconocido
		}
		porEstado = append(porEstado, EstadoBucket{Estado: label, Count: ec.Count})
	}
	sort.Slice(porEstado, func(i, j int) bool {
		return porEstado[i].Estado < porEstado[j].Estado
	})

	fechas, err := s.store.FechasInicio(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fechas de inicio: %w", err)
	}

	// Rows without a usable start date are excluded from the year chart.
	porAnioMap := make(map[int]int64)
	for _, f := range fechas {
		if !f.Valid || f.Time.IsZero() {
			continue
		}
		porAnioMap[f.Time.Year()]++
	}

	anios := make([]int, 0, len(porAnioMap))
	for y := range porAnioMap {
		anios = append(anios, y)
	}
	sort.Ints(anios)

	porAnio := make([]AnioBucket, 0, len(anios))
	for _, y := range anios {
		porAnio = append(porAnio, AnioBucket{Anio: strconv.Itoa(y), Count: porAnioMap[y]})
	}

	return &GraficosResumen{
		TotalProyectos: total,
		PorEstado:      porEstado,
		PorAnio:        porAnio,
	}, nil
}
