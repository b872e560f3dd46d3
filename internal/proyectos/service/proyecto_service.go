package service

import (
	"context"
	"time"

	"github.com/gestion-proyectos/proyectos-backend/internal/proyectos/domain"
	"github.com/gestion-proyectos/proyectos-backend/internal/proyectos/repository"
)

// ProyectoStore is the persistence surface the CRUD service needs.
// The concrete implementation is repository.ProyectoRepository; tests
// substitute fakes.
type ProyectoStore interface {
	Create(ctx context.Context, nombre, descripcion, estado string, fechaInicio, fechaFin time.Time) (*domain.Proyecto, error)
	List(ctx context.Context) ([]domain.Proyecto, error)
	Get(ctx context.Context, id int64) (*domain.Proyecto, error)
	Update(ctx context.Context, id int64, fields repository.UpdateFields) (*domain.Proyecto, error)
	Delete(ctx context.Context, id int64) error
}

// ProyectoService handles proyecto-related business logic
type ProyectoService struct {
	store ProyectoStore
}

// NewProyectoService creates a new proyecto service
func NewProyectoService(store ProyectoStore) *ProyectoService {
	return &ProyectoService{store: store}
}

// Create creates a new proyecto
func (s *ProyectoService) Create(ctx context.Context, nombre, descripcion, estado string, fechaInicio, fechaFin time.Time) (*domain.Proyecto, error) {
	return s.store.Create(ctx, nombre, descripcion, estado, fechaInicio, fechaFin)
}

// List returns all proyectos, newest first
func (s *ProyectoService) List(ctx context.Context) ([]domain.Proyecto, error) {
	return s.store.List(ctx)
}

// Get returns a single proyecto by id
func (s *ProyectoService) Get(ctx context.Context, id int64) (*domain.Proyecto, error) {
	return s.store.Get(ctx, id)
}

// Update applies a partial update to a proyecto
func (s *ProyectoService) Update(ctx context.Context, id int64, fields repository.UpdateFields) (*domain.Proyecto, error) {
	return s.store.Update(ctx, id, fields)
}

// Delete removes a proyecto permanently
func (s *ProyectoService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}
