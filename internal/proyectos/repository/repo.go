package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gestion-proyectos/proyectos-backend/internal/proyectos/domain"
)

const proyectoColumns = "id, nombre, descripcion, estado, fecha_inicio, fecha_fin, created_at, updated_at"

// ProyectoRepository provides persistence operations for proyectos
type ProyectoRepository struct {
	db *sql.DB
}

// NewProyectoRepository creates a new proyecto repository
func NewProyectoRepository(db *sql.DB) *ProyectoRepository {
	return &ProyectoRepository{db: db}
}

func scanProyecto(row interface{ Scan(...any) error }) (*domain.Proyecto, error) {
	var p domain.Proyecto
	err := row.Scan(
		&p.ID, &p.Nombre, &p.Descripcion, &p.Estado,
		&p.FechaInicio, &p.FechaFin, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new proyecto and returns the stored row.
func (r *ProyectoRepository) Create(ctx context.Context, nombre, descripcion, estado string, fechaInicio, fechaFin time.Time) (*domain.Proyecto, error) {
	const q = `
INSERT INTO proyectos (nombre, descripcion, estado, fecha_inicio, fecha_fin)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + proyectoColumns + `;
`
	return scanProyecto(r.db.QueryRowContext(ctx, q, nombre, descripcion, estado, fechaInicio, fechaFin))
}

// List returns every proyecto, most recently created first.
func (r *ProyectoRepository) List(ctx context.Context) ([]domain.Proyecto, error) {
	const q = `
SELECT ` + proyectoColumns + `
FROM proyectos
ORDER BY id DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Proyecto, 0, 16)
	for rows.Next() {
		p, err := scanProyecto(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single proyecto by id.
func (r *ProyectoRepository) Get(ctx context.Context, id int64) (*domain.Proyecto, error) {
	const q = `
SELECT ` + proyectoColumns + `
FROM proyectos
WHERE id = $1;
`
	p, err := scanProyecto(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// UpdateFields carries the subset of columns a partial update touches.
// Nil fields keep their current value.
type UpdateFields struct {
	Nombre      *string
	Descripcion *string
	Estado      *string
	FechaInicio *time.Time
	FechaFin    *time.Time
}

// Update applies the non-nil fields to an existing proyecto and returns
// the updated row. An empty field set degenerates to a plain read.
func (r *ProyectoRepository) Update(ctx context.Context, id int64, fields UpdateFields) (*domain.Proyecto, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)
	args = append(args, id)

	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if fields.Nombre != nil {
		add("nombre", *fields.Nombre)
	}
	if fields.Descripcion != nil {
		add("descripcion", *fields.Descripcion)
	}
	if fields.Estado != nil {
		add("estado", *fields.Estado)
	}
	if fields.FechaInicio != nil {
		add("fecha_inicio", *fields.FechaInicio)
	}
	if fields.FechaFin != nil {
		add("fecha_fin", *fields.FechaFin)
	}

	if len(sets) == 0 {
		return r.Get(ctx, id)
	}
	sets = append(sets, "updated_at = now()")

	q := fmt.Sprintf(`
UPDATE proyectos
SET %s
WHERE id = $1
RETURNING %s;
`, strings.Join(sets, ", "), proyectoColumns)

	p, err := scanProyecto(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete removes a proyecto permanently.
func (r *ProyectoRepository) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM proyectos WHERE id = $1;`

	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountAll returns the total number of proyectos.
func (r *ProyectoRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM proyectos;`).Scan(&n)
	return n, err
}

// EstadoCount is one estado bucket as stored, before display mapping.
type EstadoCount struct {
	Estado string
	Count  int64
}

// CountByEstado groups proyectos by their raw estado value.
func (r *ProyectoRepository) CountByEstado(ctx context.Context) ([]EstadoCount, error) {
	const q = `
SELECT COALESCE(estado, ''), COUNT(*)
FROM proyectos
GROUP BY 1;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]EstadoCount, 0, 8)
	for rows.Next() {
		var ec EstadoCount
		if err := rows.Scan(&ec.Estado, &ec.Count); err != nil {
			return nil, err
		}
		out = append(out, ec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FechasInicio returns the fecha_inicio of every proyecto. Rows with a
// NULL start date come back invalid and are skipped by the caller.
func (r *ProyectoRepository) FechasInicio(ctx context.Context) ([]sql.NullTime, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT fecha_inicio FROM proyectos;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]sql.NullTime, 0, 16)
	for rows.Next() {
		var t sql.NullTime
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Descripciones returns the descripcion of every proyecto.
func (r *ProyectoRepository) Descripciones(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT descripcion FROM proyectos;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0, 16)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
