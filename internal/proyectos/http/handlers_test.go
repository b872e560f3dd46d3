package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestion-proyectos/proyectos-backend/internal/proyectos/domain"
	"github.com/gestion-proyectos/proyectos-backend/internal/proyectos/repository"
	"github.com/gestion-proyectos/proyectos-backend/internal/proyectos/service"
)

type fakeProyectoService struct {
	proyecto *domain.Proyecto
	list     []domain.Proyecto
	err      error

	gotFields repository.UpdateFields
	gotID     int64
}

func (f *fakeProyectoService) Create(_ context.Context, nombre, descripcion, estado string, inicio, fin time.Time) (*domain.Proyecto, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Proyecto{
		ID: 1, Nombre: nombre, Descripcion: descripcion, Estado: estado,
		FechaInicio: inicio, FechaFin: fin,
	}, nil
}

func (f *fakeProyectoService) List(context.Context) ([]domain.Proyecto, error) {
	return f.list, f.err
}

func (f *fakeProyectoService) Get(_ context.Context, id int64) (*domain.Proyecto, error) {
	f.gotID = id
	return f.proyecto, f.err
}

func (f *fakeProyectoService) Update(_ context.Context, id int64, fields repository.UpdateFields) (*domain.Proyecto, error) {
	f.gotID = id
	f.gotFields = fields
	return f.proyecto, f.err
}

func (f *fakeProyectoService) Delete(_ context.Context, id int64) error {
	f.gotID = id
	return f.err
}

type fakeGraficos struct {
	res *service.GraficosResumen
	err error
}

func (f *fakeGraficos) Resumen(context.Context) (*service.GraficosResumen, error) {
	return f.res, f.err
}

type fakeAnalisis struct {
	res *service.AnalisisResumen
	err error
}

func (f *fakeAnalisis) Resumen(context.Context) (*service.AnalisisResumen, error) {
	return f.res, f.err
}

func newTestRouter(p ProyectoService, g GraficosService, a AnalisisService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(p, g, a).Register(r.Group("/api/proyectos"))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProyecto(t *testing.T) {
	t.Run("creates with all fields", func(t *testing.T) {
		r := newTestRouter(&fakeProyectoService{}, &fakeGraficos{}, &fakeAnalisis{})

		w := doJSON(t, r, http.MethodPost, "/api/proyectos",
			`{"nombre":"Portal","descripcion":"portal web","estado":"pendiente","fechaInicio":"2024-01-15","fechaFin":"2024-06-30"}`)

		require.Equal(t, http.StatusCreated, w.Code)

		var p domain.Proyecto
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.Equal(t, int64(1), p.ID)
		assert.Equal(t, "Portal", p.Nombre)
		assert.Equal(t, 2024, p.FechaInicio.Year())
	})

	t.Run("missing required field is rejected", func(t *testing.T) {
		r := newTestRouter(&fakeProyectoService{}, &fakeGraficos{}, &fakeAnalisis{})

		w := doJSON(t, r, http.MethodPost, "/api/proyectos",
			`{"nombre":"Portal","estado":"pendiente","fechaInicio":"2024-01-15","fechaFin":"2024-06-30"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		r := newTestRouter(&fakeProyectoService{}, &fakeGraficos{}, &fakeAnalisis{})

		w := doJSON(t, r, http.MethodPost, "/api/proyectos",
			`{"nombre":"n","descripcion":"d","estado":"pendiente","fechaInicio":"ayer","fechaFin":"2024-06-30"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "fechaInicio")
	})

	t.Run("store failure is a 500", func(t *testing.T) {
		r := newTestRouter(&fakeProyectoService{err: errors.New("db down")}, &fakeGraficos{}, &fakeAnalisis{})

		w := doJSON(t, r, http.MethodPost, "/api/proyectos",
			`{"nombre":"n","descripcion":"d","estado":"pendiente","fechaInicio":"2024-01-15","fechaFin":"2024-06-30"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Error creando proyecto")
	})
}

func TestListProyectos(t *testing.T) {
	t.Run("returns the stored order", func(t *testing.T) {
		r := newTestRouter(&fakeProyectoService{list: []domain.Proyecto{{ID: 2}, {ID: 1}}}, &fakeGraficos{}, &fakeAnalisis{})

		w := doJSON(t, r, http.MethodGet, "/api/proyectos", "")
		require.Equal(t, http.StatusOK, w.Code)

		var out []domain.Proyecto
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Len(t, out, 2)
		assert.Equal(t, int64(2), out[0].ID)
	})

	t.Run("empty store is an empty array", func(t *testing.T) {
		r := newTestRouter(&fakeProyectoService{list: []domain.Proyecto{}}, &fakeGraficos{}, &fakeAnalisis{})

		w := doJSON(t, r, http.MethodGet, "/api/proyectos", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
	})
}

func TestGetProyecto(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &fakeProyectoService{proyecto: &domain.Proyecto{ID: 7, Nombre: "g"}}
		r := newTestRouter(svc, &fakeGraficos{}, &fakeAnalisis{})

		w := doJSON(t, r, http.MethodGet, "/api/proyectos/7", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(7), svc.gotID)
	})

	t.Run("absent id is a 404", func(t *testing.T) {
		r := newTestRouter(&fakeProyectoService{err: domain.ErrNotFound}, &fakeGraficos{}, &fakeAnalisis{})

		w := doJSON(t, r, http.MethodGet, "/api/proyectos/99", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Proyecto no encontrado")
	})

	t.Run("non-numeric id is a 400", func(t *testing.T) {
		r := newTestRouter(&fakeProyectoService{}, &fakeGraficos{}, &fakeAnalisis{})

		w := doJSON(t, r, http.MethodGet, "/api/proyectos/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateProyecto(t *testing.T) {
	t.Run("passes only the provided fields", func(t *testing.T) {
		svc := &fakeProyectoService{proyecto: &domain.Proyecto{ID: 5, Estado: domain.EstadoFinalizado}}
		r := newTestRouter(svc, &fakeGraficos{}, &fakeAnalisis{})

		w := doJSON(t, r, http.MethodPut, "/api/proyectos/5", `{"estado":"finalizado"}`)
		require.Equal(t, http.StatusOK, w.Code)

		require.NotNil(t, svc.gotFields.Estado)
		assert.Equal(t, domain.EstadoFinalizado, *svc.gotFields.Estado)
		assert.Nil(t, svc.gotFields.Nombre)
		assert.Nil(t, svc.gotFields.Descripcion)
		assert.Nil(t, svc.gotFields.FechaInicio)
		assert.Nil(t, svc.gotFields.FechaFin)
	})

	t.Run("parses provided dates", func(t *testing.T) {
		svc := &fakeProyectoService{proyecto: &domain.Proyecto{ID: 5}}
		r := newTestRouter(svc, &fakeGraficos{}, &fakeAnalisis{})

		w := doJSON(t, r, http.MethodPut, "/api/proyectos/5", `{"fechaInicio":"2025-02-01"}`)
		require.Equal(t, http.StatusOK, w.Code)

		require.NotNil(t, svc.gotFields.FechaInicio)
		assert.Equal(t, 2025, svc.gotFields.FechaInicio.Year())
	})

	t.Run("absent id is a 404", func(t *testing.T) {
		r := newTestRouter(&fakeProyectoService{err: domain.ErrNotFound}, &fakeGraficos{}, &fakeAnalisis{})

		w := doJSON(t, r, http.MethodPut, "/api/proyectos/99", `{"estado":"finalizado"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteProyecto(t *testing.T) {
	t.Run("acknowledges deletion", func(t *testing.T) {
		r := newTestRouter(&fakeProyectoService{}, &fakeGraficos{}, &fakeAnalisis{})

		w := doJSON(t, r, http.MethodDelete, "/api/proyectos/3", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":true`)
	})

	t.Run("absent id is a 404", func(t *testing.T) {
		r := newTestRouter(&fakeProyectoService{err: domain.ErrNotFound}, &fakeGraficos{}, &fakeAnalisis{})

		w := doJSON(t, r, http.MethodDelete, "/api/proyectos/3", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGraficos(t *testing.T) {
	t.Run("returns the three metrics", func(t *testing.T) {
		r := newTestRouter(&fakeProyectoService{}, &fakeGraficos{res: &service.GraficosResumen{
			TotalProyectos: 3,
			PorEstado: []service.EstadoBucket{
				{Estado: domain.EstadoFinalizado, Count: 1},
				{Estado: domain.EstadoPendiente, Count: 2},
			},
			PorAnio: []service.AnioBucket{{Anio: "2020", Count: 3}},
		}}, &fakeAnalisis{})

		w := doJSON(t, r, http.MethodGet, "/api/proyectos/graficos", "")
		require.Equal(t, http.StatusOK, w.Code)

		var out struct {
			TotalProyectos int64                  `json:"totalProyectos"`
			Data           []service.EstadoBucket `json:"data"`
			YearData       []service.AnioBucket   `json:"yearData"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Equal(t, int64(3), out.TotalProyectos)
		require.Len(t, out.Data, 2)
		assert.Equal(t, domain.EstadoFinalizado, out.Data[0].Estado)
		require.Len(t, out.YearData, 1)
		assert.Equal(t, "2020", out.YearData[0].Anio)
	})

	t.Run("empty store yields zeroes, not an error", func(t *testing.T) {
		r := newTestRouter(&fakeProyectoService{}, &fakeGraficos{res: &service.GraficosResumen{}}, &fakeAnalisis{})

		w := doJSON(t, r, http.MethodGet, "/api/proyectos/graficos", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"totalProyectos":0`)
	})

	t.Run("store failure is a 500", func(t *testing.T) {
		r := newTestRouter(&fakeProyectoService{}, &fakeGraficos{err: errors.New("db down")}, &fakeAnalisis{})

		w := doJSON(t, r, http.MethodGet, "/api/proyectos/graficos", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAnalisis(t *testing.T) {
	t.Run("returns the generated summary", func(t *testing.T) {
		r := newTestRouter(&fakeProyectoService{}, &fakeGraficos{}, &fakeAnalisis{res: &service.AnalisisResumen{
			TotalProyectos: 2,
			Analisis:       "Los proyectos comparten un enfoque web.",
		}})

		w := doJSON(t, r, http.MethodGet, "/api/proyectos/analisis", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"totalProyectos":2`)
		assert.Contains(t, w.Body.String(), "enfoque web")
	})

	t.Run("empty store is a 400, not a provider error", func(t *testing.T) {
		r := newTestRouter(&fakeProyectoService{}, &fakeGraficos{}, &fakeAnalisis{err: domain.ErrNoProyectos})

		w := doJSON(t, r, http.MethodGet, "/api/proyectos/analisis", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "No hay proyectos para analizar")
	})

	t.Run("provider failure is a 500", func(t *testing.T) {
		r := newTestRouter(&fakeProyectoService{}, &fakeGraficos{}, &fakeAnalisis{err: errors.New("groq error (status 503)")})

		w := doJSON(t, r, http.MethodGet, "/api/proyectos/analisis", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Error generando análisis con IA")
	})
}
