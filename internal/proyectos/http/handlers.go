package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gestion-proyectos/proyectos-backend/internal/proyectos/domain"
	"github.com/gestion-proyectos/proyectos-backend/internal/proyectos/repository"
	"github.com/gestion-proyectos/proyectos-backend/internal/proyectos/service"
)

// ProyectoService is the CRUD surface the handlers call.
type ProyectoService interface {
	Create(ctx context.Context, nombre, descripcion, estado string, fechaInicio, fechaFin time.Time) (*domain.Proyecto, error)
	List(ctx context.Context) ([]domain.Proyecto, error)
	Get(ctx context.Context, id int64) (*domain.Proyecto, error)
	Update(ctx context.Context, id int64, fields repository.UpdateFields) (*domain.Proyecto, error)
	Delete(ctx context.Context, id int64) error
}

// GraficosService computes the dashboard aggregation.
type GraficosService interface {
	Resumen(ctx context.Context) (*service.GraficosResumen, error)
}

// AnalisisService produces the AI summary.
type AnalisisService interface {
	Resumen(ctx context.Context) (*service.AnalisisResumen, error)
}

// Handler exposes the proyectos HTTP surface.
type Handler struct {
	proyectos ProyectoService
	graficos  GraficosService
	analisis  AnalisisService
}

// NewHandler creates a new proyectos handler
func NewHandler(proyectos ProyectoService, graficos GraficosService, analisis AnalisisService) *Handler {
	return &Handler{
		proyectos: proyectos,
		graficos:  graficos,
		analisis:  analisis,
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return 0, false
	}
	return id, true
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo inválido"})
		return
	}

	if strings.TrimSpace(req.Nombre) == "" ||
		strings.TrimSpace(req.Descripcion) == "" ||
		strings.TrimSpace(req.Estado) == "" ||
		strings.TrimSpace(req.FechaInicio) == "" ||
		strings.TrimSpace(req.FechaFin) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "faltan campos requeridos"})
		return
	}

	inicio, err := parseFecha("fechaInicio", req.FechaInicio)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fin, err := parseFecha("fechaFin", req.FechaFin)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.proyectos.Create(c.Request.Context(), req.Nombre, req.Descripcion, req.Estado, inicio, fin)
	if err != nil {
		log.Printf("[error] operation=create_proyecto error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creando proyecto", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.proyectos.List(c.Request.Context())
	if err != nil {
		log.Printf("[error] operation=list_proyectos error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listando proyectos", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := h.proyectos.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Proyecto no encontrado"})
			return
		}
		log.Printf("[error] operation=get_proyecto id=%d error=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error obteniendo proyecto", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo inválido"})
		return
	}

	fields := repository.UpdateFields{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Estado:      req.Estado,
	}
	if req.FechaInicio != nil {
		t, err := parseFecha("fechaInicio", *req.FechaInicio)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		fields.FechaInicio = &t
	}
	if req.FechaFin != nil {
		t, err := parseFecha("fechaFin", *req.FechaFin)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		fields.FechaFin = &t
	}

	p, err := h.proyectos.Update(c.Request.Context(), id, fields)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Proyecto no encontrado"})
			return
		}
		log.Printf("[error] operation=update_proyecto id=%d error=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error actualizando proyecto", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.proyectos.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Proyecto no encontrado"})
			return
		}
		log.Printf("[error] operation=delete_proyecto id=%d error=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error eliminando proyecto", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "msg": "Proyecto eliminado"})
}

func (h *Handler) graficosResumen(c *gin.Context) {
	res, err := h.graficos.Resumen(c.Request.Context())
	if err != nil {
		log.Printf("[error] operation=graficos error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generando gráficos de proyectos", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalProyectos": res.TotalProyectos,
		"data":           res.PorEstado,
		"yearData":       res.PorAnio,
	})
}

func (h *Handler) analisisResumen(c *gin.Context) {
	res, err := h.analisis.Resumen(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoProyectos) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No hay proyectos para analizar"})
			return
		}
		log.Printf("[error] operation=analisis error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generando análisis con IA", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalProyectos": res.TotalProyectos,
		"analisis":       res.Analisis,
	})
}
