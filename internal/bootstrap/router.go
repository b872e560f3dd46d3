package bootstrap

import (
	"database/sql"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/gestion-proyectos/proyectos-backend/internal/api/http"
	"github.com/gestion-proyectos/proyectos-backend/internal/api/http/middleware"
	proyhttp "github.com/gestion-proyectos/proyectos-backend/internal/proyectos/http"
	"github.com/gestion-proyectos/proyectos-backend/internal/proyectos/repository"
	"github.com/gestion-proyectos/proyectos-backend/internal/proyectos/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *sql.DB
	LLM         service.Completer
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.RequestID())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)
	httpapi.RegisterDocs(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "msg": "API Backend funcionando"})
	})

	repo := repository.NewProyectoRepository(dep.DB)

	proyectoService := service.NewProyectoService(repo)
	graficosService := service.NewGraficosService(repo)
	analisisService := service.NewAnalisisService(repo, dep.LLM)

	api := r.Group("/api")

	handler := proyhttp.NewHandler(proyectoService, graficosService, analisisService)
	handler.Register(api.Group("/proyectos"))

	return r
}
