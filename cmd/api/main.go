package main

import (
	"log"

	"github.com/gestion-proyectos/proyectos-backend/config"
	"github.com/gestion-proyectos/proyectos-backend/internal/bootstrap"
	"github.com/gestion-proyectos/proyectos-backend/internal/llm"
	"github.com/gestion-proyectos/proyectos-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	groq := llm.NewGroq(cfg.Groq)

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "proyectos-backend",
		Version:     cfg.App.Version,
		DB:          db,
		LLM:         groq,
	})

	addr := ":" + cfg.Server.Port
	log.Printf("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
