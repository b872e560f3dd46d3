package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gestion-proyectos/proyectos-backend/internal/proyectos/domain"
)

// Concatenated descriptions are capped so the prompt stays inside the
// model's input limit.
const maxDescripcionChars = 16000

// FallbackResumen is returned when the provider answers without usable
// content. The request still succeeds.
const FallbackResumen = "No fue posible generar un resumen."

const promptTemplate = `A partir de las siguientes descripciones de proyectos,
genera un resumen profesional en español que explique
el objetivo general de los proyectos y su enfoque,
sin inventar información adicional.
---
%s`

// AnalisisStore is the read surface the AI summary needs.
type AnalisisStore interface {
	Descripciones(ctx context.Context) ([]string, error)
}

// Completer generates text from a prompt. Implemented by llm.GroqClient.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AnalisisResumen carries the generated summary plus metadata.
type AnalisisResumen struct {
	TotalProyectos int64
	Analisis       string
}

// AnalisisService summarizes every proyecto description through the
// LLM provider.
type AnalisisService struct {
	store AnalisisStore
	llm   Completer
}

// NewAnalisisService creates a new analisis service
func NewAnalisisService(store AnalisisStore, llm Completer) *AnalisisService {
	return &AnalisisService{store: store, llm: llm}
}

// Resumen fetches all descriptions and asks the provider for a summary.
// An empty table fails with domain.ErrNoProyectos before any provider
// call; provider failures surface as a distinct wrapped error.
func (s *AnalisisService) Resumen(ctx context.Context) (*AnalisisResumen, error) {
	descripciones, err := s.store.Descripciones(ctx)
	if err != nil {
		return nil, fmt.Errorf("list descripciones: %w", err)
	}
	if len(descripciones) == 0 {
		return nil, domain.ErrNoProyectos
	}

	texto := strings.Join(descripciones, ". ")
	if runes := []rune(texto); len(runes) > maxDescripcionChars {
		texto = string(runes[:maxDescripcionChars])
	}

	resumen, err := s.llm.Complete(ctx, fmt.Sprintf(promptTemplate, texto))
	if err != nil {
		return nil, fmt.Errorf("generar resumen: %w", err)
	}
	if strings.TrimSpace(resumen) == "" {
		resumen = FallbackResumen
	}

	return &AnalisisResumen{
		TotalProyectos: int64(len(descripciones)),
		Analisis:       resumen,
	}, nil
}
