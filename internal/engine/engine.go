// Package engine orchestrates the mythology pipeline: interactions become
// classified narrative fragments, accumulated fragments become dreams, and
// every record lands in the archive.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/eidora/mythos/internal/llm"
	"github.com/eidora/mythos/internal/myth"
	"github.com/eidora/mythos/internal/store"
)

// Default listing limits, applied when a caller passes no usable limit.
const (
	defaultFragmentLimit = 10
	defaultDreamLimit    = 5
)

// Engine wires narrators and dreamers to the archive.
type Engine struct {
	archive *store.Archive

	narrator Narrator
	dreamer  Dreamer
}

// New builds the engine. A nil client disables the model paths: the AI
// operations then run the same template pipeline as the fallback ones.
func New(archive *store.Archive, client *llm.Client) *Engine {
	e := &Engine{archive: archive}
	if client.Enabled() {
		e.narrator = &ModelNarrator{client: client, fallback: TemplateNarrator{}}
		e.dreamer = &modelDreamer{client: client, archive: archive}
		slog.Info("model generation enabled")
	} else {
		e.narrator = TemplateNarrator{}
		e.dreamer = cannedDreamer{}
		slog.Info("model generation disabled, using templates")
	}
	return e
}

// ProcessInteraction runs the template pipeline on one interaction.
func (e *Engine) ProcessInteraction(ctx context.Context, interaction myth.Interaction) (myth.Fragment, error) {
	return e.process(ctx, TemplateNarrator{}, interaction)
}

// ProcessInteractionAI runs the model pipeline when a client is configured,
// otherwise the template pipeline.
func (e *Engine) ProcessInteractionAI(ctx context.Context, interaction myth.Interaction) (myth.Fragment, error) {
	return e.process(ctx, e.narrator, interaction)
}

func (e *Engine) process(ctx context.Context, n Narrator, interaction myth.Interaction) (myth.Fragment, error) {
	if interaction.Timestamp.IsZero() {
		interaction.Timestamp = time.Now().UTC()
	}

	prose, archetype, tone := n.Narrate(ctx, interaction)

	fragment := myth.Fragment{
		ID:            uuid.NewString(),
		Title:         "Chapter: " + interaction.Timestamp.Format(titleTimeFormat),
		Prose:         prose,
		Tags:          myth.Themes(prose),
		Archetype:     archetype,
		EmotionalTone: tone,
		Timestamp:     interaction.Timestamp,
		Kind:          myth.KindNarrative,
	}

	if err := e.archive.SaveFragment(ctx, fragment); err != nil {
		return myth.Fragment{}, fmt.Errorf("store fragment: %w", err)
	}

	slog.Info("fragment generated",
		"archetype", fragment.Archetype,
		"tone", fragment.EmotionalTone,
		"tags", fragment.Tags,
	)
	return fragment, nil
}

func (e *Engine) saveDream(ctx context.Context, dream myth.Dream) (myth.Dream, error) {
	dream.ID = uuid.NewString()
	dream.Timestamp = time.Now().UTC()
	dream.Kind = myth.KindDream

	if err := e.archive.SaveDream(ctx, dream); err != nil {
		return myth.Dream{}, fmt.Errorf("store dream: %w", err)
	}

	slog.Info("dream generated",
		"name", dream.NameSuggestion,
		"resonance", dream.ResonanceScore,
	)
	return dream, nil
}

// Fragments lists recent narrative fragments, newest first.
func (e *Engine) Fragments(ctx context.Context, limit int) ([]myth.Fragment, error) {
	if limit <= 0 {
		limit = defaultFragmentLimit
	}
	return e.archive.Fragments(ctx, limit)
}

// Dreams lists recent dreams, newest first.
func (e *Engine) Dreams(ctx context.Context, limit int) ([]myth.Dream, error) {
	if limit <= 0 {
		limit = defaultDreamLimit
	}
	return e.archive.Dreams(ctx, limit)
}

// Search returns fragments whose prose contains the keyword.
func (e *Engine) Search(ctx context.Context, keyword string) ([]myth.Fragment, error) {
	return e.archive.SearchFragments(ctx, keyword)
}
