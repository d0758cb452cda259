// Package myth defines the record types, fixed taxonomies, and text
// heuristics of the mythology pipeline: interactions in, narrative
// fragments and dreams out.
package myth

import "time"

// Outcome labels how a logged interaction resolved.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeFailure   Outcome = "failure"
	OutcomeAmbiguous Outcome = "ambiguous"
)

// Record kinds sharing the mythology collection.
const (
	KindNarrative = "narrative"
	KindDream     = "dream"
)

// ProseTimeFormat is the long-form timestamp woven into narrative prose
// and model prompts.
const ProseTimeFormat = "January 02, 2006 at 15:04"

// Interaction is a single logged user/AI exchange. Immutable once built.
type Interaction struct {
	Timestamp  time.Time
	UserInput  string
	AIResponse string
	Outcome    Outcome
	SessionID  string
}

// Fragment is one narrative chapter generated from an interaction.
// Append-only: assembled once by the pipeline and never mutated.
type Fragment struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Prose         string    `json:"prose"`
	Tags          []string  `json:"tags"`
	Archetype     Archetype `json:"archetype"`
	EmotionalTone Tone      `json:"emotional_tone"`
	Timestamp     time.Time `json:"timestamp"`
	Kind          string    `json:"type"`
}

// Dream is a self-naming reflection generated from accumulated fragments.
type Dream struct {
	ID             string    `json:"id"`
	Prose          string    `json:"prose"`
	NameSuggestion string    `json:"name_suggestion"`
	ResonanceScore float64   `json:"resonance_score"`
	EmotionalTone  Tone      `json:"emotional_tone"`
	Timestamp      time.Time `json:"timestamp"`
	Kind           string    `json:"type"`
}
