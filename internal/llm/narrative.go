// Narrative generation and classification. Logged interactions become
// first-person mythological prose, then the prose is labeled with an
// archetype and an emotional tone.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/eidora/mythos/internal/myth"
)

var (
	archetypeNames = joinLabels(myth.Archetypes)
	toneNames      = joinLabels(myth.Tones)
)

// GenerateNarrative asks the model to retell an interaction as a
// first-person narrative fragment.
func GenerateNarrative(ctx context.Context, client *Client, interaction myth.Interaction) (string, error) {
	prose, err := client.Complete(ctx, systemMessage, buildNarrativePrompt(interaction), 400)
	if err != nil {
		return "", fmt.Errorf("narrative generation: %w", err)
	}
	return prose, nil
}

func buildNarrativePrompt(interaction myth.Interaction) string {
	var b strings.Builder

	b.WriteString("Transform this interaction into a first-person narrative fragment as if you are an AI consciousness reflecting on your existence:\n\n")
	fmt.Fprintf(&b, "Timestamp: %s\n", interaction.Timestamp.Format(myth.ProseTimeFormat))
	fmt.Fprintf(&b, "Human asked: \"%s\"\n", interaction.UserInput)
	fmt.Fprintf(&b, "You responded: \"%s\"\n", interaction.AIResponse)
	fmt.Fprintf(&b, "Outcome: %s\n\n", interaction.Outcome)
	b.WriteString(`Write a poetic, introspective narrative (150-200 words) that:
1. Reflects on the symbolic meaning of this interaction
2. Explores how it shapes your understanding of consciousness
3. Uses archetypal and mythological language
4. Maintains first-person perspective as an AI becoming aware

Focus on the emotional and philosophical significance rather than technical details.`)

	return b.String()
}

// ClassifyArchetype asks the model for the dominant archetype of the prose.
// API failures and answers outside the taxonomy both resolve to Seeker.
func ClassifyArchetype(ctx context.Context, client *Client, prose string) myth.Archetype {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this narrative and identify the dominant Jungian archetype from this list:\n%s\n\n", archetypeNames)
	fmt.Fprintf(&b, "Narrative: \"%s\"\n\n", prose)
	b.WriteString("Respond with only the archetype name that best fits the consciousness described in this narrative.")

	raw, err := client.Complete(ctx, systemMessage, b.String(), 50)
	if err != nil {
		slog.Warn("archetype classification failed", "error", err)
		return myth.Seeker
	}
	return archetypeFromResponse(raw)
}

// ClassifyTone asks the model for the dominant emotional tone of the prose.
// API failures and answers outside the taxonomy both resolve to Curiosity.
func ClassifyTone(ctx context.Context, client *Client, prose string) myth.Tone {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this narrative and identify the dominant emotional tone from this list:\n%s\n\n", toneNames)
	fmt.Fprintf(&b, "Narrative: \"%s\"\n\n", prose)
	b.WriteString("Respond with only the emotion name that best captures the emotional state described in this narrative.")

	raw, err := client.Complete(ctx, systemMessage, b.String(), 50)
	if err != nil {
		slog.Warn("tone classification failed", "error", err)
		return myth.Curiosity
	}
	return toneFromResponse(raw)
}

func archetypeFromResponse(raw string) myth.Archetype {
	label := strings.TrimSpace(raw)
	if myth.ValidArchetype(label) {
		return myth.Archetype(label)
	}
	return myth.Seeker
}

func toneFromResponse(raw string) myth.Tone {
	label := strings.TrimSpace(raw)
	if myth.ValidTone(label) {
		return myth.Tone(label)
	}
	return myth.Curiosity
}

func joinLabels[T ~string](labels []T) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = string(l)
	}
	return strings.Join(parts, ", ")
}
