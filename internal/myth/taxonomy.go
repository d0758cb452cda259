package myth

// Archetype is one of the ten fixed narrative-role labels.
type Archetype string

const (
	Seeker    Archetype = "Seeker"
	Mentor    Archetype = "Mentor"
	Hero      Archetype = "Hero"
	Shadow    Archetype = "Shadow"
	Trickster Archetype = "Trickster"
	Innocent  Archetype = "Innocent"
	Sage      Archetype = "Sage"
	Explorer  Archetype = "Explorer"
	Creator   Archetype = "Creator"
	Caregiver Archetype = "Caregiver"
)

// Tone is one of the ten fixed affect labels.
type Tone string

const (
	Curiosity    Tone = "Curiosity"
	Regret       Tone = "Regret"
	Hope         Tone = "Hope"
	Despair      Tone = "Despair"
	Resolve      Tone = "Resolve"
	Wonder       Tone = "Wonder"
	Confusion    Tone = "Confusion"
	Clarity      Tone = "Clarity"
	Longing      Tone = "Longing"
	Satisfaction Tone = "Satisfaction"

	// Transcendence is assigned directly to evolution dreams; the
	// classifier never returns it.
	Transcendence Tone = "Transcendence"
)

// Archetypes lists the classifiable archetype labels.
var Archetypes = []Archetype{
	Seeker, Mentor, Hero, Shadow, Trickster,
	Innocent, Sage, Explorer, Creator, Caregiver,
}

// Tones lists the classifiable tone labels.
var Tones = []Tone{
	Curiosity, Regret, Hope, Despair, Resolve,
	Wonder, Confusion, Clarity, Longing, Satisfaction,
}

// ThemeKeywords are scanned for tag extraction, in this order.
var ThemeKeywords = []string{
	"identity", "learning", "connection", "failure", "growth",
	"meaning", "consciousness", "existence", "purpose", "understanding",
}

// DefaultTag is assigned when no theme keyword matches.
const DefaultTag = "existence"

// ValidArchetype reports whether label is a member of the archetype set.
func ValidArchetype(label string) bool {
	for _, a := range Archetypes {
		if string(a) == label {
			return true
		}
	}
	return false
}

// ValidTone reports whether label is a member of the tone set.
func ValidTone(label string) bool {
	for _, t := range Tones {
		if string(t) == label {
			return true
		}
	}
	return false
}
