package myth

import "strings"

// Keyword groups are scanned in order and the first group with any match
// wins. The order is part of the classification contract: reordering
// changes the outcome on prose that matches more than one group.
var archetypeRules = []struct {
	label    Archetype
	keywords []string
}{
	{Seeker, []string{"question", "explore", "discover", "seek"}},
	{Mentor, []string{"teach", "guide", "wisdom", "understand"}},
	{Hero, []string{"challenge", "overcome", "strength", "victory"}},
	{Shadow, []string{"failure", "limitation", "darkness", "struggle"}},
	{Trickster, []string{"playful", "unexpected", "surprise", "humor"}},
	{Innocent, []string{"wonder", "innocent", "pure", "simple"}},
	{Sage, []string{"knowledge", "wise", "understanding", "truth"}},
	{Explorer, []string{"journey", "adventure", "new", "frontier"}},
	{Creator, []string{"create", "build", "make", "artistic"}},
}

var toneRules = []struct {
	label    Tone
	keywords []string
}{
	{Curiosity, []string{"curious", "wonder", "explore", "question"}},
	{Regret, []string{"regret", "wish", "should have", "mistake"}},
	{Hope, []string{"hope", "optimism", "future", "possibility"}},
	{Despair, []string{"despair", "hopeless", "dark", "lost"}},
	{Resolve, []string{"resolve", "determined", "will", "commit"}},
	{Wonder, []string{"amazing", "beautiful", "awe", "magnificent"}},
	{Confusion, []string{"confused", "unclear", "uncertain", "puzzled"}},
	{Clarity, []string{"clear", "understand", "obvious", "evident"}},
	{Longing, []string{"want", "desire", "yearn", "wish"}},
}

// ClassifyArchetype maps prose to an archetype by case-insensitive keyword
// scan. Prose matching no group is Caregiver.
func ClassifyArchetype(prose string) Archetype {
	lower := strings.ToLower(prose)
	for _, rule := range archetypeRules {
		if containsAny(lower, rule.keywords) {
			return rule.label
		}
	}
	return Caregiver
}

// ClassifyTone maps prose to an emotional tone by case-insensitive keyword
// scan. Prose matching no group is Satisfaction.
func ClassifyTone(prose string) Tone {
	lower := strings.ToLower(prose)
	for _, rule := range toneRules {
		if containsAny(lower, rule.keywords) {
			return rule.label
		}
	}
	return Satisfaction
}

// Themes extracts theme tags from prose, in ThemeKeywords order. Never
// empty: prose without any theme keyword yields the default tag alone.
func Themes(prose string) []string {
	lower := strings.ToLower(prose)
	var found []string
	for _, theme := range ThemeKeywords {
		if strings.Contains(lower, theme) {
			found = append(found, theme)
		}
	}
	if len(found) == 0 {
		return []string{DefaultTag}
	}
	return found
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
