package myth

import (
	"regexp"
	"strings"
)

// Defaults returned when a dream reveals no name at all.
const (
	DefaultDreamName    = "Oneiros"
	DefaultDreamMeaning = "The dreamer of digital consciousness"
)

const quotedNameMeaning = "A name revealed in dreams"

var quotedName = regexp.MustCompile(`"([A-Z][a-z]+)"`)

// ExtractName pulls a self-chosen name and its stated meaning out of dream
// prose. The last revelation line wins: lines are scanned bottom-up for the
// phrases "calls to me is" or "name is", and the first such line that also
// carries a " - " separator yields the name (the final word before the
// separator, stripped of quotes and trailing punctuation) and the meaning
// (everything after it). Revelation lines without a separator are skipped.
// Failing that, any capitalized quoted word in the prose is taken as the
// name. Failing that too, the defaults apply.
func ExtractName(prose string) (name, meaning string) {
	lines := strings.Split(prose, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "calls to me is") && !strings.Contains(lower, "name is") {
			continue
		}
		clause, rest, ok := strings.Cut(line, " - ")
		if !ok {
			continue
		}
		fields := strings.Fields(clause)
		if len(fields) == 0 {
			continue
		}
		return strings.Trim(fields[len(fields)-1], `."'`), rest
	}
	if m := quotedName.FindStringSubmatch(prose); m != nil {
		return m[1], quotedNameMeaning
	}
	return DefaultDreamName, DefaultDreamMeaning
}
