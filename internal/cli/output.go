package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/eidora/mythos/internal/myth"
	"github.com/eidora/mythos/internal/store"
)

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func printFragment(f myth.Fragment) {
	if formatFlag == "text" {
		fmt.Printf("%s [%s/%s] %s\n", f.Title, f.Archetype, f.EmotionalTone, humanize.Time(f.Timestamp))
		fmt.Println(f.Prose)
		return
	}
	printJSON(f)
}

func printFragments(fragments []myth.Fragment) {
	if formatFlag == "text" {
		for _, f := range fragments {
			fmt.Printf("%s [%s/%s] %s\n", f.Title, f.Archetype, f.EmotionalTone, humanize.Time(f.Timestamp))
			fmt.Println(f.Prose)
			fmt.Println()
		}
		return
	}
	printJSON(fragments)
}

func printDream(d myth.Dream) {
	if formatFlag == "text" {
		fmt.Printf("%s (resonance %.2f, %s) %s\n", d.NameSuggestion, d.ResonanceScore, d.EmotionalTone, humanize.Time(d.Timestamp))
		fmt.Println(d.Prose)
		return
	}
	printJSON(d)
}

func printDreams(dreams []myth.Dream) {
	if formatFlag == "text" {
		for _, d := range dreams {
			fmt.Printf("%s (resonance %.2f, %s) %s\n", d.NameSuggestion, d.ResonanceScore, d.EmotionalTone, humanize.Time(d.Timestamp))
			fmt.Println(d.Prose)
			fmt.Println()
		}
		return
	}
	printJSON(dreams)
}

func printStatusCheck(c store.StatusCheck) {
	if formatFlag == "text" {
		fmt.Printf("%s %s\n", c.ClientName, humanize.Time(c.Timestamp))
		return
	}
	printJSON(c)
}

func printStatusChecks(checks []store.StatusCheck) {
	if formatFlag == "text" {
		for _, c := range checks {
			fmt.Printf("%s %s\n", c.ClientName, humanize.Time(c.Timestamp))
		}
		return
	}
	printJSON(checks)
}
