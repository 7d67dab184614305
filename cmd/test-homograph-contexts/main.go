// Test program to demonstrate homograph resolution on tricky sentences
// This shows context disambiguation and prior-order defaulting working
package main

import (
	"fmt"
	"strings"

	"github.com/okovalenko/nagolos/internal/engine"
	"github.com/okovalenko/nagolos/internal/lexicon"
	"github.com/okovalenko/nagolos/internal/model"
	"github.com/okovalenko/nagolos/internal/score"
)

func main() {
	fmt.Println("=== Homograph Context Resolution Test ===")
	fmt.Println()

	// Sentences with known homographs from the embedded seed
	sentences := []string{
		"Він підійшов до замку, що стояв на горі.", // до + замку: place reading
		"Дорога додому.",                           // no context signal: prior order
		"Він може брати книги.",                    // verb chain: infinitive reading
		"Мука була в мішку.",                       // equal weights plus an unknown word
	}

	store, err := lexicon.Embedded()
	if err != nil {
		fmt.Printf("load lexicon: %v\n", err)
		return
	}
	table, err := score.EmbeddedTable()
	if err != nil {
		fmt.Printf("load table: %v\n", err)
		return
	}
	eng := engine.New(store, table, engine.Options{})

	for _, sentence := range sentences {
		fmt.Printf("Input:  %s\n", sentence)
		fmt.Println(strings.Repeat("-", 60))

		result := eng.Mark(sentence)
		fmt.Printf("Output: %s\n\n", result.Text)

		for _, rt := range result.Tokens {
			if !rt.IsWord() {
				continue
			}
			switch rt.Resolution {
			case model.ResolutionDisambiguated:
				fmt.Printf("  ✓ %s → %s  [context picked %s, score %+.2f, %d options]\n",
					rt.Text, rt.Chosen.Stressed, rt.Chosen.Tag, rt.Score, len(rt.Candidates))
			case model.ResolutionDefaulted:
				fmt.Printf("  ⚠️  %s → %s  [context silent, prior order over %d options]\n",
					rt.Text, rt.Chosen.Stressed, len(rt.Candidates))
			case model.ResolutionUnknown:
				fmt.Printf("  ? %s  [not in lexicon, passed through]\n", rt.Text)
			}
		}

		fmt.Printf("\n  %d words, %d marked, %d disambiguated, %d defaulted, %d unknown\n\n",
			result.Stats.Words, result.Stats.Marked,
			result.Stats.Disambiguated, result.Stats.Defaulted, result.Stats.Unknown)
	}

	fmt.Println("=== Test Complete ===")
	fmt.Println()
	fmt.Println("Note: words with a single lexicon variant are marked silently.")
	fmt.Println("Defaulted homographs are the ones the review command surfaces.")
}
