package render

import (
	"strings"

	"github.com/rivo/uniseg"
)

// wrap breaks text into lines no wider than maxW.
//
// Explicit newlines start a new line. Within a paragraph whitespace
// collapses to single spaces and lines break between words; a word wider
// than maxW on its own is broken between grapheme clusters, never inside
// one. Every line keeps at least one cluster, so progress is guaranteed for
// any width.
func wrap(text string, maxW float64, m spacedMeasurer) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		cur := ""
		for _, word := range words {
			if cur != "" {
				if candidate := cur + " " + word; m.width(candidate) <= maxW {
					cur = candidate
					continue
				}
				lines = append(lines, cur)
				cur = ""
			}
			if m.width(word) <= maxW {
				cur = word
				continue
			}
			pieces := breakWord(word, maxW, m)
			lines = append(lines, pieces[:len(pieces)-1]...)
			cur = pieces[len(pieces)-1]
		}
		lines = append(lines, cur)
	}
	return lines
}

// breakWord splits word into runs that each fit maxW. A vowel sign, virama
// or combining mark stays with its base character.
func breakWord(word string, maxW float64, m spacedMeasurer) []string {
	var clusters []string
	g := uniseg.NewGraphemes(word)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}

	var pieces []string
	start := 0
	for start < len(clusters) {
		end := start + 1
		for end < len(clusters) && m.width(strings.Join(clusters[start:end+1], "")) <= maxW {
			end++
		}
		pieces = append(pieces, strings.Join(clusters[start:end], ""))
		start = end
	}
	return pieces
}
