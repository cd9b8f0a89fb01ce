package analytics

import (
	"strings"
	"unicode"
)

type Analytics struct{}

// stopWords are high-frequency Romanian function words plus the boilerplate
// tokens every consultation title carries. Extend as needed.
var stopWords = map[string]struct{}{
	"a": {}, "acest": {}, "aceasta": {}, "această": {}, "acestei": {},
	"acestui": {}, "al": {}, "ale": {}, "alte": {}, "anexa": {}, "anexe": {},
	"art": {}, "asupra": {}, "au": {}, "care": {}, "cat": {}, "către": {},
	"ce": {}, "cea": {}, "cel": {}, "cele": {}, "cu": {}, "da": {}, "de": {},
	"din": {}, "dintre": {}, "după": {}, "este": {}, "fi": {}, "fie": {},
	"fost": {}, "hotărâre": {}, "hotarare": {}, "în": {}, "între": {},
	"la": {}, "lege": {}, "legea": {}, "legii": {}, "lor": {}, "mai": {},
	"nr": {}, "o": {}, "ordonanţă": {}, "ordonanta": {}, "pe": {},
	"pentru": {}, "precum": {}, "prin": {}, "privind": {}, "proiect": {},
	"proiectul": {}, "republicată": {}, "sa": {}, "se": {}, "şi": {},
	"si": {}, "sunt": {}, "unei": {}, "unele": {}, "unor": {}, "unui": {},
}

// WordFrequency tokenizes a title into lower-case words and counts them,
// skipping stopwords and tokens shorter than three runes.
func (a *Analytics) WordFrequency(content string) map[string]int {
	counts := make(map[string]int)

	words := strings.FieldsFunc(strings.ToLower(content), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, word := range words {
		if len([]rune(word)) < 3 {
			continue
		}
		if _, ok := stopWords[word]; ok {
			continue
		}
		counts[word]++
	}
	return counts
}
