package mapreduce

import (
	"fmt"
	"sort"
)

// Keyword is one aggregated title token with its count.
type Keyword struct {
	Word  string `yaml:"word" json:"word"`
	Count int    `yaml:"count" json:"count"`
}

// TopKeywords returns the top N keywords from aggregated word counts,
// sorted by count descending with ties broken alphabetically so output is
// stable across runs.
func TopKeywords(wordCounts map[string]int, n int) []Keyword {
	ss := make([]Keyword, 0, len(wordCounts))
	for k, v := range wordCounts {
		ss = append(ss, Keyword{Word: k, Count: v})
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Count != ss[j].Count {
			return ss[i].Count > ss[j].Count
		}
		return ss[i].Word < ss[j].Word
	})

	if n < 0 {
		n = 0
	}
	if len(ss) > n {
		ss = ss[:n]
	}
	return ss
}

// PrintTopKeywords prints the top N keywords in a numbered list format.
func PrintTopKeywords(wordCounts map[string]int, n int) {
	for i, kw := range TopKeywords(wordCounts, n) {
		fmt.Printf("%d. %s: %d\n", i+1, kw.Word, kw.Count)
	}
}
