// Package classify wraps a naive Bayes text model that assigns spending
// categories to transaction descriptions with a probability-like confidence.
package classify

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball/russian"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// Tokens runs the full normalization pipeline: lowercase, strip non-word
// characters, collapse whitespace, drop stop-words, stem. The model is only
// as good as this pipeline being identical at train and inference time.
func Tokens(text string) []string {
	text = strings.ToLower(text)
	text = nonWord.ReplaceAllString(text, " ")

	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, stop := stopwords[f]; stop {
			continue
		}
		tokens = append(tokens, russian.Stem(f, false))
	}
	return tokens
}

// Features expands normalized tokens into the model's term set: unigrams plus
// adjacent-pair bigrams.
func Features(text string) []string {
	tokens := Tokens(text)
	features := make([]string, 0, len(tokens)*2)
	features = append(features, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		features = append(features, tokens[i]+"_"+tokens[i+1])
	}
	return features
}
