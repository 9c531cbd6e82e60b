package querygen

import (
	"regexp"
	"strings"
)

// fillerWords are conversational tokens stripped before entity extraction.
// Hindi/Hinglish fillers first, then English.
var fillerWords = map[string]struct{}{
	// Hindi / Hinglish
	"bhai":    {},
	"yaar":    {},
	"ji":      {},
	"batao":   {},
	"bataiye": {},
	"bata":    {},
	"do":      {},
	"chahiye": {},
	"karo":    {},
	"kardo":   {},
	"mujhe":   {},
	"mera":    {},
	"mere":    {},
	"hai":     {},
	"hain":    {},
	"ka":      {},
	"ki":      {},
	"ke":      {},
	"mein":    {},

	// English
	"please": {},
	"kindly": {},
	"can":    {},
	"you":    {},
	"tell":   {},
	"me":     {},
	"about":  {},
	"the":    {},
	"a":      {},
	"an":     {},
	"i":      {},
	"want":   {},
	"need":   {},
	"know":   {},
}

// multi-word fillers removed before tokenisation.
var fillerPhrases = []string{
	"can you", "could you", "i want to know", "i want", "i need",
	"tell me about", "tell me", "batao na", "bata do",
}

// punctuation stripped from queries; hyphens survive because exam names
// use them (e.g. "JEE-Main").
var punctPattern = regexp.MustCompile(`[^\p{L}\p{N}\s\-]`)

var spacePattern = regexp.MustCompile(`\s+`)

// Clean removes filler phrases and words and strips punctuation except
// hyphens. The result is lowercase with single spaces.
func Clean(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))

	for _, phrase := range fillerPhrases {
		q = strings.ReplaceAll(q, phrase, " ")
	}

	q = punctPattern.ReplaceAllString(q, " ")

	tokens := strings.Fields(q)
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, isFiller := fillerWords[tok]; !isFiller {
			kept = append(kept, tok)
		}
	}

	return spacePattern.ReplaceAllString(strings.TrimSpace(strings.Join(kept, " ")), " ")
}
