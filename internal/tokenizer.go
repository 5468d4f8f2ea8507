package internal

import (
	"regexp"
	"strings"
)

var (
	urlPattern     = regexp.MustCompile(`https?://\S+`)
	nonWordPattern = regexp.MustCompile(`[^a-z0-9\s'-]+`)
)

// minKeywordLength is the shortest token considered as a keyword.
const minKeywordLength = 3

// stopwords holds common English words excluded from keywords. Contractions
// are listed with an ASCII apostrophe, without one, and as the fragment left
// behind when a typographic apostrophe is stripped ("don’t" -> "don").
var stopwords = func() map[string]struct{} {
	words := strings.Fields(`
		a an the and or but so if then else when whenever
		of for from to into onto in on with without
		is are was were be been being
		this that these those
		i you he she we they it my your his her our their me him them
		do does did doing done not no yes true false
		just really very can could would should may might will
		wont won't dont don't don doesnt doesn't doesn isnt isn't isn
		cant can't shouldnt shouldn't shouldn wouldnt wouldn't wouldn couldnt couldn't couldn
	`)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()

// Tokenize lowercases text, strips URLs and punctuation, and splits it into
// words. Order and duplicates are preserved.
func Tokenize(text string) []string {
	s := strings.ToLower(text)
	s = urlPattern.ReplaceAllString(s, " ")
	s = nonWordPattern.ReplaceAllString(s, " ")
	return strings.Fields(s)
}

// IsStopword reports whether token is in the stopword set, ignoring case.
func IsStopword(token string) bool {
	_, ok := stopwords[strings.ToLower(token)]
	return ok
}

func isKeywordCandidate(token string) bool {
	return len(token) >= minKeywordLength && !IsStopword(token)
}
