package internal

import "sort"

// DefaultTopKeywords is the number of keywords kept per day.
const DefaultTopKeywords = 12

// TopKeywords ranks the non-stopword tokens of texts by frequency and returns
// the first n. Ties keep the order in which tokens were first seen.
func TopKeywords(texts []string, n int) []string {
	if n <= 0 {
		return []string{}
	}

	counts := make(map[string]int)
	var order []string
	for _, text := range texts {
		for _, token := range Tokenize(text) {
			if !isKeywordCandidate(token) {
				continue
			}
			if counts[token] == 0 {
				order = append(order, token)
			}
			counts[token]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	keywords := make([]string, len(order))
	copy(keywords, order)
	return keywords
}

// QuestionTexts returns the text of each question, in order.
func QuestionTexts(questions []Question) []string {
	texts := make([]string, len(questions))
	for i, q := range questions {
		texts[i] = q.Text
	}
	return texts
}
