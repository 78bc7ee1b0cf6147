package metrics

import "strings"

// TokenOverlap returns the fraction of the input's distinct lowercase
// tokens that also occur in the output. 0 when the input has no tokens.
func TokenOverlap(input, output string) float64 {
	inputWords := tokenSet(input)
	if len(inputWords) == 0 {
		return 0
	}
	outputWords := tokenSet(output)
	shared := 0
	for w := range inputWords {
		if outputWords[w] {
			shared++
		}
	}
	return float64(shared) / float64(len(inputWords))
}

func tokenSet(text string) map[string]bool {
	set := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = true
	}
	return set
}
