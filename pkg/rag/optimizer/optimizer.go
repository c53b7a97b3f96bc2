package optimizer

import (
	"strings"
)

type QueryIntent string

const (
	IntentInformational QueryIntent = "informational"
	IntentTransactional QueryIntent = "transactional"
	IntentNavigational  QueryIntent = "navigational"
	IntentComparison    QueryIntent = "comparison"
)

// OptimizedQuery carries everything downstream tiers need: plural and
// synonym variants of the whole query plus the flat term list used for
// keyword search.
type OptimizedQuery struct {
	Original     string      `json:"original"`
	Expanded     []string    `json:"expanded"`
	Synonyms     []string    `json:"synonyms"`
	RelatedTerms []string    `json:"related_terms"`
	Intent       QueryIntent `json:"intent"`
	Confidence   float64     `json:"confidence"`
}

type synonymEntry struct {
	term     string
	synonyms []string
}

var synonymTable = []synonymEntry{
	{"rate", []string{"pricing", "cost", "fee", "percentage", "markup"}},
	{"processor", []string{"provider", "company", "merchant services", "payment processor"}},
	{"tracerpay", []string{"tracer pay", "tracer", "tracerpay solution"}},
	{"pos", []string{"point of sale", "terminal", "card reader", "payment terminal"}},
	{"gateway", []string{"payment gateway", "online gateway", "ecommerce gateway"}},
	{"interchange", []string{"interchange fee", "interchange rate", "card brand fee"}},
	{"chargeback", []string{"dispute", "reversal", "customer dispute"}},
	{"batch", []string{"settlement", "batch settlement", "daily batch"}},
	{"emv", []string{"chip card", "chip reader", "emv terminal"}},
	{"ach", []string{"bank transfer", "direct debit", "echeck"}},
}

var relatedTermTable = []synonymEntry{
	{"clover", []string{"pos", "terminal", "fiserv", "first data"}},
	{"square", []string{"pos", "mobile payments", "card reader"}},
	{"stripe", []string{"gateway", "online payments", "api", "developer"}},
	{"authorize.net", []string{"gateway", "visa", "cybersource"}},
	{"shift4", []string{"pos", "restaurant", "hospitality"}},
	{"clearent", []string{"processor", "tsys", "global payments"}},
	{"micamp", []string{"iso", "sales agent", "residuals"}},
}

// searchSynonymTable drives SearchTerms, the vocabulary the keyword and
// substring tiers match against document content.
var searchSynonymTable = []synonymEntry{
	{"clearent", []string{"clerent", "clearant"}},
	{"processing", []string{"payment processing", "card processing"}},
	{"rates", []string{"pricing", "fees", "costs"}},
	{"pos", []string{"point of sale", "terminal"}},
	{"merchant", []string{"business", "retailer"}},
	{"interchange", []string{"interchange plus", "ic+"}},
	{"clover", []string{"clover pos", "clover system"}},
	{"square", []string{"square pos", "square terminal"}},
	{"authorize", []string{"authorize.net", "authnet"}},
}

// QueryOptimizer expands queries with merchant-services vocabulary. It
// is deterministic, holds no state, and never touches the network.
type QueryOptimizer struct{}

func NewQueryOptimizer() *QueryOptimizer {
	return &QueryOptimizer{}
}

func (o *QueryOptimizer) Optimize(query string) OptimizedQuery {
	normalized := strings.ToLower(strings.TrimSpace(query))
	intent := detectIntent(normalized)

	return OptimizedQuery{
		Original:     query,
		Expanded:     expandQuery(normalized),
		Synonyms:     findSynonyms(normalized),
		RelatedTerms: findRelatedTerms(normalized),
		Intent:       intent,
		Confidence:   calculateConfidence(normalized, intent),
	}
}

// SearchTerms returns the lowercased query plus every synonym whose
// trigger term the query contains, deduplicated in table order.
func (o *QueryOptimizer) SearchTerms(query string) []string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	terms := []string{normalized}

	for _, entry := range searchSynonymTable {
		if strings.Contains(normalized, entry.term) {
			terms = append(terms, entry.synonyms...)
		}
	}

	return dedupe(terms)
}

func detectIntent(query string) QueryIntent {
	transactional := []string{"calculate", "compare", "pricing", "cost", "rate", "fee"}
	comparison := []string{"vs", "versus", "compare", "difference", "better"}
	navigational := []string{"find", "show", "where", "location", "contact"}

	switch {
	case containsAny(query, transactional):
		return IntentTransactional
	case containsAny(query, comparison):
		return IntentComparison
	case containsAny(query, navigational):
		return IntentNavigational
	}
	return IntentInformational
}

func expandQuery(query string) []string {
	expansions := []string{query}
	words := strings.Split(query, " ")

	// Plural/singular variations.
	for _, word := range words {
		if strings.HasSuffix(word, "s") {
			expansions = append(expansions, strings.Replace(query, word, word[:len(word)-1], 1))
		} else {
			expansions = append(expansions, strings.Replace(query, word, word+"s", 1))
		}
	}

	// Common merchant services patterns.
	if strings.Contains(query, "rate") {
		expansions = append(expansions,
			strings.ReplaceAll(query, "rate", "pricing"),
			strings.ReplaceAll(query, "rate", "cost"),
		)
	}
	if strings.Contains(query, "pos") {
		expansions = append(expansions, strings.ReplaceAll(query, "pos", "point of sale"))
	}

	return dedupe(expansions)
}

func findSynonyms(query string) []string {
	var synonyms []string
	words := strings.Split(query, " ")

	for _, word := range words {
		for _, entry := range synonymTable {
			if entry.term == word {
				synonyms = append(synonyms, entry.synonyms...)
			}
		}
	}
	return dedupe(synonyms)
}

func findRelatedTerms(query string) []string {
	var related []string
	words := strings.Split(query, " ")

	for _, word := range words {
		for _, entry := range relatedTermTable {
			if entry.term == word {
				related = append(related, entry.synonyms...)
			}
		}
	}
	return dedupe(related)
}

func calculateConfidence(query string, intent QueryIntent) float64 {
	confidence := 0.5

	if intent == IntentTransactional && strings.Contains(query, "calculate") {
		confidence += 0.3
	}

	knownTerms := []string{"tracerpay", "clover", "square", "stripe", "clearent"}
	if containsAny(query, knownTerms) {
		confidence += 0.2
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
