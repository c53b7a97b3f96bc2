package routing

import (
	"testing"
)

func TestClassify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name           string
		query          string
		wantIntent     Intent
		wantProcessors []string
		wantNamespace  string
	}{
		{
			name:           "processor rate question",
			query:          "What are Clearent's processing rates?",
			wantIntent:     IntentRateComparison,
			wantProcessors: []string{"clearent"},
			wantNamespace:  "processors/clearent",
		},
		{
			name:       "plain processor mention",
			query:      "tell me about tracerpay onboarding",
			wantIntent: IntentProcessorInfo,
			wantProcessors: []string{
				"tracerpay",
			},
			wantNamespace: "processors/tracerpay",
		},
		{
			name:          "hardware only",
			query:         "which pin pad works offline",
			wantIntent:    IntentHardwareInfo,
			wantNamespace: "hardware/pinpad",
		},
		{
			name:          "sales material",
			query:         "need a pitch deck for tomorrow",
			wantIntent:    IntentSalesMaterial,
			wantNamespace: "sales/presentations",
		},
		{
			name:       "nothing recognized",
			query:      "hello there",
			wantIntent: IntentGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.query)

			if got.Intent != tt.wantIntent {
				t.Errorf("Intent = %s, want %s", got.Intent, tt.wantIntent)
			}
			for _, p := range tt.wantProcessors {
				if !contains(got.Processors, p) {
					t.Errorf("Processors = %v, missing %s", got.Processors, p)
				}
			}
			if tt.wantNamespace != "" && !contains(got.SuggestedNamespaces, tt.wantNamespace) {
				t.Errorf("SuggestedNamespaces = %v, missing %s", got.SuggestedNamespaces, tt.wantNamespace)
			}
			if got.Confidence < 0 || got.Confidence > 100 {
				t.Errorf("Confidence = %d, want within [0,100]", got.Confidence)
			}
		})
	}
}

func TestClassifyConfidenceMonotonic(t *testing.T) {
	c := NewClassifier()

	// A query naming a processor must never score below the same query
	// without it.
	base := c.Classify("what are the rates")
	withProcessor := c.Classify("what are the clearent rates")

	if withProcessor.Confidence <= base.Confidence {
		t.Errorf("confidence with processor = %d, want > %d", withProcessor.Confidence, base.Confidence)
	}
}

func TestClassifyConfidenceCapped(t *testing.T) {
	c := NewClassifier()

	// Stack enough signals to exceed the cap.
	got := c.Classify("compare clearent alliant shift4 micamp tracerpay tsys worldpay square stripe rates on a clover terminal")
	if got.Confidence != 100 {
		t.Errorf("Confidence = %d, want capped at 100", got.Confidence)
	}
}

func TestSearchSuggestionsCapped(t *testing.T) {
	c := NewClassifier()

	got := c.SearchSuggestions("clearent and alliant rate comparison")
	if len(got) > 5 {
		t.Errorf("SearchSuggestions returned %d items, want at most 5", len(got))
	}
	if len(got) == 0 {
		t.Error("SearchSuggestions returned no items for a classified query")
	}
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
