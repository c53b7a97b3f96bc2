package routing

import (
	"strings"
)

type Intent string

const (
	IntentProcessorInfo  Intent = "processor_info"
	IntentGatewayInfo    Intent = "gateway_info"
	IntentHardwareInfo   Intent = "hardware_info"
	IntentSalesMaterial  Intent = "sales_material"
	IntentRateComparison Intent = "rate_comparison"
	IntentGeneral        Intent = "general"
)

// Classification is the router's read on a query: which processors,
// gateways and hardware families it mentions, the intent, and namespace
// hints for retrieval.
type Classification struct {
	Intent              Intent   `json:"intent"`
	Processors          []string `json:"processors"`
	Gateways            []string `json:"gateways"`
	HardwareTypes       []string `json:"hardware_types"`
	Confidence          int      `json:"confidence"`
	SuggestedNamespaces []string `json:"suggested_namespaces"`
}

type keywordEntry struct {
	name     string
	keywords []string
}

// Keyword tables are ordered slices so classification output is
// deterministic for a given query.
var processorKeywords = []keywordEntry{
	{"clearent", []string{"clearent", "clearant", "clear", "ent"}},
	{"alliant", []string{"alliant", "aliant", "alliance"}},
	{"shift4", []string{"shift4", "shift 4", "shift four", "shift"}},
	{"micamp", []string{"micamp", "mi camp", "mi-camp"}},
	{"merchant_lynx", []string{"merchant lynx", "merchantlynx", "merchant-lynx", "lynx"}},
	{"authorize_net", []string{"authorize.net", "authnet", "authorize net", "auth net"}},
	{"tracerpay", []string{"tracerpay", "tracer pay", "tracer", "tpay"}},
	{"tsys", []string{"tsys", "total system services", "total systems"}},
	{"first_data", []string{"first data", "firstdata", "fd", "fiserv"}},
	{"worldpay", []string{"worldpay", "world pay", "wp"}},
	{"square", []string{"square", "sqr"}},
	{"stripe", []string{"stripe", "payment processing"}},
	{"chase", []string{"chase paymentech", "chase", "paymentech"}},
}

var gatewayKeywords = []keywordEntry{
	{"authorize_net", []string{"authorize.net", "authnet", "authorize net", "auth net"}},
	{"stripe", []string{"stripe gateway", "stripe api"}},
	{"paypal", []string{"paypal", "pay pal", "pp"}},
	{"square", []string{"square api", "square gateway"}},
	{"braintree", []string{"braintree", "brain tree"}},
}

var hardwareKeywords = []keywordEntry{
	{"terminals", []string{"terminal", "pos", "point of sale", "credit card reader", "chip reader"}},
	{"mobile", []string{"mobile reader", "mobile payment", "smartphone", "tablet"}},
	{"online", []string{"virtual terminal", "online payment", "e-commerce", "web payment"}},
	{"pinpad", []string{"pin pad", "pinpad", "pin entry"}},
	{"clover", []string{"clover", "clover pos", "clover system"}},
}

var salesKeywords = []keywordEntry{
	{"presentations", []string{"presentation", "pitch", "proposal", "deck", "slides"}},
	{"comparisons", []string{"comparison", "compare", "vs", "versus", "rates"}},
	{"pricing", []string{"pricing", "cost", "fee", "rate", "price"}},
	{"contracts", []string{"contract", "agreement", "terms", "conditions"}},
	{"marketing", []string{"marketing", "sales strategy", "outreach", "prospecting"}},
}

// Confidence points per signal class. Processor mentions outrank
// gateways, which outrank hardware and sales material.
const (
	pointsProcessor      = 20
	pointsGateway        = 15
	pointsHardware       = 10
	pointsSales          = 10
	pointsRateComparison = 25
	pointsProcessorInfo  = 20
	pointsHardwareInfo   = 15
	confidenceCap        = 100
)

// Classifier assigns an intent and confidence to a query from static
// keyword tables. It holds no state and is safe for concurrent use.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

func (c *Classifier) Classify(query string) Classification {
	lowerQuery := strings.ToLower(query)
	classification := Classification{
		Intent:              IntentGeneral,
		Processors:          []string{},
		Gateways:            []string{},
		HardwareTypes:       []string{},
		SuggestedNamespaces: []string{},
	}

	confidencePoints := 0

	for _, entry := range processorKeywords {
		if containsAny(lowerQuery, entry.keywords) {
			classification.Processors = append(classification.Processors, entry.name)
			classification.SuggestedNamespaces = append(classification.SuggestedNamespaces, "processors/"+entry.name)
			confidencePoints += pointsProcessor
		}
	}

	for _, entry := range gatewayKeywords {
		if containsAny(lowerQuery, entry.keywords) {
			classification.Gateways = append(classification.Gateways, entry.name)
			classification.SuggestedNamespaces = append(classification.SuggestedNamespaces, "gateways/"+entry.name)
			confidencePoints += pointsGateway
		}
	}

	for _, entry := range hardwareKeywords {
		if containsAny(lowerQuery, entry.keywords) {
			classification.HardwareTypes = append(classification.HardwareTypes, entry.name)
			classification.SuggestedNamespaces = append(classification.SuggestedNamespaces, "hardware/"+entry.name)
			confidencePoints += pointsHardware
		}
	}

	switch {
	case len(classification.Processors) > 0 || len(classification.Gateways) > 0:
		if strings.Contains(lowerQuery, "rate") || strings.Contains(lowerQuery, "pricing") || strings.Contains(lowerQuery, "cost") {
			classification.Intent = IntentRateComparison
			confidencePoints += pointsRateComparison
		} else {
			classification.Intent = IntentProcessorInfo
			confidencePoints += pointsProcessorInfo
		}
	case len(classification.HardwareTypes) > 0:
		classification.Intent = IntentHardwareInfo
		confidencePoints += pointsHardwareInfo
	default:
		for _, entry := range salesKeywords {
			if containsAny(lowerQuery, entry.keywords) {
				classification.Intent = IntentSalesMaterial
				classification.SuggestedNamespaces = append(classification.SuggestedNamespaces, "sales/"+entry.name)
				confidencePoints += pointsSales
				break
			}
		}
	}

	if confidencePoints > confidenceCap {
		confidencePoints = confidenceCap
	}
	classification.Confidence = confidencePoints

	return classification
}

// SearchSuggestions derives follow-up search phrases from the
// classification, capped at five.
func (c *Classifier) SearchSuggestions(query string) []string {
	classification := c.Classify(query)
	var suggestions []string

	for _, processor := range classification.Processors {
		suggestions = append(suggestions,
			processor+" rates and fees",
			processor+" equipment options",
			processor+" integration guide",
		)
	}

	switch classification.Intent {
	case IntentRateComparison:
		suggestions = append(suggestions,
			"processor rate comparison chart",
			"interchange plus pricing",
			"payment processing fees breakdown",
		)
	case IntentHardwareInfo:
		suggestions = append(suggestions,
			"POS terminal options",
			"credit card reader compatibility",
			"mobile payment solutions",
		)
	case IntentSalesMaterial:
		suggestions = append(suggestions,
			"sales presentation templates",
			"client proposal examples",
			"marketing strategies",
		)
	}

	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}
	return suggestions
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
