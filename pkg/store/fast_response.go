package store

// FastResponse is a pre-computed answer for a common query, served
// without touching the retrieval pipeline.
type FastResponse struct {
	Message        string               `json:"message"`
	ResponseTimeMs int                  `json:"response_time_ms"`
	Sources        []FastResponseSource `json:"sources,omitempty"`
}

type FastResponseSource struct {
	Name           string  `json:"name"`
	Url            string  `json:"url"`
	RelevanceScore float64 `json:"relevance_score"`
}
