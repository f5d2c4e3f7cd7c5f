package dto

type CostResponse struct {
	TotalCost float64 `json:"total_cost"`
}

type LegResponse struct {
	Kind     string  `json:"kind"`
	Center   string  `json:"center"`
	Distance float64 `json:"distance"`
	Weight   float64 `json:"weight"`
	Rate     float64 `json:"rate"`
	Cost     float64 `json:"cost"`
}

type QuoteResponse struct {
	TotalCost      float64       `json:"total_cost"`
	Cached         bool          `json:"cached"`
	Legs           []LegResponse `json:"legs"`
	UnsourcedItems []string      `json:"unsourced_items"`
}

type ErrorResponse struct {
	Error string   `json:"error"`
	Items []string `json:"items,omitempty"`
}
