package domain

type LegKind string

const (
	// Empty truck from the hub out to the next pickup center.
	LegReposition LegKind = "reposition"
	// Loaded truck from a center back to the hub.
	LegDelivery LegKind = "delivery"
)

// Leg is one priced segment of a quote.
type Leg struct {
	Kind     LegKind `json:"kind"`
	Center   string  `json:"center"`
	Distance float64 `json:"distance"`
	Weight   float64 `json:"weight,omitempty"`
	Rate     float64 `json:"rate"`
	Cost     float64 `json:"cost"`
}

// Quote is the priced result for one order.
// Unsourced lists items no center stocks; they contributed nothing to the total.
type Quote struct {
	TotalCost float64  `json:"total_cost"`
	Legs      []Leg    `json:"legs"`
	Unsourced []string `json:"unsourced_items,omitempty"`
}
