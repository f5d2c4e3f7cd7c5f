package dto

type CenterResponse struct {
	ID            string             `json:"id"`
	DistanceToHub float64            `json:"distance_to_hub"`
	Stock         map[string]float64 `json:"stock"`
}

type CatalogResponse struct {
	Hub     string             `json:"hub"`
	Items   map[string]float64 `json:"items"`
	Centers []CenterResponse   `json:"centers"`
}
