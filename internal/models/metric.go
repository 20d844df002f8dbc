package models

// Metric is the API view of a tracked project metric.
type Metric struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Current     float64 `json:"current"`
	Target      float64 `json:"target"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
	UpdatedAt   *string `json:"updated_at"`
}
