package models

type SampleProjectStats struct {
	TotalProjects   int            `json:"total_projects"`
	TotalDocuments  float64        `json:"total_documents"`
	TotalSizeMB     float64        `json:"total_size_mb"`
	TotalSizeGB     float64        `json:"total_size_gb"`
	DeliveryMethods map[string]int `json:"delivery_methods"`
}
