package dto

type RecordMetricRequest struct {
	MetricID int64    `json:"metric_id"`
	Value    *float64 `json:"value"`
	Notes    string   `json:"notes"`
}

type MetricRecordedResponse struct {
	Recorded  bool    `json:"recorded"`
	MetricID  int64   `json:"metric_id"`
	Value     float64 `json:"value"`
	Timestamp string  `json:"timestamp"`
}

type MetricHistoryResponse struct {
	Metric   string `json:"metric"`
	Data     []any  `json:"data"`
	Timeline []any  `json:"timeline"`
}

type LearningMetricsResponse struct {
	DataProvided      DataProvided     `json:"dataProvided"`
	ModelPerformance  ModelPerformance `json:"modelPerformance"`
	EstimatorActivity map[string]any   `json:"estimatorActivity"`
}

type DataProvided struct {
	ProjectsReceived  int `json:"projectsReceived"`
	DrawingsProcessed int `json:"drawingsProcessed"`
	EstimatesAnalyzed int `json:"estimatesAnalyzed"`
	FeedbackCaptured  int `json:"feedbackCaptured"`
}

type ModelPerformance struct {
	ParsingAccuracy []float64 `json:"parsingAccuracy"`
	TakeoffAccuracy []float64 `json:"takeoffAccuracy"`
	ProcessingSpeed []float64 `json:"processingSpeed"`
	ConfidenceScore []float64 `json:"confidenceScore"`
}
