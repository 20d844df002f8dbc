package models

// Project health states
const (
	HealthOnTrack = "ON_TRACK"
	HealthAtRisk  = "AT_RISK"
	HealthDelayed = "DELAYED"
)

type DashboardSummary struct {
	ProjectHealth        string           `json:"projectHealth"`
	CurrentPhase         string           `json:"currentPhase"`
	DaysRemaining        int              `json:"daysRemaining"`
	CompletionPercentage float64          `json:"completionPercentage"`
	Metrics              DashboardMetrics `json:"metrics"`
	NextMilestone        Milestone        `json:"nextMilestone"`
	LastUpdated          string           `json:"lastUpdated"`
}

type DashboardMetrics struct {
	DrawingParsingAccuracy float64             `json:"drawingParsingAccuracy"`
	TimeReductionAchieved  float64             `json:"timeReductionAchieved"`
	EstimatorSatisfaction  float64             `json:"estimatorSatisfaction"`
	EstimatorEngagement    EstimatorEngagement `json:"estimatorEngagement"`
}

type EstimatorEngagement struct {
	ActiveUsers       int     `json:"activeUsers"`
	FeedbackSubmitted int     `json:"feedbackSubmitted"`
	LastActivityTime  *string `json:"lastActivityTime"`
}

type Milestone struct {
	Name     string   `json:"name"`
	DueDate  *string  `json:"dueDate"`
	Status   string   `json:"status"`
	Blockers []string `json:"blockers"`
}

type ProjectOverview struct {
	ProjectName     string      `json:"projectName"`
	Client          string      `json:"client"`
	Partner         string      `json:"partner"`
	StartDate       string      `json:"startDate"`
	EndDate         string      `json:"endDate"`
	Duration        string      `json:"duration"`
	Investment      string      `json:"investment"`
	Status          string      `json:"status"`
	Team            ProjectTeam `json:"team"`
	SuccessCriteria []string    `json:"successCriteria"`
}

type ProjectTeam struct {
	Partner []string `json:"partner"`
	Client  []string `json:"client"`
}
