package dto

import "github.com/google/uuid"

// ProjectTimelineEntry is one bar on the project timeline chart.
// Dates are unix milliseconds for direct chart consumption.
type ProjectTimelineEntry struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	StartDate int64     `json:"startDate"`
	EndDate   int64     `json:"endDate"`
}

// ProjectStatisticsResponse aggregates the caller's projects
type ProjectStatisticsResponse struct {
	Total      int64                  `json:"total"`
	ByStatus   map[string]int64       `json:"byStatus"`
	ByPriority map[string]int64       `json:"byPriority"`
	Timeline   []ProjectTimelineEntry `json:"timeline"`
}

// ProjectTaskBreakdown is the completed/pending split of one project
type ProjectTaskBreakdown struct {
	ProjectID uuid.UUID `json:"projectId"`
	Name      string    `json:"name"`
	Completed int64     `json:"completed"`
	Pending   int64     `json:"pending"`
}

// TaskStatisticsResponse aggregates tasks across the caller's projects
type TaskStatisticsResponse struct {
	Total                 int64                  `json:"total"`
	Completed             int64                  `json:"completed"`
	ByStatus              map[string]int64       `json:"byStatus"`
	ByPriority            map[string]int64       `json:"byPriority"`
	ByProject             []ProjectTaskBreakdown `json:"byProject"`
	AverageCompletionDays float64                `json:"averageCompletionDays"`
}

// MemberTaskCount is a task count attributed to one team member
type MemberTaskCount struct {
	UserID uuid.UUID `json:"userId"`
	Name   string    `json:"name"`
	Count  int64     `json:"count"`
}

// TeamStatisticsResponse aggregates per-member activity
type TeamStatisticsResponse struct {
	CompletedByMember    []MemberTaskCount `json:"completedByMember"`
	DistributionByMember []MemberTaskCount `json:"distributionByMember"`
}
