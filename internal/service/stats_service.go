package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

const (
	statsCacheTTL   = 60 * time.Second
	statsLimitTop   = 10
	fallbackHorizon = 30 * 24 * time.Hour
)

// StatsService defines the interface for aggregate statistics
type StatsService interface {
	ProjectStatistics(ctx context.Context, userID uuid.UUID, filter string) (*dto.ProjectStatisticsResponse, error)
	TaskStatistics(ctx context.Context, userID uuid.UUID, filter string) (*dto.TaskStatisticsResponse, error)
	TeamStatistics(ctx context.Context, userID uuid.UUID, filter string) (*dto.TeamStatisticsResponse, error)
}

// statsServiceImpl is the implementation of StatsService
type statsServiceImpl struct {
	statsRepo repository.StatsRepository
	cache     *redis.Client
	logger    *zap.Logger
}

// NewStatsService creates a new instance of StatsService. A nil cache
// client disables response caching.
func NewStatsService(statsRepo repository.StatsRepository, cache *redis.Client, logger *zap.Logger) StatsService {
	return &statsServiceImpl{
		statsRepo: statsRepo,
		cache:     cache,
		logger:    logger,
	}
}

// cutoffForFilter translates the time filter into a cutoff instant.
// A nil cutoff means no time restriction.
func cutoffForFilter(filter string) (*time.Time, error) {
	now := time.Now()
	var cutoff time.Time

	switch filter {
	case "", "all":
		return nil, nil
	case "month":
		cutoff = now.AddDate(0, -1, 0)
	case "quarter":
		cutoff = now.AddDate(0, -3, 0)
	case "year":
		cutoff = now.AddDate(-1, 0, 0)
	default:
		return nil, response.NewValidationError("Invalid time filter", "expected month, quarter, year or all")
	}
	return &cutoff, nil
}

// cacheKey builds the per-user, per-filter cache key
func cacheKey(kind string, userID uuid.UUID, filter string) string {
	if filter == "" {
		filter = "all"
	}
	return fmt.Sprintf("stats:%s:%s:%s", kind, userID, filter)
}

// fromCache loads a cached response. A miss or any cache failure returns
// false; statistics always fall back to the database.
func (s *statsServiceImpl) fromCache(ctx context.Context, key string, out interface{}) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("Stats cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("Stats cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// toCache stores a response, best-effort
func (s *statsServiceImpl) toCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, statsCacheTTL).Err(); err != nil {
		s.logger.Warn("Stats cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// ProjectStatistics aggregates the caller's projects by status, priority
// and schedule
func (s *statsServiceImpl) ProjectStatistics(ctx context.Context, userID uuid.UUID, filter string) (*dto.ProjectStatisticsResponse, error) {
	cutoff, err := cutoffForFilter(filter)
	if err != nil {
		return nil, err
	}

	key := cacheKey("projects", userID, filter)
	var cached dto.ProjectStatisticsResponse
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	projectIDs, err := s.statsRepo.AccessibleProjectIDs(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load statistics", err.Error())
	}

	byStatus, err := s.statsRepo.ProjectsByStatus(ctx, projectIDs, cutoff)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load statistics", err.Error())
	}
	byPriority, err := s.statsRepo.ProjectsByPriority(ctx, projectIDs, cutoff)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load statistics", err.Error())
	}
	timelines, err := s.statsRepo.ProjectTimelines(ctx, projectIDs, cutoff)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load statistics", err.Error())
	}

	resp := &dto.ProjectStatisticsResponse{
		ByStatus: map[string]int64{
			string(domain.ProjectStatusActive):    0,
			string(domain.ProjectStatusCompleted): 0,
			string(domain.ProjectStatusOnHold):    0,
			string(domain.ProjectStatusCancelled): 0,
		},
		ByPriority: emptyPriorityMap(),
		Timeline:   []dto.ProjectTimelineEntry{},
	}
	for _, row := range byStatus {
		resp.ByStatus[row.Status] = row.Count
		resp.Total += row.Count
	}
	for _, row := range byPriority {
		resp.ByPriority[row.Priority] = row.Count
	}

	now := time.Now()
	for _, row := range timelines {
		start := now
		if row.StartDate != nil {
			start = *row.StartDate
		}
		end := now.Add(fallbackHorizon)
		if row.EndDate != nil {
			end = *row.EndDate
		}
		resp.Timeline = append(resp.Timeline, dto.ProjectTimelineEntry{
			ID:        row.ID,
			Name:      row.Name,
			StartDate: start.UnixMilli(),
			EndDate:   end.UnixMilli(),
		})
	}

	s.toCache(ctx, key, resp)
	return resp, nil
}

// TaskStatistics aggregates tasks across the caller's projects
func (s *statsServiceImpl) TaskStatistics(ctx context.Context, userID uuid.UUID, filter string) (*dto.TaskStatisticsResponse, error) {
	cutoff, err := cutoffForFilter(filter)
	if err != nil {
		return nil, err
	}

	key := cacheKey("tasks", userID, filter)
	var cached dto.TaskStatisticsResponse
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	projectIDs, err := s.statsRepo.AccessibleProjectIDs(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load statistics", err.Error())
	}

	byStatus, err := s.statsRepo.TasksByStatus(ctx, projectIDs, cutoff)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load statistics", err.Error())
	}
	byPriority, err := s.statsRepo.TasksByPriority(ctx, projectIDs, cutoff)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load statistics", err.Error())
	}
	perProject, err := s.statsRepo.ProjectCompletion(ctx, projectIDs, cutoff, statsLimitTop)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load statistics", err.Error())
	}
	spans, err := s.statsRepo.CompletedTaskSpans(ctx, projectIDs, cutoff)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load statistics", err.Error())
	}

	resp := &dto.TaskStatisticsResponse{
		ByStatus: map[string]int64{
			string(domain.TaskStatusToDo):       0,
			string(domain.TaskStatusInProgress): 0,
			string(domain.TaskStatusReview):     0,
			string(domain.TaskStatusCompleted):  0,
		},
		ByPriority: emptyPriorityMap(),
		ByProject:  []dto.ProjectTaskBreakdown{},
	}
	for _, row := range byStatus {
		resp.ByStatus[row.Status] = row.Count
		resp.Total += row.Count
	}
	resp.Completed = resp.ByStatus[string(domain.TaskStatusCompleted)]
	for _, row := range byPriority {
		resp.ByPriority[row.Priority] = row.Count
	}
	for _, row := range perProject {
		resp.ByProject = append(resp.ByProject, dto.ProjectTaskBreakdown{
			ProjectID: row.ProjectID,
			Name:      row.Name,
			Completed: row.Completed,
			Pending:   row.Pending,
		})
	}
	resp.AverageCompletionDays = averageCompletionDays(spans)

	s.toCache(ctx, key, resp)
	return resp, nil
}

// TeamStatistics aggregates per-member task activity
func (s *statsServiceImpl) TeamStatistics(ctx context.Context, userID uuid.UUID, filter string) (*dto.TeamStatisticsResponse, error) {
	cutoff, err := cutoffForFilter(filter)
	if err != nil {
		return nil, err
	}

	key := cacheKey("team", userID, filter)
	var cached dto.TeamStatisticsResponse
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	projectIDs, err := s.statsRepo.AccessibleProjectIDs(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load statistics", err.Error())
	}

	completed, err := s.statsRepo.CompletedByAssignee(ctx, projectIDs, cutoff, statsLimitTop)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load statistics", err.Error())
	}
	distribution, err := s.statsRepo.TasksByAssignee(ctx, projectIDs, cutoff, statsLimitTop)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load statistics", err.Error())
	}

	resp := &dto.TeamStatisticsResponse{
		CompletedByMember:    []dto.MemberTaskCount{},
		DistributionByMember: []dto.MemberTaskCount{},
	}
	for _, row := range completed {
		resp.CompletedByMember = append(resp.CompletedByMember, dto.MemberTaskCount{
			UserID: row.UserID,
			Name:   row.Name,
			Count:  row.Count,
		})
	}
	for _, row := range distribution {
		resp.DistributionByMember = append(resp.DistributionByMember, dto.MemberTaskCount{
			UserID: row.UserID,
			Name:   row.Name,
			Count:  row.Count,
		})
	}

	s.toCache(ctx, key, resp)
	return resp, nil
}

// averageCompletionDays measures how long completed tasks stayed open,
// using the last update as the completion instant. Zero when nothing has
// been completed yet.
func averageCompletionDays(spans []repository.CompletionSpan) float64 {
	if len(spans) == 0 {
		return 0
	}

	var total time.Duration
	for _, span := range spans {
		total += span.UpdatedAt.Sub(span.CreatedAt)
	}

	days := total.Hours() / 24 / float64(len(spans))
	return math.Round(days*100) / 100
}

func emptyPriorityMap() map[string]int64 {
	return map[string]int64{
		string(domain.PriorityLow):    0,
		string(domain.PriorityMedium): 0,
		string(domain.PriorityHigh):   0,
		string(domain.PriorityUrgent): 0,
	}
}
