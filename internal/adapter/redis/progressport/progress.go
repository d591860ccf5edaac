package progressport

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/codelab-2025.net/internal/core/ports/primary"
	"gitlab.com/codelab-2025.net/internal/domain"
)

const (
	completionKeyPrefix = "completions:"
	completedAtPrefix   = "completed_at:"
	percentKeyPrefix    = "progress:"
	percentExpiration   = 30 * time.Second
)

// ProgressTracker implements the ProgressTracker interface with Redis. Each
// user's completed lessons per course live in a set, so repeat completions of
// the same lesson collapse into a single member.
type ProgressTracker struct {
	redisClient *redis.Client
	logger      primary.Logger
}

// NewProgressTracker creates a new Redis progress tracker
func NewProgressTracker(redisClient *redis.Client, logger primary.Logger) *ProgressTracker {
	return &ProgressTracker{
		redisClient: redisClient,
		logger:      logger,
	}
}

// MarkCompleted records a lesson completion. The set add is idempotent; the
// first completion timestamp is kept, later ones are ignored.
func (r *ProgressTracker) MarkCompleted(ctx context.Context, completion *domain.LessonCompletion) error {
	setKey := fmt.Sprintf("%s%s:%s", completionKeyPrefix, completion.UserID, completion.CourseID)
	if err := r.redisClient.SAdd(ctx, setKey, completion.LessonID).Err(); err != nil {
		r.logger.Error("Failed to record lesson completion",
			"userId", completion.UserID, "lessonId", completion.LessonID, "error", err)
		return fmt.Errorf("failed to record lesson completion: %w", err)
	}

	tsKey := fmt.Sprintf("%s%s:%s:%s", completedAtPrefix, completion.UserID, completion.CourseID, completion.LessonID)
	if err := r.redisClient.SetNX(ctx, tsKey, completion.CompletedAt.Format(time.RFC3339), 0).Err(); err != nil {
		r.logger.Error("Failed to record completion timestamp",
			"userId", completion.UserID, "lessonId", completion.LessonID, "error", err)
		return fmt.Errorf("failed to record completion timestamp: %w", err)
	}

	// The cached percentage is stale now.
	percentKey := fmt.Sprintf("%s%s:%s", percentKeyPrefix, completion.UserID, completion.CourseID)
	if err := r.redisClient.Del(ctx, percentKey).Err(); err != nil {
		r.logger.Warn("Failed to invalidate cached progress", "key", percentKey, "error", err)
	}

	return nil
}

// CompletionPercent returns the user's completion percentage for a course,
// reading through a short-lived cache.
func (r *ProgressTracker) CompletionPercent(ctx context.Context, userID, courseID string, totalLessons int) (float64, error) {
	if totalLessons <= 0 {
		return 0, nil
	}

	percentKey := fmt.Sprintf("%s%s:%s", percentKeyPrefix, userID, courseID)
	cached, err := r.redisClient.Get(ctx, percentKey).Result()
	if err == nil {
		percent, parseErr := strconv.ParseFloat(cached, 64)
		if parseErr == nil {
			return percent, nil
		}
		r.logger.Warn("Discarding unparseable cached progress", "key", percentKey, "value", cached)
	} else if err != redis.Nil {
		r.logger.Error("Failed to read cached progress", "key", percentKey, "error", err)
		return 0, fmt.Errorf("failed to read cached progress: %w", err)
	}

	setKey := fmt.Sprintf("%s%s:%s", completionKeyPrefix, userID, courseID)
	completed, err := r.redisClient.SCard(ctx, setKey).Result()
	if err != nil {
		r.logger.Error("Failed to count completed lessons", "key", setKey, "error", err)
		return 0, fmt.Errorf("failed to count completed lessons: %w", err)
	}

	percent := float64(completed) / float64(totalLessons) * 100
	if percent > 100 {
		percent = 100
	}

	if err := r.redisClient.Set(ctx, percentKey, strconv.FormatFloat(percent, 'f', -1, 64), percentExpiration).Err(); err != nil {
		r.logger.Warn("Failed to cache progress", "key", percentKey, "error", err)
	}

	return percent, nil
}
