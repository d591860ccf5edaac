// package exercisecatalog contains the MongoDB implementation of the
// read-only lesson and exercise catalog.
package exercisecatalog

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gitlab.com/codelab-2025.net/internal/core/ports/primary"
	"gitlab.com/codelab-2025.net/internal/domain"
)

const lessonsCollection = "lessons"

// lessonDoc mirrors the lesson document shape authored by the course
// management service. This service only ever reads it.
type lessonDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	LessonID string             `bson:"lessonId"`
	CourseID string             `bson:"courseId"`
	Title    string             `bson:"title"`
	Exercise *exerciseDoc       `bson:"exercise,omitempty"`
}

type exerciseDoc struct {
	ExerciseID       string             `bson:"exerciseId"`
	Language         string             `bson:"language"`
	Version          string             `bson:"version"`
	ProblemStatement string             `bson:"problemStatement,omitempty"`
	StarterCode      string             `bson:"starterCode,omitempty"`
	SolutionCode     string             `bson:"solutionCode,omitempty"`
	TestCases        []domain.TestCase  `bson:"testCases"`
	Constraints      domain.Constraints `bson:"constraints"`
}

// ExerciseCatalog implements the ExerciseRepository interface with MongoDB
type ExerciseCatalog struct {
	lessons *mongo.Collection
	logger  primary.Logger
}

// NewExerciseCatalog creates a new MongoDB exercise catalog
func NewExerciseCatalog(db *mongo.Database, logger primary.Logger) *ExerciseCatalog {
	return &ExerciseCatalog{
		lessons: db.Collection(lessonsCollection),
		logger:  logger,
	}
}

// EnsureIndexes creates the lookup indexes this service depends on. Safe to
// call on every startup.
func (r *ExerciseCatalog) EnsureIndexes(ctx context.Context) error {
	_, err := r.lessons.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "lessonId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create lesson index: %w", err)
	}

	_, err = r.lessons.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "courseId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create course index: %w", err)
	}

	return nil
}

// GetLesson retrieves a lesson and its embedded exercise by lesson ID
func (r *ExerciseCatalog) GetLesson(ctx context.Context, lessonID string) (*domain.Lesson, error) {
	var doc lessonDoc
	err := r.lessons.FindOne(ctx, bson.M{"lessonId": lessonID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error("Failed to get lesson", "lessonId", lessonID, "error", err)
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	return doc.toDomain(), nil
}

// CountLessonsByCourse counts the lessons of a course
func (r *ExerciseCatalog) CountLessonsByCourse(ctx context.Context, courseID string) (int, error) {
	count, err := r.lessons.CountDocuments(ctx, bson.M{"courseId": courseID})
	if err != nil {
		r.logger.Error("Failed to count lessons", "courseId", courseID, "error", err)
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}

	return int(count), nil
}

func (d *lessonDoc) toDomain() *domain.Lesson {
	lesson := &domain.Lesson{
		ID:       d.LessonID,
		CourseID: d.CourseID,
		Title:    d.Title,
	}
	if d.Exercise != nil {
		lesson.Exercise = &domain.CodingExercise{
			ID:               d.Exercise.ExerciseID,
			Language:         d.Exercise.Language,
			Version:          d.Exercise.Version,
			ProblemStatement: d.Exercise.ProblemStatement,
			StarterCode:      d.Exercise.StarterCode,
			SolutionCode:     d.Exercise.SolutionCode,
			TestCases:        d.Exercise.TestCases,
			Constraints:      d.Exercise.Constraints,
		}
	}
	return lesson
}
