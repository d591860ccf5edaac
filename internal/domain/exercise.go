package domain

// Constraints are the per-exercise resource limits declared by the author.
type Constraints struct {
	TimeLimitSeconds float64 `bson:"timeLimitSeconds" json:"timeLimitSeconds"`
	MemoryLimitMb    float64 `bson:"memoryLimitMb" json:"memoryLimitMb"`
}

const (
	DefaultTimeLimitSeconds = 2
	DefaultMemoryLimitMb    = 128
)

// CodingExercise is the exercise metadata owned by the course catalog.
// SolutionCode must never reach a learner-facing response.
type CodingExercise struct {
	ID               string
	Language         string
	Version          string
	ProblemStatement string
	StarterCode      string
	SolutionCode     string
	TestCases        []TestCase
	Constraints      Constraints
}

// Lesson is the catalog document a coding exercise hangs off of.
type Lesson struct {
	ID       string
	CourseID string
	Title    string
	Exercise *CodingExercise
}
