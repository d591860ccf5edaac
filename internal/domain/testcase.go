package domain

// TestCase represents a test case for code execution
type TestCase struct {
	Input          string `bson:"input" json:"input"`
	ExpectedOutput string `bson:"expectedOutput" json:"expectedOutput"`
	IsHidden       bool   `bson:"isHidden" json:"isHidden"`
}
