package domain

// Runtime is one language/version pair registered with the execution service.
type Runtime struct {
	Language string   `json:"language"`
	Version  string   `json:"version"`
	Aliases  []string `json:"aliases"`
}

// AvailableRuntime is the authoring-UI view: one canonical language with its
// versions sorted newest-first.
type AvailableRuntime struct {
	Language string   `json:"language"`
	Versions []string `json:"versions"`
}
