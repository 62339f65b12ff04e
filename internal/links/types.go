package links

// ValidationResult describes the outcome of validating one link.
type ValidationResult struct {
	Link    string `json:"link" yaml:"link"`
	Status  int    `json:"status" yaml:"status"`
	Valid   bool   `json:"valid" yaml:"valid"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// HasMessage reports whether the result carries an explanatory message.
func (result ValidationResult) HasMessage() bool {
	return len(result.Message) > 0
}
