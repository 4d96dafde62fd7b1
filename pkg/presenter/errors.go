package presenter

import "fmt"

// TemplateEvaluationError wraps a failure raised by the template engine or a
// fragment func during resolve. The underlying error is surfaced unmodified
// through Unwrap; nothing is recovered locally.
type TemplateEvaluationError struct {
	// Template is the fragment name, or "<inline>" for inline content.
	Template string
	Err      error
}

func (e *TemplateEvaluationError) Error() string {
	return fmt.Sprintf("presenter: evaluate template %q: %v", e.Template, e.Err)
}

func (e *TemplateEvaluationError) Unwrap() error {
	return e.Err
}
