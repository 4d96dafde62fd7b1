package fragment

import "fmt"

// MissingFragmentError reports a fragment name absent from the source it was
// resolved against. Not retried, not recovered internally.
type MissingFragmentError struct {
	Name string
}

func (e *MissingFragmentError) Error() string {
	return fmt.Sprintf("fragment: fragment %q not found", e.Name)
}
