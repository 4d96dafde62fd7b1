// Package snapshot defines the rendered element snapshot handed from template
// evaluation to the reconciler: a container tag, an attribute set, and an
// opaque content blob. Snapshots are produced per render and consumed once.
package snapshot

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/net/html"

	"github.com/goliatone/go-viewkit/internal/markup"
)

var tagNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)

// Snapshot is the immutable result of one template pass. Content stays a raw
// markup string until the reconciler asks for nodes, so building a snapshot
// never fails.
type Snapshot struct {
	// Tag is the container tag identifier ("li", "div"). Required.
	Tag string
	// Attrs is the attribute set the container should carry, class and style
	// included.
	Attrs map[string]string
	// Content is the inner markup. Empty content is a valid terminal state
	// and clears the container.
	Content string
}

// New builds a snapshot from a tag and content, with no attributes.
func New(tag, content string) Snapshot {
	return Snapshot{Tag: tag, Content: content}
}

// WithAttrs returns a copy of the snapshot carrying the given attribute set.
func (s Snapshot) WithAttrs(attrs map[string]string) Snapshot {
	if len(attrs) == 0 {
		s.Attrs = nil
		return s
	}
	copied := make(map[string]string, len(attrs))
	for key, value := range attrs {
		copied[key] = value
	}
	s.Attrs = copied
	return s
}

// Validate enforces the caller contract before reconciliation. A snapshot
// without a usable tag identifier is a programming error upstream, so the
// failure is typed for fail-fast handling.
func (s Snapshot) Validate() error {
	err := validation.ValidateStruct(&s,
		validation.Field(&s.Tag,
			validation.Required.Error("tag identifier is required"),
			validation.Match(tagNamePattern).Error("tag identifier must be a valid element name"),
		),
	)
	if err != nil {
		return &InvalidSnapshotError{Reason: err}
	}
	return nil
}

// ContentNodes parses the content blob into markup nodes. Parsing is
// forgiving the way browsers are; an error here means the content could not
// be interpreted as a fragment at all.
func (s Snapshot) ContentNodes() ([]*html.Node, error) {
	if s.Content == "" {
		return nil, nil
	}
	nodes, err := markup.ParseFragment(s.Content)
	if err != nil {
		return nil, &InvalidSnapshotError{Reason: err}
	}
	return nodes, nil
}
