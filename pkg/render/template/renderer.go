package template

import (
	"io"
	"strings"
)

// TemplateRenderer mirrors the github.com/goliatone/go-template engine
// contract. Render dispatches between named fragments and inline template
// content; RenderTemplate always resolves a name against the engine's
// loader; RenderString always evaluates inline content.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

// IsTemplateContent reports whether a resolve argument is inline template
// content rather than a fragment name. Anything containing tag or variable
// delimiters is treated as content.
func IsTemplateContent(s string) bool {
	return strings.Contains(s, "{{") || strings.Contains(s, "{%")
}
