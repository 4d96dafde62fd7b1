// Interactive scaffold for a new fragment template. Prompts for a fragment
// name and container hints, then writes a starter template under the chosen
// fragments directory.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

func main() {
	var answers struct {
		Dir       string
		Name      string
		Extension string
		Body      string
	}

	questions := []*survey.Question{
		{
			Name: "dir",
			Prompt: &survey.Input{
				Message: "Fragments directory:",
				Default: "fragments",
			},
			Validate: survey.Required,
		},
		{
			Name: "name",
			Prompt: &survey.Input{
				Message: "Fragment name (path-like, e.g. books/item):",
			},
			Validate: survey.Required,
		},
		{
			Name: "extension",
			Prompt: &survey.Select{
				Message: "Template extension:",
				Options: []string{".html", ".tmpl"},
				Default: ".html",
			},
		},
		{
			Name: "body",
			Prompt: &survey.Multiline{
				Message: "Initial template body (empty for a placeholder):",
			},
		},
	}

	if err := survey.Ask(questions, &answers); err != nil {
		fmt.Fprintf(os.Stderr, "Aborted: %v\n", err)
		os.Exit(1)
	}

	body := strings.TrimSpace(answers.Body)
	if body == "" {
		body = "<span>{{ title }}</span>"
	}

	path := filepath.Join(answers.Dir, filepath.FromSlash(answers.Name)+answers.Extension)
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "Refusing to overwrite existing fragment %s\n", path)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create directory: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, []byte(body+"\n"), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write fragment: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Fragment written to %s\n", path)
}
