// Package manifest loads the YAML document the CLI uses to wire views
// without code: where fragment templates live, which names they answer to,
// and how each named view is containered and styled.
package manifest

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Manifest is the root document.
type Manifest struct {
	Fragments FragmentSet `yaml:"fragments"`
	Views     []ViewDef   `yaml:"views"`
}

// FragmentSet describes where fragment templates are loaded from and which
// names are declared.
type FragmentSet struct {
	// Dir is the template directory, relative to the manifest location or
	// absolute.
	Dir string `yaml:"dir"`
	// Extension overrides the engine's default template extension.
	Extension string `yaml:"extension"`
	// Names declares the fragment names served from Dir.
	Names []string `yaml:"names"`
}

// ViewDef declares a renderable view.
type ViewDef struct {
	Name      string            `yaml:"name"`
	Container string            `yaml:"container"`
	Fragment  string            `yaml:"fragment"`
	Attrs     map[string]string `yaml:"attrs"`
	// Defaults seed the model before caller-supplied data is merged on top.
	Defaults map[string]any `yaml:"defaults"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates manifest bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate enforces the manifest contract.
func (m *Manifest) Validate() error {
	err := validation.ValidateStruct(m,
		validation.Field(&m.Fragments),
		validation.Field(&m.Views, validation.Required.Error("at least one view is required")),
	)
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}

	seen := make(map[string]struct{}, len(m.Views))
	declared := make(map[string]struct{}, len(m.Fragments.Names))
	for _, name := range m.Fragments.Names {
		declared[name] = struct{}{}
	}

	for i := range m.Views {
		view := &m.Views[i]
		if err := view.Validate(); err != nil {
			return fmt.Errorf("manifest: view %q: %w", view.Name, err)
		}
		if _, dup := seen[view.Name]; dup {
			return fmt.Errorf("manifest: view %q declared twice", view.Name)
		}
		seen[view.Name] = struct{}{}
		if _, ok := declared[view.Fragment]; !ok {
			return fmt.Errorf("manifest: view %q references undeclared fragment %q", view.Name, view.Fragment)
		}
	}
	return nil
}

// Validate enforces the fragment set contract.
func (f FragmentSet) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Dir, validation.Required.Error("fragment dir is required")),
		validation.Field(&f.Names, validation.Required.Error("fragment names are required")),
	)
}

// Validate enforces the single view contract.
func (v ViewDef) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.Name, validation.Required),
		validation.Field(&v.Fragment, validation.Required),
	)
}

// View finds a view definition by name.
func (m *Manifest) View(name string) (*ViewDef, error) {
	for i := range m.Views {
		if m.Views[i].Name == name {
			return &m.Views[i], nil
		}
	}
	return nil, fmt.Errorf("manifest: view %q not found", name)
}
