package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-viewkit/internal/manifest"
	"github.com/goliatone/go-viewkit/pkg/fragment"
	"github.com/goliatone/go-viewkit/pkg/model"
	"github.com/goliatone/go-viewkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-viewkit/pkg/view"
)

func main() {
	manifestPath := flag.String("manifest", "viewkit.yaml", "view manifest path")
	viewName := flag.String("view", "", "view to render")
	dataPath := flag.String("data", "", "model data file (YAML or JSON), merged over view defaults")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	if *viewName == "" {
		log.Fatalf("missing required -view flag")
	}

	m, err := manifest.Load(*manifestPath)
	if err != nil {
		log.Fatalf("Failed to load manifest: %v", err)
	}

	def, err := m.View(*viewName)
	if err != nil {
		log.Fatalf("Failed to find view: %v", err)
	}

	source, err := buildFragmentSource(m, filepath.Dir(*manifestPath))
	if err != nil {
		log.Fatalf("Failed to load fragments: %v", err)
	}

	attrs, err := loadModelData(def, *dataPath)
	if err != nil {
		log.Fatalf("Failed to load model data: %v", err)
	}

	v, err := view.New(
		view.WithModel(model.NewMap(attrs)),
		view.WithContainer(def.Container),
		view.WithAttrs(def.Attrs),
		view.WithFragment(def.Fragment),
		view.WithFragmentSource(source),
	)
	if err != nil {
		log.Fatalf("Failed to build view: %v", err)
	}

	root, err := v.Render()
	if err != nil {
		log.Fatalf("Failed to render view: %v", err)
	}
	outputHTML, err := root.OuterHTML()
	if err != nil {
		log.Fatalf("Failed to serialise view: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(outputHTML+"\n"), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("View written to %s\n", *output)
	} else {
		fmt.Println(outputHTML)
	}
}

func buildFragmentSource(m *manifest.Manifest, baseDir string) (*fragment.EngineSource, error) {
	dir := m.Fragments.Dir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(baseDir, dir)
	}

	options := []gotemplate.Option{gotemplate.WithBaseDir(dir)}
	if m.Fragments.Extension != "" {
		options = append(options, gotemplate.WithExtension(m.Fragments.Extension))
	}

	engine, err := gotemplate.New(options...)
	if err != nil {
		return nil, err
	}
	return fragment.NewEngineSource(engine, m.Fragments.Names...)
}

// loadModelData merges a caller-supplied data file over the view's declared
// defaults. JSON files parse fine through the YAML decoder.
func loadModelData(def *manifest.ViewDef, dataPath string) (map[string]any, error) {
	attrs := make(map[string]any, len(def.Defaults))
	for key, value := range def.Defaults {
		attrs[key] = value
	}

	if dataPath == "" {
		return attrs, nil
	}

	raw, err := os.ReadFile(dataPath)
	if err != nil {
		return nil, err
	}
	var overlay map[string]any
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return nil, fmt.Errorf("decode %q: %w", dataPath, err)
	}
	for key, value := range overlay {
		attrs[key] = value
	}
	return attrs, nil
}
