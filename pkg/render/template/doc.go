// Package template defines the engine-agnostic rendering seam. Fragment
// sources and presenters depend on the TemplateRenderer interface only, so a
// different engine can be swapped in without touching the view pipeline.
package template
