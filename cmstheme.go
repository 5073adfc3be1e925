// Package cmstheme is the entry point of the theme: it assembles the
// component registry from the embedded catalog and exposes the theme's
// templates and static files.
package cmstheme

import (
	"fmt"

	"github.com/goliatone/go-cmstheme/pkg/catalog"
	"github.com/goliatone/go-cmstheme/pkg/components"
	"github.com/goliatone/go-cmstheme/pkg/mixins"
	"github.com/goliatone/go-cmstheme/pkg/model"
	"github.com/goliatone/go-cmstheme/pkg/widgets"
)

// Definition aliases model.Definition for callers of the root package.
type Definition = model.Definition

// Form aliases model.Form.
type Form = model.Form

// NewComponentRegistry loads the embedded catalog (applying choice set
// overrides), wires mixin field bundles and widget selection, and registers
// every component declaration.
func NewComponentRegistry(overrides model.ChoiceSets, decorators ...model.Decorator) (*components.Registry, error) {
	cat, err := catalog.Default(overrides)
	if err != nil {
		return nil, err
	}
	all := append([]model.Decorator{widgets.NewRegistry()}, decorators...)
	reg := components.NewRegistry(
		components.WithMixins(mixins.NewSet(cat.Choices)),
		components.WithDecorators(all...),
	)
	if err := cat.Register(reg); err != nil {
		return nil, fmt.Errorf("cmstheme: register catalog: %w", err)
	}
	return reg, nil
}
