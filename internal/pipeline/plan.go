package pipeline

import (
	"io"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/export"
	"git.home.luguber.info/inful/docnav/internal/outline"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
)

// RenderFunc writes a built sidebar in one export format.
type RenderFunc func(w io.Writer, s *sidebar.Sidebar) error

// Target is one export destination.
type Target struct {
	Name   string
	Path   string
	Render RenderFunc
}

// Plan is an immutable description of one run derived from config.
type Plan struct {
	SpecFile    string
	Format      config.SpecFormat
	DefaultName string
	Options     []sidebar.Option
	Targets     []Target
}

// PlanBuilder constructs a Plan.
type PlanBuilder struct {
	plan Plan
}

// NewPlanBuilder creates a builder for the given specification file.
func NewPlanBuilder(specFile string) *PlanBuilder {
	return &PlanBuilder{plan: Plan{
		SpecFile:    specFile,
		Format:      config.FormatForPath(specFile),
		DefaultName: config.DefaultSidebarName,
	}}
}

// WithFormat overrides the format inferred from the file extension.
func (b *PlanBuilder) WithFormat(f config.SpecFormat) *PlanBuilder {
	if f != "" {
		b.plan.Format = f
	}
	return b
}

// WithDefaultName sets the sidebar name for outlines without a heading.
func (b *PlanBuilder) WithDefaultName(name string) *PlanBuilder {
	if name != "" {
		b.plan.DefaultName = name
	}
	return b
}

// WithOptions appends builder options.
func (b *PlanBuilder) WithOptions(opts ...sidebar.Option) *PlanBuilder {
	b.plan.Options = append(b.plan.Options, opts...)
	return b
}

// WithTarget adds an export target. Empty paths are ignored.
func (b *PlanBuilder) WithTarget(name, path string, render RenderFunc) *PlanBuilder {
	if path != "" {
		b.plan.Targets = append(b.plan.Targets, Target{Name: name, Path: path, Render: render})
	}
	return b
}

// WithExports adds every export target configured in e.
func (b *PlanBuilder) WithExports(e config.ExportConfig) *PlanBuilder {
	opts := export.HugoMenuOptions{MenuName: e.HugoMenuName}
	return b.
		WithTarget("hugo_menu", e.HugoMenu, func(w io.Writer, s *sidebar.Sidebar) error {
			return export.WriteHugoMenu(w, s, opts)
		}).
		WithTarget("json", e.JSON, export.WriteDocusaurusJSON).
		WithTarget("outline", e.Outline, outline.Render)
}

// Build returns the constructed Plan.
func (b *PlanBuilder) Build() *Plan {
	p := b.plan
	p.Options = append([]sidebar.Option(nil), b.plan.Options...)
	p.Targets = append([]Target(nil), b.plan.Targets...)
	return &p
}

// PlanFromConfig resolves a Plan from a loaded configuration.
func PlanFromConfig(cfg *config.Config) *Plan {
	b := NewPlanBuilder(cfg.Sidebars.File).
		WithFormat(cfg.Sidebars.ResolvedFormat()).
		WithDefaultName(cfg.Sidebars.DefaultName).
		WithExports(cfg.Export).
		WithOptions(BuildOptions(cfg.Sidebars)...)
	return b.Build()
}

// BuildOptions translates the configured build policy into builder options.
func BuildOptions(s config.SidebarsConfig) []sidebar.Option {
	var opts []sidebar.Option
	if s.DefaultCollapsed != nil {
		opts = append(opts, sidebar.WithDefaultCollapsed(*s.DefaultCollapsed))
	}
	if s.NormalizeLabels != nil {
		opts = append(opts, sidebar.WithLabelNormalization(*s.NormalizeLabels))
	}
	return opts
}
