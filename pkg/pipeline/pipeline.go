// Package pipeline turns scene files into rendered artifacts.
//
// This package implements the build → resize → render pipeline shared by the
// CLI and the preview server. By centralizing it, both entry points lay out
// and render a scene the same way and share one artifact cache.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: parse the TOML scene, create a [dom.Document] container at the
//     requested size and build the node tree inside it
//  2. Resize: optionally replay container resizes, each one a full
//     resize notification handled by the layout root
//  3. Render: produce the requested formats (SVG, HTML, PNG, PDF, JSON, and
//     the node tree as DOT or a Graphviz SVG diagram)
//
// [Runner.Execute] hashes the scene together with the render options and
// serves artifacts from the cache when every requested format is present.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    ScenePath: "hud.toml",
//	    Formats:   []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	l, err := pipeline.Build(ctx, opts)
//	l.Resize(1024, 768)
//	artifacts, err := pipeline.Render(ctx, l, opts)
//
// [dom.Document]: github.com/matzehuels/anchorui/pkg/surface/dom#Document
package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchorui/pkg/cache"
	"github.com/matzehuels/anchorui/pkg/errors"
	"github.com/matzehuels/anchorui/pkg/surface/dom"
	"github.com/matzehuels/anchorui/pkg/ui"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the container width when neither the options nor the
	// scene set one.
	DefaultWidth = 800.0

	// DefaultHeight is the container height when neither the options nor the
	// scene set one.
	DefaultHeight = 600.0

	// DefaultScale is the PNG scale factor.
	DefaultScale = 1.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"  // node tree as Graphviz DOT
	FormatTree = "tree" // node tree rendered to SVG by Graphviz
)

// Formats lists the supported output formats in display order.
var Formats = []string{FormatSVG, FormatHTML, FormatPNG, FormatPDF, FormatJSON, FormatDOT, FormatTree}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatHTML: true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatTree: true,
}

// Extension returns the file extension for a format.
func Extension(format string) string {
	if format == FormatTree {
		return "tree.svg"
	}
	return format
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Scene is the TOML scene. When empty, ScenePath is read.
	Scene []byte `json:"scene,omitempty"`
	// ScenePath locates the scene file; its directory also resolves
	// relative image sources.
	ScenePath string `json:"scene_path,omitempty"`
	// BaseDir overrides the directory image sources are resolved against.
	BaseDir string `json:"base_dir,omitempty"`

	// Container size. Zero values fall back to the scene, then the defaults.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Resizes are container sizes applied in order after the build.
	Resizes [][2]float64 `json:"resizes,omitempty"`

	// Debug turns on debug rendering for the whole tree.
	Debug bool `json:"debug,omitempty"`

	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`    // PNG scale
	Detailed bool     `json:"detailed,omitempty"` // detailed tree diagrams
	Refresh  bool     `json:"refresh,omitempty"`  // bypass cache reads

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	// Measurer overrides the text measurer of the document.
	Measurer dom.Measurer `json:"-"`
	// Fetcher downloads http(s) image sources.
	Fetcher dom.Fetcher `json:"-"`
	// NoImages disables image decoding.
	NoImages bool `json:"-"`
	// IDs allocates node ids. Nil uses the process-wide allocator.
	IDs *ui.IDAllocator `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// SceneHash is the content hash of the scene.
	SceneHash string

	// Layout is the built tree, nil when every artifact came from the cache.
	Layout *Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, html, png, pdf, json, dot, tree)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults loads the scene if needed, checks the options and
// applies defaults. Size defaults are applied by [Build] once the scene is
// parsed. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Scene) == 0 {
		if o.ScenePath == "" {
			return errors.New(errors.ErrCodeInvalidInput, "scene or scene path is required")
		}
		data, err := os.ReadFile(o.ScenePath)
		if err != nil {
			if os.IsNotExist(err) {
				return errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", o.ScenePath)
			}
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "read scene %s", o.ScenePath)
		}
		o.Scene = data
	}
	if o.BaseDir == "" && o.ScenePath != "" {
		o.BaseDir = filepath.Dir(o.ScenePath)
	}

	if o.Width != 0 || o.Height != 0 {
		if err := errors.ValidateSize(o.Width, o.Height); err != nil {
			return err
		}
	}
	for _, r := range o.Resizes {
		if err := errors.ValidateSize(r[0], r[1]); err != nil {
			return fmt.Errorf("resize step: %w", err)
		}
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:  format,
		Width:   o.Width,
		Height:  o.Height,
		Debug:   o.Debug,
		Resizes: o.Resizes,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

// DiagramKeyOpts returns cache key options for a tree diagram format.
func (o *Options) DiagramKeyOpts(format string) cache.DiagramKeyOpts {
	k := cache.DiagramKeyOpts{Format: format, Detailed: o.Detailed, Debug: o.Debug}
	if o.Detailed {
		k.Width, k.Height = o.finalSize()
	}
	return k
}

// finalSize is the requested container size after all resize steps. Zero
// means the scene's own size.
func (o *Options) finalSize() (float64, float64) {
	if n := len(o.Resizes); n > 0 {
		return o.Resizes[n-1][0], o.Resizes[n-1][1]
	}
	return o.Width, o.Height
}

// key returns the cache key of one format.
func (o *Options) key(k cache.Keyer, sceneHash, format string) string {
	if isDiagram(format) {
		return k.DiagramKey(sceneHash, o.DiagramKeyOpts(format))
	}
	return k.ArtifactKey(sceneHash, o.ArtifactKeyOpts(format))
}

// ttl returns the cache lifetime of one format.
func ttl(format string) time.Duration {
	if isDiagram(format) {
		return cache.TTLDiagram
	}
	return cache.TTLArtifact
}

// isDiagram reports whether format depends only on the node tree.
func isDiagram(format string) bool {
	return format == FormatDOT || format == FormatTree
}
