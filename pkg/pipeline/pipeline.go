// Package pipeline runs the scene → layout → render pipeline shared by the
// CLI and the HTTP service.
//
// # Stages
//
//  1. Build: decode the scene, construct shapes and apply layout operations
//     (see [scene.Build]). Building is cheap and always runs, so invalid
//     scenes are reported even when their artifacts are cached.
//  2. Render: produce the requested formats from the built diagram.
//
// # Formats
//
//   - tex: the standalone LaTeX document
//   - pdf: the document compiled with pdflatex (or Options.Engine)
//   - json: a geometry report listing every leaf with its box
//
// Rendered artifacts are cached under the hash of the scene bytes plus the
// options that affect them, so re-running an unchanged scene skips the TeX
// engine entirely.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, sceneBytes, pipeline.Options{
//	    Formats: []string{"tex", "pdf"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pdf := result.Artifacts["pdf"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tikzlayout/pkg/cache"
	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	"github.com/matzehuels/tikzlayout/pkg/scene"
	"github.com/matzehuels/tikzlayout/pkg/tikz"
)

// Format constants for output formats.
const (
	FormatTeX  = "tex"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = FormatTeX

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatTeX:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentTypes maps formats to MIME types.
var ContentTypes = map[string]string{
	FormatTeX:  "application/x-tex",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	// Formats to render; defaults to tex.
	Formats []string `json:"formats,omitempty"`
	// Refresh ignores cached artifacts (they are still rewritten).
	Refresh bool `json:"refresh,omitempty"`
	// Engine is the LaTeX binary for pdf output.
	Engine string `json:"engine,omitempty"`
	// SceneFormat of the input; sniffed from the bytes when empty.
	SceneFormat scene.Format `json:"scene_format,omitempty"`

	// BaseDir resolves relative image paths, for size probing and for the
	// TeX engine's working directory.
	BaseDir string `json:"-"`
	// RelativeOnly rejects absolute image paths and traversal.
	RelativeOnly bool `json:"-"`
	// ProbeImages derives missing image widths from the files.
	ProbeImages bool `json:"-"`
	// Restricted compiles pdf output without shell escape and with TeX
	// file access confined to BaseDir (see [tikz.CompileOptions]).
	Restricted bool `json:"-"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the built scene.
	Diagram *scene.Diagram

	// SceneHash is the content hash of the scene bytes.
	SceneHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Shapes     int // declared shapes
	Leaves     int // leaves in the drawn tree
	Groups     int // groups in the drawn tree, including the root
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // every artifact came from the cache
	Hits      []string
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: tex, pdf, json)", format)
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

// ParseFormats splits a comma-separated list, dropping blanks and
// duplicates. An empty list yields the default format.
func ParseFormats(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	if len(out) == 0 {
		return []string{DefaultFormat}
	}
	return out
}

// ValidateAndSetDefaults applies defaults and validates the formats.
// Calling it more than once is harmless.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Engine == "" {
		o.Engine = tikz.DefaultEngine
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// BuildOptions returns the scene build options.
func (o *Options) BuildOptions() scene.BuildOptions {
	return scene.BuildOptions{
		BaseDir:      o.BaseDir,
		RelativeOnly: o.RelativeOnly,
		ProbeImages:  o.ProbeImages,
	}
}

// ArtifactKeyOpts returns cache key options for one format. The pdf
// depends on the engine, its sandbox and the directory images are read
// from; other formats see BaseDir only through image probing.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPDF {
		k.Engine = o.Engine
		k.BaseDir = o.BaseDir
		k.Restricted = o.Restricted
	}
	if o.ProbeImages {
		k.BaseDir = o.BaseDir
	}
	return k
}

// CompileOptions returns the pdf compile options.
func (o *Options) CompileOptions() tikz.CompileOptions {
	return tikz.CompileOptions{
		Engine:     o.Engine,
		WorkDir:    o.BaseDir,
		Restricted: o.Restricted,
	}
}
