package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tikzlayout/pkg/geom"
	tlio "github.com/matzehuels/tikzlayout/pkg/io"
	"github.com/matzehuels/tikzlayout/pkg/pipeline"
	"github.com/matzehuels/tikzlayout/pkg/scene"
	"github.com/matzehuels/tikzlayout/pkg/shape"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file (single format), base path, or "-" for stdout
	formats     []string // output formats: tex, pdf, json
	engine      string   // LaTeX binary for pdf
	noCache     bool     // bypass the artifact cache entirely
	refresh     bool     // re-render even when cached
	probeImages bool     // derive image widths from the files
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts
	var formatsStr string

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Render a scene file to TikZ, PDF or a geometry report",
		Long: `Render builds the scene, applies its layout operations in order and writes
one file per requested format next to the scene (or at --output).

Use "-" as the scene to read from stdin and as --output to write a single
format to stdout.`,
		Example: `  tikzlayout render figure.toml
  tikzlayout render figure.toml -f tex,pdf
  tikzlayout render figure.json -f json -o build/figure.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = c.Config.Render.Formats
			if cmd.Flags().Changed("format") {
				opts.formats = pipeline.ParseFormats(formatsStr)
			}
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if !cmd.Flags().Changed("engine") {
				opts.engine = c.Config.Render.Engine
			}
			if !cmd.Flags().Changed("probe-images") {
				opts.probeImages = c.Config.Render.ProbeImages
			}
			if opts.output == "-" && len(opts.formats) != 1 {
				return fmt.Errorf("--output - needs exactly one format, got %d", len(opts.formats))
			}
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): tex (default), pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.engine, "engine", "", "LaTeX engine for pdf output (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if outputs are cached")
	cmd.Flags().BoolVar(&opts.probeImages, "probe-images", false, "read image files to derive missing widths")

	return cmd
}

// runRender builds the scene and writes every requested format.
func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	data, err := readInput(cmd, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Formats:     opts.formats,
		Refresh:     opts.refresh,
		Engine:      opts.engine,
		ProbeImages: opts.probeImages,
		Logger:      logger,
	}
	if input != "-" {
		popts.SceneFormat = scene.FormatFromPath(input)
	}
	if popts.BaseDir, err = sceneDir(input); err != nil {
		return err
	}

	result, err := executeWithSpinner(ctx, runner, data, popts)
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err := cmd.OutOrStdout().Write(result.Artifacts[opts.formats[0]])
		return err
	}

	paths := outputPaths(input, opts.output, opts.formats)
	for _, format := range opts.formats {
		path := paths[format]
		if err := tlio.ExportFile(path, result.Artifacts[format]); err != nil {
			return err
		}
		logger.Debugf("Wrote %s: %d bytes", path, len(result.Artifacts[format]))
	}

	printSuccess("Rendered %s", StyleHighlight.Render(displayName(input)))
	for _, format := range opts.formats {
		printArtifact(format, paths[format], len(result.Artifacts[format]))
	}
	var extent *geom.BBox
	if box, err := shape.BoundingBox(result.Diagram.Root); err == nil {
		extent = &box
	}
	printSummary(extent, result.Stats.Leaves, result.Stats.Groups, result.CacheInfo.RenderHit)
	if input != "-" {
		printNextStep("Inspect the layout", fmt.Sprintf("%s inspect %s", appName, input))
	}
	return nil
}

// executeWithSpinner runs the pipeline, showing a spinner while a pdf is
// compiled.
func executeWithSpinner(ctx context.Context, runner *pipeline.Runner, data []byte, opts pipeline.Options) (*pipeline.Result, error) {
	var spinner *Spinner
	for _, f := range opts.Formats {
		if f == pipeline.FormatPDF {
			spinner = newSpinnerWithContext(ctx, "Compiling PDF...")
			spinner.Start()
			break
		}
	}

	result, err := runner.Execute(ctx, data, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return result, err
}

// outputPaths maps each format to its file. A single format with an explicit
// output is written exactly there; otherwise files share a base path.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	if input == "-" && output == "" {
		output = "scene"
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func displayName(input string) string {
	if input == "-" {
		return "stdin"
	}
	return input
}

// sceneDir returns the absolute directory that image paths in the scene
// are relative to: the scene file's directory, or the working directory
// for stdin.
func sceneDir(input string) (string, error) {
	if input == "-" {
		return os.Getwd()
	}
	return filepath.Abs(filepath.Dir(input))
}
