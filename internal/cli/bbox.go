package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	tlio "github.com/matzehuels/tikzlayout/pkg/io"
	"github.com/matzehuels/tikzlayout/pkg/pipeline"
	"github.com/matzehuels/tikzlayout/pkg/scene"
)

// bboxCommand creates the bbox command, which prints leaf boxes after layout.
func (c *CLI) bboxCommand() *cobra.Command {
	var asJSON, named bool

	cmd := &cobra.Command{
		Use:   "bbox [scene]",
		Short: "Print the bounding boxes of a laid-out scene",
		Long: `Bbox builds the scene and prints the box of every leaf in draw order,
followed by the aggregate box. Nothing is rendered or cached.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.buildReport(cmd, args[0])
			if err != nil {
				return err
			}
			if named {
				report = namedOnly(report)
			}
			if asJSON {
				return tlio.WriteReport(cmd.OutOrStdout(), report)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderReportTable(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&named, "named", false, "only list leaves declared with an id")

	return cmd
}

// buildDiagram decodes and builds a scene file without rendering.
func (c *CLI) buildDiagram(cmd *cobra.Command, input string) (*scene.Diagram, error) {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	data, err := readInput(cmd, input)
	if err != nil {
		return nil, err
	}
	opts := pipeline.Options{ProbeImages: c.Config.Render.ProbeImages, Logger: logger}
	if input != "-" {
		opts.SceneFormat = scene.FormatFromPath(input)
		opts.BaseDir = filepath.Dir(input)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	s, err := pipeline.Decode(data, opts)
	if err != nil {
		return nil, err
	}

	c.installHooks()
	runner := pipeline.NewRunner(nil, nil, logger)
	d, err := runner.Build(cmd.Context(), s, opts)
	if err != nil {
		return nil, err
	}
	prog.done("Built " + displayName(input))
	return d, nil
}

func (c *CLI) buildReport(cmd *cobra.Command, input string) (*tlio.Report, error) {
	d, err := c.buildDiagram(cmd, input)
	if err != nil {
		return nil, err
	}
	return tlio.NewReport(d.Root, d.LeafIDs())
}

func namedOnly(r *tlio.Report) *tlio.Report {
	out := &tlio.Report{BBox: r.BBox}
	for _, l := range r.Leaves {
		if l.ID != "" {
			out.Leaves = append(out.Leaves, l)
		}
	}
	return out
}

// renderReportTable formats a report as a bordered table with a total row.
func renderReportTable(r *tlio.Report) string {
	rows := make([][]string, 0, len(r.Leaves)+1)
	for _, l := range r.Leaves {
		id := l.ID
		if id == "" {
			id = "—"
		}
		rows = append(rows, append([]string{errs.FormatPath(l.Path), id, l.Kind}, boxCells(l.BBox)...))
	}
	rows = append(rows, append([]string{"", "total", ""}, boxCells(r.BBox)...))

	headerStyle := lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
	last := len(rows) - 1

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("Path", "ID", "Kind", "Left", "Top", "Right", "Bottom").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row == last:
				return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
			case col >= 3:
				return lipgloss.NewStyle().Foreground(colorValue).Align(lipgloss.Right)
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorMuted)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

func boxCells(b tlio.Box) []string {
	return []string{formatCoord(b.Left), formatCoord(b.Top), formatCoord(b.Right), formatCoord(b.Bottom)}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
