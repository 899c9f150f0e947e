package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	"github.com/matzehuels/tikzlayout/pkg/shape"
)

// inspectCommand creates the inspect command, an interactive tree browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect [scene]",
		Short: "Browse the laid-out shape tree",
		Long: `Inspect builds the scene and opens an interactive browser over the shape
tree, showing each node's bounding box and each leaf's TikZ command.

With --plain the tree is printed once instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.buildDiagram(cmd, args[0])
			if err != nil {
				return err
			}
			m := NewTreeModel(displayName(args[0]), d.Root, d.LeafIDs())
			if plain {
				fmt.Fprint(cmd.OutOrStdout(), plainTree(m))
				return nil
			}

			p := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				if cmd.Context().Err() != nil {
					return cmd.Context().Err()
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the tree without the interactive browser")

	return cmd
}

// plainTree renders every row of the model with its box, unstyled.
func plainTree(m TreeModel) string {
	var b strings.Builder
	for _, row := range m.rows {
		indent := strings.Repeat("  ", row.depth)
		box, err := shape.BoundingBox(row.node)
		var extent string
		if err != nil {
			extent = "(" + errs.UserMessage(err) + ")"
		} else {
			extent = fmt.Sprintf("%s → %s", box.TopLeft, box.BottomRight)
		}
		switch n := row.node.(type) {
		case shape.Group:
			fmt.Fprintf(&b, "%sgroup %s (%d)  %s\n", indent, errs.FormatPath(row.path), len(n), extent)
		case shape.Leaf:
			name := n.Kind().String()
			if row.id != "" {
				name = row.id + " " + name
			}
			fmt.Fprintf(&b, "%s%s  %s\n", indent, name, extent)
		}
	}
	return b.String()
}
