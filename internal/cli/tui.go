package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	"github.com/matzehuels/tikzlayout/pkg/shape"
	"github.com/matzehuels/tikzlayout/pkg/tikz"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorValue)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorMuted)

	detailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)

// =============================================================================
// TreeModel - Interactive shape tree browser
// =============================================================================

// treeNode is one row of the flattened shape tree.
type treeNode struct {
	path  []int
	depth int
	node  shape.Node
	id    string
}

// TreeModel is the bubbletea model for browsing a laid-out shape tree.
// Groups can be folded; the detail pane shows the selected node's box and,
// for leaves, its TikZ command.
type TreeModel struct {
	Title  string
	Cursor int
	Height int
	Offset int

	root      shape.Node
	ids       map[shape.Leaf]string
	collapsed map[string]bool
	rows      []treeNode
}

// NewTreeModel creates a tree model. ids names declared leaves.
func NewTreeModel(title string, root shape.Node, ids map[shape.Leaf]string) TreeModel {
	m := TreeModel{
		Title:     title,
		Height:    15,
		root:      root,
		ids:       ids,
		collapsed: make(map[string]bool),
	}
	m.rows = m.flatten()
	return m
}

func (m TreeModel) Init() tea.Cmd {
	return nil
}

func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = len(m.rows) - 1
		case "enter", " ", "right", "left", "l", "h":
			m = m.toggle(msg.String())
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 14
		if m.Height < 5 {
			m.Height = 5
		}
	}
	m.scroll()
	return m, nil
}

// toggle folds or unfolds the group under the cursor.
func (m TreeModel) toggle(key string) TreeModel {
	if len(m.rows) == 0 {
		return m
	}
	row := m.rows[m.Cursor]
	if _, ok := row.node.(shape.Group); !ok {
		return m
	}
	k := errs.FormatPath(row.path)
	switch key {
	case "right", "l":
		m.collapsed[k] = false
	case "left", "h":
		m.collapsed[k] = true
	default:
		m.collapsed[k] = !m.collapsed[k]
	}
	m.rows = m.flatten()
	if m.Cursor >= len(m.rows) {
		m.Cursor = len(m.rows) - 1
	}
	return m
}

func (m *TreeModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// flatten lists the visible nodes in pre-order.
func (m TreeModel) flatten() []treeNode {
	var rows []treeNode
	var walk func(n shape.Node, path []int)
	walk = func(n shape.Node, path []int) {
		row := treeNode{path: append([]int(nil), path...), depth: len(path), node: n}
		if l, ok := n.(shape.Leaf); ok {
			row.id = m.ids[l]
		}
		rows = append(rows, row)
		g, ok := n.(shape.Group)
		if !ok || m.collapsed[errs.FormatPath(path)] {
			return
		}
		for i, child := range g {
			walk(child, append(path, i))
		}
	}
	if m.root != nil {
		walk(m.root, nil)
	}
	return rows
}

// Selected returns the node under the cursor.
func (m TreeModel) Selected() (shape.Node, []int, bool) {
	if len(m.rows) == 0 {
		return nil, nil, false
	}
	row := m.rows[m.Cursor]
	return row.node, row.path, true
}

func (m TreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ fold  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.Offset; i < end; i++ {
		line := m.label(m.rows[i])
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		} else if _, ok := m.rows[i].node.(shape.Group); ok {
			b.WriteString(listNormalStyle.Render("  " + line))
		} else {
			b.WriteString(listDimStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if len(m.rows) > 0 {
		b.WriteString("\n")
		b.WriteString(detailBoxStyle.Render(m.detail(m.rows[m.Cursor])))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))
	}
	return b.String()
}

func (m TreeModel) label(row treeNode) string {
	indent := strings.Repeat("  ", row.depth)
	switch n := row.node.(type) {
	case shape.Group:
		marker := "▾"
		if m.collapsed[errs.FormatPath(row.path)] {
			marker = "▸"
		}
		return fmt.Sprintf("%s%s group (%d)", indent, marker, len(n))
	case shape.Leaf:
		if row.id != "" {
			return fmt.Sprintf("%s• %s %s", indent, row.id, listDimStyle.Render(n.Kind().String()))
		}
		return fmt.Sprintf("%s• %s", indent, n.Kind())
	}
	return indent + "?"
}

func (m TreeModel) detail(row treeNode) string {
	var lines []string
	lines = append(lines, "path   "+errs.FormatPath(row.path))

	box, err := shape.BoundingBox(row.node)
	if err != nil {
		lines = append(lines, "bbox   "+StyleWarning.Render(errs.UserMessage(err)))
	} else {
		lines = append(lines,
			fmt.Sprintf("bbox   %s → %s", box.TopLeft, box.BottomRight),
			fmt.Sprintf("size   %s × %s", formatCoord(box.Width()), formatCoord(box.Height())))
	}

	if l, ok := row.node.(shape.Leaf); ok {
		if s := l.Style(); s != "" {
			lines = append(lines, "style  "+s)
		}
		if cmd, err := tikz.Command(l); err == nil {
			lines = append(lines, StyleDim.Render(cmd))
		}
	} else if g, ok := row.node.(shape.Group); ok {
		leaves, groups := shape.Count(g)
		lines = append(lines, fmt.Sprintf("holds  %d leaves, %d groups", leaves, groups-1))
	}
	return strings.Join(lines, "\n")
}
