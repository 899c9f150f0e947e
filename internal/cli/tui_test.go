package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/tikzlayout/pkg/geom"
	"github.com/matzehuels/tikzlayout/pkg/shape"
)

func testTree() (shape.Group, map[shape.Leaf]string) {
	sq := shape.Square(geom.Point{X: 0, Y: 0}, 1, "fill=red")
	c := shape.NewCircle(geom.Point{X: 3, Y: -0.5}, 0.5, "")
	label := shape.NewText(geom.Point{X: 1.5, Y: 1}, "x", "")
	root := shape.Group{shape.Group{sq, c}, label}
	return root, map[shape.Leaf]string{sq: "a", c: "b"}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m TreeModel, keys ...string) TreeModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(TreeModel)
	}
	return m
}

func TestTreeModelNavigation(t *testing.T) {
	root, ids := testTree()
	m := NewTreeModel("test", root, ids)

	if len(m.rows) != 5 {
		t.Fatalf("rows = %d, want 5 (root, group, two leaves, text)", len(m.rows))
	}

	tests := []struct {
		name     string
		keys     []string
		wantCur  int
		wantPath string
	}{
		{"start", nil, 0, "[]"},
		{"down twice", []string{"down", "down"}, 2, "[0 0]"},
		{"vim keys", []string{"j", "j", "j", "k"}, 2, "[0 0]"},
		{"clamped at end", []string{"G", "down", "down"}, 4, "[1]"},
		{"clamped at start", []string{"up", "up"}, 0, "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := update(m, tt.keys...)
			if got.Cursor != tt.wantCur {
				t.Errorf("Cursor = %d, want %d", got.Cursor, tt.wantCur)
			}
			_, path, ok := got.Selected()
			if !ok {
				t.Fatal("Selected() returned nothing")
			}
			if p := fmt.Sprint(path); p != tt.wantPath {
				t.Errorf("Selected() path = %s, want %s", p, tt.wantPath)
			}
		})
	}
}

func TestTreeModelFold(t *testing.T) {
	root, ids := testTree()
	m := NewTreeModel("test", root, ids)

	m = update(m, "down", "enter")
	if len(m.rows) != 3 {
		t.Fatalf("rows after fold = %d, want 3", len(m.rows))
	}
	if !strings.Contains(m.View(), "▸ group (2)") {
		t.Error("folded group should show a closed marker")
	}

	m = update(m, "l")
	if len(m.rows) != 5 {
		t.Errorf("rows after unfold = %d, want 5", len(m.rows))
	}

	// Folding on a leaf does nothing.
	m = update(m, "down", "enter")
	if len(m.rows) != 5 {
		t.Errorf("rows after leaf toggle = %d, want 5", len(m.rows))
	}
}

func TestTreeModelView(t *testing.T) {
	root, ids := testTree()
	m := update(NewTreeModel("figure.toml", root, ids), "down", "down")
	view := m.View()

	for _, want := range []string{"figure.toml", "a closed-path", "b circle", "fill=red", `\draw[fill=red]`, "[3/5]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestTreeModelQuit(t *testing.T) {
	root, ids := testTree()
	m := NewTreeModel("test", root, ids)
	for _, msg := range []tea.KeyMsg{key("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("Update(%s) cmd = nil, want tea.Quit", msg)
		}
	}
}

func TestTreeModelEmptyGroup(t *testing.T) {
	m := NewTreeModel("empty", shape.Group{}, nil)
	view := m.View()
	if !strings.Contains(view, "no children") {
		t.Errorf("View() should report the empty group:\n%s", view)
	}
}

func TestBBoxCommand(t *testing.T) {
	isolate(t)
	scenePath := writeScene(t, "figure.toml", testScene)

	out, err := runCLI(t, "bbox", scenePath)
	if err != nil {
		t.Fatalf("bbox error: %v", err)
	}
	for _, want := range []string{"Path", "caption", "closed-path", "total", "3.000"} {
		if !strings.Contains(out, want) {
			t.Errorf("bbox output missing %q:\n%s", want, out)
		}
	}

	out, err = runCLI(t, "bbox", scenePath, "--json", "--named")
	if err != nil {
		t.Fatalf("bbox --json error: %v", err)
	}
	var report struct {
		BBox struct {
			Left, Right float64
		} `json:"bbox"`
		Leaves []struct {
			ID string `json:"id"`
		} `json:"leaves"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("bbox --json output is not JSON: %v", err)
	}
	if len(report.Leaves) != 3 {
		t.Errorf("len(Leaves) = %d, want 3", len(report.Leaves))
	}
	if report.BBox.Left != 0 || report.BBox.Right != 3 {
		t.Errorf("bbox = [%v, %v], want [0, 3]", report.BBox.Left, report.BBox.Right)
	}
}

func TestInspectPlain(t *testing.T) {
	isolate(t)
	scenePath := writeScene(t, "figure.toml", testScene)

	out, err := runCLI(t, "inspect", scenePath, "--plain")
	if err != nil {
		t.Fatalf("inspect error: %v", err)
	}
	for _, want := range []string{"group root", "a closed-path", "b circle", "caption text"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}
}
