package scene

import (
	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	"github.com/matzehuels/tikzlayout/pkg/shape"
	"github.com/matzehuels/tikzlayout/pkg/style"
	"github.com/matzehuels/tikzlayout/pkg/tikz"
)

// Diagram is a built scene: a positioned shape tree plus the document
// settings needed to serialize it.
type Diagram struct {
	Root      shape.Group
	Colors    map[string]style.Color
	Packages  []string
	Libraries []string

	nodes  map[string]shape.Node
	order  []string
	owners map[string]string
}

// Lookup returns the node declared with id.
func (d *Diagram) Lookup(id string) (shape.Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// IDs returns every declared id in declaration order.
func (d *Diagram) IDs() []string {
	return append([]string(nil), d.order...)
}

// LeafIDs maps every leaf declared with an id to that id.
func (d *Diagram) LeafIDs() map[shape.Leaf]string {
	out := make(map[shape.Leaf]string)
	for _, id := range d.order {
		if l, ok := d.nodes[id].(shape.Leaf); ok {
			out[l] = id
		}
	}
	return out
}

// Document returns the TikZ document for the diagram.
func (d *Diagram) Document() *tikz.Document {
	return tikz.NewDocument(d.Root,
		tikz.WithColors(d.Colors),
		tikz.WithPackages(d.Packages...),
		tikz.WithLibraries(d.Libraries...),
	)
}

// BuildOptions controls how file references in a scene are handled.
type BuildOptions struct {
	// BaseDir resolves relative image paths, usually the scene's directory.
	BaseDir string
	// RelativeOnly rejects absolute image paths and path traversal.
	RelativeOnly bool
	// ProbeImages reads image headers to derive missing widths. When false
	// a missing width defaults to the height.
	ProbeImages bool
}

// Build constructs the diagram described by s and applies its operations.
func Build(s *Scene, opts BuildOptions) (*Diagram, error) {
	d := &Diagram{
		Colors:    make(map[string]style.Color),
		Packages:  s.Packages,
		Libraries: s.Libraries,
		nodes:     make(map[string]shape.Node),
	}
	if err := d.addColors(s); err != nil {
		return nil, err
	}

	b := &shapeBuilder{baseDir: opts.BaseDir, relativeOnly: opts.RelativeOnly, probeImages: opts.ProbeImages}
	for i, sh := range s.Shapes {
		if err := d.declare(sh.ID); err != nil {
			return nil, err.WithOp("shape").WithPath([]int{i})
		}
		n, err := b.build(sh)
		if err != nil {
			return nil, errs.Wrap(codeOf(err), err, "shape %q", sh.ID).WithOp("shape")
		}
		d.nodes[sh.ID] = n
	}

	for _, g := range s.Groups {
		if err := d.declare(g.ID); err != nil {
			return nil, err.WithOp("group")
		}
	}
	if err := d.assembleGroups(s.Groups); err != nil {
		return nil, err
	}

	if err := d.assembleRoot(s); err != nil {
		return nil, err
	}

	for i, op := range s.Ops {
		if err := d.apply(op); err != nil {
			return nil, errs.Wrap(codeOf(err), err, "op %d (%s)", i, op.Op).WithOp("apply")
		}
	}
	return d, nil
}

func (d *Diagram) addColors(s *Scene) error {
	if s.Palette {
		for name, c := range style.Palette() {
			d.Colors[name] = c
		}
	}
	for name, rgb := range s.Colors {
		if err := errs.ValidateIdentifier(name); err != nil {
			return err
		}
		c, err := style.FromInts(name, rgb)
		if err != nil {
			return err
		}
		d.Colors[name] = c
	}
	return nil
}

func (d *Diagram) declare(id string) *errs.Error {
	if err := errs.ValidateIdentifier(id); err != nil {
		return err.(*errs.Error)
	}
	if _, dup := d.nodes[id]; dup {
		return invalid("duplicate id %q", id)
	}
	d.nodes[id] = nil
	d.order = append(d.order, id)
	return nil
}

// assembleGroups builds groups bottom-up so that nested groups are complete
// before they are copied into their parent.
func (d *Diagram) assembleGroups(groups []Group) error {
	byID := make(map[string]Group, len(groups))
	owner := make(map[string]string)
	for _, g := range groups {
		byID[g.ID] = g
		for _, m := range g.Members {
			if _, ok := d.nodes[m]; !ok {
				return invalid("group %q references unknown id %q", g.ID, m).WithOp("group")
			}
			if prev, taken := owner[m]; taken {
				return invalid("%q belongs to both %q and %q", m, prev, g.ID).WithOp("group")
			}
			owner[m] = g.ID
		}
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(groups))
	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case visiting:
			return invalid("group cycle through %q", id).WithOp("group")
		case done:
			return nil
		}
		state[id] = visiting
		g := byID[id]
		members := make(shape.Group, 0, len(g.Members))
		for _, m := range g.Members {
			if _, isGroup := byID[m]; isGroup {
				if err := visit(m); err != nil {
					return err
				}
			}
			members = append(members, d.nodes[m])
		}
		d.nodes[id] = members
		state[id] = done
		return nil
	}
	for _, g := range groups {
		if err := visit(g.ID); err != nil {
			return err
		}
	}
	d.owners = owner
	return nil
}

func (d *Diagram) assembleRoot(s *Scene) error {
	if len(s.Draw) > 0 {
		seen := make(map[string]bool, len(s.Draw))
		for _, id := range s.Draw {
			n, ok := d.nodes[id]
			if !ok {
				return invalid("draw references unknown id %q", id).WithOp("draw")
			}
			if seen[id] {
				return invalid("draw lists %q twice", id).WithOp("draw")
			}
			if g, inGroup := d.owners[id]; inGroup {
				return invalid("draw lists %q, which is already drawn by group %q", id, g).WithOp("draw")
			}
			seen[id] = true
			d.Root = append(d.Root, n)
		}
		return nil
	}
	for _, id := range d.order {
		if _, inGroup := d.owners[id]; !inGroup {
			d.Root = append(d.Root, d.nodes[id])
		}
	}
	return nil
}

func codeOf(err error) errs.Code {
	if c := errs.GetCode(err); c != "" {
		return c
	}
	return errs.ErrCodeInvalidScene
}
