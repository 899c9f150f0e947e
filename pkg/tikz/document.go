package tikz

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/matzehuels/tikzlayout/pkg/shape"
	"github.com/matzehuels/tikzlayout/pkg/style"
)

// Document is a standalone LaTeX document holding a single tikzpicture.
type Document struct {
	root      shape.Node
	colors    map[string]style.Color
	packages  []string
	libraries []string
}

// Option configures a Document.
type Option func(*Document)

// WithColors defines named RGB colors usable in style tokens.
func WithColors(colors map[string]style.Color) Option {
	return func(d *Document) {
		for name, c := range colors {
			d.colors[name] = c
		}
	}
}

// WithPackages adds \usepackage lines after the default packages.
func WithPackages(pkgs ...string) Option {
	return func(d *Document) { d.packages = appendUnique(d.packages, pkgs...) }
}

// WithLibraries adds \usetikzlibrary lines after arrows.meta.
func WithLibraries(libs ...string) Option {
	return func(d *Document) { d.libraries = appendUnique(d.libraries, libs...) }
}

// NewDocument returns a document drawing root. A nil root draws nothing.
func NewDocument(root shape.Node, opts ...Option) *Document {
	d := &Document{root: root, colors: make(map[string]style.Color)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultPackages = []string{"tikz", "amsmath, amsfonts"}

// Lines returns the document, one line per element, without newlines.
func (d *Document) Lines() ([]string, error) {
	var cmds []string
	if d.root != nil {
		var err error
		if cmds, err = Commands(d.root); err != nil {
			return nil, err
		}
	}

	lines := []string{
		`\documentclass{standalone}`,
		`\usepackage[T1]{fontenc}`,
	}
	for _, p := range defaultPackages {
		lines = append(lines, `\usepackage{`+p+`}`)
	}
	for _, p := range d.packages {
		if !slices.Contains(defaultPackages, p) && p != "fontenc" {
			lines = append(lines, `\usepackage{`+p+`}`)
		}
	}
	lines = append(lines, `\usetikzlibrary{arrows.meta}`)
	for _, l := range d.libraries {
		if l != "arrows.meta" {
			lines = append(lines, `\usetikzlibrary{`+l+`}`)
		}
	}
	lines = append(lines, `\begin{document}`, `\begin{tikzpicture}`)

	names := make([]string, 0, len(d.colors))
	for name := range d.colors {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		c := d.colors[name]
		lines = append(lines, fmt.Sprintf(`\definecolor{%s}{RGB}{%d,%d,%d}`, name, c.R, c.G, c.B))
	}

	lines = append(lines, cmds...)
	return append(lines, `\end{tikzpicture}`, `\end{document}`), nil
}

// WriteTo writes the document to w, every line terminated by "\n". Nothing
// is written if serialization fails.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	lines, err := d.Lines()
	if err != nil {
		return 0, err
	}
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	for _, l := range lines {
		bw.WriteString(l)
		bw.WriteByte('\n')
	}
	err = bw.Flush()
	return cw.n, err
}

// Bytes returns the full document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func appendUnique(dst []string, items ...string) []string {
	for _, it := range items {
		if it != "" && !slices.Contains(dst, it) {
			dst = append(dst, it)
		}
	}
	return dst
}
