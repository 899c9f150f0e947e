package io

import (
	"encoding/json"
	"io"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	"github.com/matzehuels/tikzlayout/pkg/geom"
	"github.com/matzehuels/tikzlayout/pkg/shape"
)

// Report describes the geometry of a shape tree.
type Report struct {
	BBox   Box          `json:"bbox"`
	Leaves []LeafReport `json:"leaves"`
}

// LeafReport describes one leaf.
type LeafReport struct {
	Path  []int  `json:"path"`
	ID    string `json:"id,omitempty"`
	Kind  string `json:"kind"`
	Style string `json:"style,omitempty"`
	BBox  Box    `json:"bbox"`
}

// Box is a bounding box by its edges.
type Box struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// BoxOf converts a geom.BBox.
func BoxOf(b geom.BBox) Box {
	return Box{Left: b.Left(), Top: b.Top(), Right: b.Right(), Bottom: b.Bottom()}
}

// NewReport walks root in draw order. ids names leaves that were declared
// with an id and may be nil.
func NewReport(root shape.Node, ids map[shape.Leaf]string) (*Report, error) {
	total, err := shape.BoundingBox(root)
	if err != nil {
		return nil, err
	}
	r := &Report{BBox: BoxOf(total)}
	err = shape.Walk(root, func(l shape.Leaf, path []int) error {
		r.Leaves = append(r.Leaves, LeafReport{
			Path:  append([]int{}, path...),
			ID:    ids[l],
			Kind:  l.Kind().String(),
			Style: l.Style(),
			BBox:  BoxOf(l.Bounds()),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// MarshalReport encodes r as indented JSON.
func MarshalReport(r *Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode report")
	}
	return append(data, '\n'), nil
}

// WriteReport writes r to w as indented JSON.
func WriteReport(w io.Writer, r *Report) error {
	data, err := MarshalReport(r)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadReport decodes a report written by [WriteReport].
func ReadReport(r io.Reader) (*Report, error) {
	var rep Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode report")
	}
	return &rep, nil
}
