// Package layout positions shape trees relative to each other.
//
// Every operation here is built from two primitives: [shape.BoundingBox],
// used as an oracle for where a tree currently is, and [shape.Translate],
// which moves it. Trees are mutated in place and keep their structure,
// child order and styles.
//
// # Anchors
//
// Positions are expressed through the nine [geom.Anchor] points of a
// bounding box. [TranslateAnchorTo] moves a tree so that one of its anchors
// lands on a point; afterwards [AnchorPoint] returns exactly that point.
//
// # Relative Placement
//
// [Place] puts a tree next to a reference tree in one of four directions
// with one of three alignments. All twelve combinations reduce to a single
// rule: move the node's anchor onto the reference's anchor shifted by the
// spacing along the placement axis.
//
//	// B sits 0.5 above A, horizontally centered on it
//	layout.Place(b, a, layout.Above, 0.5, layout.Center)
//
// # Sequences
//
// [Distribute] lays out a list left-to-right or bottom-to-top with a fixed
// gap between neighbouring boxes. The first element never moves; each later
// element moves relative to its predecessor, so list order is layout order.
// [Align] snaps a shared edge or center of every element to a value.
//
// # Errors
//
// Operations fail only when a bounding box cannot be computed (an empty
// group, or a nil node). The returned error names the operation and, for
// list operations, the index of the failing element.
package layout
