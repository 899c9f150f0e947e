// Package shape defines the shape tree consumed by the layout engine and
// the TikZ serializer.
//
// A tree is made of [Node] values: a [Group] is an ordered, arbitrarily
// nested sequence of nodes, and every other node is a [Leaf] shape. The set
// of leaf types is closed (the interface is sealed), so every dispatch in
// this module has one case per variant plus a default that reports
// UNSUPPORTED_SHAPE for nil nodes.
//
// # Leaf Shapes
//
//   - [OpenPath], [ClosedPath]: polylines; rectangles, polygons and arrows are closed paths
//   - [Circle], [CircularArc]
//   - [Ellipse], [EllipticalArc]
//   - [Bezier]: cubic curve with two control points
//   - [Text]: a label anchored at a point
//   - [Image]: an external graphic placed by its top-left corner
//
// Every leaf carries an opaque style string that is preserved verbatim by
// every operation and only interpreted by the serializer's consumer.
//
// # Bounding Boxes
//
// [BoundingBox] aggregates child boxes recursively. Arcs use the box of the
// full circle or ellipse and Bezier curves use the box of their endpoints;
// both are deliberate approximations sufficient for layout spacing. Text
// contributes a zero-area box at its anchor. An empty group has no box and
// yields EMPTY_COMPOSITE along with the index path of the empty group.
//
// # Mutation
//
// Shapes are immutable except through [Translate] and [Scale], which mutate
// every leaf reachable from a node in place. Trees must not share nodes;
// use [Clone] to duplicate a subtree.
package shape
