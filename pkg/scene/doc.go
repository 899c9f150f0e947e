// Package scene builds diagrams from declarative scene files.
//
// A scene names shapes, groups them, defines colors and lists the layout
// operations to apply, in order. It is the file format consumed by the
// tikzlayout CLI and the render service:
//
//	[colors]
//	accent = [31, 119, 180]
//
//	[[shapes]]
//	id = "a"
//	kind = "rectangle"
//	at = [0, 0]
//	width = 2
//	height = 1
//	style = "fill=accent"
//
//	[[shapes]]
//	id = "b"
//	kind = "circle"
//	radius = 0.5
//
//	[[ops]]
//	op = "distribute"
//	targets = ["a", "b"]
//	axis = "horizontal"
//	spacing = 0.5
//
// JSON scenes use the same field names.
//
// # Building
//
// [Build] turns a [Scene] into a [Diagram]: it validates identifiers,
// constructs every shape, assembles groups into trees and applies the
// operations in order using the layout package. Every problem with the
// scene itself (duplicate or unknown ids, a shape in two groups, group
// cycles, missing parameters) is reported as INVALID_SCENE. Failures inside
// the layout engine keep their own codes (for example EMPTY_COMPOSITE) and
// are wrapped with the index and name of the failing operation.
//
// # Draw Order
//
// The diagram root lists the ids in draw (when given) or every top-level
// shape and group in declaration order, shapes first. Shapes created by
// frame and connect operations are appended after them.
package scene
