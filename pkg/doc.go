// Package pkg provides the core libraries for tikzlayout diagram layout.
//
// # Overview
//
// tikzlayout builds diagrams from primitive shapes, moves them relative to
// each other by their bounding boxes, and writes the result as TikZ. The pkg
// directory is organized into three areas:
//
//  1. Geometry and shapes: [geom], [shape], [style]
//  2. Layout and output: [layout], [tikz]
//  3. Orchestration: [scene], [pipeline], [io], [cache]
//
// # Architecture
//
// The typical data flow:
//
//	Scene file (TOML/JSON)
//	         ↓
//	    [scene] package (decode, build shapes, apply ops)
//	         ↓
//	    [layout] package (place, align, distribute)
//	         ↓
//	    [tikz] package (commands, standalone document, pdflatex)
//	         ↓
//	    TeX/PDF/JSON output
//
// # Quick Start
//
// Place a circle to the right of a square and print the document:
//
//	sq := shape.Square(geom.Point{}, 1, "fill=red")
//	c := shape.NewCircle(geom.Point{}, 0.5, "")
//	_ = layout.PlaceRight(c, sq, 0.5)
//
//	doc := tikz.NewDocument(shape.Group{sq, c})
//	doc.WriteTo(os.Stdout)
//
// # Main Packages
//
// [geom] - Points, vectors, bounding boxes and the nine named anchors. All
// coordinates are y-up.
//
// [shape] - The shape tree. Leaves are paths, curves, text and images;
// groups are ordered lists of nodes. Every node reports its bounding box and
// can be translated in place.
//
// [layout] - Relative positioning: Place, Align, Distribute, Frame and the
// anchor-based translations.
//
// [tikz] - Serialization of leaves to TikZ commands and of a tree to a
// standalone LaTeX document, plus optional PDF compilation.
//
// [scene] - Declarative scene files and the builder that turns them into a
// shape tree.
//
// [pipeline] - Decode, build and render with content-addressed caching. Used
// by both the CLI and the HTTP service.
//
// [cache] - File, Redis and null artifact stores keyed by content hash.
package pkg
