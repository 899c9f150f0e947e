// Package io reads scene files and writes artifacts and geometry reports.
//
// # Import
//
// Use [ImportScene] to read a scene from a file path, or [ReadScene] to read
// from any io.Reader:
//
//	s, err := io.ImportScene("figure.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The format follows the file extension: ".json" is JSON and everything
// else is TOML. [ReadScene] sniffs the content when no format is given.
// Unknown keys are rejected so that a misspelt field fails loudly instead of
// silently placing a shape at the origin.
//
// # Export
//
// [ExportFile] writes an artifact (a .tex document, a PDF, a report) by
// writing a temporary file in the destination directory and renaming it
// into place. A failed or interrupted run therefore never leaves a
// truncated output behind, and an existing file is only replaced once the
// new content is complete.
//
// # Reports
//
// A [Report] lists every leaf of a shape tree in draw order with its kind,
// style, path and bounding box, plus the aggregate box of the whole tree:
//
//	{
//	  "bbox": {"left": 0, "top": 1, "right": 4, "bottom": -1},
//	  "leaves": [
//	    {"path": [0], "id": "a", "kind": "circle", "bbox": {...}},
//	    ...
//	  ]
//	}
//
// Reports are what the "json" render format produces, and they are the
// easiest way to check a layout from a test or another tool without parsing
// TikZ.
package io
