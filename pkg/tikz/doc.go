// Package tikz serializes positioned shape trees into standalone TikZ
// documents and optionally compiles them to PDF.
//
// Serialization is a pure, order-preserving transform: every leaf becomes
// exactly one command, in draw order, with coordinates formatted as
// fixed-point floats (%f). No coordinate computation happens here beyond
// deriving the start point of arcs and the center of images.
//
// # Commands
//
// [Commands] returns the per-leaf lines:
//
//	\draw[s] (x, y) -- (x, y);                       open path
//	\draw[s] (x, y) -- (x, y) -- cycle;              closed path
//	\draw[s] (x, y) circle (r);                      circle
//	\draw[s] (x, y) ellipse (rx and ry);             ellipse
//	\draw[s] (x, y) .. controls (x, y) and (x, y) .. (x, y);
//	\draw[s] (x,y) arc (a:b:r);                      arc from its start point
//	\node[s] at (x,y) {text};
//	\node[inner sep=0pt, s] at (cx,cy) {\includegraphics[height=h, width=w]{f}};
//
// An empty group yields no commands, so an empty diagram still serializes
// to a well-formed document.
//
// # Documents
//
// [Document] wraps commands in the standalone preamble and postamble and
// emits one \definecolor line per named color before any drawing command.
// Colors are sorted by name so output is deterministic.
//
// # Compilation
//
// [CompilePDF] shells out to pdflatex in a temporary directory. It is the
// only part of this package that performs I/O beyond writing to the caller's
// writer. [CompileOptions.Restricted] turns off shell escape and confines
// the engine's file access for documents built from untrusted scenes.
package tikz
