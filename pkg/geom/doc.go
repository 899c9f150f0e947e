// Package geom provides the coordinate algebra used by the layout engine.
//
// All values are immutable: every operation returns a fresh [Point],
// [Vector] or [BBox]. Coordinates are in centimetres on a y-up canvas and
// angles are in degrees, counter-clockwise for positive values.
//
// # Core Types
//
//   - [Point]: a position (x, y)
//   - [Vector]: an ordered pair of points; deltas, length and angle are derived
//   - [BBox]: an axis-aligned box stored as (top-left, bottom-right)
//   - [Anchor]: a named reference point of a box (corners, edge centers, center)
//
// # Degenerate Geometry
//
// [Vector.Angle] is total: a zero-length vector has angle 0. Callers that
// need to detect the degenerate case use [Vector.AngleChecked], which
// returns a DEGENERATE_GEOMETRY error instead. Line intersections
// ([OnLineAtX], [OnLineAtY]) and axis calibration ([AxisToCanvas]) also
// report DEGENERATE_GEOMETRY rather than producing NaN or Inf.
package geom
