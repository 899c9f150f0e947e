package geom

import "math"

// GoldenRatio is the default width-over-height ratio for golden rectangles.
const GoldenRatio = 1.61803398875

// cmPerPt is the length of one TeX point in centimetres.
const cmPerPt = 0.0352778

// PtToCm converts TeX points to centimetres.
func PtToCm(pt float64) float64 { return cmPerPt * pt }

// CmToPt converts centimetres to TeX points.
func CmToPt(cm float64) float64 { return cm / cmPerPt }

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return deg * math.Pi / 180 }

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 { return rad * 180 / math.Pi }

// NormalizeAngle maps deg into [0, 360).
func NormalizeAngle(deg float64) float64 {
	return deg - math.Floor(deg/360)*360
}
