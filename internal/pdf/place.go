// Package pdf places a page raster on a single A4 page and writes the document.
package pdf

import "math"

// PageSpec 描述目标页面尺寸与四周留白（毫米）。
type PageSpec struct {
	WidthMM  float64
	HeightMM float64
	MarginMM float64
}

// A4 is portrait A4 with a 7.5mm margin.
func A4() PageSpec {
	return PageSpec{WidthMM: 210, HeightMM: 297, MarginMM: 7.5}
}

// Placement is where the raster lands on the page, in millimetres.
type Placement struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Scale  float64
}

// Place fits an imgW×imgH raster into the margin box keeping its aspect ratio, centered on both axes.
func Place(imgW, imgH int, spec PageSpec) Placement {
	contentW := spec.WidthMM - 2*spec.MarginMM
	contentH := spec.HeightMM - 2*spec.MarginMM
	if imgW <= 0 || imgH <= 0 || contentW <= 0 || contentH <= 0 {
		return Placement{X: spec.MarginMM, Y: spec.MarginMM}
	}
	scale := math.Min(contentW/float64(imgW), contentH/float64(imgH))
	w := math.Min(float64(imgW)*scale, contentW)
	h := math.Min(float64(imgH)*scale, contentH)
	return Placement{
		X:      spec.MarginMM + (contentW-w)/2,
		Y:      spec.MarginMM + (contentH-h)/2,
		Width:  w,
		Height: h,
		Scale:  scale,
	}
}
