// Package ui holds the few widgets the game draws: anchored text labels and
// a row of buttons. Layout and hit testing are pure; drawing lives in
// render.
package ui

import (
	"image/color"
)

const (
	ButtonWidth  float32 = 150
	ButtonHeight float32 = 65
	ButtonMargin float32 = 10
	ButtonBorder float32 = 5
	RowPadding   float32 = 10
)

var (
	White      = color.RGBA{255, 255, 255, 255}
	Black      = color.RGBA{0, 0, 0, 255}
	Grey       = color.RGBA{178, 178, 178, 255}
	ButtonText = color.RGBA{230, 230, 230, 255}

	NormalButton = color.RGBA{38, 38, 38, 255}
	HoverButton  = color.RGBA{64, 64, 64, 255}
	RightButton  = color.RGBA{35, 140, 50, 255}
	WrongButton  = color.RGBA{160, 35, 35, 255}

	LineColor  = color.RGBA{255, 128, 128, 200}
	FocusColor = color.RGBA{255, 220, 120, 230}
)

// Rect is a screen rectangle in pixels, origin top left.
type Rect struct {
	X, Y, W, H float32
}

func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Inset shrinks the rectangle by d on every side.
func (r Rect) Inset(d float32) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: max(r.W-2*d, 0), H: max(r.H-2*d, 0)}
}

func (r Rect) Centre() (x, y float32) {
	return r.X + r.W/2, r.Y + r.H/2
}

type Anchor uint8

const (
	TopLeft Anchor = iota
	TopCentre
	TopRight
	Centre
	BottomCentre
)

// Place returns the top-left corner of a w×h box anchored inside a view.
// Offsets push the box away from the anchored edges and, for centred axes,
// downward or rightward.
func Place(anchor Anchor, offsetX, offsetY, viewW, viewH, w, h float32) (x, y float32) {
	switch anchor {
	case TopLeft:
		return offsetX, offsetY
	case TopCentre:
		return (viewW-w)/2 + offsetX, offsetY
	case TopRight:
		return viewW - w - offsetX, offsetY
	case Centre:
		return (viewW-w)/2 + offsetX, (viewH-h)/2 + offsetY
	case BottomCentre:
		return (viewW-w)/2 + offsetX, viewH - h - offsetY
	}
	return offsetX, offsetY
}

// Label is a single line of text.
type Label struct {
	Text    string
	Size    float32
	Color   color.RGBA
	Anchor  Anchor
	OffsetX float32
	OffsetY float32
}

// Button is one answer button. Rect is refreshed by the layout system.
type Button struct {
	Label string
	Index int
	Rect  Rect

	Background color.RGBA
	Border     color.RGBA

	Hovered bool
	// Clicked is set for the one frame the button is pressed.
	Clicked bool
}

// ButtonRow lays out n buttons centred along the bottom edge.
func ButtonRow(n int, viewW, viewH float32) []Rect {
	cell := ButtonWidth + 2*ButtonMargin
	left := (viewW-cell*float32(n))/2 + ButtonMargin
	top := viewH - RowPadding - ButtonMargin - ButtonHeight

	rects := make([]Rect, n)
	for i := range rects {
		rects[i] = Rect{X: left + cell*float32(i), Y: top, W: ButtonWidth, H: ButtonHeight}
	}
	return rects
}

// Lighten mixes c toward white by amount in [0, 1].
func Lighten(c color.RGBA, amount float32) color.RGBA {
	mix := func(v uint8) uint8 {
		return uint8(float32(v) + (255-float32(v))*amount)
	}
	return color.RGBA{mix(c.R), mix(c.G), mix(c.B), c.A}
}
