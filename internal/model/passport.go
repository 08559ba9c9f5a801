package model

import (
	"fmt"
	"image"
)

// PhotoSize is a print size for passport photos
type PhotoSize struct {
	Name   string
	Width  int // pixels
	Height int // pixels
}

// Print sizes offered by the passport action, at 300 DPI
var (
	PhotoSize20x25 = PhotoSize{Name: "20x25mm", Width: 236, Height: 295}
	PhotoSize35x45 = PhotoSize{Name: "35x45mm", Width: 413, Height: 531}
)

// A4 sheet in pixels at 300 DPI
const (
	SheetWidth  = 2480
	SheetHeight = 3508
)

// Passport photo count limits
const (
	MinPhotoCount = 1
	MaxPhotoCount = 50
)

// PhotoSizes returns the fixed list of print sizes; the first entry is the default
func PhotoSizes() []PhotoSize {
	return []PhotoSize{PhotoSize20x25, PhotoSize35x45}
}

// PhotoSizeNames returns the names of PhotoSizes in order
func PhotoSizeNames() []string {
	sizes := PhotoSizes()
	names := make([]string, 0, len(sizes))
	for _, s := range sizes {
		names = append(names, s.Name)
	}
	return names
}

// PhotoSizeByName looks up a print size by its name
func PhotoSizeByName(name string) (PhotoSize, error) {
	for _, s := range PhotoSizes() {
		if s.Name == name {
			return s, nil
		}
	}
	return PhotoSize{}, fmt.Errorf("unknown photo size: %q", name)
}

// Point returns the size as an image.Point
func (s PhotoSize) Point() image.Point {
	return image.Pt(s.Width, s.Height)
}

// CropRect is a rectangle in source image pixels
type CropRect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle selects nothing
func (r CropRect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Rectangle converts to an image.Rectangle
func (r CropRect) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Clamp limits the rectangle to bounds; an empty result means nothing is selected
func (r CropRect) Clamp(bounds image.Rectangle) CropRect {
	c := r.Rectangle().Canon().Intersect(bounds)
	return CropRect{X: c.Min.X, Y: c.Min.Y, W: c.Dx(), H: c.Dy()}
}

// String formats the rectangle as x,y,w,h
func (r CropRect) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", r.X, r.Y, r.W, r.H)
}

// ParseCropRect parses the x,y,w,h form produced by String
func ParseCropRect(s string) (CropRect, error) {
	var r CropRect
	if _, err := fmt.Sscanf(s, "%d,%d,%d,%d", &r.X, &r.Y, &r.W, &r.H); err != nil {
		return CropRect{}, fmt.Errorf("invalid crop %q, expected x,y,w,h: %w", s, err)
	}
	if r.W < 0 || r.H < 0 {
		return CropRect{}, fmt.Errorf("invalid crop %q: negative size", s)
	}
	return r, nil
}
