package ui

import (
	"image"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/multitool/internal/model"
)

// Selection rectangle styling
const (
	CropStrokeWidth float32 = 2
	CropMinSize     float32 = 200
)

var cropFill = color.NRGBA{R: 199, G: 99, B: 255, A: 48}

// CropSelector shows an image and lets the user drag a rectangle over it.
// The selection is reported in source image pixels.
type CropSelector struct {
	widget.BaseWidget

	img      image.Image
	raster   *canvas.Image
	overlay  *canvas.Rectangle
	start    fyne.Position
	end      fyne.Position
	dragging bool
	selected bool

	OnChanged func(model.CropRect)
}

// NewCropSelector creates a selector for img
func NewCropSelector(img image.Image) *CropSelector {
	c := &CropSelector{img: img}
	c.raster = canvas.NewImageFromImage(img)
	c.raster.FillMode = canvas.ImageFillContain
	c.raster.ScaleMode = canvas.ImageScaleSmooth

	c.overlay = canvas.NewRectangle(cropFill)
	c.overlay.StrokeColor = PaletteHighlight
	c.overlay.StrokeWidth = CropStrokeWidth
	c.overlay.Hide()

	c.ExtendBaseWidget(c)
	return c
}

// Dragged extends the selection while the pointer moves
func (c *CropSelector) Dragged(ev *fyne.DragEvent) {
	if !c.dragging {
		c.dragging = true
		c.start = fyne.NewPos(ev.Position.X-ev.Dragged.DX, ev.Position.Y-ev.Dragged.DY)
	}
	c.end = ev.Position
	c.selected = true
	c.Refresh()
}

// DragEnd finishes the current selection
func (c *CropSelector) DragEnd() {
	c.dragging = false
	if c.OnChanged != nil {
		c.OnChanged(c.Selection())
	}
}

// Tapped clears the selection
func (c *CropSelector) Tapped(*fyne.PointEvent) {
	c.Reset()
}

// Reset clears the selection so the whole image is used
func (c *CropSelector) Reset() {
	c.selected = false
	c.dragging = false
	c.Refresh()
	if c.OnChanged != nil {
		c.OnChanged(model.CropRect{})
	}
}

// Selection returns the selected area in image pixels; empty means the whole image
func (c *CropSelector) Selection() model.CropRect {
	if !c.selected {
		return model.CropRect{}
	}
	return selectionToImage(c.start, c.end, c.Size(), c.img.Bounds())
}

// MinSize keeps the preview usable
func (c *CropSelector) MinSize() fyne.Size {
	return fyne.NewSize(CropMinSize, CropMinSize)
}

// CreateRenderer creates the widget renderer
func (c *CropSelector) CreateRenderer() fyne.WidgetRenderer {
	return &cropSelectorRenderer{selector: c}
}

type cropSelectorRenderer struct {
	selector *CropSelector
}

func (r *cropSelectorRenderer) Layout(size fyne.Size) {
	c := r.selector
	c.raster.Resize(size)
	c.raster.Move(fyne.NewPos(0, 0))

	if !c.selected {
		c.overlay.Hide()
		return
	}
	// Draw the clamped selection so the overlay matches what will be cropped
	sel := selectionToImage(c.start, c.end, size, c.img.Bounds())
	if sel.Empty() {
		c.overlay.Hide()
		return
	}
	pos, sz := imageToWidget(sel, size, c.img.Bounds())
	c.overlay.Move(pos)
	c.overlay.Resize(sz)
	c.overlay.Show()
}

func (r *cropSelectorRenderer) MinSize() fyne.Size {
	return r.selector.MinSize()
}

func (r *cropSelectorRenderer) Refresh() {
	r.Layout(r.selector.Size())
	canvas.Refresh(r.selector)
}

func (r *cropSelectorRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.selector.raster, r.selector.overlay}
}

func (r *cropSelectorRenderer) Destroy() {}

// fitImage returns where an image of bounds is drawn inside a widget of size
// with contain fitting: the top-left offset and the scale factor
func fitImage(size fyne.Size, bounds image.Rectangle) (fyne.Position, float32) {
	iw, ih := float32(bounds.Dx()), float32(bounds.Dy())
	if iw <= 0 || ih <= 0 || size.Width <= 0 || size.Height <= 0 {
		return fyne.NewPos(0, 0), 0
	}
	scale := float32(math.Min(float64(size.Width/iw), float64(size.Height/ih)))
	offset := fyne.NewPos((size.Width-iw*scale)/2, (size.Height-ih*scale)/2)
	return offset, scale
}

// selectionToImage maps two widget points to a rectangle in image pixels
func selectionToImage(a, b fyne.Position, size fyne.Size, bounds image.Rectangle) model.CropRect {
	offset, scale := fitImage(size, bounds)
	if scale == 0 {
		return model.CropRect{}
	}

	toImage := func(p fyne.Position) image.Point {
		x := (p.X - offset.X) / scale
		y := (p.Y - offset.Y) / scale
		return image.Pt(bounds.Min.X+int(math.Round(float64(x))), bounds.Min.Y+int(math.Round(float64(y))))
	}

	r := image.Rectangle{Min: toImage(a), Max: toImage(b)}.Canon()
	return model.CropRect{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}.Clamp(bounds)
}

// imageToWidget maps an image rectangle back to widget coordinates
func imageToWidget(r model.CropRect, size fyne.Size, bounds image.Rectangle) (fyne.Position, fyne.Size) {
	offset, scale := fitImage(size, bounds)
	pos := fyne.NewPos(offset.X+float32(r.X-bounds.Min.X)*scale, offset.Y+float32(r.Y-bounds.Min.Y)*scale)
	return pos, fyne.NewSize(float32(r.W)*scale, float32(r.H)*scale)
}
