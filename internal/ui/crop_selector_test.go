package ui

import (
	"image"
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/disintegration/imaging"

	"github.com/ytget/multitool/internal/model"
)

func TestFitImage(t *testing.T) {
	tests := []struct {
		name       string
		size       fyne.Size
		bounds     image.Rectangle
		wantOffset fyne.Position
		wantScale  float32
	}{
		{"wide image", fyne.NewSize(200, 100), image.Rect(0, 0, 400, 100), fyne.NewPos(0, 25), 0.5},
		{"tall image", fyne.NewSize(200, 100), image.Rect(0, 0, 100, 200), fyne.NewPos(75, 0), 0.5},
		{"exact", fyne.NewSize(300, 300), image.Rect(0, 0, 300, 300), fyne.NewPos(0, 0), 1},
		{"empty widget", fyne.NewSize(0, 0), image.Rect(0, 0, 10, 10), fyne.NewPos(0, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, scale := fitImage(tt.size, tt.bounds)
			if offset != tt.wantOffset || scale != tt.wantScale {
				t.Errorf("fitImage() = %v, %v; want %v, %v", offset, scale, tt.wantOffset, tt.wantScale)
			}
		})
	}
}

func TestSelectionToImage(t *testing.T) {
	size := fyne.NewSize(200, 100)
	bounds := image.Rect(0, 0, 400, 100)

	// Image occupies y 25..75 in the widget at half scale
	got := selectionToImage(fyne.NewPos(10, 30), fyne.NewPos(60, 70), size, bounds)
	want := model.CropRect{X: 20, Y: 10, W: 100, H: 80}
	if got != want {
		t.Errorf("selectionToImage() = %v, want %v", got, want)
	}

	// Dragging up-left gives the same rectangle
	if back := selectionToImage(fyne.NewPos(60, 70), fyne.NewPos(10, 30), size, bounds); back != want {
		t.Errorf("reversed drag = %v, want %v", back, want)
	}

	// Points in the letterbox are clamped onto the image
	clamped := selectionToImage(fyne.NewPos(-20, 0), fyne.NewPos(250, 100), size, bounds)
	if clamped != (model.CropRect{X: 0, Y: 0, W: 400, H: 100}) {
		t.Errorf("clamped selection = %v", clamped)
	}
}

func TestImageToWidget(t *testing.T) {
	size := fyne.NewSize(200, 100)
	bounds := image.Rect(0, 0, 400, 100)

	pos, sz := imageToWidget(model.CropRect{X: 20, Y: 10, W: 100, H: 80}, size, bounds)
	if pos != fyne.NewPos(10, 30) || sz != fyne.NewSize(50, 40) {
		t.Errorf("imageToWidget() = %v, %v", pos, sz)
	}
}

func TestCropSelector_DragAndReset(t *testing.T) {
	test.NewApp()

	img := imaging.New(400, 100, color.White)
	c := NewCropSelector(img)
	c.Resize(fyne.NewSize(200, 100))

	var reported []model.CropRect
	c.OnChanged = func(r model.CropRect) { reported = append(reported, r) }

	if !c.Selection().Empty() {
		t.Fatal("New selector should select the whole image")
	}

	c.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(30, 50)},
		Dragged:    fyne.NewDelta(20, 20),
	})
	c.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(60, 70)},
		Dragged:    fyne.NewDelta(30, 20),
	})
	c.DragEnd()

	want := model.CropRect{X: 20, Y: 10, W: 100, H: 80}
	if got := c.Selection(); got != want {
		t.Errorf("Selection() = %v, want %v", got, want)
	}
	if len(reported) != 1 || reported[0] != want {
		t.Errorf("OnChanged reported %v", reported)
	}

	c.Tapped(&fyne.PointEvent{})
	if !c.Selection().Empty() {
		t.Error("Tap should clear the selection")
	}
}
