package photo

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/multitool/internal/model"
	"github.com/ytget/multitool/internal/pdfconv"
)

func TestLayout_TilesStayOnCanvas(t *testing.T) {
	canvas := image.Rect(0, 0, model.SheetWidth, model.SheetHeight)
	for _, size := range model.PhotoSizes() {
		for count := model.MinPhotoCount; count <= model.MaxPhotoCount; count++ {
			sheets := Layout(count, size)
			total := 0
			for si, points := range sheets {
				require.NotEmpty(t, points, "size %s count %d sheet %d", size.Name, count, si)
				for _, p := range points {
					tile := image.Rectangle{Min: p, Max: p.Add(size.Point())}
					if !tile.In(canvas) {
						t.Fatalf("size %s count %d: tile %v outside canvas", size.Name, count, tile)
					}
				}
				total += len(points)
			}
			assert.Equal(t, count, total, "size %s", size.Name)
		}
	}
}

func TestLayout_TilesDoNotOverlap(t *testing.T) {
	for _, size := range model.PhotoSizes() {
		sheets := Layout(model.MaxPhotoCount, size)
		for _, points := range sheets {
			for i := range points {
				a := image.Rectangle{Min: points[i], Max: points[i].Add(size.Point())}
				for j := i + 1; j < len(points); j++ {
					b := image.Rectangle{Min: points[j], Max: points[j].Add(size.Point())}
					if a.Overlaps(b) {
						t.Fatalf("size %s: tiles %v and %v overlap", size.Name, a, b)
					}
				}
			}
		}
	}
}

func TestLayout_RowMajor(t *testing.T) {
	size := model.PhotoSize35x45
	sheets := Layout(6, size)
	require.Len(t, sheets, 1)

	want := []image.Point{
		{100, 100}, {563, 100}, {1026, 100}, {1489, 100}, {1952, 100},
		{100, 681},
	}
	assert.Equal(t, want, sheets[0])
}

func TestLayout_Capacity(t *testing.T) {
	assert.Equal(t, 25, SheetCapacity(model.PhotoSize35x45))
	assert.Equal(t, 80, SheetCapacity(model.PhotoSize20x25))

	sheets := Layout(model.MaxPhotoCount, model.PhotoSize35x45)
	require.Len(t, sheets, 2)
	assert.Len(t, sheets[0], 25)
	assert.Len(t, sheets[1], 25)

	assert.Len(t, Layout(model.MaxPhotoCount, model.PhotoSize20x25), 1)
}

func TestLayout_Invalid(t *testing.T) {
	assert.Nil(t, Layout(0, model.PhotoSize35x45))
	assert.Nil(t, Layout(3, model.PhotoSize{Name: "zero"}))
	assert.Nil(t, Layout(1, model.PhotoSize{Name: "huge", Width: 5000, Height: 100}))
}

func TestCrop(t *testing.T) {
	img := imaging.New(100, 80, color.White)

	tests := []struct {
		name string
		rect model.CropRect
		want image.Point
	}{
		{"empty keeps whole", model.CropRect{}, image.Pt(100, 80)},
		{"inside", model.CropRect{X: 10, Y: 10, W: 30, H: 40}, image.Pt(30, 40)},
		{"clamped", model.CropRect{X: 90, Y: 70, W: 50, H: 50}, image.Pt(10, 10)},
		{"outside keeps whole", model.CropRect{X: 200, Y: 200, W: 10, H: 10}, image.Pt(100, 80)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Crop(img, tt.rect)
			assert.Equal(t, tt.want, got.Bounds().Size())
		})
	}
}

func TestComposeSheets(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	src := imaging.New(50, 60, red)

	sheets := ComposeSheets(src, 2, model.PhotoSize20x25)
	require.Len(t, sheets, 1)

	sheet := sheets[0]
	assert.Equal(t, image.Pt(model.SheetWidth, model.SheetHeight), sheet.Bounds().Size())

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	// Margin stays white, tiles carry the photo
	assertNear(t, white, sheet.NRGBAAt(10, 10))
	assertNear(t, red, sheet.NRGBAAt(SheetMargin+100, SheetMargin+100))
	second := SheetMargin + model.PhotoSize20x25.Width + PhotoSpacing
	assertNear(t, red, sheet.NRGBAAt(second+10, SheetMargin+10))
	// Third slot was not filled
	third := second + model.PhotoSize20x25.Width + PhotoSpacing
	assertNear(t, white, sheet.NRGBAAt(third+10, SheetMargin+10))
}

func assertNear(t *testing.T, want, got color.NRGBA) {
	t.Helper()
	for _, c := range [][2]uint8{{want.R, got.R}, {want.G, got.G}, {want.B, got.B}, {want.A, got.A}} {
		assert.InDelta(t, float64(c[0]), float64(c[1]), 2, "want %v, got %v", want, got)
	}
}

func TestMakePassportSheets_JPEG(t *testing.T) {
	dir := t.TempDir()
	in := writeImage(t, dir, "face.jpg", 300, 400, color.NRGBA{R: 90, G: 140, B: 180, A: 255})
	out := filepath.Join(dir, "sheet.jpg")

	var calls int
	written, err := MakePassportSheets(context.Background(), PassportRequest{
		Input:    in,
		Output:   out,
		Crop:     model.CropRect{X: 20, Y: 20, W: 200, H: 260},
		Count:    30,
		Size:     model.PhotoSize35x45,
		Progress: func(done, total int) { calls++ },
	})
	require.NoError(t, err)

	assert.Equal(t, []string{out, filepath.Join(dir, "sheet-2.jpg")}, written)
	assert.Equal(t, 2, calls)
	for _, p := range written {
		img, err := imaging.Open(p)
		require.NoError(t, err)
		assert.Equal(t, image.Pt(model.SheetWidth, model.SheetHeight), img.Bounds().Size())
	}
}

func TestMakePassportSheets_PDF(t *testing.T) {
	dir := t.TempDir()
	in := writeImage(t, dir, "face.png", 300, 400, color.NRGBA{R: 90, G: 140, B: 180, A: 255})
	out := filepath.Join(dir, "sheet.pdf")

	written, err := MakePassportSheets(context.Background(), PassportRequest{
		Input:  in,
		Output: out,
		Count:  50,
		Size:   model.PhotoSize35x45,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{out}, written)

	pages, err := pdfconv.PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 2, pages)
}

func TestMakePassportSheets_Validation(t *testing.T) {
	dir := t.TempDir()
	in := writeImage(t, dir, "face.png", 30, 40, color.White)

	base := PassportRequest{Input: in, Output: filepath.Join(dir, "out.jpg"), Count: 4, Size: model.PhotoSize20x25}

	req := base
	req.Count = 0
	_, err := MakePassportSheets(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidCount)

	req = base
	req.Count = model.MaxPhotoCount + 1
	_, err = MakePassportSheets(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidCount)

	req = base
	req.Output = filepath.Join(dir, "out.png")
	_, err = MakePassportSheets(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnsupportedOutput)

	req = base
	req.Size = model.PhotoSize{}
	_, err = MakePassportSheets(context.Background(), req)
	assert.Error(t, err)

	_, statErr := os.Stat(base.Output)
	assert.True(t, os.IsNotExist(statErr))
}
