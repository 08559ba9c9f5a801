package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ytget/multitool/internal/filetype"
	"github.com/ytget/multitool/internal/jobs"
	"github.com/ytget/multitool/internal/model"
	"github.com/ytget/multitool/internal/photo"
	"github.com/ytget/multitool/internal/platform"
)

// Default output name parts
const (
	CompressedSuffix = "_compressed"
	PassportFileName = "passport_photos"
)

func newCompressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compress <image>",
		Short: "Re-encode an image as a small JPEG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = filepath.Join(filepath.Dir(in), platform.SuggestOutputName(in, CompressedSuffix, filetype.JPEGExtensions[0]))
			}
			out = platform.EnsureExtension(out, filetype.JPEGExtensions...)
			quality, _ := cmd.Flags().GetInt("quality")
			return runJob(cmd, model.JobKindCompressImage, args, jobs.CompressImage(in, out, quality))
		},
	}
	cmd.Flags().String("out", "", "output JPEG (default: <name>_compressed.jpg)")
	cmd.Flags().Int("quality", photo.DefaultQuality, "JPEG quality, 1 to 100")
	return cmd
}

func newPassportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passport <image>",
		Short: "Lay out passport photos on A4 sheets",
		Long: fmt.Sprintf(`passport crops the photo, resizes it to the print size and tiles the
requested number of copies onto A4 sheets at 300 dpi. A .jpg output gets one
file per sheet (name.jpg, name-2.jpg, ...); a .pdf output gets one page per
sheet.

Sizes: %s.`, strings.Join(model.PhotoSizeNames(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := passportRequest(cmd, args[0])
			if err != nil {
				return err
			}
			return runJob(cmd, model.JobKindPassportPhotos, args, jobs.PassportPhotos(req))
		},
	}
	cmd.Flags().String("out", "", "output .jpg or .pdf (default: passport_photos.jpg next to the input)")
	cmd.Flags().Int("count", 1, fmt.Sprintf("number of photos, %d to %d", model.MinPhotoCount, model.MaxPhotoCount))
	cmd.Flags().String("size", model.PhotoSizeNames()[0], "print size")
	cmd.Flags().String("crop", "", "crop rectangle in source pixels as x,y,w,h (default: whole image)")
	return cmd
}

// passportRequest validates the passport flags
func passportRequest(cmd *cobra.Command, in string) (photo.PassportRequest, error) {
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = filepath.Join(filepath.Dir(in), PassportFileName+filetype.JPEGExtensions[0])
	}

	count, _ := cmd.Flags().GetInt("count")
	if count < model.MinPhotoCount || count > model.MaxPhotoCount {
		return photo.PassportRequest{}, photo.ErrInvalidCount
	}

	sizeName, _ := cmd.Flags().GetString("size")
	size, err := model.PhotoSizeByName(sizeName)
	if err != nil {
		return photo.PassportRequest{}, err
	}

	var crop model.CropRect
	if s, _ := cmd.Flags().GetString("crop"); s != "" {
		if crop, err = model.ParseCropRect(s); err != nil {
			return photo.PassportRequest{}, err
		}
	}

	return photo.PassportRequest{
		Input:  in,
		Output: out,
		Crop:   crop,
		Count:  count,
		Size:   size,
	}, nil
}
