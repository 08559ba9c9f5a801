package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ytget/multitool/internal/config"
	"github.com/ytget/multitool/internal/filetype"
	"github.com/ytget/multitool/internal/jobs"
	"github.com/ytget/multitool/internal/model"
	"github.com/ytget/multitool/internal/platform"
)

// Default output name parts
const (
	LockedSuffix   = "_locked"
	DefaultPDFName = "images"
)

func newPDF2ImgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdf2img <file.pdf>",
		Short: "Render every page of a PDF to PNG",
		Long: `pdf2img rasterizes each page of a PDF at the given resolution and writes
<name>_page_<i>.png files, counting from 0, into the output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			outDir, _ := cmd.Flags().GetString("out")
			if outDir == "" {
				outDir = filepath.Dir(in)
			}
			dpi, _ := cmd.Flags().GetInt("dpi")
			return runJob(cmd, model.JobKindPDFToImages, args, jobs.PDFToImages(in, outDir, dpi))
		},
	}
	cmd.Flags().String("out", "", "output directory (default: next to the input)")
	cmd.Flags().Int("dpi", config.DefaultRenderDPI, "render resolution in dots per inch")
	return cmd
}

func newImg2PDFCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "img2pdf <image>...",
		Short: "Combine images into one PDF, one page per image",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = filepath.Join(filepath.Dir(args[0]), DefaultPDFName+filetype.PDFExtensions[0])
			}
			out = platform.EnsureExtension(out, filetype.PDFExtensions...)
			return runJob(cmd, model.JobKindImagesToPDF, args, jobs.ImagesToPDF(args, out))
		},
	}
	cmd.Flags().String("out", "", "output PDF (default: images.pdf next to the first image)")
	return cmd
}

func newLockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock <file.pdf>",
		Short: "Encrypt a PDF with a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			password, _ := cmd.Flags().GetString("password")
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = filepath.Join(filepath.Dir(in), platform.SuggestOutputName(in, LockedSuffix, filetype.PDFExtensions[0]))
			}
			out = platform.EnsureExtension(out, filetype.PDFExtensions...)
			return runJob(cmd, model.JobKindLockPDF, args, jobs.LockPDF(in, out, password))
		},
	}
	cmd.Flags().String("out", "", "output PDF (default: <name>_locked.pdf)")
	cmd.Flags().String("password", "", "password required to open the PDF")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
