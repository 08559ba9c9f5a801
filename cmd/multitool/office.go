package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ytget/multitool/internal/config"
	"github.com/ytget/multitool/internal/filetype"
	"github.com/ytget/multitool/internal/jobs"
	"github.com/ytget/multitool/internal/model"
	"github.com/ytget/multitool/internal/office"
	"github.com/ytget/multitool/internal/platform"
)

func newWord2PDFCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "word2pdf <document>",
		Short: "Convert a Word document to PDF with LibreOffice",
		Long: `word2pdf runs a headless LibreOffice with an isolated profile to convert
.docx, .doc, .odt or .rtf documents to PDF.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = filepath.Join(filepath.Dir(in), platform.SuggestOutputName(in, "", filetype.PDFExtensions[0]))
			}
			out = platform.EnsureExtension(out, filetype.PDFExtensions...)

			bin, _ := cmd.Flags().GetString("soffice")
			if bin == "" {
				bin = config.LoadEnv().OfficeBinary
			}
			timeout, _ := cmd.Flags().GetDuration("timeout")

			conv := office.NewConverter(bin, timeout)
			if !conv.Available() {
				return office.ErrOfficeNotFound
			}
			return runJob(cmd, model.JobKindWordToPDF, args, jobs.WordToPDF(conv, in, out))
		},
	}
	cmd.Flags().String("out", "", "output PDF (default: <name>.pdf next to the input)")
	cmd.Flags().String("soffice", "", "LibreOffice executable (default from MULTITOOL_SOFFICE, then soffice)")
	cmd.Flags().Duration("timeout", office.DefaultTimeout, "conversion timeout")
	return cmd
}
