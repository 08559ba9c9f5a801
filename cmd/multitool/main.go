// Package main is the headless command-line front end of the multi-utility
// app. Every subcommand runs one conversion through the jobs service.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ytget/multitool/internal/config"
	"github.com/ytget/multitool/internal/jobs"
	"github.com/ytget/multitool/internal/logger"
	"github.com/ytget/multitool/internal/model"
)

// version is set at build time via ldflags.
var version = "dev"

// errInterrupted is returned when the user stops a running conversion
var errInterrupted = errors.New("interrupted")

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "multitool",
		Short: "PDF, image and document conversions",
		Long: `multitool converts PDFs to images and back, turns Word documents into
PDF, compresses images, locks PDFs with a password and lays out printable
passport photo sheets.

Each action is a subcommand; results are written next to the input unless
--out is given, and the written paths are printed one per line.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env := config.LoadEnv()
			level, _ := cmd.Flags().GetString("log-level")
			if level == "" {
				level = env.LogLevel
			}
			return logger.Init(logger.Options{
				Level:   level,
				Pretty:  env.LogPretty,
				Console: true,
				File:    env.LogFile,
			})
		},
	}

	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error (default from MULTITOOL_LOG_LEVEL)")

	rootCmd.AddCommand(
		newPDF2ImgCmd(),
		newImg2PDFCmd(),
		newWord2PDFCmd(),
		newCompressCmd(),
		newLockCmd(),
		newPassportCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// runJob submits fn and waits for it; an interrupt stops the job. Written
// files are printed to the command output.
func runJob(cmd *cobra.Command, kind model.JobKind, inputs []string, fn jobs.WorkFunc) error {
	svc := jobs.NewService()
	svc.SetUpdateCallback(func(j *model.Job) {
		log.Debug().Str("job", j.ID).Str("status", j.Status.String()).Int("percent", j.Percent).Msg("job update")
	})

	job, err := svc.Submit(kind, inputs, fn)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = svc.Stop(job.ID)
	}()

	done, err := svc.Wait(context.Background(), job.ID)
	if err != nil {
		return err
	}

	switch done.Status {
	case model.JobStatusError:
		return errors.New(done.LastError)
	case model.JobStatusStopped:
		return errInterrupted
	}

	for _, out := range done.Outputs {
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
