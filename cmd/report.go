package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/crashlens/app"
	"github.com/kilianp07/crashlens/core/model"
	coremon "github.com/kilianp07/crashlens/core/monitoring"
	"github.com/kilianp07/crashlens/core/report"
	"github.com/kilianp07/crashlens/infra/logger"
	"github.com/kilianp07/crashlens/pkg/export"
)

var reportOpts struct {
	format      string
	out         string
	placeholder bool
}

var reportCmd = &cobra.Command{
	Use:   "report <form.yaml>",
	Short: "Analyze an accident form and render the report",
	Args:  cobra.ExactArgs(1),
	RunE:  renderReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringVarP(&reportOpts.format, "format", "f", export.FormatJSON, "output format: json, text or html")
	f.StringVarP(&reportOpts.out, "out", "o", "", "output file (stdout when empty)")
	f.BoolVar(&reportOpts.placeholder, "placeholder", false, "skip analysis and render the placeholder distribution")
	rootCmd.AddCommand(reportCmd)
}

func renderReport(cmd *cobra.Command, args []string) error {
	form, err := report.LoadForm(args[0])
	if err != nil {
		return err
	}
	return withService(func(svc *app.Service) error {
		sess := svc.NewSession()
		if err := sess.LoadScene(form.Scene); err != nil {
			return fmt.Errorf("scene: %w", err)
		}
		if !reportOpts.placeholder {
			if _, err := sess.Analyze(form); err != nil {
				return err
			}
		}
		rep, err := sess.Current(form)
		if err != nil {
			return err
		}
		writeReport(cmd.OutOrStdout(), rep)
		return nil
	})
}

// writeReport renders rep to the configured destination. Rendering failures
// are reported and swallowed; the analysis itself already succeeded.
func writeReport(stdout io.Writer, rep model.Report) {
	log := logger.New("report")
	var buf bytes.Buffer
	if err := export.Write(&buf, reportOpts.format, rep); err != nil {
		log.Errorf("render report %s: %v", rep.ID, err)
		coremon.CaptureSoft(err, "render")
		return
	}
	if reportOpts.out == "" {
		if _, err := buf.WriteTo(stdout); err != nil {
			log.Errorf("write report: %v", err)
			coremon.CaptureSoft(err, "write")
		}
		return
	}
	if err := os.WriteFile(reportOpts.out, buf.Bytes(), 0o644); err != nil {
		log.Errorf("write report: %v", err)
		coremon.CaptureSoft(err, "write")
		return
	}
	log.Infof("report %s written to %s", rep.ID, reportOpts.out)
}
