package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kilianp07/crashlens/app"
	"github.com/kilianp07/crashlens/core/model"
	coremon "github.com/kilianp07/crashlens/core/monitoring"
	"github.com/kilianp07/crashlens/core/report"
)

var batchParallel int

var batchCmd = &cobra.Command{
	Use:   "batch <form.yaml>...",
	Short: "Score many accident forms concurrently",
	Args:  cobra.MinimumNArgs(1),
	RunE:  batch,
}

func init() {
	batchCmd.Flags().IntVarP(&batchParallel, "parallel", "p", runtime.NumCPU(), "maximum forms scored at once")
	rootCmd.AddCommand(batchCmd)
}

// batchLine is one output record. Failures are reported per file.
type batchLine struct {
	File    string        `json:"file"`
	Result  *model.Result `json:"result,omitempty"`
	Backend string        `json:"backend,omitempty"`
	Error   string        `json:"error,omitempty"`
}

func batch(cmd *cobra.Command, args []string) error {
	return withService(func(svc *app.Service) error {
		lines, err := scoreForms(cmd.Context(), svc, args, batchParallel)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		for _, l := range lines {
			if err := enc.Encode(l); err != nil {
				return err
			}
		}
		return nil
	})
}

// scoreForms analyzes each form in its own goroutine. Output order follows
// paths. A panic while scoring one form is captured and reported on its line.
func scoreForms(ctx context.Context, svc *app.Service, paths []string, parallel int) ([]batchLine, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if parallel < 1 {
		parallel = 1
	}
	lines := make([]batchLine, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, p := range paths {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					coremon.CapturePanic(r)
					lines[i] = batchLine{File: p, Error: fmt.Sprintf("panic: %v", r)}
				}
			}()
			if err := ctx.Err(); err != nil {
				return err
			}
			lines[i] = scoreForm(svc, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lines, nil
}

// scoreForm runs one form through its own session, so map paths fill in
// missing directions exactly as in the report command.
func scoreForm(svc *app.Service, path string) batchLine {
	line := batchLine{File: path}
	form, err := report.LoadForm(path)
	if err != nil {
		line.Error = err.Error()
		return line
	}
	sess := svc.NewSession()
	if err := sess.LoadScene(form.Scene); err != nil {
		line.Error = fmt.Sprintf("scene: %v", err)
		return line
	}
	rep, err := sess.Analyze(form)
	if err != nil {
		line.Error = err.Error()
		return line
	}
	line.Result = &model.Result{Distribution: rep.Analysis.Probs, Best: rep.Analysis.Best}
	line.Backend = rep.Analysis.Backend
	return line
}
