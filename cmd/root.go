package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/crashlens/app"
	"github.com/kilianp07/crashlens/config"
	coremon "github.com/kilianp07/crashlens/core/monitoring"
	"github.com/kilianp07/crashlens/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "crashlens",
	Short:        "Traffic accident reports with fault scenario estimation",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (defaults apply when empty)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// withService loads the configuration, builds the service and closes it once
// fn returns.
func withService(fn func(svc *app.Service) error) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	defer reportPanic()
	return fn(svc)
}

// reportPanic hands a panic to the monitor and re-panics. It must be deferred
// directly for recover to see the panic. The service close runs afterwards
// and flushes the event.
func reportPanic() {
	if r := recover(); r != nil {
		coremon.CapturePanic(r)
		panic(r)
	}
}
