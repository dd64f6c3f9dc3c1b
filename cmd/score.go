package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kilianp07/crashlens/app"
	"github.com/kilianp07/crashlens/core/analysis"
	"github.com/kilianp07/crashlens/pkg/export"
)

var scoreReq struct {
	speed1, speed2 string
	dir1, dir2     string
	hour           string
	intersection   string
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score the fault scenario distribution for two vehicles",
	Args:  cobra.NoArgs,
	RunE:  score,
}

func init() {
	f := scoreCmd.Flags()
	f.StringVar(&scoreReq.speed1, "speed1", "0", "speed of vehicle 1 in km/h")
	f.StringVar(&scoreReq.speed2, "speed2", "0", "speed of vehicle 2 in km/h")
	f.StringVar(&scoreReq.dir1, "dir1", "N", "direction of vehicle 1")
	f.StringVar(&scoreReq.dir2, "dir2", "N", "direction of vehicle 2")
	f.StringVar(&scoreReq.hour, "hour", "12", "hour of day (0-23)")
	f.StringVar(&scoreReq.intersection, "intersection", "Crossroad", "intersection type")
	rootCmd.AddCommand(scoreCmd)
}

func score(cmd *cobra.Command, _ []string) error {
	return withService(func(svc *app.Service) error {
		res, err := svc.Analyzer.ScoreScenario(analysis.Request{
			Speed1:       scoreReq.speed1,
			Speed2:       scoreReq.speed2,
			Dir1:         scoreReq.dir1,
			Dir2:         scoreReq.dir2,
			Hour:         scoreReq.hour,
			Intersection: scoreReq.intersection,
		})
		if err != nil {
			return err
		}
		return export.WriteResultJSON(cmd.OutOrStdout(), res)
	})
}
