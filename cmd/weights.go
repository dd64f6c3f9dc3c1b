package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/crashlens/core/scoring"
)

var weightsOpts struct {
	seed uint64
	out  string
}

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Write a seeded network weights file",
	Args:  cobra.NoArgs,
	RunE:  writeWeights,
}

func init() {
	weightsCmd.Flags().Uint64Var(&weightsOpts.seed, "seed", scoring.DefaultSeed, "weight initialization seed")
	weightsCmd.Flags().StringVarP(&weightsOpts.out, "out", "o", "", "output file (stdout when empty)")
	rootCmd.AddCommand(weightsCmd)
}

func writeWeights(cmd *cobra.Command, _ []string) error {
	var w io.Writer = cmd.OutOrStdout()
	if weightsOpts.out != "" {
		f, err := os.Create(weightsOpts.out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return scoring.WriteWeights(w, scoring.SeededWeights(weightsOpts.seed))
}
