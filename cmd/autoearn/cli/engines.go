package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/autoearnpro/autoearnpro/internal/integration"
)

var probeLimit int

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "Inspect the engine fleet",
}

var enginesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available engines",
	Run: func(cmd *cobra.Command, args []string) {
		sys := integration.DefaultFleet(0)
		for _, name := range sys.List() {
			e, err := sys.Get(name)
			if err != nil {
				continue
			}
			fmt.Printf("%-24s %s\n", name, e.Category())
		}
	},
}

var enginesProbeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Run one cycle of every engine and report projections",
	Run: func(cmd *cobra.Command, args []string) {
		sys := integration.DefaultFleet(seed)
		reports, err := sys.RunAll(context.Background(), "probe", probeLimit)
		if err != nil {
			fmt.Printf("Probe failed: %v\n", err)
			os.Exit(1)
		}

		var total float64
		for _, r := range reports {
			fmt.Printf("%-24s $%8.2f  %s\n", r.Engine, r.Projected(), r.Duration.Round(time.Millisecond))
			total += r.Projected()
		}
		fmt.Printf("%-24s $%8.2f\n", "total", total)
	},
}

func init() {
	RootCmd.AddCommand(enginesCmd)
	enginesCmd.AddCommand(enginesListCmd)
	enginesCmd.AddCommand(enginesProbeCmd)
	enginesProbeCmd.Flags().IntVar(&probeLimit, "limit", 4, "Max engines probed concurrently")
	enginesProbeCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for the engine fleet (0 = clock)")
}
