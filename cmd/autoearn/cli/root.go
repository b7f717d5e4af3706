package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/autoearnpro/autoearnpro/internal/mission"
	"github.com/autoearnpro/autoearnpro/internal/observe"
	"github.com/autoearnpro/autoearnpro/internal/ui"
	"github.com/autoearnpro/autoearnpro/internal/ui/tui"
)

var (
	missionPath string
	verbose     bool
	ciMode      bool
	interactive bool
	cycles      int
	seed        int64
	target      float64
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "autoearn",
	Short: "Autonomous Earning Campaign Runtime",
	Long: `AutoEarnPro runs simulated earning campaigns across a fleet of engines,
learning which engines perform best and enforcing policy limits on every cycle.`,
}

var runCmd = &cobra.Command{
	Use:   "run [mission-file]",
	Short: "Execute an earning campaign",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			missionPath = args[0]
		}
		runCampaign()
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	runCmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: JSON output, non-interactive")
	runCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Start interactive TUI")
	runCmd.Flags().IntVarP(&cycles, "cycles", "c", 0, "Override mission cycle count")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for the engine fleet (0 = clock)")
	runCmd.Flags().Float64VarP(&target, "target", "t", 0, "Override mission earnings target")
}

func runCampaign() {
	var obs *observe.Observer
	if ciMode {
		obs = observe.NewJSON(os.Stdout, verbose)
	} else {
		obs = observe.New(os.Stdout, verbose)
	}
	defer obs.Close()

	storeLayer := getStore()
	defer storeLayer.Close()

	// Resolve the mission
	spec := mission.Default()
	if missionPath != "" {
		loaded, err := mission.New().LoadSpec(missionPath)
		if err != nil {
			obs.Log().Fatal().Err(err).Msg("Failed to load mission")
		}
		spec = *loaded
	}
	if cycles > 0 {
		spec.Cycles = cycles
	}
	if target > 0 {
		spec.TargetEarnings = target
	}

	var u ui.UI
	if interactive && !ciMode {
		model := tui.NewModel("AutoEarnPro campaign", spec.Cycles)
		program := tea.NewProgram(model)
		u = tui.NewTUI(program)

		runErr := make(chan error, 1)
		go func() {
			runner := NewRunner(obs, storeLayer, spec, seed, u)
			runErr <- runner.Run(context.Background())
			program.Quit()
		}()

		if _, err := program.Run(); err != nil {
			fmt.Printf("Alas, there's been an error: %v", err)
			os.Exit(1)
		}
		if err := <-runErr; err != nil {
			os.Exit(1)
		}
	} else {
		runner := NewRunner(obs, storeLayer, spec, seed, nil)
		if err := runner.Run(context.Background()); err != nil {
			os.Exit(1)
		}
	}
}
