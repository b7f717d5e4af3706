package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage campaign defaults stored in ~/.autoearnpro",
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Store a configuration value",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key := strings.TrimSpace(args[0])
		if key == "" || strings.ContainsAny(key, " \t") {
			fmt.Println("Config keys must be non-empty and contain no whitespace.")
			os.Exit(1)
		}
		if strings.HasPrefix(key, "secret.") {
			fmt.Println("Platform tokens belong in 'autoearn secrets set', not config.")
			os.Exit(1)
		}

		s := getStore()
		defer s.Close()

		if err := s.SetConfig(key, args[1]); err != nil {
			fmt.Printf("Failed to set config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s = %s\n", key, args[1])
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show a configuration value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()

		val, err := s.GetConfig(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if val == "" {
			fmt.Printf("%s is not set.\n", args[0])
		} else {
			fmt.Println(val)
		}
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
}
