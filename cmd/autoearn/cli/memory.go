package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/autoearnpro/autoearnpro/internal/memory"
	"github.com/autoearnpro/autoearnpro/internal/store"
)

var searchLimit int

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Inspect archived campaign memory",
}

var memorySearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search archived memories by relevance",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()

		mem := loadMemory(s)
		results := mem.Search(args[0], searchLimit)
		if len(results) == 0 {
			fmt.Println("No matching memories.")
			return
		}
		for _, res := range results {
			fmt.Printf("%.3f  [%s] %s\n", res.Score, res.Record.Category, res.Record.Content)
		}
	},
}

var memoryStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show memory store statistics",
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()

		stats := loadMemory(s).Stats()
		fmt.Printf("Records:    %d\n", stats.Records)
		fmt.Printf("Categories: %d\n", stats.Categories)
		fmt.Printf("Tags:       %d\n", stats.Tags)
	},
}

func loadMemory(s store.Storage) *memory.Engine {
	mem, err := memory.NewEngine(memory.Config{})
	if err != nil {
		fmt.Printf("Failed to init memory: %v\n", err)
		os.Exit(1)
	}
	records, err := s.LoadMemories()
	if err != nil {
		fmt.Printf("Failed to load memories: %v\n", err)
		os.Exit(1)
	}
	mem.Restore(records)
	return mem
}

func init() {
	RootCmd.AddCommand(memoryCmd)
	memoryCmd.AddCommand(memorySearchCmd)
	memoryCmd.AddCommand(memoryStatsCmd)
	memorySearchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "Max results")
}
