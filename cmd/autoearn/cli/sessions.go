package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var sessionLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect past campaign sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sessions",
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()

		sessions, err := s.ListSessions(sessionLimit)
		if err != nil {
			fmt.Printf("Failed to list sessions: %v\n", err)
			os.Exit(1)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions yet.")
			return
		}
		for _, sess := range sessions {
			fmt.Printf("%-24s %-12s %s\n", sess.ID, sess.Status, sess.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show the reports of one session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()

		sess, err := s.GetSession(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Session %s (%s)\n", sess.ID, sess.Status)

		records, err := s.ListReports(sess.ID)
		if err != nil {
			fmt.Printf("Failed to load reports: %v\n", err)
			os.Exit(1)
		}
		var total float64
		for _, r := range records {
			earnings := r.Metrics["projected_earnings"]
			fmt.Printf("  cycle %3d  %-24s $%8.2f\n", r.Cycle, r.Engine, earnings)
			total += earnings
		}
		fmt.Printf("Total projected: $%.2f\n", total)
	},
}

func init() {
	RootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsListCmd.Flags().IntVarP(&sessionLimit, "limit", "n", 20, "Max sessions listed")
}
