package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/autoearnpro/autoearnpro/internal/vault"
)

var showSecret bool

var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Manage encrypted platform credentials",
}

var secretsSetCmd = &cobra.Command{
	Use:   "set [platform] [token]",
	Short: "Store a platform token, encrypted at rest",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		v, err := vault.New()
		if err != nil {
			fmt.Printf("Failed to init vault: %v\n", err)
			os.Exit(1)
		}

		encrypted, err := v.Encrypt(args[1])
		if err != nil {
			fmt.Printf("Failed to encrypt: %v\n", err)
			os.Exit(1)
		}

		s := getStore()
		defer s.Close()

		if err := s.SetConfig("secret."+args[0], encrypted); err != nil {
			fmt.Printf("Failed to store secret: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Secret stored for %s\n", args[0])
	},
}

var secretsGetCmd = &cobra.Command{
	Use:   "get [platform]",
	Short: "Show a stored platform token (masked by default)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()

		stored, err := s.GetConfig("secret." + args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if stored == "" {
			fmt.Println("(not set)")
			return
		}

		v, err := vault.New()
		if err != nil {
			fmt.Printf("Failed to init vault: %v\n", err)
			os.Exit(1)
		}
		plaintext, err := v.Decrypt(stored)
		if err != nil {
			fmt.Printf("Failed to decrypt: %v\n", err)
			os.Exit(1)
		}

		if showSecret {
			fmt.Println(plaintext)
		} else {
			fmt.Println(vault.MaskSecret(plaintext))
		}
	},
}

func init() {
	RootCmd.AddCommand(secretsCmd)
	secretsCmd.AddCommand(secretsSetCmd)
	secretsCmd.AddCommand(secretsGetCmd)
	secretsGetCmd.Flags().BoolVar(&showSecret, "show", false, "Print the decrypted token")
}
