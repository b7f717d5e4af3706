package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/autoearnpro/autoearnpro/internal/store"
)

func dataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".autoearnpro")
}

func getStore() store.Storage {
	storeLayer, err := store.NewSQLiteStore(filepath.Join(dataDir(), "autoearnpro.db"))
	if err != nil {
		fmt.Printf("Failed to init store: %v\n", err)
		os.Exit(1)
	}
	return storeLayer
}
