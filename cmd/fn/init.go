package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fntrack/fntrack/internal/config"
	"github.com/fntrack/fntrack/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Initialize a .fn data directory",
	Long: `Create the .fn data directory in the current directory (or under
--dir) with the record layout and schema metadata, and seed an fn.toml
project file. The project name defaults to the directory name.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		base := dirFlag
		if base == "" {
			cwd, err := os.Getwd()
			if err != nil {
				handleError(err)
			}
			base = cwd
		}

		root := filepath.Join(base, store.DirName)
		if _, err := store.Init(root); err != nil {
			handleError(err)
		}

		name := filepath.Base(base)
		if len(args) == 1 {
			name = args[0]
		}
		if err := seedProjectConfig(base, name); err != nil {
			handleError(err)
		}

		printSuccess(os.Stdout, "Initialized "+root, jsonOutput)
	},
}

// seedProjectConfig writes fn.toml next to the data directory unless one
// already exists.
func seedProjectConfig(dir, name string) error {
	path := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	body := fmt.Sprintf("project = %q\n", name)
	return os.WriteFile(path, []byte(body), 0o644)
}

func init() {
	rootCmd.AddCommand(initCmd)
}
