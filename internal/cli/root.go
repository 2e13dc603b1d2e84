package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"declex/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "declex",
	Short: "Declaration extractor for C++ sources",
	Long: `declex parses C++ headers and sources into declaration trees without
preprocessing them: reflection macros like UCLASS and UPROPERTY are captured
as attributes instead of being expanded, and malformed code degrades into
diagnostics rather than a failed parse.

Example usage:
  declex extract Character.h       # Print one file's declaration tree
  declex index .                   # Index a source tree
  declex query -n getValue         # Look up indexed symbols by name`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./declex.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
