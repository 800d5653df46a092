package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bookrec/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "bookrec",
	Short: "Book recommendation service - TF-IDF search, genre classification and popularity scoring",
	Long: `bookrec serves a book recommendation API over an in-memory TF-IDF index,
with a two-tier genre classifier and Bayesian-average popularity scoring.

Example usage:
  bookrec serve                          # Run the HTTP server
  bookrec ingest data/books.csv          # Upload a catalog to a running server
  bookrec recommend -q "dragon kingdom"  # Query a running server
  bookrec classify -t "a haunted house"  # Classify text`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			wd, werr := os.Getwd()
			if werr != nil {
				return fmt.Errorf("failed to get working directory: %w", werr)
			}
			cfg, err = config.LoadFromDir(wd)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./bookrec.yaml)")
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	return cfg
}
