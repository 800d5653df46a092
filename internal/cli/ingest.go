package cli

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var ingestAddr string

var ingestCmd = &cobra.Command{
	Use:   "ingest <pattern>...",
	Short: "Upload catalog CSV files to a running server",
	Long: `Upload one or more CSV catalogs to a running bookrec server. Patterns
support doublestar globs. Each upload replaces the server's whole catalog,
so with multiple files the last one wins.

Examples:
  bookrec ingest data/books.csv
  bookrec ingest "data/**/*.csv" --addr http://localhost:9000`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringVar(&ingestAddr, "addr", "http://localhost:8000", "server base URL")
}

func runIngest(cmd *cobra.Command, args []string) error {
	var files []string
	for _, pattern := range args {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no files match the given patterns")
	}

	c := newClient(ingestAddr)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Uploading[reset]"),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	var lastCount float64
	for _, file := range files {
		resp, err := c.uploadFile("/ingest/csv", file)
		if err != nil {
			return fmt.Errorf("upload %s failed: %w", file, err)
		}
		if count, ok := resp["count"].(float64); ok {
			lastCount = count
		}
		bar.Add(1)
	}

	fmt.Printf("\nIngest complete:\n")
	fmt.Printf("  Files uploaded: %d\n", len(files))
	fmt.Printf("  Books loaded:   %d\n", int(lastCount))
	return nil
}
