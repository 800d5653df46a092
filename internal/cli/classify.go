package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookrec/internal/domain"
)

var (
	classifyAddr string
	classifyText string
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify text into genres via a running server",
	Long: `Ask a running bookrec server for the top genres of a piece of text.

Examples:
  bookrec classify -t "a haunted house full of ghosts"`,
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().StringVarP(&classifyText, "text", "t", "", "text to classify (required)")
	classifyCmd.Flags().StringVar(&classifyAddr, "addr", "http://localhost:8000", "server base URL")
	classifyCmd.MarkFlagRequired("text")
}

func runClassify(cmd *cobra.Command, args []string) error {
	var resp struct {
		Genres []domain.GenreScore `json:"genres"`
	}
	c := newClient(classifyAddr)
	if err := c.postJSON("/classify", map[string]string{"text": classifyText}, &resp); err != nil {
		return fmt.Errorf("classify failed: %w", err)
	}

	for _, g := range resp.Genres {
		fmt.Printf("%-16s %.3f\n", g.Genre, g.Score)
	}
	return nil
}
