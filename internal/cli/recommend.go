package cli

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"bookrec/internal/domain"
)

var (
	recommendAddr  string
	recommendQuery string
	recommendTopK  int
	recommendJSON  bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Query a running server for recommendations",
	Long: `Request ranked book recommendations from a running bookrec server.

Examples:
  bookrec recommend -q "dragon kingdom magic"
  bookrec recommend -q "space opera" -k 5 --json`,
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendCmd.Flags().StringVarP(&recommendQuery, "query", "q", "", "search query (required)")
	recommendCmd.Flags().IntVarP(&recommendTopK, "top-k", "k", 0, "number of results (default from config)")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "output as JSON")
	recommendCmd.Flags().StringVar(&recommendAddr, "addr", "http://localhost:8000", "server base URL")
	recommendCmd.MarkFlagRequired("query")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	topK := recommendTopK
	if topK <= 0 {
		topK = GetConfig().Recommend.TopK
	}

	var resp struct {
		Results []domain.Recommendation `json:"results"`
	}
	c := newClient(recommendAddr)
	if err := c.postJSON("/recommend", map[string]any{"query": recommendQuery, "top_k": topK}, &resp); err != nil {
		return fmt.Errorf("recommend failed: %w", err)
	}

	if recommendJSON {
		output, _ := json.MarshalIndent(resp.Results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(resp.Results) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	fmt.Printf("Found %d results for: %s\n\n", len(resp.Results), recommendQuery)
	for i, r := range resp.Results {
		fmt.Printf("--- [%d] %s (%d) score: %.3f ---\n", i+1, r.Title, r.Year, r.Score)
		fmt.Printf("    genres: %v\n", r.Genres)
		fmt.Printf("    similarity=%.3f popularity=%.3f genre=%.2f feedback=%.2f\n",
			r.Why.Similarity, r.Why.Popularity, r.Why.Genre, r.Why.FeedbackBoost)
		fmt.Println()
	}

	return nil
}
