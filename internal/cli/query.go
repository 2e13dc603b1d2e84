package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"declex/config"
	"declex/internal/adapter/store"
	"declex/internal/usecase"
)

var (
	queryName  string
	queryExact bool
	queryKind  string
	queryJSON  bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Look up indexed symbols",
	Long: `Search the symbol index by name.

Examples:
  declex query -n getValue
  declex query -n game::SimpleClass --exact --json`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryName, "name", "n", "", "symbol name (required)")
	queryCmd.Flags().BoolVar(&queryExact, "exact", false, "match the name exactly instead of by substring")
	queryCmd.Flags().StringVar(&queryKind, "kind", "", "restrict to one symbol kind (class, method, field, ...)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.MarkFlagRequired("name")
}

func runQuery(cmd *cobra.Command, args []string) error {
	rootDir := GetRootDir()

	dbPath := config.IndexDBPath(rootDir)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("no index found. Run 'declex index' first")
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer st.Close()

	queryUC := usecase.NewQueryUseCase(st)

	hits, err := queryUC.Find(queryName, queryExact, queryKind)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if queryJSON {
		output, _ := json.MarshalIndent(hits, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(hits) == 0 {
		fmt.Println("No symbols found.")
		return nil
	}
	fmt.Printf("Found %d symbols for: %s\n\n", len(hits), queryName)
	for _, h := range hits {
		sig := h.Symbol.Signature
		fmt.Printf("  %-12s %s%s\n", h.Symbol.Kind, h.Symbol.Qualified, sig)
		fmt.Printf("               %s:%d\n", h.Path, h.Symbol.Line)
	}

	return nil
}
