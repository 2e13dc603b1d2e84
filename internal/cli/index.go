package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"declex/config"
	"declex/internal/adapter/cache"
	"declex/internal/adapter/fs"
	"declex/internal/adapter/lexer"
	"declex/internal/adapter/store"
	"declex/internal/usecase"
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Index a source tree",
	Long: `Extract declarations from every matching file under the given directory.
The index is stored in .declex/symbols.db within the target directory.

Examples:
  declex index .                 # Index current directory
  declex index /path/to/project  # Index specific directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	cfg := GetConfig()

	if err := config.EnsureWorkDir(path); err != nil {
		return fmt.Errorf("failed to create .declex directory: %w", err)
	}

	dbPath := config.IndexDBPath(path)
	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open symbol store: %w", err)
	}
	defer st.Close()

	rebuild, reason, err := st.NeedsRebuild(cfg)
	if err != nil {
		return fmt.Errorf("failed to check index state: %w", err)
	}
	if rebuild {
		fmt.Printf("Index rebuild required: %s\n", reason)
		fmt.Println("Clearing existing index...")
		if err := st.Clear(); err != nil {
			return fmt.Errorf("failed to clear index: %w", err)
		}
	}

	walker := fs.NewWalker(cfg.Index.Includes, cfg.Index.Excludes)
	parseCache := cache.NewParseCache(256, 10*time.Minute)
	extractUC := usecase.NewExtractUseCase(lexer.New(), newExtractor(), parseCache)
	indexUC := usecase.NewIndexUseCase(st, walker, extractUC)

	fmt.Printf("Scanning %s...\n", path)

	var bar *progressbar.ProgressBar
	var barMu sync.Mutex
	var startTime time.Time
	var initialized bool

	indexUC.OnProgress(func(processed, total int, currentFile string) {
		barMu.Lock()
		defer barMu.Unlock()

		if !initialized {
			startTime = time.Now()
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Indexing[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
			initialized = true
		}

		bar.Set(processed)

		if processed > 0 {
			elapsed := time.Since(startTime)
			rate := float64(processed) / elapsed.Seconds()
			remaining := total - processed
			if rate > 0 {
				eta := time.Duration(float64(remaining)/rate) * time.Second
				bar.Describe(fmt.Sprintf("[cyan]Indexing[reset] ETA: %s", formatDuration(eta)))
			}
		}
	})

	result, err := indexUC.Index(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	if err := st.MarkCurrent(cfg); err != nil {
		return fmt.Errorf("failed to record index state: %w", err)
	}

	fmt.Printf("\nIndexing complete:\n")
	fmt.Printf("  Files indexed: %d\n", result.FilesIndexed)
	fmt.Printf("  Files skipped: %d (unchanged)\n", result.FilesSkipped)
	fmt.Printf("  Files deleted: %d (removed)\n", result.FilesDeleted)
	fmt.Printf("  Symbols found: %d\n", result.SymbolsFound)
	if result.Diagnostics > 0 {
		fmt.Printf("  Diagnostics:   %d\n", result.Diagnostics)
	}

	if len(result.Errors) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	fmt.Printf("\nIndex stored at: %s\n", dbPath)
	return nil
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
