// Benchmark harness for raw extraction throughput: parses every matching
// file under a directory (no store, no cache) and reports timing.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"declex/config"
	"declex/internal/adapter/fs"
	"declex/internal/adapter/lexer"
	"declex/internal/extractor"
)

func main() {
	root := flag.String("dir", ".", "Directory to parse")
	repeat := flag.Int("n", 1, "Number of passes over the file set")
	flag.Parse()

	cfg, err := config.LoadFromDir(*root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	walker := fs.NewWalker(cfg.Index.Includes, cfg.Index.Excludes)
	files, err := walker.Walk(*root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking %s: %v\n", *root, err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No matching files under %s\n", *root)
		os.Exit(1)
	}

	sources := make([]string, 0, len(files))
	var totalBytes int
	for _, f := range files {
		content, err := fs.ReadFile(f.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", f.Path, err)
			continue
		}
		sources = append(sources, content)
		totalBytes += len(content)
	}

	lex := lexer.New()
	ext := extractor.New(
		extractor.WithMacroTable(extractor.NewMacroTable(cfg.Macros.Declaration, cfg.Macros.Body)),
		extractor.WithMaxDepth(cfg.Parser.MaxDepth),
		extractor.WithComments(cfg.Parser.AttachComments),
	)

	fmt.Println("EXTRACTION BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Files: %d  Bytes: %d  Passes: %d\n\n", len(sources), totalBytes, *repeat)

	var tokens, symbols, diags int
	durations := make([]time.Duration, 0, *repeat)

	for pass := 0; pass < *repeat; pass++ {
		tokens, symbols, diags = 0, 0, 0
		start := time.Now()
		for _, src := range sources {
			toks := lex.Tokenize(src)
			tokens += len(toks)
			tree, ds, err := ext.Extract(context.Background(), toks)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Extraction error: %v\n", err)
				os.Exit(1)
			}
			symbols += len(extractor.Flatten(tree, "bench"))
			diags += len(ds)
		}
		durations = append(durations, time.Since(start))
	}

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	best := durations[0]

	fmt.Printf("Tokens:      %d\n", tokens)
	fmt.Printf("Symbols:     %d\n", symbols)
	fmt.Printf("Diagnostics: %d\n", diags)
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("Best pass:   %v\n", best)
	if secs := best.Seconds(); secs > 0 {
		fmt.Printf("Throughput:  %.1f MB/s, %.0f files/s\n",
			float64(totalBytes)/secs/1e6, float64(len(sources))/secs)
	}
}
