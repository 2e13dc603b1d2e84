package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"declex/internal/adapter/lexer"
	"declex/internal/domain"
	"declex/internal/extractor"
	"declex/internal/usecase"
)

var (
	extractJSON  bool
	extractDiags bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [file...]",
	Short: "Extract declarations from C++ files",
	Long: `Parse one or more C++ files and print their declaration trees.

Examples:
  declex extract Character.h
  declex extract --json src/*.h`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "output as JSON")
	extractCmd.Flags().BoolVar(&extractDiags, "diagnostics", false, "print diagnostics even on clean parses")
}

func runExtract(cmd *cobra.Command, args []string) error {
	ext := newExtractor()
	extractUC := usecase.NewExtractUseCase(lexer.New(), ext, nil)

	for _, path := range args {
		tree, diags, err := extractUC.ExtractFile(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("extraction failed for %s: %w", path, err)
		}

		if extractJSON {
			out := struct {
				Path        string              `json:"path"`
				Tree        *domain.SymbolTree  `json:"tree"`
				Diagnostics []domain.Diagnostic `json:"diagnostics,omitempty"`
			}{Path: path, Tree: tree, Diagnostics: diags}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
		} else {
			fmt.Printf("%s\n", path)
			for i := range tree.Root.Namespace.Decls {
				printDecl(&tree.Root.Namespace.Decls[i], 1, "")
			}
		}

		if len(diags) > 0 || extractDiags {
			for _, d := range diags {
				fmt.Fprintf(os.Stderr, "%s:%d:%d: %s: %s (%s)\n",
					path, d.Pos.Line, d.Pos.Column, d.Severity, d.Message, d.Kind)
			}
		}
	}
	return nil
}

// newExtractor builds an extractor from the loaded configuration.
func newExtractor() *extractor.Extractor {
	cfg := GetConfig()
	return extractor.New(
		extractor.WithMacroTable(extractor.NewMacroTable(cfg.Macros.Declaration, cfg.Macros.Body)),
		extractor.WithMaxDepth(cfg.Parser.MaxDepth),
		extractor.WithComments(cfg.Parser.AttachComments),
	)
}

func printDecl(d *domain.Declaration, depth int, access domain.Access) {
	indent := strings.Repeat("  ", depth)

	label := string(d.Kind)
	if access != "" {
		label = string(access) + " " + label
	}

	detail := ""
	switch d.Kind {
	case domain.DeclClass:
		if d.Class != nil {
			label = d.Class.Tag
			if access != "" {
				label = string(access) + " " + d.Class.Tag
			}
			var bases []string
			for _, b := range d.Class.Bases {
				bases = append(bases, string(b.Access)+" "+b.Name)
			}
			if len(bases) > 0 {
				detail = " : " + strings.Join(bases, ", ")
			}
		}
	case domain.DeclFunction:
		if d.Function != nil {
			var params []string
			for _, p := range d.Function.Params {
				if p.Name != "" {
					params = append(params, p.Type+" "+p.Name)
				} else {
					params = append(params, p.Type)
				}
			}
			detail = "(" + strings.Join(params, ", ") + ")"
			if d.Function.Qualifiers.Const {
				detail += " const"
			}
			if d.Function.Pure {
				detail += " = 0"
			}
		}
	case domain.DeclVariable:
		if d.Variable != nil {
			detail = " " + d.Variable.Type
		}
	case domain.DeclEnum:
		if d.Enum != nil && d.Enum.Underlying != "" {
			detail = " : " + d.Enum.Underlying
		}
	}

	attrs := ""
	if len(d.Attributes) > 0 {
		var names []string
		for _, a := range d.Attributes {
			names = append(names, a.Name)
		}
		attrs = " [" + strings.Join(names, " ") + "]"
	}

	fmt.Printf("%s%s %s%s%s\n", indent, label, d.Name, detail, attrs)

	switch d.Kind {
	case domain.DeclNamespace:
		if d.Namespace != nil {
			for i := range d.Namespace.Decls {
				printDecl(&d.Namespace.Decls[i], depth+1, "")
			}
		}
	case domain.DeclClass:
		if d.Class != nil {
			for i := range d.Class.Members {
				m := &d.Class.Members[i]
				printDecl(&m.Decl, depth+1, m.Access)
			}
		}
	case domain.DeclTemplate:
		if d.Template != nil && d.Template.Decl != nil {
			printDecl(d.Template.Decl, depth+1, "")
		}
	case domain.DeclEnum:
		if d.Enum != nil {
			for _, e := range d.Enum.Enumerators {
				fmt.Printf("%s  %s\n", indent, e)
			}
		}
	}
}
