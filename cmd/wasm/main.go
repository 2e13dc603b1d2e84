//go:build js && wasm

// WebAssembly bindings: extract declarations from C++ source in the
// browser, backed by the in-memory store.
package main

import (
	"context"
	"encoding/json"
	"syscall/js"
	"time"

	"declex/internal/adapter/lexer"
	"declex/internal/adapter/memstore"
	"declex/internal/domain"
	"declex/internal/extractor"
	"declex/internal/usecase"
)

var (
	store     *memstore.MemoryStore
	extractUC *usecase.ExtractUseCase
)

func init() {
	store = memstore.NewMemoryStore()
	extractUC = usecase.NewExtractUseCase(lexer.New(), extractor.New(), nil)
}

func main() {
	c := make(chan struct{})

	js.Global().Set("declexExtract", js.FuncOf(extractSource))
	js.Global().Set("declexIndex", js.FuncOf(indexSource))
	js.Global().Set("declexFind", js.FuncOf(findSymbols))
	js.Global().Set("declexClear", js.FuncOf(clearIndex))

	<-c
}

// extractSource parses one source string and returns its tree plus
// diagnostics without touching the store.
func extractSource(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: declexExtract(source)")
	}

	tree, diags, err := extractUC.Extract(context.Background(), args[0].String())
	if err != nil {
		return makeError("extraction failed: " + err.Error())
	}

	return makeResult(map[string]interface{}{
		"tree":        toJSON(tree),
		"diagnostics": toJSON(diags),
	})
}

// indexSource parses a named source and stores its symbols for lookup.
func indexSource(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeError("usage: declexIndex(filename, source)")
	}

	filename := args[0].String()
	source := args[1].String()

	tree, diags, err := extractUC.Extract(context.Background(), source)
	if err != nil {
		return makeError("extraction failed: " + err.Error())
	}

	docID := usecase.GenerateDocID(filename)
	doc := domain.Document{
		ID:      docID,
		Path:    filename,
		ModTime: time.Now(),
		Lang:    "cpp",
	}

	store.PutDoc(doc)
	store.PutTree(docID, tree)
	symbols := extractor.Flatten(tree, docID)
	store.PutSymbols(docID, symbols)
	store.PutDiagnostics(docID, diags)

	return makeResult(map[string]interface{}{
		"success":     true,
		"filename":    filename,
		"symbols":     len(symbols),
		"diagnostics": len(diags),
	})
}

func findSymbols(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: declexFind(name, [exact])")
	}

	name := args[0].String()
	exact := false
	if len(args) > 1 {
		exact = args[1].Bool()
	}

	symbols, err := store.FindSymbols(name, exact)
	if err != nil {
		return makeError("search failed: " + err.Error())
	}

	output := make([]map[string]interface{}, 0, len(symbols))
	for _, sym := range symbols {
		doc, _ := store.GetDoc(sym.DocID)
		output = append(output, map[string]interface{}{
			"name":      sym.Name,
			"qualified": sym.Qualified,
			"kind":      sym.Kind,
			"signature": sym.Signature,
			"path":      doc.Path,
			"line":      sym.Line,
		})
	}

	return makeResult(map[string]interface{}{
		"results": output,
		"name":    name,
	})
}

func clearIndex(this js.Value, args []js.Value) interface{} {
	store = memstore.NewMemoryStore()
	return makeResult(map[string]interface{}{
		"success": true,
	})
}

func toJSON(v interface{}) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}
