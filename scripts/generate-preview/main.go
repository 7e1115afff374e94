package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/goliatone/go-resumegen"
	"github.com/goliatone/go-resumegen/pkg/model"
)

func main() {
	ctx := context.Background()

	var (
		format       = flag.String("format", "general", "preview format (general or company)")
		rendererName = flag.String("renderer", "vanilla", "renderer to use")
		outputPath   = flag.String("output", "preview.html", "output path")
	)
	flag.Parse()

	parsed, err := model.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid format: %v\n", err)
		os.Exit(1)
	}

	html, err := resumegen.GenerateHTML(ctx, model.Example(), *rendererName, resumegen.RenderOptions{Format: parsed})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate preview: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*outputPath, html, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Generated %s preview (%d bytes) → %s\n", parsed, len(html), *outputPath)
}
