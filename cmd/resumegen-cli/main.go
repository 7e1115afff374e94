package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/orchestrator"
	"github.com/goliatone/go-resumegen/pkg/render"
	"github.com/goliatone/go-resumegen/pkg/renderers/tui"
	"github.com/goliatone/go-resumegen/pkg/transfer"
	"github.com/goliatone/go-resumegen/pkg/validation"
)

func main() {
	input := flag.String("input", "", "resume JSON file (\"-\" for stdin, example data if empty)")
	renderer := flag.String("renderer", "vanilla", "renderer to use (vanilla, printable, text)")
	printable := flag.Bool("print", false, "render the printable document (same as -renderer printable)")
	format := flag.String("format", "general", "preview format (general or company)")
	output := flag.String("output", "", "output file (stdout if empty)")
	preset := flag.String("preset", "", "JSON preset limiting sections per kind")
	pageSize := flag.String("page-size", "", "printable page size (A4, Letter, Legal)")
	flag.Parse()

	ctx := context.Background()
	if *printable {
		*renderer = "printable"
	}

	parsedFormat, err := model.ParseFormat(*format)
	if err != nil {
		log.Fatalf("Invalid format: %v", err)
	}

	schema, err := validation.NewSchemaValidator(ctx)
	if err != nil {
		log.Fatalf("Failed to load schema: %v", err)
	}

	text, err := tui.NewTextRenderer()
	if err != nil {
		log.Fatalf("Failed to build text renderer: %v", err)
	}

	var transformers []orchestrator.Transformer
	if strings.TrimSpace(*preset) != "" {
		raw, err := os.ReadFile(*preset)
		if err != nil {
			log.Fatalf("Failed to read preset: %v", err)
		}
		t, err := orchestrator.NewJSONPresetTransformer(raw)
		if err != nil {
			log.Fatalf("Invalid preset: %v", err)
		}
		transformers = append(transformers, t)
	}
	transformers = append(transformers, orchestrator.VisibilityTransformer())

	gen := orchestrator.New(
		orchestrator.WithImporter(transfer.NewImporter(transfer.WithSchemaValidator(schema))),
		orchestrator.WithRenderers(text),
		orchestrator.WithTransformers(transformers...),
	)

	req := orchestrator.Request{
		Renderer: *renderer,
		RenderOptions: render.RenderOptions{
			Format: parsedFormat,
			Print:  render.DefaultPrintOptions(),
		},
	}
	if *pageSize != "" {
		req.RenderOptions.Print.PageSize = *pageSize
	}
	raw, err := readInput(*input)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	if raw != nil {
		req.Raw = raw
	} else {
		example := model.Example()
		req.Data = &example
	}

	out, err := gen.Generate(ctx, req)
	if err != nil {
		log.Fatalf("Failed to generate resume: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Resume written to %s\n", *output)
	} else {
		fmt.Println(string(out))
	}
}

func readInput(path string) ([]byte, error) {
	switch strings.TrimSpace(path) {
	case "":
		return nil, nil
	case "-":
		return io.ReadAll(io.LimitReader(os.Stdin, transfer.DefaultMaxImportBytes))
	default:
		return os.ReadFile(path)
	}
}
