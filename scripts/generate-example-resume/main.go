package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/orchestrator"
	"github.com/goliatone/go-resumegen/pkg/render"
	"github.com/goliatone/go-resumegen/pkg/transfer"
)

const snapshotRendererName = "resume-snapshot"

// snapshotRenderer writes the transformed record as an export file.
type snapshotRenderer struct {
	path string
}

func (r *snapshotRenderer) Name() string {
	return snapshotRendererName
}

func (r *snapshotRenderer) ContentType() string {
	return "application/json"
}

func (r *snapshotRenderer) Render(_ context.Context, data model.ResumeData, _ render.RenderOptions) ([]byte, error) {
	payload, err := transfer.ExportJSON(data)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(r.path, payload, 0o644); err != nil {
		return nil, err
	}
	return payload, nil
}

func main() {
	var (
		outputPath = flag.String("output", "pkg/testsupport/testdata/example_resume.json", "output path for the example record")
		presetPath = flag.String("preset", "", "optional JSON preset applied before writing")
	)
	flag.Parse()

	ctx := context.Background()

	registry := render.NewRegistry()
	registry.MustRegister(&snapshotRenderer{path: *outputPath})

	opts := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(snapshotRendererName),
	}
	if *presetPath != "" {
		raw, err := os.ReadFile(*presetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read preset: %v\n", err)
			os.Exit(1)
		}
		preset, err := orchestrator.NewJSONPresetTransformer(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load preset: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, orchestrator.WithTransformers(preset))
	}

	data := model.Example()
	if _, err := orchestrator.New(opts...).Generate(ctx, orchestrator.Request{Data: &data}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to snapshot example: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Wrote example resume to %s\n", *outputPath)
}
