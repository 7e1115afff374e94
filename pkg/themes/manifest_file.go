package themes

import (
	"fmt"
	"io"
	"os"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

type assetsFile struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

type variantFile struct {
	Tokens    map[string]string `yaml:"tokens"`
	Templates map[string]string `yaml:"templates"`
	Assets    assetsFile        `yaml:"assets"`
}

type manifestFile struct {
	Name      string                 `yaml:"name"`
	Version   string                 `yaml:"version"`
	Extends   bool                   `yaml:"extends"`
	Tokens    map[string]string      `yaml:"tokens"`
	Templates map[string]string      `yaml:"templates"`
	Assets    assetsFile             `yaml:"assets"`
	Variants  map[string]variantFile `yaml:"variants"`
}

// LoadManifestFile reads a YAML manifest from disk.
func LoadManifestFile(filename string) (*theme.Manifest, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("themes: open manifest: %w", err)
	}
	defer f.Close()
	return LoadManifest(f)
}

// LoadManifest decodes a YAML manifest. With `extends: true` the result is
// layered over the built-in manifest so a file only has to list overrides.
func LoadManifest(r io.Reader) (*theme.Manifest, error) {
	var file manifestFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("themes: decode manifest: %w", err)
	}
	if file.Name == "" {
		return nil, fmt.Errorf("themes: manifest name is required")
	}

	out := &theme.Manifest{
		Name:      file.Name,
		Version:   file.Version,
		Tokens:    file.Tokens,
		Templates: file.Templates,
		Assets:    theme.Assets{Prefix: file.Assets.Prefix, Files: file.Assets.Files},
		Variants:  make(map[string]theme.Variant, len(file.Variants)),
	}
	if out.Version == "" {
		out.Version = "0.0.0"
	}
	for name, v := range file.Variants {
		out.Variants[name] = theme.Variant{
			Tokens:    v.Tokens,
			Templates: v.Templates,
			Assets:    theme.Assets{Prefix: v.Assets.Prefix, Files: v.Assets.Files},
		}
	}
	if file.Extends {
		out = layer(Manifest(), out)
	}
	return out, nil
}

func layer(base, over *theme.Manifest) *theme.Manifest {
	out := &theme.Manifest{
		Name:      over.Name,
		Version:   over.Version,
		Tokens:    mergeStringMaps(base.Tokens, over.Tokens),
		Templates: mergeStringMaps(base.Templates, over.Templates),
		Assets: theme.Assets{
			Prefix: base.Assets.Prefix,
			Files:  mergeStringMaps(base.Assets.Files, over.Assets.Files),
		},
		Variants: make(map[string]theme.Variant, len(base.Variants)),
	}
	if over.Assets.Prefix != "" {
		out.Assets.Prefix = over.Assets.Prefix
	}
	for name, v := range base.Variants {
		out.Variants[name] = v
	}
	for name, v := range over.Variants {
		b := out.Variants[name]
		out.Variants[name] = theme.Variant{
			Tokens:    mergeStringMaps(b.Tokens, v.Tokens),
			Templates: mergeStringMaps(b.Templates, v.Templates),
			Assets: theme.Assets{
				Prefix: firstNonEmpty(v.Assets.Prefix, b.Assets.Prefix),
				Files:  mergeStringMaps(b.Assets.Files, v.Assets.Files),
			},
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
