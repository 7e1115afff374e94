package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-resumegen/pkg/transfer"
	"github.com/goliatone/go-resumegen/pkg/validation"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint resume JSON files against the import schema and contact rules.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	schema, err := validation.NewSchemaValidator(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "load schema: %v\n", err)
		os.Exit(1)
	}

	violations, err := lintPaths(schema, paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if report(os.Stderr, violations) > 0 {
		os.Exit(1)
	}
}

func lintPaths(schema *validation.SchemaValidator, paths []string) ([]violation, error) {
	var violations []violation
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("lint %s: read file: %w", path, err)
		}
		violations = append(violations, lintDocument(schema, path, raw)...)
	}
	return violations, nil
}

// lintDocument reports why raw would be rejected by the importer, plus the
// contact fields the editor would flag inline.
func lintDocument(schema *validation.SchemaValidator, file string, raw []byte) []violation {
	var result []violation

	if res := schema.Validate(raw); !res.Valid {
		for _, issue := range res.Issues {
			result = append(result, violation{
				file:     file,
				location: formatLocation(issue),
				message:  issue.Message,
			})
		}
		return result
	}

	data, err := transfer.NewImporter().Parse(raw)
	if err != nil {
		return append(result, violation{file: file, location: "document", message: err.Error()})
	}

	for _, msg := range validation.ValidateFormData(data).Errors {
		result = append(result, violation{file: file, location: "personal", message: msg})
	}
	return result
}

func report(w io.Writer, violations []violation) int {
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
	for _, v := range violations {
		fmt.Fprintf(w, "%s: %s -> %s\n", v.file, v.location, v.message)
	}
	return len(violations)
}

func formatLocation(issue validation.SchemaIssue) string {
	switch {
	case issue.Field != "":
		return strings.ReplaceAll(issue.Field, ".", " > ")
	case issue.Path != "":
		return strings.ReplaceAll(strings.Trim(issue.Path, "/"), "/", " > ")
	default:
		return "document"
	}
}
