// catalogschema writes the JSON Schema for catalog files, for editors that
// validate YAML against a schema. With --check it also loads a catalog and
// reports whether it builds.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"trash-alchemy/internal/catalog"
)

func main() {
	var outPath, checkPath string
	flag.StringVar(&outPath, "out", "", "path to write the JSON schema")
	flag.StringVar(&checkPath, "check", "", "catalog YAML file to validate")
	flag.Parse()

	if outPath == "" && checkPath == "" {
		fmt.Fprintln(os.Stderr, "--out or --check is required")
		os.Exit(1)
	}

	if checkPath != "" {
		cat, err := catalog.LoadFile(checkPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d items, %d recipes\n", checkPath, cat.Items.Len(), cat.Recipes.Len())
	}

	if outPath != "" {
		if err := writeSchema(outPath, buildSchema()); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
			os.Exit(1)
		}
	}
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(catalog.File))
	schema.Title = "Trash Alchemy Catalog"
	schema.Description = "Item definitions, crafting recipes and inventory shape"
	return schema
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}
	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
