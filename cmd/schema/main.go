package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/OCharnyshevich/voxelworld/internal/config"
)

func main() {
	var (
		outPath    string
		samplePath string
	)
	flag.StringVar(&outPath, "out", "", "path to write the JSON schema")
	flag.StringVar(&samplePath, "sample", "", "optional path to write a default config (yaml or json)")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	if err := writeSchema(outPath, buildSchema()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}

	if samplePath != "" {
		if err := config.Save(samplePath, config.DefaultConfig()); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write sample config: %v\n", err)
			os.Exit(1)
		}
	}
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
	}
	schema := reflector.Reflect(new(config.Config))
	schema.Title = "Voxel World Server Config"
	schema.Description = "Validates voxelworld server configuration files"
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
