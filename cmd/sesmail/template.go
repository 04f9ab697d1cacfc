package main

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/sesmailer/pkg/config"
	"github.com/dmitrymomot/sesmailer/pkg/storage"
	"github.com/dmitrymomot/sesmailer/pkg/template"
)

// templateSource resolves a --template value into a source and the name to
// open in it. "s3://bucket/key" reads from S3 using TEMPLATE_S3_* settings;
// anything else is a local path.
func templateSource(ctx context.Context, location string, envFiles []string) (template.Source, string, error) {
	bucket, key, ok := storage.ParseURL(location)
	if !ok {
		return template.Dir(""), location, nil
	}

	var cfg storage.Config
	if err := config.LoadFiles(envFiles, &cfg); err != nil {
		return nil, "", err
	}
	cfg.Bucket = bucket
	cfg.Prefix = ""

	src, err := storage.New(ctx, cfg)
	if err != nil {
		return nil, "", err
	}
	return src, key, nil
}

// loadVars reads a flat YAML mapping of variable names to scalar values.
// An empty path yields no variables.
func loadVars(path string) (template.Vars, error) {
	if path == "" {
		return template.Vars{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vars file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse vars file %s: %w", path, err)
	}

	vars := make(template.Vars, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case nil:
			vars[name] = ""
		case map[string]any, []any:
			return nil, fmt.Errorf("vars file %s: %s must be a scalar value", path, name)
		default:
			vars[name] = fmt.Sprint(v)
		}
	}
	return vars, nil
}
