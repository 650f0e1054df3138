package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"
	"gopkg.in/yaml.v3"
)

// Load fetches the config file at src and overlays it on DefaultConfig.
// src is anything go-getter understands: a local path (relative to pwd), an
// http(s) URL, an s3:: or git:: address. Files ending in .json are parsed as
// JSON, everything else as YAML.
func Load(ctx context.Context, src, pwd string) (*Config, error) {
	tmp, err := os.MkdirTemp("", "voxelworld-config-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	dst := filepath.Join(tmp, "config"+formatExt(src))
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return nil, fmt.Errorf("fetch config %s: %w", src, err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data, isJSON(src))
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", src, err)
	}
	return cfg, nil
}

// Parse decodes data over DefaultConfig. Unknown YAML keys are rejected.
func Parse(data []byte, asJSON bool) (*Config, error) {
	cfg := DefaultConfig()
	if asJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path atomically, as JSON when path ends in .json and
// as YAML otherwise.
func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func isJSON(src string) bool {
	return formatExt(src) == ".json"
}

// formatExt returns the lower-cased extension of src without its query string.
func formatExt(src string) string {
	if i := strings.IndexByte(src, '?'); i >= 0 {
		src = src[:i]
	}
	return strings.ToLower(filepath.Ext(src))
}
