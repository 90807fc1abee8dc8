package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	// parse schema
	var schema map[string]any
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// every top-level config section must be described by the schema
	defs, _ := schema["$defs"].(map[string]any)
	root, _ := defs["Config"].(map[string]any)
	props, _ := root["properties"].(map[string]any)

	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	for k := range configMap {
		if _, ok := props[k]; !ok {
			return fmt.Errorf("section %q is missing in schema", k)
		}
	}

	// basic validation - check required fields match
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	// check server config
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}

	// check screenshot config if enabled
	if cfg.Enrichment.Screenshot.Enabled {
		if cfg.Enrichment.Screenshot.Width <= 0 || cfg.Enrichment.Screenshot.Height <= 0 {
			return fmt.Errorf("enrichment.screenshot width and height are required when screenshots are enabled")
		}
		if cfg.Enrichment.Screenshot.Timeout == 0 {
			return fmt.Errorf("enrichment.screenshot.timeout is required when screenshots are enabled")
		}
	}

	// check link context config if enabled
	if cfg.Analysis.LinkContext.Enabled {
		if cfg.Analysis.LinkContext.Timeout == 0 {
			return fmt.Errorf("analysis.link_context.timeout is required when link context is enabled")
		}
		if cfg.Analysis.LinkContext.MaxChars < 0 {
			return fmt.Errorf("analysis.link_context.max_chars must be non-negative")
		}
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
