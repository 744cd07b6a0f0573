// Package config provides configuration loading and management for notegraph.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/notegraph/vocabulary/kb"
)

// Config represents the complete notegraph configuration
type Config struct {
	Graph   GraphConfig   `yaml:"graph"`
	Source  SourceConfig  `yaml:"source"`
	Model   ModelConfig   `yaml:"model"`
	NATS    NATSConfig    `yaml:"nats"`
	Export  ExportConfig  `yaml:"export"`
	Process ProcessConfig `yaml:"process"`
}

// GraphConfig configures identifier and vocabulary namespaces
type GraphConfig struct {
	// BaseNamespace is the base URI under which entity URIs are minted
	BaseNamespace string `yaml:"base_namespace"`
	// VocabBase overrides the ontology namespace for exported class and
	// predicate IRIs (default: built-in ontology namespace)
	VocabBase string `yaml:"vocab_base"`
}

// SourceConfig configures document discovery
type SourceConfig struct {
	// Root is the directory scanned for documents (default: current directory)
	Root string `yaml:"root"`
	// Include is the list of glob patterns selecting documents
	Include []string `yaml:"include"`
	// Exclude is the list of glob patterns filtering documents out
	Exclude []string `yaml:"exclude"`
}

// ModelConfig configures the entity recognition model
type ModelConfig struct {
	// Name is the model to use (e.g., "qwen2.5:7b")
	Name string `yaml:"name"`
	// Endpoint is the OpenAI-compatible API endpoint
	Endpoint string `yaml:"endpoint"`
	// APIKey authenticates against the endpoint (empty = no auth)
	APIKey string `yaml:"api_key"`
	// Timeout is the maximum time to wait for model responses
	Timeout time.Duration `yaml:"timeout"`
}

// NATSConfig configures the NATS connection
type NATSConfig struct {
	// URL is the NATS server URL (empty = publishing and storage disabled)
	URL string `yaml:"url"`
}

// ExportConfig configures RDF export defaults
type ExportConfig struct {
	// Profile is the ontology profile: minimal, bfo, or cco
	Profile string `yaml:"profile"`
	// Format is the serialization format: turtle, ntriples, or jsonld
	Format string `yaml:"format"`
}

// ProcessConfig configures batch processing
type ProcessConfig struct {
	// Concurrency is the number of documents processed in parallel
	Concurrency int `yaml:"concurrency"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Graph: GraphConfig{
			BaseNamespace: kb.DefaultEntityNamespace,
			VocabBase:     kb.Namespace,
		},
		Source: SourceConfig{
			Root:    "", // Current directory
			Include: []string{"**/*.md", "**/*.markdown", "**/*.html"},
			Exclude: []string{"**/node_modules/**", "**/.git/**"},
		},
		Model: ModelConfig{
			Name:     "qwen2.5:7b",
			Endpoint: "http://localhost:11434/v1",
			Timeout:  2 * time.Minute,
		},
		NATS: NATSConfig{
			URL: "",
		},
		Export: ExportConfig{
			Profile: "minimal",
			Format:  "turtle",
		},
		Process: ProcessConfig{
			Concurrency: 4,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Graph.BaseNamespace == "" {
		return fmt.Errorf("graph.base_namespace is required")
	}
	if !strings.Contains(c.Graph.BaseNamespace, "://") {
		return fmt.Errorf("graph.base_namespace must be an absolute URI")
	}
	if c.Graph.VocabBase != "" &&
		!strings.HasSuffix(c.Graph.VocabBase, "/") && !strings.HasSuffix(c.Graph.VocabBase, "#") {
		return fmt.Errorf("graph.vocab_base must end in / or #")
	}
	if len(c.Source.Include) == 0 {
		return fmt.Errorf("source.include must name at least one pattern")
	}
	switch c.Export.Profile {
	case "minimal", "bfo", "cco":
	default:
		return fmt.Errorf("export.profile must be minimal, bfo, or cco")
	}
	switch c.Export.Format {
	case "turtle", "ntriples", "jsonld":
	default:
		return fmt.Errorf("export.format must be turtle, ntriples, or jsonld")
	}
	if c.Process.Concurrency < 1 {
		return fmt.Errorf("process.concurrency must be at least 1")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Graph
	if other.Graph.BaseNamespace != "" {
		c.Graph.BaseNamespace = other.Graph.BaseNamespace
	}
	if other.Graph.VocabBase != "" {
		c.Graph.VocabBase = other.Graph.VocabBase
	}

	// Source
	if other.Source.Root != "" {
		c.Source.Root = other.Source.Root
	}
	if len(other.Source.Include) > 0 {
		c.Source.Include = other.Source.Include
	}
	if len(other.Source.Exclude) > 0 {
		c.Source.Exclude = other.Source.Exclude
	}

	// Model
	if other.Model.Name != "" {
		c.Model.Name = other.Model.Name
	}
	if other.Model.Endpoint != "" {
		c.Model.Endpoint = other.Model.Endpoint
	}
	if other.Model.APIKey != "" {
		c.Model.APIKey = other.Model.APIKey
	}
	if other.Model.Timeout != 0 {
		c.Model.Timeout = other.Model.Timeout
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}

	// Export
	if other.Export.Profile != "" {
		c.Export.Profile = other.Export.Profile
	}
	if other.Export.Format != "" {
		c.Export.Format = other.Export.Format
	}

	// Process
	if other.Process.Concurrency != 0 {
		c.Process.Concurrency = other.Process.Concurrency
	}
}
