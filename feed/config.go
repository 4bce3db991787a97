// Package feed maps changelog releases and blog posts to feed entries,
// orders them and checks the rendered document.
package feed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the identity of the generated feed. It is passed by value and
// never modified after loading.
type Config struct {
	ID           string `yaml:"id"`
	Title        string `yaml:"title"`
	Subtitle     string `yaml:"subtitle"`
	SelfURL      string `yaml:"self"`
	AlternateURL string `yaml:"alternate"`
	Icon         string `yaml:"icon"`
	Logo         string `yaml:"logo"`

	// Product names the software in release titles and bodies.
	Product            string `yaml:"product"`
	ProductDescription string `yaml:"productDescription"`

	// ChangelogURL is the page every release entry links to.
	ChangelogURL string `yaml:"changelog"`
}

const siteURL = "https://kellnr.io"

// DefaultConfig returns the kellnr.io feed identity.
func DefaultConfig() Config {
	return Config{
		ID:                 "kellnr.io/blog",
		Title:              "kellnr.io - The Rust Registry",
		Subtitle:           "Rust development related blog",
		SelfURL:            siteURL + "/rss.xml",
		AlternateURL:       siteURL + "/blog",
		Icon:               siteURL + "/favicon.ico",
		Logo:               siteURL + "/favicon.ico",
		Product:            "Kellnr",
		ProductDescription: "the private Rust registry",
		ChangelogURL:       siteURL + "/changelog",
	}
}

// Validate checks that every field used in the feed header is set.
func (c Config) Validate() error {
	required := []struct {
		name, value string
	}{
		{"id", c.ID},
		{"title", c.Title},
		{"self", c.SelfURL},
		{"alternate", c.AlternateURL},
		{"product", c.Product},
		{"changelog", c.ChangelogURL},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("feed config: %s is required", r.name)
		}
	}
	return nil
}

// LoadConfig reads a YAML file overriding fields of DefaultConfig.
// Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read feed config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML overrides on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse feed config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
