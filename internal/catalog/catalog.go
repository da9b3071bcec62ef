// Package catalog holds the static category and country lists shown in the header.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

// FlagURLTemplate is used for countries that do not declare a flag image.
const FlagURLTemplate = "https://flagcdn.com/32x24/%s.png"

// Country is one entry of the country dropdown.
type Country struct {
	ISO  string `json:"iso_2_alpha" yaml:"iso_2_alpha"`
	Name string `json:"name" yaml:"name"`
	Flag string `json:"flag" yaml:"flag"`
}

type file struct {
	Categories []string  `json:"categories" yaml:"categories"`
	Countries  []Country `json:"countries" yaml:"countries"`
}

// Catalog is an immutable lookup table. Accessors return copies.
type Catalog struct {
	categories []string
	countries  []Country
	byISO      map[string]Country
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return Parse(embedded, ".yaml")
})

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := defaultCatalog()
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog override from a YAML or JSON file.
// An empty path yields the embedded catalog.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(raw, filepath.Ext(path))
}

// Parse decodes and validates catalog content. ext selects the decoder; an
// empty ext tries YAML then JSON.
func Parse(data []byte, ext string) (*Catalog, error) {
	f, err := decode(data, ext)
	if err != nil {
		return nil, err
	}
	if len(f.Categories) == 0 {
		return nil, errors.New("catalog contains no categories")
	}
	if len(f.Countries) == 0 {
		return nil, errors.New("catalog contains no countries")
	}

	c := &Catalog{
		categories: make([]string, 0, len(f.Categories)),
		countries:  make([]Country, 0, len(f.Countries)),
		byISO:      make(map[string]Country, len(f.Countries)),
	}

	for i, name := range f.Categories {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return nil, fmt.Errorf("categories[%d]: name is required", i)
		}
		if lo.Contains(c.categories, name) {
			return nil, fmt.Errorf("duplicate category %q", name)
		}
		c.categories = append(c.categories, name)
	}

	for i := range f.Countries {
		country := sanitizeCountry(f.Countries[i])
		if err := validateCountry(country); err != nil {
			return nil, fmt.Errorf("countries[%d]: %w", i, err)
		}
		if _, exists := c.byISO[country.ISO]; exists {
			return nil, fmt.Errorf("duplicate country iso %q", country.ISO)
		}
		c.countries = append(c.countries, country)
		c.byISO[country.ISO] = country
	}

	return c, nil
}

func decode(data []byte, ext string) (file, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var f file
		if err := d.fn(data, &f); err == nil {
			return f, nil
		}
	}

	return file{}, errors.New("catalog format not recognized (expected YAML or JSON)")
}

func sanitizeCountry(c Country) Country {
	c.ISO = strings.ToLower(strings.TrimSpace(c.ISO))
	c.Name = strings.TrimSpace(c.Name)
	c.Flag = strings.TrimSpace(c.Flag)
	if c.Flag == "" && c.ISO != "" {
		c.Flag = fmt.Sprintf(FlagURLTemplate, c.ISO)
	}
	return c
}

func validateCountry(c Country) error {
	if c.ISO == "" {
		return errors.New("iso_2_alpha is required")
	}
	if c.Name == "" {
		return fmt.Errorf("name is required for country %q", c.ISO)
	}
	return nil
}

// Categories returns the category names in display order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Countries returns the countries in display order.
func (c *Catalog) Countries() []Country {
	out := make([]Country, len(c.countries))
	copy(out, c.countries)
	return out
}

// Country looks a country up by ISO code, case-insensitively.
func (c *Catalog) Country(iso string) (Country, bool) {
	country, ok := c.byISO[strings.ToLower(strings.TrimSpace(iso))]
	return country, ok
}

// HasCategory reports whether name is a known category.
func (c *Catalog) HasCategory(name string) bool {
	return lo.Contains(c.categories, strings.ToLower(strings.TrimSpace(name)))
}
