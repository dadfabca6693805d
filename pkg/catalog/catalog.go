package catalog

import (
	"io"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/shelfplan/pkg/errors"
)

// DisplayType says how a product is merchandised.
type DisplayType string

const (
	Flat    DisplayType = "flat"
	Hanging DisplayType = "hanging"
)

// Product is a catalog entry. Width and Height are its footprint.
type Product struct {
	ID          string      `json:"id" toml:"id"`
	Name        string      `json:"name" toml:"name"`
	Category    string      `json:"category" toml:"category"`
	Width       float64     `json:"width" toml:"width"`
	Height      float64     `json:"height" toml:"height"`
	Color       string      `json:"color,omitempty" toml:"color,omitempty"`
	DisplayType DisplayType `json:"display,omitempty" toml:"display,omitempty"`
}

// Hanging reports whether the product is meant for a rail.
func (p Product) Hanging() bool { return p.DisplayType == Hanging }

// Catalog is an ordered, ID-indexed product list.
type Catalog struct {
	products []Product
	index    map[string]int
}

type catalogFile struct {
	Products []Product `toml:"product"`
}

// New validates products and builds a catalog. IDs must be unique.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
	}
	for _, p := range products {
		if err := validate(p); err != nil {
			return nil, err
		}
		if p.DisplayType == "" {
			p.DisplayType = Flat
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate product id %q", p.ID)
		}
		c.index[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Load reads a TOML catalog file.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open catalog")
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a TOML catalog.
func Parse(r io.Reader) (*Catalog, error) {
	var file catalogFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode catalog")
	}
	return New(file.Products)
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// All returns a copy of every product in catalog order.
func (c *Catalog) All() []Product { return slices.Clone(c.products) }

// Find looks up a product by ID.
func (c *Catalog) Find(id string) (Product, error) {
	i, ok := c.index[id]
	if !ok {
		return Product{}, errors.New(errors.ErrCodeProductNotFound, "product %q not found", id)
	}
	return c.products[i], nil
}

// Search returns products whose ID or name contains query (case-insensitive),
// restricted to category when it is non-empty. An empty query matches all.
func (c *Catalog) Search(query, category string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Product
	for _, p := range c.products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.ID), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	var out []string
	for _, p := range c.products {
		if !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	return out
}

func validate(p Product) error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "product id is empty")
	}
	if err := errors.ValidateDimension("product "+p.ID+" width", p.Width); err != nil {
		return err
	}
	if err := errors.ValidateDimension("product "+p.ID+" height", p.Height); err != nil {
		return err
	}
	switch p.DisplayType {
	case "", Flat, Hanging:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "product %s: unknown display type %q", p.ID, p.DisplayType)
}
