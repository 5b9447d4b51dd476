package segplay

import "fmt"

// Manifest schema versions we understand. Documents with a higher version
// are rejected; unknown keys within a known version are ignored for forward
// compatibility.
const (
	CatalogSchema = 1
	PackageSchema = 1
	IndexSchema   = 1
)

// Catalog lists playable resources with stable identifiers
type Catalog struct {
	Schema int           `json:"schema"`
	ID     string        `json:"id"`
	Scope  []string      `json:"scope,omitempty"`
	Items  []CatalogItem `json:"items"`
}

// CatalogItem points at one resource. Metadata is free-form and only decoded
// on demand, so the catalog schema does not need to know its shape.
type CatalogItem struct {
	ID       string `json:"id"`
	File     string `json:"file"`
	Ext      string `json:"ext"`
	Metadata Value  `json:"metadata,omitempty"`
}

func (c Catalog) Validate() error {
	if c.Schema < 1 || c.Schema > CatalogSchema {
		return fmt.Errorf("unsupported catalog schema %d", c.Schema)
	}
	if c.ID == "" {
		return fmt.Errorf("catalog has no id")
	}
	for i, item := range c.Items {
		if item.ID == "" {
			return fmt.Errorf("catalog %s: item %d has no id", c.ID, i)
		}
		if item.File == "" {
			return fmt.Errorf("catalog %s: item %s has no file", c.ID, item.ID)
		}
	}
	return nil
}

// Package groups resource identifiers for distribution
type Package struct {
	Schema    int      `json:"schema"`
	ID        string   `json:"id"`
	Resources []string `json:"resources"`
}

func (p Package) Validate() error {
	if p.Schema < 1 || p.Schema > PackageSchema {
		return fmt.Errorf("unsupported package schema %d", p.Schema)
	}
	if p.ID == "" {
		return fmt.Errorf("package has no id")
	}
	return nil
}

// Index maps resource identifiers to the package carrying them
type Index struct {
	Schema  int          `json:"schema"`
	Entries []IndexEntry `json:"entries"`
}

type IndexEntry struct {
	ID      string `json:"id"`
	Package string `json:"package"`
}

func (x Index) Validate() error {
	if x.Schema < 1 || x.Schema > IndexSchema {
		return fmt.Errorf("unsupported index schema %d", x.Schema)
	}
	for i, e := range x.Entries {
		if e.ID == "" || e.Package == "" {
			return fmt.Errorf("index entry %d incomplete", i)
		}
	}
	return nil
}

// DecodeCatalog decodes a raw manifest document through the JSON value model
func DecodeCatalog(name string, data []byte) (Catalog, error) {
	v, err := Decode(data)
	if err != nil {
		return Catalog{}, &JSONDecodingError{Name: name, Cause: err}
	}
	cat, err := As[Catalog](v)
	if err != nil {
		return Catalog{}, &JSONDecodingError{Name: name, Cause: err}
	}
	manifestsDecoded.Inc()
	return cat, nil
}
