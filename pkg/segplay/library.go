package segplay

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Library resolves catalog resource identifiers to raw source bytes ready
// for SegmentPlayer.Load.
type Library struct {
	bundle *Bundle
	logger zerolog.Logger

	items map[string]catalogEntry
}

type catalogEntry struct {
	item  CatalogItem
	scope []string
}

func NewLibrary(bundle *Bundle, logger zerolog.Logger) *Library {
	return &Library{
		bundle: bundle,
		logger: logger,
		items:  make(map[string]catalogEntry),
	}
}

// AddCatalog loads and registers a catalog manifest from the bundle
func (l *Library) AddCatalog(name string) error {
	data, err := l.bundle.Resolve(name, "json", nil)
	if err != nil {
		return err
	}
	cat, err := DecodeCatalog(name, data)
	if err != nil {
		return err
	}
	for _, item := range cat.Items {
		if _, dup := l.items[item.ID]; dup {
			l.logger.Warn().Str("id", item.ID).Str("catalog", cat.ID).Msg("Duplicate resource id, keeping first")
			continue
		}
		l.items[item.ID] = catalogEntry{item: item, scope: cat.Scope}
	}
	l.logger.Info().Str("catalog", cat.ID).Int("items", len(cat.Items)).Msg("Catalog registered")
	return nil
}

// Item returns the catalog item registered under id
func (l *Library) Item(id string) (CatalogItem, bool) {
	e, ok := l.items[id]
	return e.item, ok
}

// Count returns the number of registered resources
func (l *Library) Count() int { return len(l.items) }

// IDs returns all registered resource identifiers
func (l *Library) IDs() []string {
	ids := make([]string, 0, len(l.items))
	for id := range l.items {
		ids = append(ids, id)
	}
	return ids
}

// LoadResource returns the raw bytes for a registered resource id
func (l *Library) LoadResource(id string) ([]byte, error) {
	e, ok := l.items[id]
	if !ok {
		return nil, fmt.Errorf("resource %q not in any registered catalog", id)
	}
	return l.bundle.Resolve(e.item.File, e.item.Ext, e.scope)
}
