package cosmetics

import (
	"context"
	"errors"
	"fmt"

	"pak-index/core/archive"
	"pak-index/core/category"
	"pak-index/feature/cosmetics/models"
)

var (
	// ErrUnknownItemType is returned for item types missing from the type table.
	ErrUnknownItemType = errors.New("unknown item type")
	// ErrItemNotFound is returned when no record exists for an item id.
	ErrItemNotFound = errors.New("item not found")
)

// Composer fills the type specific part of a view.
type Composer func(ctx context.Context, s *Service, record *archive.Record, view *models.ItemView)

// ItemType binds a queryable item type to its category and composer.
type ItemType struct {
	// Name is the type used in queries (e.g. "character").
	Name string
	// Category is the bucket holding the items.
	Category string
	// Compose adds type specific fields; nil composes only the common fields.
	Compose Composer
}

// DefaultItemTypes returns the built-in item type table.
func DefaultItemTypes() []ItemType {
	return []ItemType{
		{Name: "character", Category: category.Characters, Compose: composeCharacter},
		{Name: "backpack", Category: category.Backpacks},
		{Name: "pickaxe", Category: category.Pickaxes},
		{Name: "glider", Category: category.Gliders},
		{Name: "emote", Category: category.Dances},
	}
}

// Categories lists the categories a type table depends on.
type Categories interface {
	Has(name string) bool
}

func validateTypes(types []ItemType, categories Categories) (map[string]ItemType, error) {
	if len(types) == 0 {
		return nil, errors.New("item type table is empty")
	}
	out := make(map[string]ItemType, len(types))
	for _, t := range types {
		if t.Name == "" {
			return nil, errors.New("item type without name")
		}
		if _, dup := out[t.Name]; dup {
			return nil, fmt.Errorf("duplicate item type %q", t.Name)
		}
		if !categories.Has(t.Category) {
			return nil, fmt.Errorf("item type %q uses unknown category %q", t.Name, t.Category)
		}
		out[t.Name] = t
	}
	return out, nil
}
