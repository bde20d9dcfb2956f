package catalog

import (
	"strings"

	"github.com/prodstock/backend/internal/domain/shared"
)

// ItemScope controls which houses an item is visible to
type ItemScope string

const (
	// ItemScopeGlobal items are tracked by every house
	ItemScopeGlobal ItemScope = "GLOBAL"
	// ItemScopeHouse items are tracked only by the house they belong to
	ItemScopeHouse ItemScope = "HOUSE"
)

// IsValid checks if the scope is a valid ItemScope
func (s ItemScope) IsValid() bool {
	return s == ItemScopeGlobal || s == ItemScopeHouse
}

// Item represents a trackable finished-good type (SKU).
// The catalog is read-only input for the reconciliation engine; items are
// created and maintained through the catalog service.
type Item struct {
	shared.BaseEntity
	Key         string // canonical key, camel form (e.g. "dryFruitMix")
	DisplayName string
	Unit        string
	Scope       ItemScope
	HouseCode   string // owning house when Scope == HOUSE
}

// NewItem creates a new catalog item
func NewItem(key, displayName, unit string, scope ItemScope, houseCode string) (*Item, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_KEY", "Item key cannot be empty")
	}
	if strings.TrimSpace(displayName) == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item display name cannot be empty")
	}
	if !scope.IsValid() {
		return nil, shared.NewDomainError("INVALID_ITEM_SCOPE", "Item scope must be GLOBAL or HOUSE")
	}
	if scope == ItemScopeHouse && strings.TrimSpace(houseCode) == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_SCOPE", "House-scoped item requires a house code")
	}
	if scope == ItemScopeGlobal {
		houseCode = ""
	}

	return &Item{
		BaseEntity:  shared.NewBaseEntity(),
		Key:         key,
		DisplayName: displayName,
		Unit:        unit,
		Scope:       scope,
		HouseCode:   houseCode,
	}, nil
}

// AppliesTo returns true if the item is tracked by the given house
func (i *Item) AppliesTo(houseCode string) bool {
	if i.Scope == ItemScopeGlobal {
		return true
	}
	return i.HouseCode == houseCode
}
