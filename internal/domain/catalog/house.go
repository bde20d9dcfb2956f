package catalog

import (
	"strings"

	"github.com/prodstock/backend/internal/domain/shared"
)

// ProductionHouse represents a production site tracked by the stock engine.
// It is the aggregate root for house catalog operations.
//
// A house is addressed by its stable Code. Upstream systems are known to tag
// records with other identifiers as well (typically the code of a consuming
// site that coincides with this house), so a house carries a set of alias
// codes. Alias sets must be disjoint across houses; the catalog does not
// police violations, the first match wins during resolution.
type ProductionHouse struct {
	shared.BaseAggregateRoot
	Code       string
	Name       string
	AliasCodes []string
	Active     bool
}

// NewProductionHouse creates a new production house
func NewProductionHouse(code, name string) (*ProductionHouse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_HOUSE_CODE", "House code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_HOUSE_NAME", "House name cannot be empty")
	}

	return &ProductionHouse{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		AliasCodes:        make([]string, 0),
		Active:            true,
	}, nil
}

// AddAlias registers an alternate identifier for this house
func (h *ProductionHouse) AddAlias(alias string) error {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return shared.NewDomainError("INVALID_ALIAS", "Alias cannot be empty")
	}
	if alias == h.Code {
		return shared.NewDomainError("INVALID_ALIAS", "Alias must differ from the house code")
	}
	for _, a := range h.AliasCodes {
		if a == alias {
			return shared.NewDomainError("DUPLICATE_ALIAS", "Alias already registered for this house")
		}
	}
	h.AliasCodes = append(h.AliasCodes, alias)
	h.IncrementVersion()
	return nil
}

// HasAlias returns true if the given identifier is an alias of this house
func (h *ProductionHouse) HasAlias(code string) bool {
	for _, a := range h.AliasCodes {
		if a == code {
			return true
		}
	}
	return false
}

// Matches returns true if the given identifier addresses this house,
// either as its canonical code or as one of its aliases
func (h *ProductionHouse) Matches(ref string) bool {
	return ref == h.Code || h.HasAlias(ref)
}

// AllCodes returns the canonical code followed by every alias.
// Record stores are queried with the full set so that records tagged with
// an alias are found when querying by canonical code, and vice versa.
func (h *ProductionHouse) AllCodes() []string {
	codes := make([]string, 0, len(h.AliasCodes)+1)
	codes = append(codes, h.Code)
	codes = append(codes, h.AliasCodes...)
	return codes
}

// Deactivate marks the house as inactive
func (h *ProductionHouse) Deactivate() {
	h.Active = false
	h.IncrementVersion()
}
