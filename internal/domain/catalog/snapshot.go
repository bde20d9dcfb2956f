package catalog

// Snapshot is a point-in-time copy of the house and item catalogs.
// The reconciliation engine resolves identifiers against a snapshot so that
// one stock computation sees a single consistent catalog state.
type Snapshot struct {
	Houses []ProductionHouse
	Items  []Item
}

// HouseByRef finds the house addressed by the given identifier, trying the
// canonical code first and the alias tables second. Returns nil if no house
// matches.
func (s *Snapshot) HouseByRef(ref string) *ProductionHouse {
	for i := range s.Houses {
		if s.Houses[i].Code == ref {
			return &s.Houses[i]
		}
	}
	for i := range s.Houses {
		if s.Houses[i].HasAlias(ref) {
			return &s.Houses[i]
		}
	}
	return nil
}

// ItemByKey finds an item by its canonical key. Returns nil if absent.
func (s *Snapshot) ItemByKey(key string) *Item {
	for i := range s.Items {
		if s.Items[i].Key == key {
			return &s.Items[i]
		}
	}
	return nil
}

// ItemsFor returns every item applicable to the given house:
// all global items plus the items scoped to that house.
func (s *Snapshot) ItemsFor(houseCode string) []Item {
	items := make([]Item, 0, len(s.Items))
	for _, item := range s.Items {
		if item.AppliesTo(houseCode) {
			items = append(items, item)
		}
	}
	return items
}
