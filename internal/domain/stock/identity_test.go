package stock

import (
	"testing"

	"github.com/prodstock/backend/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()

	houseA, err := catalog.NewProductionHouse("PH-001", "Sector 9 Kitchen")
	require.NoError(t, err)
	require.NoError(t, houseA.AddAlias("STORE-17"))
	require.NoError(t, houseA.AddAlias("DEPOT-3"))

	houseB, err := catalog.NewProductionHouse("PH-002", "Riverside Kitchen")
	require.NoError(t, err)

	chicken, err := catalog.NewItem("chicken", "Chicken", "kg", catalog.ItemScopeGlobal, "")
	require.NoError(t, err)
	mix, err := catalog.NewItem("dryFruitMix", "Dry Fruit Mix", "kg", catalog.ItemScopeGlobal, "")
	require.NoError(t, err)
	local, err := catalog.NewItem("paneer", "Paneer", "kg", catalog.ItemScopeHouse, "PH-002")
	require.NoError(t, err)

	return &catalog.Snapshot{
		Houses: []catalog.ProductionHouse{*houseA, *houseB},
		Items:  []catalog.Item{*chicken, *mix, *local},
	}
}

func TestResolver_ResolveHouse(t *testing.T) {
	r := NewResolver(testSnapshot(t), nil)

	t.Run("canonical code resolves to itself", func(t *testing.T) {
		res := r.ResolveHouse("PH-001")
		assert.True(t, res.Resolved)
		assert.Equal(t, "PH-001", res.Canonical)
	})

	t.Run("alias resolves to owning house", func(t *testing.T) {
		res := r.ResolveHouse("STORE-17")
		assert.True(t, res.Resolved)
		assert.Equal(t, "PH-001", res.Canonical)
	})

	t.Run("unknown reference falls back to itself", func(t *testing.T) {
		res := r.ResolveHouse("WAREHOUSE-99")
		assert.False(t, res.Resolved)
		assert.Equal(t, "WAREHOUSE-99", res.Canonical)
	})
}

func TestResolver_HouseRefs(t *testing.T) {
	r := NewResolver(testSnapshot(t), nil)

	t.Run("includes canonical code and every alias", func(t *testing.T) {
		refs := r.HouseRefs("STORE-17")
		assert.ElementsMatch(t, []string{"PH-001", "STORE-17", "DEPOT-3"}, refs)
	})

	t.Run("unknown reference yields itself only", func(t *testing.T) {
		refs := r.HouseRefs("WAREHOUSE-99")
		assert.Equal(t, []string{"WAREHOUSE-99"}, refs)
	})
}

func TestResolver_NormalizeKey(t *testing.T) {
	r := NewResolver(testSnapshot(t), nil)

	cases := []struct {
		raw  string
		want string
	}{
		{"chicken", "chicken"},
		{"chicken_packet", "chicken"},
		{"chicken_packets", "chicken"},
		{"chickenPackets", "chicken"},
		{"ChickenPacket", "chicken"},
		{"dry_fruit_mix", "dryFruitMix"},
		{"dry_fruit_mix_packets", "dryFruitMix"},
		{"DryFruitMix", "dryFruitMix"},
		{"dry fruit mix", "dryFruitMix"},
		{"paneer", "paneer"},
		{"packets", "packets"}, // a lone suffix word is kept, not stripped to nothing
		{"  chicken_packets ", "chicken"},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, r.NormalizeKey(tc.raw))
		})
	}
}

func TestResolver_ResolveItemKey(t *testing.T) {
	r := NewResolver(testSnapshot(t), nil)

	t.Run("normalized key matching catalog resolves", func(t *testing.T) {
		res := r.ResolveItemKey("chicken_packets")
		assert.True(t, res.Resolved)
		assert.Equal(t, "chicken", res.Canonical)
	})

	t.Run("unknown key degrades to normalized form", func(t *testing.T) {
		res := r.ResolveItemKey("mystery_masala_packets")
		assert.False(t, res.Resolved)
		assert.Equal(t, "mysteryMasala", res.Canonical)
	})

	t.Run("custom suffix list", func(t *testing.T) {
		custom := NewResolver(testSnapshot(t), []string{"tray", "trays"})
		res := custom.ResolveItemKey("chicken_trays")
		assert.Equal(t, "chicken", res.Canonical)

		// default suffixes no longer stripped
		res = custom.ResolveItemKey("chicken_packets")
		assert.Equal(t, "chickenPackets", res.Canonical)
	})
}
