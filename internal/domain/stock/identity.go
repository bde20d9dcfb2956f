package stock

import (
	"strings"
	"unicode"

	"github.com/prodstock/backend/internal/domain/catalog"
)

// DefaultItemSuffixes are the trailing "unit of product" qualifier words
// stripped during item key normalization. Upstream systems append them
// inconsistently ("chicken", "chicken_packet", "chickenPackets" all mean the
// same SKU).
var DefaultItemSuffixes = []string{"packet", "packets"}

// Resolution is the tagged result of an identity lookup. Read paths never
// fail on unknown identifiers; an unresolved input degrades to its
// normalized raw form with Resolved=false so that callers can still
// aggregate under a stable key.
type Resolution struct {
	Canonical string
	Resolved  bool
}

// Resolver normalizes raw house and item identifiers into canonical keys
// against a point-in-time catalog snapshot. It is a pure function of its
// inputs and holds no mutable state, so a single resolver may be shared by
// concurrent computations over the same snapshot.
type Resolver struct {
	snap     *catalog.Snapshot
	suffixes map[string]struct{}
}

// NewResolver creates a resolver bound to a catalog snapshot.
// If suffixes is nil, DefaultItemSuffixes is used.
func NewResolver(snap *catalog.Snapshot, suffixes []string) *Resolver {
	if suffixes == nil {
		suffixes = DefaultItemSuffixes
	}
	set := make(map[string]struct{}, len(suffixes))
	for _, s := range suffixes {
		set[strings.ToLower(s)] = struct{}{}
	}
	return &Resolver{snap: snap, suffixes: set}
}

// Snapshot returns the catalog snapshot the resolver is bound to
func (r *Resolver) Snapshot() *catalog.Snapshot {
	return r.snap
}

// ResolveHouse resolves a raw house identifier to a canonical house code.
// Canonical codes resolve to themselves; otherwise the alias tables are
// searched. Unknown identifiers fall back to the raw value unresolved.
func (r *Resolver) ResolveHouse(raw string) Resolution {
	if h := r.snap.HouseByRef(raw); h != nil {
		return Resolution{Canonical: h.Code, Resolved: true}
	}
	return Resolution{Canonical: raw, Resolved: false}
}

// HouseRefs returns every identifier that addresses the house the raw
// reference resolves to. For an unresolved reference this is the raw value
// alone. Record stores are queried with the full set, which subsumes
// querying the canonical and alias forms separately and taking the union.
func (r *Resolver) HouseRefs(raw string) []string {
	if h := r.snap.HouseByRef(raw); h != nil {
		return h.AllCodes()
	}
	return []string{raw}
}

// ResolveItemKey resolves a raw item key to a canonical catalog key.
// The raw key is normalized first (see NormalizeKey); if the normalized key
// matches a catalog entry it resolves, otherwise the normalized form is used
// as-is. The same resolution is applied to production, delivery and
// recalibration lines so that aggregation keys align.
func (r *Resolver) ResolveItemKey(raw string) Resolution {
	key := r.NormalizeKey(raw)
	if item := r.snap.ItemByKey(key); item != nil {
		return Resolution{Canonical: item.Key, Resolved: true}
	}
	return Resolution{Canonical: key, Resolved: false}
}

// NormalizeKey reduces a raw item key to its canonical camel form:
// the key is split into words on underscores, spaces and camel-case
// boundaries; a trailing unit-qualifier word (e.g. "packets") is stripped;
// the remaining words are joined back in camel form with the first word
// lowercased.
//
//	"chicken_packets" -> "chicken"
//	"dry_fruit_mix"   -> "dryFruitMix"
//	"ChickenPackets"  -> "chicken"
func (r *Resolver) NormalizeKey(raw string) string {
	words := splitKeyWords(raw)
	if len(words) == 0 {
		return ""
	}
	if len(words) > 1 {
		if _, ok := r.suffixes[strings.ToLower(words[len(words)-1])]; ok {
			words = words[:len(words)-1]
		}
	}
	return joinCamel(words)
}

// splitKeyWords splits a raw key into lowercase words on underscores,
// spaces, hyphens and camel-case boundaries
func splitKeyWords(raw string) []string {
	raw = strings.TrimSpace(raw)
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	for _, r := range raw {
		switch {
		case r == '_' || r == ' ' || r == '-':
			flush()
		case unicode.IsUpper(r):
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return words
}

// joinCamel joins lowercase words into a camel-form key
func joinCamel(words []string) string {
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(w)
			continue
		}
		if len(w) > 0 {
			b.WriteString(strings.ToUpper(w[:1]))
			b.WriteString(w[1:])
		}
	}
	return b.String()
}
