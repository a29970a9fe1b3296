package domain

// Category identifies the source table a document was synthesised from.
type Category string

const (
	// CategoryCombine marks documents rendered from combine measurables.
	CategoryCombine Category = "combine"

	// CategoryInjury marks documents rendered from the injury log.
	CategoryInjury Category = "injury"

	// CategoryRushing marks documents rendered from rushing stats.
	CategoryRushing Category = "rushing"
)

// Categories lists all categories in synthesis order.
var Categories = []Category{CategoryCombine, CategoryInjury, CategoryRushing}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryCombine, CategoryInjury, CategoryRushing:
		return true
	}
	return false
}

// Document is an immutable retrievable text unit. One PlayerRecord yields
// one Document per category present on the record. Documents are created
// once per index build and never mutated; a rebuild replaces the whole set.
type Document struct {
	// ID is the deterministic document identifier, stable across builds
	// on identical input ("player name|category").
	ID string

	// Player is the canonical name of the owning player.
	Player string

	// Category is the source table this document renders.
	Category Category

	// Text is the rendered natural-language body. It embeds every present
	// field of the source record with fixed numeric precision, so repeated
	// builds on identical input are byte-for-byte identical.
	Text string
}

// DocumentID builds the deterministic identifier for a player/category pair.
func DocumentID(player string, c Category) string {
	return player + "|" + string(c)
}
