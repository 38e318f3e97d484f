package tile

import "fmt"

// Catalog is the ordered list of all tiles in the game.
// The index of a tile in the catalog is its ordinal.
// The first tile is the source tile, which is always in play.
type Catalog []Record

// Tonga is the source tile.  It starts the game on the table.
var Tonga = LandTile{
	ImagePath: "tiles/land/tonga.png",
	Name:      "Tonga",
	Points:    0,
	Beaches:   6,
}

// DefaultCatalog creates the catalog of the tiles in the box.
func DefaultCatalog() Catalog {
	return Catalog{
		Tonga,
		land("fidschi", "Fidschi", 5, 3),
		land("samoa", "Samoa", 5, 3),
		land("hawaii", "Hawaii", 5, 3),
		land("oahu", "Oahu", 4, 3),
		land("hiva_oa", "Hiva Oa", 4, 3),
		land("tuvalu", "Tuvalu", 4, 3),
		land("mangareva", "Mangareva", 4, 3),
		land("tahiti", "Tahiti", 4, 3),
		land("tokelau", "Tokelau", 3, 3),
		land("rapa_nui", "Rapa Nui", 3, 2),
		land("tuamotu", "Tuamotu", 3, 2),
		land("rarotonga", "Rarotonga", 3, 2),
		land("muroroa", "Muroroa", 2, 3),
		land("nauru", "Nauru", 2, 3),
		land("tubuai", "Tubuai", 2, 2),
		water("a", 4),
		water("b", 4),
		water("c", 4),
		water("d", 3),
		water("e", 3),
		water("f", 3),
		water("g", 3),
		water("h", 3),
		water("i", 2),
		water("j", 2),
		water("k", 2),
		water("l", 0),
		water("m", 0),
		water("n", 0),
		water("o", 0),
		water("p", 0),
	}
}

// land creates a land tile with an image in the land tiles directory.
func land(fileName, name string, points, beaches int) LandTile {
	return LandTile{
		ImagePath: "tiles/land/" + fileName + ".png",
		Name:      name,
		Points:    points,
		Beaches:   beaches,
	}
}

// water creates a water tile with an image in the water tiles directory.
func water(letter string, placementRequirement int) WaterTile {
	return WaterTile{
		ImagePath:            "tiles/water/water_" + letter + ".png",
		PlacementRequirement: placementRequirement,
	}
}

// Source returns the tile that is always in play.
func (c Catalog) Source() Record {
	return c[0]
}

// IsSource determines if the tile at the ordinal is the source tile.
func (Catalog) IsSource(ordinal int) bool {
	return ordinal == 0
}

// Validate ensures the catalog can be used to track tiles.
func (c Catalog) Validate() error {
	switch {
	case len(c) == 0:
		return fmt.Errorf("source tile required")
	}
	if _, ok := c[0].(LandTile); !ok {
		return fmt.Errorf("source tile must be a land tile, got %T", c[0])
	}
	for i, r := range c {
		if r == nil {
			return fmt.Errorf("tile %v is missing", i)
		}
	}
	return nil
}
