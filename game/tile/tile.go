// Package tile contains the pieces that are placed while playing the game.
package tile

type (
	// Record is an immutable tile that is printed in the box.
	Record interface {
		// Path is the url path of the image of the tile.
		Path() string
	}

	// LandTile is an island with beaches that scores points.
	LandTile struct {
		ImagePath string
		Name      string
		Points    int
		Beaches   int
	}

	// WaterTile is an ocean tile that can only be placed next to enough other tiles.
	WaterTile struct {
		ImagePath string
		// PlacementRequirement is the number of adjacent tiles needed to place the tile.
		PlacementRequirement int
	}
)

// Path implements the Record interface.
func (t LandTile) Path() string {
	return t.ImagePath
}

// Path implements the Record interface.
func (t WaterTile) Path() string {
	return t.ImagePath
}
