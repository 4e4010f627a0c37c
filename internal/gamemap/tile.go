package gamemap

// TileKind identifies the type of a map tile.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileSand
	TileGrass
	TileWater
)

// Tile holds the kind and passability of one map cell.
type Tile struct {
	Kind     TileKind
	Walkable bool
}

// MakeWall returns a blocking wall tile.
func MakeWall() Tile {
	return Tile{Kind: TileWall}
}

// MakeFloor returns a passable floor tile.
func MakeFloor() Tile {
	return Tile{Kind: TileFloor, Walkable: true}
}

// MakeSand returns a passable beach tile.
func MakeSand() Tile {
	return Tile{Kind: TileSand, Walkable: true}
}

// MakeGrass returns a passable grass tile.
func MakeGrass() Tile {
	return Tile{Kind: TileGrass, Walkable: true}
}

// MakeWater returns an impassable water tile.
func MakeWater() Tile {
	return Tile{Kind: TileWater}
}
