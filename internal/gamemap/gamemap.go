package gamemap

// Rect is an axis-aligned rectangle with inclusive edges.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// IsZero reports whether r is the zero Rect, which scenes use for "none".
func (r Rect) IsZero() bool { return r == Rect{} }

// Area returns the number of cells covered by r.
func (r Rect) Area() int {
	if r.X2 < r.X1 || r.Y2 < r.Y1 {
		return 0
	}
	return (r.X2 - r.X1 + 1) * (r.Y2 - r.Y1 + 1)
}

// GameMap holds the tile grid for one scene.
type GameMap struct {
	Width, Height int
	Tiles         [][]Tile
}

// New creates a GameMap filled with walls.
func New(width, height int) *GameMap {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = MakeWall()
		}
	}
	return &GameMap{Width: width, Height: height, Tiles: tiles}
}

// InBounds reports whether (x, y) is within the map boundaries.
func (m *GameMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns a pointer to the tile at (x, y). Panics if out of bounds.
func (m *GameMap) At(x, y int) *Tile {
	return &m.Tiles[y][x]
}

// Set replaces the tile at (x, y).
func (m *GameMap) Set(x, y int, t Tile) {
	m.Tiles[y][x] = t
}

// IsWalkable returns true when (x, y) is in bounds and walkable.
func (m *GameMap) IsWalkable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[y][x].Walkable
}

// Clip returns r cut to the map's bounds. The result may be empty (Area 0)
// when r lies entirely outside the map.
func (m *GameMap) Clip(r Rect) Rect {
	return Rect{
		X1: max(r.X1, 0),
		Y1: max(r.Y1, 0),
		X2: min(r.X2, m.Width-1),
		Y2: min(r.Y2, m.Height-1),
	}
}
