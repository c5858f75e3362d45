package board

// Tile is a grid coordinate. Tiles carry no inherent bounds; validity is
// always relative to a Board.
type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction is the axis a piece is aligned with and may slide along.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

// String returns the lowercase axis name.
func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Piece is a rigid body on the board: its minimum-coordinate endpoint, its
// length in tiles, the axis it lies on, and whether it is the marked piece
// that must reach the goal. Pieces are immutable; a moved piece is a new
// value produced by Board.Play, never a mutation.
type Piece struct {
	Size      int       `json:"size"`
	Location  Tile      `json:"location"`
	Direction Direction `json:"direction"`
	Marked    bool      `json:"marked"`
}

// NewPiece creates an unmarked piece.
func NewPiece(location Tile, size int, direction Direction) Piece {
	return Piece{
		Size:      size,
		Location:  location,
		Direction: direction,
	}
}

// NewMarkedPiece creates the marked piece that wins by touching the goal.
func NewMarkedPiece(location Tile, size int, direction Direction) Piece {
	return Piece{
		Size:      size,
		Location:  location,
		Direction: direction,
		Marked:    true,
	}
}

// Occupies returns the Size consecutive tiles covered by the piece, starting
// at its Location and stepping along its Direction.
func (p Piece) Occupies() []Tile {
	tiles := make([]Tile, p.Size)
	for i := 0; i < p.Size; i++ {
		if p.Direction == Horizontal {
			tiles[i] = Tile{X: p.Location.X + i, Y: p.Location.Y}
		} else {
			tiles[i] = Tile{X: p.Location.X, Y: p.Location.Y + i}
		}
	}
	return tiles
}
