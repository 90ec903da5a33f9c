package board

// Board is a bounded grid with an ordered list of placed pieces. All
// positional queries use each piece's canonical position. Boards are not
// internally synchronized; concurrent writers must coordinate externally.
type Board struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Pieces []Piece `json:"pieces"`
}

// New creates an empty board with the given dimensions.
func New(width, height int) *Board {
	return &Board{Width: width, Height: height}
}

// WithPieces creates a board with pre-placed pieces.
func WithPieces(width, height int, pieces []Piece) *Board {
	return &Board{Width: width, Height: height, Pieces: pieces}
}

// InBounds reports whether (x, y) lies within the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

// IsOccupied reports whether any piece's canonical position equals (x, y).
func (b *Board) IsOccupied(x, y int) bool {
	for i := range b.Pieces {
		if b.Pieces[i].Position.X == x && b.Pieces[i].Position.Y == y {
			return true
		}
	}
	return false
}

// PieceAt returns the first piece at (x, y), or nil.
func (b *Board) PieceAt(x, y int) *Piece {
	for i := range b.Pieces {
		if b.Pieces[i].Position.X == x && b.Pieces[i].Position.Y == y {
			return &b.Pieces[i]
		}
	}
	return nil
}

// Place appends a piece if its canonical position is in bounds and
// unoccupied. Returns false, with no mutation, otherwise.
func (b *Board) Place(p Piece) bool {
	if !b.InBounds(p.Position.X, p.Position.Y) {
		return false
	}
	if b.IsOccupied(p.Position.X, p.Position.Y) {
		return false
	}
	b.Pieces = append(b.Pieces, p)
	return true
}

// Remove deletes and returns the first piece at (x, y). The second return is
// false when the position is empty.
func (b *Board) Remove(x, y int) (Piece, bool) {
	for i := range b.Pieces {
		if b.Pieces[i].Position.X == x && b.Pieces[i].Position.Y == y {
			removed := b.Pieces[i]
			b.Pieces = append(b.Pieces[:i], b.Pieces[i+1:]...)
			return removed, true
		}
	}
	return Piece{}, false
}

// Move relocates the piece at from to to. It fails, with no mutation, when
// to is out of bounds or occupied, or when from is empty. Identity of the
// piece is otherwise preserved.
func (b *Board) Move(from, to Position) bool {
	if !b.InBounds(to.X, to.Y) {
		return false
	}
	if b.IsOccupied(to.X, to.Y) {
		return false
	}
	p := b.PieceAt(from.X, from.Y)
	if p == nil {
		return false
	}
	p.SetPosition(to)
	return true
}

// PiecesNear returns every piece within the Chebyshev box of the given radius
// around (x, y), in stored order. Radius 0 matches only pieces exactly at
// (x, y); the piece at the center, if any, is included.
func (b *Board) PiecesNear(x, y, radius int) []*Piece {
	var near []*Piece
	for i := range b.Pieces {
		dx := abs(b.Pieces[i].Position.X - x)
		dy := abs(b.Pieces[i].Position.Y - y)
		if dx <= radius && dy <= radius {
			near = append(near, &b.Pieces[i])
		}
	}
	return near
}

// Assumptions returns all assumption terminals in stored order.
func (b *Board) Assumptions() []*Piece {
	return b.filter(func(p *Piece) bool { return p.Kind == KindAssumption })
}

// Goals returns all goal terminals in stored order.
func (b *Board) Goals() []*Piece {
	return b.filter(func(p *Piece) bool { return p.Kind == KindGoal })
}

// Gates returns all connective gates (AND, OR, IMPLIES, NOT) in stored order.
// Quantifier introductions are excluded.
func (b *Board) Gates() []*Piece {
	return b.filter(func(p *Piece) bool { return p.IsGate() })
}

// Wires returns all wires in stored order.
func (b *Board) Wires() []*Piece {
	return b.filter(func(p *Piece) bool { return p.Kind == KindWire })
}

// Clear removes all pieces.
func (b *Board) Clear() {
	b.Pieces = nil
}

// PieceCount returns the number of pieces on the board.
func (b *Board) PieceCount() int {
	return len(b.Pieces)
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	pieces := make([]Piece, len(b.Pieces))
	copy(pieces, b.Pieces)
	return &Board{Width: b.Width, Height: b.Height, Pieces: pieces}
}

func (b *Board) filter(keep func(*Piece) bool) []*Piece {
	var out []*Piece
	for i := range b.Pieces {
		if keep(&b.Pieces[i]) {
			out = append(out, &b.Pieces[i])
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
