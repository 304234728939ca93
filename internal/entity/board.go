package entity

type Position string

const (
	TopLeft     Position = "top-left"
	Top         Position = "top"
	TopRight    Position = "top-right"
	Left        Position = "left"
	Center      Position = "center"
	Right       Position = "right"
	BottomLeft  Position = "bottom-left"
	Bottom      Position = "bottom"
	BottomRight Position = "bottom-right"
)

// Positions lists every cell in row-major order.
var Positions = [9]Position{
	TopLeft, Top, TopRight,
	Left, Center, Right,
	BottomLeft, Bottom, BottomRight,
}

func (that Position) IsValid() bool {
	_, ok := positionIndex[that]
	return ok
}

type Piece string

const (
	NoPiece Piece = ""
	Dot     Piece = "dot"
	Cross   Piece = "cross"
)

// Other returns the opposing piece.
func (that Piece) Other() Piece {
	switch that {
	case Cross:
		return Dot
	case Dot:
		return Cross
	default:
		return NoPiece
	}
}

type WinningLine string

const (
	TopRow       WinningLine = "top-row"
	MiddleRow    WinningLine = "middle-row"
	BottomRow    WinningLine = "bottom-row"
	LeftColumn   WinningLine = "left-column"
	CenterColumn WinningLine = "center-column"
	RightColumn  WinningLine = "right-column"
	DownDiagonal WinningLine = "down-diagonal"
	UpDiagonal   WinningLine = "up-diagonal"
)

// WinCombos is scanned in this order by HasWon, so the first complete line wins.
var WinCombos = []struct {
	Line  WinningLine
	Cells [3]Position
}{
	{TopRow, [3]Position{TopLeft, Top, TopRight}},
	{MiddleRow, [3]Position{Left, Center, Right}},
	{BottomRow, [3]Position{BottomLeft, Bottom, BottomRight}},
	{LeftColumn, [3]Position{TopLeft, Left, BottomLeft}},
	{CenterColumn, [3]Position{Top, Center, Bottom}},
	{RightColumn, [3]Position{TopRight, Right, BottomRight}},
	{DownDiagonal, [3]Position{TopLeft, Center, BottomRight}},
	{UpDiagonal, [3]Position{BottomLeft, Center, TopRight}},
}

var positionIndex = func() map[Position]int {
	index := make(map[Position]int, len(Positions))
	for i, position := range Positions {
		index[position] = i
	}
	return index
}()

// Board is a 3x3 grid shared by the two players of one game. Only the lobby
// places pieces on it.
type Board struct {
	cells [9]Piece
}

func NewBoard() *Board {
	return &Board{}
}

func (that *Board) Reset() {
	that.cells = [9]Piece{}
}

// Place marks the cell unconditionally; the caller checks IsOccupied first.
func (that *Board) Place(position Position, piece Piece) {
	that.cells[positionIndex[position]] = piece
}

func (that *Board) IsOccupied(position Position) (Piece, bool) {
	piece := that.cells[positionIndex[position]]
	return piece, piece != NoPiece
}

func (that *Board) HasWon(piece Piece) (WinningLine, bool) {
	if piece == NoPiece {
		return "", false
	}

	for _, combo := range WinCombos {
		a, b, c := that.cell(combo.Cells[0]), that.cell(combo.Cells[1]), that.cell(combo.Cells[2])
		if a == piece && b == piece && c == piece {
			return combo.Line, true
		}
	}

	return "", false
}

func (that *Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell == NoPiece {
			return false
		}
	}

	return true
}

func (that *Board) IsTie() bool {
	if !that.IsFull() {
		return false
	}

	_, crossWon := that.HasWon(Cross)
	_, dotWon := that.HasWon(Dot)

	return !crossWon && !dotWon
}

// Cells returns a copy of the grid in the order of Positions.
func (that *Board) Cells() [9]Piece {
	return that.cells
}

func (that *Board) cell(position Position) Piece {
	return that.cells[positionIndex[position]]
}

