package entity

// Solution is a solved position: the move the search picked for Side on Board.
type Solution struct {
	Board Board `json:"board"`
	Side  Mark  `json:"side"`
	Move  Move  `json:"move"`
}

// Key identifies a solved position in a cache.
func (that *Solution) Key() string {
	return SolutionKey(that.Board, that.Side)
}

func SolutionKey(board Board, side Mark) string {
	return string(side) + ":" + board.String()
}
