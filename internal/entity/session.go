package entity

const (
	StatusReady      = "ready"
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusDraw       = "draw"
)

// Session is the stored state of one board between clicks. The board is
// row-major, one symbol per cell, empty string for unclaimed cells.
type Session struct {
	ID           string       `json:"id"`
	GridSize     int          `json:"grid_size"`
	Competitors  []Competitor `json:"competitors"`
	Board        []string     `json:"board"`
	ActiveIndex  int          `json:"active_index"`
	Status       string       `json:"status"`
	Winner       string       `json:"winner,omitempty"`
	WinningCells []Cell       `json:"winning_cells,omitempty"`
}

func (that *Session) IsReady() bool {
	return that.Status == StatusReady
}

func (that *Session) IsInProgress() bool {
	return that.Status == StatusInProgress
}

// IsFinished reports whether the round reached a terminal state; only a
// restart makes the session playable again.
func (that *Session) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}

// ActiveCompetitor returns the competitor whose turn it is.
func (that *Session) ActiveCompetitor() Competitor {
	return that.Competitors[that.ActiveIndex]
}
