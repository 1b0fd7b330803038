package entity

const (
	EmptyCell = ""

	DefaultGridSize = 3
)

// Competitor identifies a player by board symbol and display color.
type Competitor struct {
	Symbol string `json:"symbol"`
	Color  string `json:"color"`
}

// Cell is a single grid position; Symbol stays empty until a competitor claims it.
type Cell struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Symbol string `json:"symbol,omitempty"`
}

// DefaultCompetitors returns the standard two-player rotation.
func DefaultCompetitors() []Competitor {
	return []Competitor{
		{Symbol: "X", Color: "blue"},
		{Symbol: "O", Color: "green"},
	}
}
