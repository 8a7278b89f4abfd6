package entity

// Player is one of the two seats at the board. Players never change during a game.
type Player struct {
	Name string `json:"name"`
	Mark Cell   `json:"mark"`
}
