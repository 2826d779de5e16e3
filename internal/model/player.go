package model

// Player is a role tag only; legality never looks at it.
type Player struct {
	ID string `json:"id"`
}

type PlayerInfo struct {
	White Player `json:"white"`
	Black Player `json:"black"`
}
