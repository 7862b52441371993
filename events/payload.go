package events

// CellPayload identifies a grid cell
type CellPayload struct {
	Cell int
}

// RoundSuccessPayload carries the score after a completed round
type RoundSuccessPayload struct {
	Score     int
	HighScore int
	SessionID string
}

// FailurePayload carries the final score of a terminated session
type FailurePayload struct {
	FinalScore int
	SessionID  string
}
