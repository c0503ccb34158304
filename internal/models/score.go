package models

// ScoreRecord is one persisted score submission. Records are append-only:
// once written they are never updated or deleted, and the leaderboard is
// always derived from them at query time.
type ScoreRecord struct {
	ID        string `json:"id"`        // UUID assigned at creation
	UserID    string `json:"user_id"`   // stable subject ID from the auth provider
	UserName  string `json:"user_name"` // display name at submission time
	Score     int    `json:"score"`
	Timestamp int64  `json:"timestamp"` // milliseconds since epoch
}

// SubmitScoreRequest is the request body for score submission.
// Score is a pointer so a missing field can be told apart from zero.
type SubmitScoreRequest struct {
	Score *int `json:"score"`
}
