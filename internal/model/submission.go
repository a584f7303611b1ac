package model

import "time"

// Submission is one user's difficulty rating for one class within one major.
// At most one row exists per (user_id, class_code, major); a later write
// replaces the mutable fields of the existing row.
type Submission struct {
	ID               string    `json:"id"`
	ClassCode        string    `json:"class_code"`
	ClassName        string    `json:"class_name"`
	Major            string    `json:"major"`
	DifficultyRating int       `json:"difficulty_rating"`
	Professor        string    `json:"professor"`
	Semester         string    `json:"semester"`
	UserID           string    `json:"user_id"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

// ClassDifficultyRequest is the payload for submitting a class difficulty rating.
type ClassDifficultyRequest struct {
	ClassCode        string `json:"class_code" binding:"required,classcode"`
	ClassName        string `json:"class_name" binding:"required,max=200"`
	Major            string `json:"major" binding:"required,max=100"`
	DifficultyRating int    `json:"difficulty_rating" binding:"required,min=1,max=10"`
	Professor        string `json:"professor" binding:"required,max=100"`
	Semester         string `json:"semester" binding:"required,semester"`
}
