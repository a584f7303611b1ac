package model

import "time"

// ProfessorRating is one user's quality rating (and optional review) for one
// professor teaching one class. At most one row exists per
// (user_id, professor, class_code).
type ProfessorRating struct {
	ID          string    `json:"id"`
	Professor   string    `json:"professor"`
	ClassCode   string    `json:"class_code"`
	Rating      float64   `json:"rating"` // 1.0–5.0, stored rounded to one decimal
	Review      string    `json:"review"`
	Major       string    `json:"major"`
	Semester    string    `json:"semester"`
	UserID      string    `json:"user_id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ProfessorRatingRequest is the payload for submitting a professor rating.
type ProfessorRatingRequest struct {
	Professor string  `json:"professor" binding:"required,max=100"`
	ClassCode string  `json:"class_code" binding:"required"`
	Rating    float64 `json:"rating" binding:"required,min=1,max=5"`
	Review    string  `json:"review" binding:"omitempty,max=1000"`
	Major     string  `json:"major" binding:"required,max=100"`
	Semester  string  `json:"semester" binding:"required,semester"`
}
