package model

// ProfessorStats is one professor's aggregated position inside a class
// ranking. A professor with no ratings carries AvgRating 0.0 and
// RatingCount 0; the ranking does not distinguish that from a genuine
// 0.0 average.
type ProfessorStats struct {
	Name        string  `json:"name"`
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int     `json:"rating_count"`
}

// ClassRanking is one class's entry in a major's difficulty ranking,
// annotated with its professor sub-ranking.
type ClassRanking struct {
	ClassCode         string           `json:"class_code"`
	ClassName         string           `json:"class_name"`
	Major             string           `json:"major"`
	AverageDifficulty float64          `json:"average_difficulty"`
	TotalSubmissions  int              `json:"total_submissions"`
	Professors        []ProfessorStats `json:"professors"`
}

// MajorStats summarizes one major across all of its submissions.
type MajorStats struct {
	Major             string  `json:"major"`
	TotalClasses      int     `json:"total_classes"`
	TotalUsers        int     `json:"total_users"`
	AverageDifficulty float64 `json:"average_difficulty"`
}
