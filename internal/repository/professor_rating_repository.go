package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studysync/studysync-backend/internal/model"
)

type ProfessorRatingRepository interface {
	FindByKey(ctx context.Context, userID, professor, classCode string) (*model.ProfessorRating, error)
	FindByProfessor(ctx context.Context, professor string) ([]*model.ProfessorRating, error)
	FindByProfessorAndClassCode(ctx context.Context, professor, classCode string) ([]*model.ProfessorRating, error)
	FindByProfessorAndClassCodeAndMajor(ctx context.Context, professor, classCode, major string) ([]*model.ProfessorRating, error)
	Upsert(ctx context.Context, rating *model.ProfessorRating) error
}

type professorRatingRepository struct {
	db *pgxpool.Pool
}

func NewProfessorRatingRepository(db *pgxpool.Pool) ProfessorRatingRepository {
	return &professorRatingRepository{db: db}
}

const ratingColumns = `id, professor, class_code, rating, review, major, semester, user_id, submitted_at`

func scanRating(row pgx.Row) (*model.ProfessorRating, error) {
	pr := &model.ProfessorRating{}
	err := row.Scan(&pr.ID, &pr.Professor, &pr.ClassCode, &pr.Rating, &pr.Review,
		&pr.Major, &pr.Semester, &pr.UserID, &pr.SubmittedAt)
	if err != nil {
		return nil, err
	}
	return pr, nil
}

func (r *professorRatingRepository) queryRatings(ctx context.Context, query string, args ...interface{}) ([]*model.ProfessorRating, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []*model.ProfessorRating
	for rows.Next() {
		pr, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, pr)
	}
	return ratings, rows.Err()
}

func (r *professorRatingRepository) FindByKey(ctx context.Context, userID, professor, classCode string) (*model.ProfessorRating, error) {
	query := `SELECT ` + ratingColumns + ` FROM professor_ratings
		WHERE user_id = $1 AND professor = $2 AND class_code = $3`
	pr, err := scanRating(r.db.QueryRow(ctx, query, userID, professor, classCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return pr, nil
}

func (r *professorRatingRepository) FindByProfessor(ctx context.Context, professor string) ([]*model.ProfessorRating, error) {
	query := `SELECT ` + ratingColumns + ` FROM professor_ratings WHERE professor = $1`
	return r.queryRatings(ctx, query, professor)
}

func (r *professorRatingRepository) FindByProfessorAndClassCode(ctx context.Context, professor, classCode string) ([]*model.ProfessorRating, error) {
	query := `SELECT ` + ratingColumns + ` FROM professor_ratings
		WHERE professor = $1 AND class_code = $2`
	return r.queryRatings(ctx, query, professor, classCode)
}

func (r *professorRatingRepository) FindByProfessorAndClassCodeAndMajor(ctx context.Context, professor, classCode, major string) ([]*model.ProfessorRating, error) {
	query := `SELECT ` + ratingColumns + ` FROM professor_ratings
		WHERE professor = $1 AND class_code = $2 AND major = $3`
	return r.queryRatings(ctx, query, professor, classCode, major)
}

// Upsert inserts a rating or, when the (user_id, professor, class_code) key
// already exists, replaces the mutable fields of the existing row atomically.
// The surviving row keeps its original id and user_id.
func (r *professorRatingRepository) Upsert(ctx context.Context, rating *model.ProfessorRating) error {
	query := `
		INSERT INTO professor_ratings (id, professor, class_code, rating, review, major, semester, user_id, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, professor, class_code) DO UPDATE SET
			rating = EXCLUDED.rating,
			review = EXCLUDED.review,
			major = EXCLUDED.major,
			semester = EXCLUDED.semester,
			submitted_at = EXCLUDED.submitted_at
		RETURNING id
	`
	return r.db.QueryRow(ctx, query,
		rating.ID, rating.Professor, rating.ClassCode, rating.Rating, rating.Review,
		rating.Major, rating.Semester, rating.UserID, rating.SubmittedAt,
	).Scan(&rating.ID)
}
