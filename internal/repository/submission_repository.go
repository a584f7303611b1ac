package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studysync/studysync-backend/internal/model"
)

type SubmissionRepository interface {
	FindByKey(ctx context.Context, userID, classCode, major string) (*model.Submission, error)
	FindByMajor(ctx context.Context, major string) ([]*model.Submission, error)
	Upsert(ctx context.Context, sub *model.Submission) error
	DistinctMajors(ctx context.Context) ([]string, error)
}

type submissionRepository struct {
	db *pgxpool.Pool
}

func NewSubmissionRepository(db *pgxpool.Pool) SubmissionRepository {
	return &submissionRepository{db: db}
}

const submissionColumns = `id, class_code, class_name, major, difficulty_rating, professor, semester, user_id, submitted_at`

func scanSubmission(row pgx.Row) (*model.Submission, error) {
	s := &model.Submission{}
	err := row.Scan(&s.ID, &s.ClassCode, &s.ClassName, &s.Major, &s.DifficultyRating,
		&s.Professor, &s.Semester, &s.UserID, &s.SubmittedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *submissionRepository) FindByKey(ctx context.Context, userID, classCode, major string) (*model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM class_submissions
		WHERE user_id = $1 AND class_code = $2 AND major = $3`
	s, err := scanSubmission(r.db.QueryRow(ctx, query, userID, classCode, major))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func (r *submissionRepository) FindByMajor(ctx context.Context, major string) ([]*model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM class_submissions WHERE major = $1`
	rows, err := r.db.Query(ctx, query, major)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*model.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// Upsert inserts a submission or, when the (user_id, class_code, major) key
// already exists, replaces the mutable fields of the existing row in a single
// atomic statement. The surviving row keeps its original id and user_id.
func (r *submissionRepository) Upsert(ctx context.Context, sub *model.Submission) error {
	query := `
		INSERT INTO class_submissions (id, class_code, class_name, major, difficulty_rating, professor, semester, user_id, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, class_code, major) DO UPDATE SET
			class_name = EXCLUDED.class_name,
			difficulty_rating = EXCLUDED.difficulty_rating,
			professor = EXCLUDED.professor,
			semester = EXCLUDED.semester,
			submitted_at = EXCLUDED.submitted_at
		RETURNING id
	`
	return r.db.QueryRow(ctx, query,
		sub.ID, sub.ClassCode, sub.ClassName, sub.Major, sub.DifficultyRating,
		sub.Professor, sub.Semester, sub.UserID, sub.SubmittedAt,
	).Scan(&sub.ID)
}

func (r *submissionRepository) DistinctMajors(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT major FROM class_submissions ORDER BY major ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var majors []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		majors = append(majors, m)
	}
	return majors, rows.Err()
}
