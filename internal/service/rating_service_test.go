package service

import (
	"context"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studysync/studysync-backend/internal/model"
)

// ─── In-memory store fakes ──────────────────────────────────────────────────

type fakeUserStore struct {
	users map[string]*model.User
}

func newFakeUserStore(users ...*model.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*model.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (*model.User, error) {
	return s.users[id], nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := s.FindByEmail(ctx, email)
	return u != nil, nil
}

func (s *fakeUserStore) Create(_ context.Context, user *model.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) CountByMajor(_ context.Context, major string) (int, error) {
	n := 0
	for _, u := range s.users {
		if u.Major == major {
			n++
		}
	}
	return n, nil
}

type fakeSubmissionStore struct {
	byKey map[[3]string]*model.Submission
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{byKey: make(map[[3]string]*model.Submission)}
}

func (s *fakeSubmissionStore) FindByKey(_ context.Context, userID, classCode, major string) (*model.Submission, error) {
	return s.byKey[[3]string{userID, classCode, major}], nil
}

func (s *fakeSubmissionStore) FindByMajor(_ context.Context, major string) ([]*model.Submission, error) {
	var subs []*model.Submission
	for _, sub := range s.byKey {
		if sub.Major == major {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

// Upsert mirrors the SQL ON CONFLICT semantics: the surviving row keeps its
// identity and user, only mutable fields are replaced.
func (s *fakeSubmissionStore) Upsert(_ context.Context, sub *model.Submission) error {
	key := [3]string{sub.UserID, sub.ClassCode, sub.Major}
	if existing, ok := s.byKey[key]; ok {
		existing.ClassName = sub.ClassName
		existing.DifficultyRating = sub.DifficultyRating
		existing.Professor = sub.Professor
		existing.Semester = sub.Semester
		existing.SubmittedAt = sub.SubmittedAt
		sub.ID = existing.ID
		return nil
	}
	cp := *sub
	s.byKey[key] = &cp
	return nil
}

func (s *fakeSubmissionStore) DistinctMajors(_ context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	for _, sub := range s.byKey {
		seen[sub.Major] = struct{}{}
	}
	majors := make([]string, 0, len(seen))
	for m := range seen {
		majors = append(majors, m)
	}
	sort.Strings(majors)
	return majors, nil
}

type fakeProfessorRatingStore struct {
	byKey map[[3]string]*model.ProfessorRating
}

func newFakeProfessorRatingStore() *fakeProfessorRatingStore {
	return &fakeProfessorRatingStore{byKey: make(map[[3]string]*model.ProfessorRating)}
}

func (s *fakeProfessorRatingStore) FindByKey(_ context.Context, userID, professor, classCode string) (*model.ProfessorRating, error) {
	return s.byKey[[3]string{userID, professor, classCode}], nil
}

func (s *fakeProfessorRatingStore) filter(pred func(*model.ProfessorRating) bool) []*model.ProfessorRating {
	var out []*model.ProfessorRating
	for _, pr := range s.byKey {
		if pred(pr) {
			out = append(out, pr)
		}
	}
	return out
}

func (s *fakeProfessorRatingStore) FindByProfessor(_ context.Context, professor string) ([]*model.ProfessorRating, error) {
	return s.filter(func(pr *model.ProfessorRating) bool {
		return pr.Professor == professor
	}), nil
}

func (s *fakeProfessorRatingStore) FindByProfessorAndClassCode(_ context.Context, professor, classCode string) ([]*model.ProfessorRating, error) {
	return s.filter(func(pr *model.ProfessorRating) bool {
		return pr.Professor == professor && pr.ClassCode == classCode
	}), nil
}

func (s *fakeProfessorRatingStore) FindByProfessorAndClassCodeAndMajor(_ context.Context, professor, classCode, major string) ([]*model.ProfessorRating, error) {
	return s.filter(func(pr *model.ProfessorRating) bool {
		return pr.Professor == professor && pr.ClassCode == classCode && pr.Major == major
	}), nil
}

func (s *fakeProfessorRatingStore) Upsert(_ context.Context, rating *model.ProfessorRating) error {
	key := [3]string{rating.UserID, rating.Professor, rating.ClassCode}
	if existing, ok := s.byKey[key]; ok {
		existing.Rating = rating.Rating
		existing.Review = rating.Review
		existing.Major = rating.Major
		existing.Semester = rating.Semester
		existing.SubmittedAt = rating.SubmittedAt
		rating.ID = existing.ID
		return nil
	}
	cp := *rating
	s.byKey[key] = &cp
	return nil
}

// ─── Test helpers ───────────────────────────────────────────────────────────

type engineFixture struct {
	svc   *RatingService
	users *fakeUserStore
	subs  *fakeSubmissionStore
	profs *fakeProfessorRatingStore
}

func newEngine(users ...*model.User) *engineFixture {
	f := &engineFixture{
		users: newFakeUserStore(users...),
		subs:  newFakeSubmissionStore(),
		profs: newFakeProfessorRatingStore(),
	}
	f.svc = NewRatingService(f.subs, f.profs, f.users, nil, 0, zerolog.Nop())
	return f
}

func csUser(id string) *model.User {
	return &model.User{ID: id, Email: id + "@unc.edu", Major: "Computer Science", IsActive: true}
}

func (f *engineFixture) submitDifficulty(t *testing.T, userID, classCode string, rating int) {
	t.Helper()
	err := f.svc.SubmitClassDifficulty(context.Background(), userID, &model.ClassDifficultyRequest{
		ClassCode:        classCode,
		ClassName:        classCode + " Lecture",
		Major:            "Computer Science",
		DifficultyRating: rating,
		Professor:        "A. Turing",
		Semester:         "Fall 2025",
	})
	require.NoError(t, err)
}

// ─── Write paths ────────────────────────────────────────────────────────────

func TestSubmitClassDifficulty_NormalizesFields(t *testing.T) {
	f := newEngine(csUser("u1"))

	err := f.svc.SubmitClassDifficulty(context.Background(), "u1", &model.ClassDifficultyRequest{
		ClassCode:        "comp 550",
		ClassName:        "  Algorithms  ",
		Major:            "Computer Science",
		DifficultyRating: 8,
		Professor:        " D. Plaisted ",
		Semester:         "Fall 2025",
	})
	require.NoError(t, err)

	sub, err := f.subs.FindByKey(context.Background(), "u1", "COMP 550", "Computer Science")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "COMP 550", sub.ClassCode)
	assert.Equal(t, "Algorithms", sub.ClassName)
	assert.Equal(t, "D. Plaisted", sub.Professor)
	assert.Equal(t, 8, sub.DifficultyRating)
	assert.NotEmpty(t, sub.ID)
}

func TestSubmitClassDifficulty_RepeatReplacesRecord(t *testing.T) {
	f := newEngine(csUser("u1"))

	f.submitDifficulty(t, "u1", "COMP 550", 4)
	first, err := f.subs.FindByKey(context.Background(), "u1", "COMP 550", "Computer Science")
	require.NoError(t, err)

	f.submitDifficulty(t, "u1", "COMP 550", 9)

	subs, err := f.subs.FindByMajor(context.Background(), "Computer Science")
	require.NoError(t, err)
	require.Len(t, subs, 1, "repeat submission must not create a second record")
	assert.Equal(t, 9, subs[0].DifficultyRating)
	assert.Equal(t, first.ID, subs[0].ID, "the surviving record keeps its identity")
	assert.Equal(t, "u1", subs[0].UserID)
}

func TestSubmitClassDifficulty_UnknownUser(t *testing.T) {
	f := newEngine()

	err := f.svc.SubmitClassDifficulty(context.Background(), "ghost", &model.ClassDifficultyRequest{
		ClassCode:        "COMP 550",
		ClassName:        "Algorithms",
		Major:            "Computer Science",
		DifficultyRating: 5,
		Professor:        "D. Plaisted",
		Semester:         "Fall 2025",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSubmitClassDifficulty_MajorMismatch(t *testing.T) {
	mathUser := &model.User{ID: "m1", Email: "m1@unc.edu", Major: "Math", IsActive: true}
	f := newEngine(mathUser)

	err := f.svc.SubmitClassDifficulty(context.Background(), "m1", &model.ClassDifficultyRequest{
		ClassCode:        "COMP 550",
		ClassName:        "Algorithms",
		Major:            "Computer Science",
		DifficultyRating: 5,
		Professor:        "D. Plaisted",
		Semester:         "Fall 2025",
	})
	assert.ErrorIs(t, err, ErrMajorMismatch)

	subs, err := f.subs.FindByMajor(context.Background(), "Computer Science")
	require.NoError(t, err)
	assert.Empty(t, subs, "a rejected write must leave no record")
}

func TestSubmitProfessorRating_RoundsHalfAwayFromZero(t *testing.T) {
	f := newEngine(csUser("u1"))

	err := f.svc.SubmitProfessorRating(context.Background(), "u1", &model.ProfessorRatingRequest{
		Professor: "A. Turing",
		ClassCode: "COMP 550",
		Rating:    4.27,
		Major:     "Computer Science",
		Semester:  "Fall 2025",
	})
	require.NoError(t, err)

	pr, err := f.profs.FindByKey(context.Background(), "u1", "A. Turing", "COMP 550")
	require.NoError(t, err)
	require.NotNil(t, pr)
	assert.Equal(t, 4.3, pr.Rating)
	assert.Equal(t, "", pr.Review, "absent review stored as empty string")
}

func TestSubmitProfessorRating_RepeatReplacesRecord(t *testing.T) {
	f := newEngine(csUser("u1"))

	for _, rating := range []float64{2.0, 4.5} {
		err := f.svc.SubmitProfessorRating(context.Background(), "u1", &model.ProfessorRatingRequest{
			Professor: "A. Turing",
			ClassCode: "COMP 550",
			Rating:    rating,
			Review:    " great lectures ",
			Major:     "Computer Science",
			Semester:  "Fall 2025",
		})
		require.NoError(t, err)
	}

	ratings, err := f.profs.FindByProfessor(context.Background(), "A. Turing")
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, 4.5, ratings[0].Rating)
	assert.Equal(t, "great lectures", ratings[0].Review)
}

// ─── Aggregation reads ──────────────────────────────────────────────────────

func TestGetAllMajors_SortedAscending(t *testing.T) {
	users := []*model.User{
		{ID: "u1", Major: "Math", IsActive: true},
		{ID: "u2", Major: "CS", IsActive: true},
	}
	f := newEngine(users...)

	// Insertion order deliberately reversed relative to expected output.
	err := f.svc.SubmitClassDifficulty(context.Background(), "u1", &model.ClassDifficultyRequest{
		ClassCode: "MATH 233", ClassName: "Calc III", Major: "Math",
		DifficultyRating: 7, Professor: "L. Reed", Semester: "Fall 2025",
	})
	require.NoError(t, err)
	err = f.svc.SubmitClassDifficulty(context.Background(), "u2", &model.ClassDifficultyRequest{
		ClassCode: "COMP 110", ClassName: "Intro", Major: "CS",
		DifficultyRating: 3, Professor: "K. Jordan", Semester: "Fall 2025",
	})
	require.NoError(t, err)

	majors, err := f.svc.GetAllMajors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"CS", "Math"}, majors)
}

func TestGetAllMajors_EmptyStore(t *testing.T) {
	f := newEngine()

	majors, err := f.svc.GetAllMajors(context.Background())
	require.NoError(t, err)
	assert.Empty(t, majors)
}

func TestGetMajorStats(t *testing.T) {
	users := []*model.User{
		csUser("u1"), csUser("u2"), csUser("u3"),
		{ID: "m1", Major: "Math", IsActive: true}, // different major, still counted only for Math
	}
	f := newEngine(users...)

	f.submitDifficulty(t, "u1", "COMP 550", 9)
	f.submitDifficulty(t, "u2", "COMP 550", 8)
	f.submitDifficulty(t, "u1", "COMP 110", 3)

	stats, err := f.svc.GetMajorStats(context.Background(), "Computer Science")
	require.NoError(t, err)
	assert.Equal(t, "Computer Science", stats.Major)
	assert.Equal(t, 2, stats.TotalClasses)
	assert.Equal(t, 3, stats.TotalUsers, "counts declared users, not submitters")
	assert.Equal(t, 6.7, stats.AverageDifficulty, "mean of 9,8,3 rounded to one decimal")
}

func TestGetMajorStats_UnknownMajor(t *testing.T) {
	f := newEngine(csUser("u1"))

	stats, err := f.svc.GetMajorStats(context.Background(), "Basket Weaving")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalClasses)
	assert.Equal(t, 0, stats.TotalUsers)
	assert.Equal(t, 0.0, stats.AverageDifficulty)
}

func TestGetClassRankings_OrderAndTieBreak(t *testing.T) {
	f := newEngine(csUser("u1"), csUser("u2"))

	// A avg 6.0; B and C tie at avg 9.0 — tie resolved by class code.
	f.submitDifficulty(t, "u1", "COMP 110", 6)
	f.submitDifficulty(t, "u1", "COMP 550", 9)
	f.submitDifficulty(t, "u1", "COMP 421", 8)
	f.submitDifficulty(t, "u2", "COMP 421", 10)

	rankings, err := f.svc.GetClassRankings(context.Background(), "Computer Science", 10)
	require.NoError(t, err)
	require.Len(t, rankings, 3)
	assert.Equal(t, "COMP 421", rankings[0].ClassCode)
	assert.Equal(t, "COMP 550", rankings[1].ClassCode)
	assert.Equal(t, "COMP 110", rankings[2].ClassCode)
	assert.Equal(t, 9.0, rankings[0].AverageDifficulty)
	assert.Equal(t, 2, rankings[0].TotalSubmissions)
}

func TestGetClassRankings_LimitEnforced(t *testing.T) {
	f := newEngine(csUser("u1"))

	codes := []string{"COMP 110", "COMP 211", "COMP 301", "COMP 421", "COMP 550"}
	for i, code := range codes {
		f.submitDifficulty(t, "u1", code, i+2)
	}

	rankings, err := f.svc.GetClassRankings(context.Background(), "Computer Science", 2)
	require.NoError(t, err)
	require.Len(t, rankings, 2)
	// The two hardest classes survive the cut.
	assert.Equal(t, "COMP 550", rankings[0].ClassCode)
	assert.Equal(t, "COMP 421", rankings[1].ClassCode)
}

func TestGetClassRankings_NonPositiveLimit(t *testing.T) {
	f := newEngine(csUser("u1"))
	f.submitDifficulty(t, "u1", "COMP 550", 9)

	for _, limit := range []int{0, -5} {
		rankings, err := f.svc.GetClassRankings(context.Background(), "Computer Science", limit)
		require.NoError(t, err)
		assert.Empty(t, rankings)
	}
}

func TestGetClassRankings_EmptyMajor(t *testing.T) {
	f := newEngine()

	rankings, err := f.svc.GetClassRankings(context.Background(), "Computer Science", 10)
	require.NoError(t, err)
	assert.Empty(t, rankings)
}

func TestGetClassRankings_ProfessorSubRanking(t *testing.T) {
	f := newEngine(csUser("u1"), csUser("u2"))

	// Two submissions for the same class naming two professors.
	err := f.svc.SubmitClassDifficulty(context.Background(), "u1", &model.ClassDifficultyRequest{
		ClassCode: "COMP 550", ClassName: "Algorithms", Major: "Computer Science",
		DifficultyRating: 9, Professor: "P1", Semester: "Fall 2025",
	})
	require.NoError(t, err)
	err = f.svc.SubmitClassDifficulty(context.Background(), "u2", &model.ClassDifficultyRequest{
		ClassCode: "COMP 550", ClassName: "Algorithms", Major: "Computer Science",
		DifficultyRating: 7, Professor: "P2", Semester: "Fall 2025",
	})
	require.NoError(t, err)

	// Quality ratings exist only for P1.
	for userID, rating := range map[string]float64{"u1": 4.0, "u2": 5.0} {
		err := f.svc.SubmitProfessorRating(context.Background(), userID, &model.ProfessorRatingRequest{
			Professor: "P1", ClassCode: "COMP 550", Rating: rating,
			Major: "Computer Science", Semester: "Fall 2025",
		})
		require.NoError(t, err)
	}

	rankings, err := f.svc.GetClassRankings(context.Background(), "Computer Science", 10)
	require.NoError(t, err)
	require.Len(t, rankings, 1)

	profs := rankings[0].Professors
	require.Len(t, profs, 2)
	assert.Equal(t, model.ProfessorStats{Name: "P1", AvgRating: 4.5, RatingCount: 2}, profs[0])
	assert.Equal(t, model.ProfessorStats{Name: "P2", AvgRating: 0.0, RatingCount: 0}, profs[1])
}

func TestGetProfessorRatings(t *testing.T) {
	f := newEngine(csUser("u1"), csUser("u2"))

	seed := []struct {
		userID    string
		classCode string
		rating    float64
	}{
		{"u1", "COMP 550", 4.0},
		{"u2", "COMP 550", 3.0},
		{"u1", "COMP 110", 5.0},
	}
	for _, s := range seed {
		err := f.svc.SubmitProfessorRating(context.Background(), s.userID, &model.ProfessorRatingRequest{
			Professor: "A. Turing", ClassCode: s.classCode, Rating: s.rating,
			Major: "Computer Science", Semester: "Fall 2025",
		})
		require.NoError(t, err)
	}

	all, err := f.svc.GetProfessorRatings(context.Background(), "A. Turing", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	scoped, err := f.svc.GetProfessorRatings(context.Background(), "A. Turing", "COMP 550")
	require.NoError(t, err)
	assert.Len(t, scoped, 2)

	none, err := f.svc.GetProfessorRatings(context.Background(), "Nobody", "")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestRound1(t *testing.T) {
	cases := map[float64]float64{
		4.27:  4.3,
		4.25:  4.3, // half rounds away from zero
		4.24:  4.2,
		-4.25: -4.3,
		0.0:   0.0,
	}
	for in, want := range cases {
		assert.Equal(t, want, round1(in), "round1(%v)", in)
	}
}
