package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/studysync/studysync-backend/internal/config"
	"github.com/studysync/studysync-backend/internal/model"
	"github.com/studysync/studysync-backend/internal/repository"
)

// Common rating errors.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrMajorMismatch = errors.New("you can only submit ratings for your own major")
)

// RatingService is the aggregation and ranking engine. It owns both rating
// stores and consults the user directory for write scoping. It holds no
// mutable state between requests; every store handle is injected.
type RatingService struct {
	subRepo  repository.SubmissionRepository
	profRepo repository.ProfessorRatingRepository
	userRepo repository.UserRepository
	rdb      *redis.Client
	cacheTTL time.Duration
	log      zerolog.Logger
}

// NewRatingService creates a new RatingService. rdb may be nil, in which
// case aggregation reads always hit Postgres.
func NewRatingService(
	subRepo repository.SubmissionRepository,
	profRepo repository.ProfessorRatingRepository,
	userRepo repository.UserRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *RatingService {
	return &RatingService{
		subRepo:  subRepo,
		profRepo: profRepo,
		userRepo: userRepo,
		rdb:      rdb,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// round1 rounds to one decimal place, halves away from zero (4.25 -> 4.3).
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// SubmitClassDifficulty records one user's difficulty rating for a class.
// A repeat submission for the same (user, classCode, major) key replaces the
// earlier one; the row keeps its identity. The requested major must match
// the user's declared major.
func (s *RatingService) SubmitClassDifficulty(ctx context.Context, userID string, req *model.ClassDifficultyRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if req.Major != user.Major {
		return ErrMajorMismatch
	}

	sub := &model.Submission{
		ID:               uuid.New().String(),
		ClassCode:        strings.ToUpper(req.ClassCode),
		ClassName:        strings.TrimSpace(req.ClassName),
		Major:            req.Major,
		DifficultyRating: req.DifficultyRating,
		Professor:        strings.TrimSpace(req.Professor),
		Semester:         req.Semester,
		UserID:           userID,
		SubmittedAt:      time.Now(),
	}

	if err := s.subRepo.Upsert(ctx, sub); err != nil {
		return fmt.Errorf("save submission: %w", err)
	}

	s.invalidateMajor(ctx, req.Major)
	return nil
}

// SubmitProfessorRating records one user's quality rating for a professor
// teaching a class, keyed by (user, professor, classCode). The rating is
// stored rounded to one decimal place; the review defaults to empty.
func (s *RatingService) SubmitProfessorRating(ctx context.Context, userID string, req *model.ProfessorRatingRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if req.Major != user.Major {
		return ErrMajorMismatch
	}

	rating := &model.ProfessorRating{
		ID:          uuid.New().String(),
		Professor:   strings.TrimSpace(req.Professor),
		ClassCode:   req.ClassCode,
		Rating:      round1(req.Rating),
		Review:      strings.TrimSpace(req.Review),
		Major:       req.Major,
		Semester:    req.Semester,
		UserID:      userID,
		SubmittedAt: time.Now(),
	}

	if err := s.profRepo.Upsert(ctx, rating); err != nil {
		return fmt.Errorf("save rating: %w", err)
	}

	s.invalidateMajor(ctx, req.Major)
	return nil
}

// GetAllMajors returns the distinct majors across all submissions, sorted
// ascending. An empty store yields an empty list.
func (s *RatingService) GetAllMajors(ctx context.Context) ([]string, error) {
	key := config.CacheKey.MajorsListKey()
	var cached []string
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	majors, err := s.subRepo.DistinctMajors(ctx)
	if err != nil {
		return nil, fmt.Errorf("distinct majors: %w", err)
	}
	if majors == nil {
		majors = []string{}
	}

	s.cacheSet(ctx, key, majors)
	return majors, nil
}

// GetMajorStats summarizes a major: distinct class count, user head count
// and mean difficulty. An unknown major yields zero statistics, not an error.
func (s *RatingService) GetMajorStats(ctx context.Context, major string) (*model.MajorStats, error) {
	key := config.CacheKey.MajorStatsKey(major)
	var cached model.MajorStats
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	subs, err := s.subRepo.FindByMajor(ctx, major)
	if err != nil {
		return nil, fmt.Errorf("find submissions: %w", err)
	}

	classes := make(map[string]struct{})
	sum := 0
	for _, sub := range subs {
		classes[sub.ClassCode] = struct{}{}
		sum += sub.DifficultyRating
	}

	avg := 0.0
	if len(subs) > 0 {
		avg = round1(float64(sum) / float64(len(subs)))
	}

	userCount, err := s.userRepo.CountByMajor(ctx, major)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	stats := &model.MajorStats{
		Major:             major,
		TotalClasses:      len(classes),
		TotalUsers:        userCount,
		AverageDifficulty: avg,
	}

	s.cacheSet(ctx, key, stats)
	return stats, nil
}

// classGroup accumulates one (classCode, className, major) group during
// the ranking computation.
type classGroup struct {
	classCode  string
	className  string
	sum        int
	count      int
	professors map[string]struct{}
}

// GetClassRankings computes a major's difficulty ranking: submissions are
// grouped by (classCode, className, major), ordered by average difficulty
// descending (ties broken by classCode then className ascending), truncated
// to limit, and each retained class is annotated with a professor
// sub-ranking. A non-positive limit yields an empty list.
func (s *RatingService) GetClassRankings(ctx context.Context, major string, limit int) ([]model.ClassRanking, error) {
	if limit <= 0 {
		return []model.ClassRanking{}, nil
	}

	key := config.CacheKey.ClassRankingsKey(major, limit)
	var cached []model.ClassRanking
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	subs, err := s.subRepo.FindByMajor(ctx, major)
	if err != nil {
		return nil, fmt.Errorf("find submissions: %w", err)
	}

	groups := make(map[string]*classGroup)
	for _, sub := range subs {
		k := sub.ClassCode + "\x00" + sub.ClassName
		g, ok := groups[k]
		if !ok {
			g = &classGroup{
				classCode:  sub.ClassCode,
				className:  sub.ClassName,
				professors: make(map[string]struct{}),
			}
			groups[k] = g
		}
		g.sum += sub.DifficultyRating
		g.count++
		g.professors[sub.Professor] = struct{}{}
	}

	ordered := make([]*classGroup, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		avgA := round1(float64(a.sum) / float64(a.count))
		avgB := round1(float64(b.sum) / float64(b.count))
		if avgA != avgB {
			return avgA > avgB
		}
		if a.classCode != b.classCode {
			return a.classCode < b.classCode
		}
		return a.className < b.className
	})

	if len(ordered) > limit {
		ordered = ordered[:limit]
	}

	rankings := make([]model.ClassRanking, 0, len(ordered))
	for _, g := range ordered {
		professors, err := s.professorStats(ctx, g, major)
		if err != nil {
			return nil, err
		}
		rankings = append(rankings, model.ClassRanking{
			ClassCode:         g.classCode,
			ClassName:         g.className,
			Major:             major,
			AverageDifficulty: round1(float64(g.sum) / float64(g.count)),
			TotalSubmissions:  g.count,
			Professors:        professors,
		})
	}

	s.cacheSet(ctx, key, rankings)
	return rankings, nil
}

// professorStats builds the professor sub-ranking for one class group:
// average quality rating descending, ties broken by name ascending.
// Professors without any quality ratings appear with a 0.0 average.
func (s *RatingService) professorStats(ctx context.Context, g *classGroup, major string) ([]model.ProfessorStats, error) {
	stats := make([]model.ProfessorStats, 0, len(g.professors))
	for name := range g.professors {
		ratings, err := s.profRepo.FindByProfessorAndClassCodeAndMajor(ctx, name, g.classCode, major)
		if err != nil {
			return nil, fmt.Errorf("find professor ratings: %w", err)
		}

		if len(ratings) == 0 {
			stats = append(stats, model.ProfessorStats{Name: name, AvgRating: 0.0, RatingCount: 0})
			continue
		}

		sum := 0.0
		for _, r := range ratings {
			sum += r.Rating
		}
		stats = append(stats, model.ProfessorStats{
			Name:        name,
			AvgRating:   round1(sum / float64(len(ratings))),
			RatingCount: len(ratings),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].AvgRating != stats[j].AvgRating {
			return stats[i].AvgRating > stats[j].AvgRating
		}
		return stats[i].Name < stats[j].Name
	})

	return stats, nil
}

// GetProfessorRatings returns the raw rating records for a professor,
// optionally narrowed to one class. No aggregation is performed.
func (s *RatingService) GetProfessorRatings(ctx context.Context, professor, classCode string) ([]*model.ProfessorRating, error) {
	var (
		ratings []*model.ProfessorRating
		err     error
	)
	if classCode != "" {
		ratings, err = s.profRepo.FindByProfessorAndClassCode(ctx, professor, classCode)
	} else {
		ratings, err = s.profRepo.FindByProfessor(ctx, professor)
	}
	if err != nil {
		return nil, fmt.Errorf("find professor ratings: %w", err)
	}
	if ratings == nil {
		ratings = []*model.ProfessorRating{}
	}
	return ratings, nil
}

// ────────────────────────────────────────────────────────────────────────────
// Redis read-through cache (best effort)
// ────────────────────────────────────────────────────────────────────────────

// cacheGet loads a cached JSON value into dst. Returns false on miss,
// disabled cache, or any Redis/decode failure.
func (s *RatingService) cacheGet(ctx context.Context, key string, dst interface{}) bool {
	if s.rdb == nil {
		return false
	}
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Debug().Err(err).Str("key", key).Msg("cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.log.Debug().Err(err).Str("key", key).Msg("cache decode failed")
		return false
	}
	return true
}

// cacheSet stores a JSON value with the configured TTL. Failures are logged
// and otherwise ignored.
func (s *RatingService) cacheSet(ctx context.Context, key string, v interface{}) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Debug().Err(err).Str("key", key).Msg("cache encode failed")
		return
	}
	if err := s.rdb.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		s.log.Debug().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// invalidateMajor drops every cached aggregate the major's writes can
// affect: the majors list, the major's stats, and all of its ranking
// entries regardless of limit.
func (s *RatingService) invalidateMajor(ctx context.Context, major string) {
	if s.rdb == nil {
		return
	}

	keys := []string{
		config.CacheKey.MajorsListKey(),
		config.CacheKey.MajorStatsKey(major),
	}

	iter := s.rdb.Scan(ctx, 0, config.CacheKey.ClassRankingsPattern(major), 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.log.Debug().Err(err).Str("major", major).Msg("cache scan failed")
	}

	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.log.Debug().Err(err).Str("major", major).Msg("cache invalidation failed")
	}
}
