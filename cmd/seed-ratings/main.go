package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/studysync/studysync-backend/internal/config"
	"github.com/studysync/studysync-backend/internal/database"
	"github.com/studysync/studysync-backend/internal/logger"
	"github.com/studysync/studysync-backend/internal/model"
	"github.com/studysync/studysync-backend/internal/repository"
	"github.com/studysync/studysync-backend/internal/service"
	"golang.org/x/crypto/bcrypt"
)

// seedClass describes one demo class with its difficulty votes and an
// optional professor quality rating per vote.
type seedClass struct {
	code       string
	name       string
	professor  string
	difficulty []int
	quality    []float64
}

var seedMajors = map[string][]seedClass{
	"Computer Science": {
		{"COMP 550", "Algorithms and Analysis", "D. Plaisted", []int{9, 8, 10}, []float64{4.5, 4.0, 3.5}},
		{"COMP 211", "Systems Fundamentals", "M. Aikat", []int{6, 7}, []float64{4.8, 4.6}},
		{"COMP 110", "Introduction to Programming", "K. Jordan", []int{3, 2, 4}, []float64{4.9}},
	},
	"Mathematics": {
		{"MATH 233", "Calculus of Functions of Several Variables", "L. Reed", []int{7, 8}, []float64{3.9, 4.1}},
		{"MATH 381", "Discrete Mathematics", "P. Shah", []int{5}, nil},
	},
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	subRepo := repository.NewSubmissionRepository(pool)
	profRepo := repository.NewProfessorRatingRepository(pool)

	// Seeding goes through the engine so all write invariants apply.
	// Redis is not needed here; cache misses simply recompute.
	ratingService := service.NewRatingService(subRepo, profRepo, userRepo, nil, 0, log)

	fmt.Println("=== Seeding Demo Ratings ===")

	hash, err := bcrypt.GenerateFromPassword([]byte("seed-password1"), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash seed password")
	}

	for major, classes := range seedMajors {
		voters := seedVoterCount(classes)
		userIDs := make([]string, 0, voters)

		for i := 0; i < voters; i++ {
			user := &model.User{
				ID:           uuid.New().String(),
				Email:        fmt.Sprintf("seed-%s@unc.edu", uuid.New().String()[:8]),
				PasswordHash: string(hash),
				Major:        major,
				GradYear:     2027,
				DisplayName:  fmt.Sprintf("%s 2027", major),
				IsActive:     true,
			}
			if err := userRepo.Create(ctx, user); err != nil {
				log.Fatal().Err(err).Str("major", major).Msg("Failed to create seed user")
			}
			userIDs = append(userIDs, user.ID)
		}

		for _, class := range classes {
			for i, difficulty := range class.difficulty {
				req := &model.ClassDifficultyRequest{
					ClassCode:        class.code,
					ClassName:        class.name,
					Major:            major,
					DifficultyRating: difficulty,
					Professor:        class.professor,
					Semester:         "Fall 2025",
				}
				if err := ratingService.SubmitClassDifficulty(ctx, userIDs[i], req); err != nil {
					log.Fatal().Err(err).Str("class", class.code).Msg("Failed to seed submission")
				}
			}

			for i, quality := range class.quality {
				req := &model.ProfessorRatingRequest{
					Professor: class.professor,
					ClassCode: class.code,
					Rating:    quality,
					Review:    "Seeded demo review",
					Major:     major,
					Semester:  "Fall 2025",
				}
				if err := ratingService.SubmitProfessorRating(ctx, userIDs[i], req); err != nil {
					log.Fatal().Err(err).Str("class", class.code).Msg("Failed to seed professor rating")
				}
			}
		}

		fmt.Printf("Seeded %d classes for %s (%d users)\n", len(classes), major, voters)
	}

	fmt.Println("Done.")
}

// seedVoterCount returns the number of users needed so every class's votes
// come from distinct users (the upsert key would collapse repeats otherwise).
func seedVoterCount(classes []seedClass) int {
	max := 0
	for _, class := range classes {
		if len(class.difficulty) > max {
			max = len(class.difficulty)
		}
		if len(class.quality) > max {
			max = len(class.quality)
		}
	}
	return max
}
