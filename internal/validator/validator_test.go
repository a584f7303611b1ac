package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studysync/studysync-backend/internal/model"
)

func validate(t *testing.T, v interface{}) error {
	t.Helper()
	engine, ok := binding.Validator.Engine().(*govalidator.Validate)
	require.True(t, ok)
	return engine.Struct(v)
}

func validDifficultyRequest() model.ClassDifficultyRequest {
	return model.ClassDifficultyRequest{
		ClassCode:        "COMP 550",
		ClassName:        "Algorithms and Analysis",
		Major:            "Computer Science",
		DifficultyRating: 7,
		Professor:        "D. Plaisted",
		Semester:         "Fall 2024",
	}
}

func TestClassDifficultyRequestRules(t *testing.T) {
	Setup()

	t.Run("Valid", func(t *testing.T) {
		req := validDifficultyRequest()
		assert.NoError(t, validate(t, req))
	})

	t.Run("ClassCode", func(t *testing.T) {
		for _, code := range []string{"COMP 550", "MATH 231", "STOR 435L", "BIOL 1010"} {
			req := validDifficultyRequest()
			req.ClassCode = code
			assert.NoError(t, validate(t, req), "code %q should pass", code)
		}
		for _, code := range []string{"comp 550", "COMP550", "C 550", "COMP 55", "COMPUTER 550"} {
			req := validDifficultyRequest()
			req.ClassCode = code
			assert.Error(t, validate(t, req), "code %q should fail", code)
		}
	})

	t.Run("Semester", func(t *testing.T) {
		for _, sem := range []string{"Fall 2024", "Spring 2025", "Summer 2026"} {
			req := validDifficultyRequest()
			req.Semester = sem
			assert.NoError(t, validate(t, req), "semester %q should pass", sem)
		}
		for _, sem := range []string{"Winter 2024", "fall 2024", "Fall 24", "Fall"} {
			req := validDifficultyRequest()
			req.Semester = sem
			assert.Error(t, validate(t, req), "semester %q should fail", sem)
		}
	})

	t.Run("DifficultyRange", func(t *testing.T) {
		for _, rating := range []int{0, 11, -3} {
			req := validDifficultyRequest()
			req.DifficultyRating = rating
			assert.Error(t, validate(t, req), "rating %d should fail", rating)
		}
	})
}

func TestRegisterRequestRules(t *testing.T) {
	Setup()

	valid := model.RegisterRequest{
		Email:    "student@unc.edu",
		Password: "hunter22a",
		Major:    "Computer Science",
		GradYear: 2027,
	}
	assert.NoError(t, validate(t, valid))

	t.Run("EmailDomain", func(t *testing.T) {
		for _, email := range []string{"a@live.unc.edu", "b@ad.unc.edu"} {
			req := valid
			req.Email = email
			assert.NoError(t, validate(t, req), "email %q should pass", email)
		}
		req := valid
		req.Email = "student@gmail.com"
		assert.Error(t, validate(t, req))
	})

	t.Run("PasswordComposition", func(t *testing.T) {
		for _, pw := range []string{"lettersonly", "1234567890"} {
			req := valid
			req.Password = pw
			assert.Error(t, validate(t, req), "password %q should fail", pw)
		}
	})
}

func TestProfessorRatingRequestRules(t *testing.T) {
	Setup()

	valid := model.ProfessorRatingRequest{
		Professor: "D. Plaisted",
		ClassCode: "COMP 550",
		Rating:    4.5,
		Major:     "Computer Science",
		Semester:  "Fall 2024",
	}
	assert.NoError(t, validate(t, valid))

	t.Run("RatingRange", func(t *testing.T) {
		for _, rating := range []float64{0.5, 5.5} {
			req := valid
			req.Rating = rating
			assert.Error(t, validate(t, req), "rating %v should fail", rating)
		}
	})

	t.Run("ReviewOptional", func(t *testing.T) {
		req := valid
		req.Review = ""
		assert.NoError(t, validate(t, req))
	})
}
