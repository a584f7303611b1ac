package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// trans is the singleton English translator for validation errors.
var trans ut.Translator

var (
	classCodeRe = regexp.MustCompile(`^[A-Z]{2,4}\s+\d{3,4}[A-Z]?$`)
	semesterRe  = regexp.MustCompile(`^(Fall|Spring|Summer)\s+\d{4}$`)
	uncEmailRe  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@(unc\.edu|live\.unc\.edu|ad\.unc\.edu)$`)
	hasLetterRe = regexp.MustCompile(`[A-Za-z]`)
	hasDigitRe  = regexp.MustCompile(`\d`)
)

// Setup registers the validator with English translations and the app's
// custom rules on Gin's binding engine. Call once during application startup.
func Setup() {
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		// Use JSON tag name for field names in error messages.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		// Custom rules.
		// classcode: "COMP 550" or "MATH 231", upper-case subject prefix.
		v.RegisterValidation("classcode", func(fl govalidator.FieldLevel) bool {
			return classCodeRe.MatchString(fl.Field().String())
		})
		// semester: "Fall 2024" / "Spring 2025" / "Summer 2025".
		v.RegisterValidation("semester", func(fl govalidator.FieldLevel) bool {
			return semesterRe.MatchString(fl.Field().String())
		})
		// uncemail: campus email domains only.
		v.RegisterValidation("uncemail", func(fl govalidator.FieldLevel) bool {
			return uncEmailRe.MatchString(fl.Field().String())
		})
		// strongpassword: at least one letter and one digit.
		v.RegisterValidation("strongpassword", func(fl govalidator.FieldLevel) bool {
			pw := fl.Field().String()
			return hasLetterRe.MatchString(pw) && hasDigitRe.MatchString(pw)
		})

		// Register English translations.
		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		en_translations.RegisterDefaultTranslations(v, trans)
	}
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name → human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			switch fe.Tag() {
			case "classcode":
				fields[fe.Field()] = "must be a class code like 'COMP 550' or 'MATH 231'"
			case "semester":
				fields[fe.Field()] = "must be a semester like 'Fall 2024'"
			case "uncemail":
				fields[fe.Field()] = "must be a valid UNC email address (@unc.edu, @live.unc.edu, or @ad.unc.edu)"
			case "strongpassword":
				fields[fe.Field()] = "must contain at least one letter and one number"
			default:
				fields[fe.Field()] = fe.Translate(trans)
			}
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
