package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/timecalc"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// UUIDv7 regex: version 7 (the 15th character must be '7'), all lowercase hex digits.
var uuidv7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUIDv7 validation
func IsValidUUID(uuid string) bool {
	return uuidv7Regex.MatchString(strings.ToLower(uuid))
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsValidClock checks an "HH:MM" or "HH:MM:SS" time of day.
func IsValidClock(s string) (timecalc.Clock, bool) {
	c, err := timecalc.ParseClock(s)
	return c, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

var structValidator = newStructValidator()

func newStructValidator() *playground.Validate {
	v := playground.New()

	// report json field names instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("clock", func(fl playground.FieldLevel) bool {
		_, ok := IsValidClock(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("date", func(fl playground.FieldLevel) bool {
		_, ok := IsValidDate(fl.Field().String())
		return ok
	})

	return v
}

// Struct runs the `validate` struct tags on s and converts failures into
// ValidationErrors. It returns nil when s is valid.
func Struct(s any) error {
	err := structValidator.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, ValidationError{
			Field:   fe.Field(),
			Message: tagMessage(fe),
		})
	}
	return errs
}

func tagMessage(fe playground.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return field + " must be greater than " + fe.Param()
	case "gte":
		return field + " must be at least " + fe.Param()
	case "lte":
		return field + " must be at most " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "clock":
		return field + " must be a time in HH:MM format"
	case "date":
		return field + " must be a date in YYYY-MM-DD format"
	case "uuid":
		return field + " must be a valid UUID"
	default:
		return field + " is invalid"
	}
}
