package service

import (
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/holidayhub/directory/shared/models"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 20
	AboutMeMaxLength  = 500
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("field")
	})
	_ = v.RegisterValidation("account_email", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("creation_method", func(fl validator.FieldLevel) bool {
		return models.CreationMethod(fl.Field().String()).Valid()
	})
	return v
}

// ValidEmail reports whether email has the local-part@domain.tld shape the
// directory accepts.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

type newAccountInput struct {
	Username string `field:"username" validate:"min=3,max=20"`
	Email    string `field:"email" validate:"account_email"`
	Password string `field:"password" validate:"min=6"`
	Method   string `field:"creation_method" validate:"omitempty,creation_method"`
}

type newHolidayInput struct {
	StartTime string `field:"start_time" validate:"required"`
	Location  string `field:"location" validate:"required,max=255"`
	Title     string `field:"title" validate:"required,max=100"`
}

var fieldMessages = map[string]string{
	"username":        "Username must be between 3 and 20 characters",
	"email":           "Invalid email format",
	"password":        "Password must be at least 6 characters",
	"creation_method": "Creation method must be one of rest, soap, interface",
	"location":        "Location is required and must be at most 255 characters",
	"title":           "Title is required and must be at most 100 characters",
	"start_time":      "Start time is required",
}

// ValidateNewAccount checks every field and reports all failures together.
func ValidateNewAccount(username, email, password string, method models.CreationMethod) error {
	return collect(newAccountInput{
		Username: username,
		Email:    email,
		Password: password,
		Method:   string(method),
	}, nil)
}

// ValidateUsername trims a rename candidate and checks its length.
func ValidateUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	n := utf8.RuneCountInString(username)
	switch {
	case n == 0:
		return "", Invalid("username", "Username cannot be empty")
	case n < UsernameMinLength:
		return "", Invalid("username", "Username must be at least 3 characters")
	case n > UsernameMaxLength:
		return "", Invalid("username", "Username must be at most 20 characters")
	}
	return username, nil
}

func ValidateAboutMe(text string) error {
	if utf8.RuneCountInString(text) > AboutMeMaxLength {
		return Invalid("about_me", "About me must be at most 500 characters")
	}
	return nil
}

var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ValidateNewHoliday checks the three required holiday fields and parses the
// start time. Times without a zone are taken as UTC.
func ValidateNewHoliday(startTime, location, title string) (time.Time, error) {
	startTime = strings.TrimSpace(startTime)
	extra := map[string]string{}

	var parsed time.Time
	if startTime != "" {
		var ok bool
		if parsed, ok = parseStartTime(startTime); !ok {
			extra["start_time"] = "Start time must be an ISO 8601 timestamp"
		}
	}

	err := collect(newHolidayInput{
		StartTime: startTime,
		Location:  strings.TrimSpace(location),
		Title:     strings.TrimSpace(title),
	}, extra)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}

func parseStartTime(raw string) (time.Time, bool) {
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// collect runs struct validation and merges the failures with any
// pre-computed field errors into one ValidationError.
func collect(input any, extra map[string]string) error {
	fields := map[string]string{}
	for k, v := range extra {
		fields[k] = v
	}

	if err := validate.Struct(input); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		for _, fe := range verrs {
			if _, seen := fields[fe.Field()]; seen {
				continue
			}
			msg, known := fieldMessages[fe.Field()]
			if !known {
				msg = "Invalid value"
			}
			fields[fe.Field()] = msg
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
