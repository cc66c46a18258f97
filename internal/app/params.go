package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidParams marks a missing or malformed user parameter. No
	// remote call is made when it is returned.
	ErrInvalidParams  = errors.New("invalid parameters")
	ErrLLMDisabled    = errors.New("idea suggestions are disabled, set GROQ_API_KEY")
	ErrUploadDisabled = errors.New("upload service is not configured")
)

var validate = validator.New()

type TrendingParams struct {
	Region   string `validate:"omitempty,len=2,alpha"`
	Category string
	Keyword  string
	SortBy   string
	Max      int `validate:"min=0,max=50"`
}

type SearchParams struct {
	Query               string `validate:"required"`
	Max                 int    `validate:"min=0"`
	Order               string `validate:"omitempty,oneof=relevance date viewCount rating title"`
	Region              string `validate:"omitempty,len=2,alpha"`
	PublishedWithinDays int    `validate:"min=0"`
	SortBy              string
}

type ChannelParams struct {
	ID       string `validate:"required"`
	Page     int    `validate:"min=0"`
	PageSize int    `validate:"min=0"`
	SortBy   string
}

type NicheParams struct {
	Keyword        string `validate:"required"`
	MaxSubscribers uint64
	MaxTotalViews  uint64
	MaxAgeMonths   int `validate:"min=0"`
	ResultCap      int `validate:"min=0"`
}

type IdeasParams struct {
	Region   string `validate:"omitempty,len=2,alpha"`
	Category string
	TopN     int `validate:"min=0"`
}

type UploadParams struct {
	File        string `validate:"required"`
	ChannelID   string
	Title       string `validate:"required"`
	Description string
	Privacy     string `validate:"omitempty,oneof=private unlisted public"`
	Tags        []string
	CategoryID  string
}

// checkParams validates p and wraps failures in ErrInvalidParams.
func checkParams(p any) error {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describe(fe))
			}
			return fmt.Errorf("%w: %s", ErrInvalidParams, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must have %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
