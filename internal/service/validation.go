package service

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// MinSeason is the earliest season accepted; the upstream has no totals before it.
	MinSeason = 1947
	MaxSeason = 2100
	// MaxRangeSeasons bounds one range fetch; it mirrors the widest picker in the UI.
	MaxRangeSeasons = 35
	MaxPageSize     = 100
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so field errors match what clients sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type rosterInput struct {
	Season int    `json:"season" validate:"gte=1947,lte=2100"`
	Team   string `json:"team" validate:"len=3,alpha"`
}

type searchInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Page     int    `json:"page" validate:"gte=1"`
	PageSize int    `json:"page_size" validate:"gte=1,lte=100"`
}

type nameInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

type playerSeasonInput struct {
	Name   string `json:"name" validate:"required,max=100"`
	Season int    `json:"season" validate:"gte=1947,lte=2100"`
}

type rangeInput struct {
	Name string `json:"name" validate:"required,max=100"`
	From int    `json:"from" validate:"gte=1947,lte=2100"`
	To   int    `json:"to" validate:"gte=1947,lte=2100,gtefield=From"`
}

type compareInput struct {
	Season int    `json:"season" validate:"gte=1947,lte=2100"`
	Left   string `json:"left" validate:"required,max=100"`
	Right  string `json:"right" validate:"required,max=100"`
}

// check runs struct validation and converts failures into the aggregated FieldError form.
func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ferrs := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		ferrs = append(ferrs, FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return NewInvalidInputError(ferrs)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "max":
		return "length must be <= " + fe.Param()
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "alpha":
		return "must contain only letters"
	case "gtefield":
		return "must be >= " + strings.ToLower(fe.Param())
	default:
		return "is invalid"
	}
}

// normalizeName trims and collapses inner whitespace so "  LeBron   James " queries as "LeBron James".
func normalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

func normalizeTeam(team string) string {
	return strings.ToUpper(strings.TrimSpace(team))
}

// ParseSeason accepts a starting year ("2023") or the two-year form ("2023-24") and returns the starting year.
func ParseSeason(s string) (int, error) {
	s = strings.TrimSpace(s)
	start, end, hasEnd := strings.Cut(s, "-")
	if len(start) != 4 {
		return 0, fmt.Errorf("season %q: want YYYY or YYYY-YY", s)
	}
	year, err := strconv.Atoi(start)
	if err != nil {
		return 0, fmt.Errorf("season %q: want YYYY or YYYY-YY", s)
	}
	if hasEnd {
		if len(end) != 2 {
			return 0, fmt.Errorf("season %q: want YYYY or YYYY-YY", s)
		}
		tail, err := strconv.Atoi(end)
		if err != nil || tail != (year+1)%100 {
			return 0, fmt.Errorf("season %q: years are not consecutive", s)
		}
	}
	return year, nil
}

// IsValidSeason reports whether s parses as a season in the supported range.
func IsValidSeason(s string) bool {
	year, err := ParseSeason(s)
	return err == nil && year >= MinSeason && year <= MaxSeason
}
