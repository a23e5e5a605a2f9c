// Package service holds use-case orchestration in front of the upstream client and the range aggregator.
// Kept intentionally lean: input validation and normalisation, error shaping, fan-out for comparisons.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/nba-totals/internal/model"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// ErrNotFound means the upstream has no record for what was asked.
var ErrNotFound = errors.New("not found")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error if any field errors are present.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	var v interface{ Fields() []FieldError }
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// SearchPage is one page of a name search.
// NoMatch is set when the first page is empty or the upstream answered with its not-found status;
// an empty later page just means the caller paged past the end.
type SearchPage struct {
	Name     string                     `json:"name"`
	Page     int                        `json:"page"`
	PageSize int                        `json:"pageSize"`
	Records  []model.PlayerSeasonRecord `json:"records"`
	NoMatch  bool                       `json:"noMatch"`
}

// Comparison is two players' records for the same season, stat by stat.
type Comparison struct {
	Season int                      `json:"season"`
	Left   model.PlayerSeasonRecord `json:"left"`
	Right  model.PlayerSeasonRecord `json:"right"`
	Rows   []model.StatComparison   `json:"rows"`
}

// StatsService defines the read-only use cases over the upstream totals.
type StatsService interface {
	Teams() []model.Team
	TeamRoster(ctx context.Context, season int, team string) ([]model.PlayerSeasonRecord, error)
	SearchPlayers(ctx context.Context, name string, page, pageSize int) (SearchPage, error)
	AllSeasonsByName(ctx context.Context, name string) ([]model.PlayerSeasonRecord, error)
	PlayerSeason(ctx context.Context, name string, season int) (model.PlayerSeasonRecord, error)
	SeasonRange(ctx context.Context, name string, from, to int) (model.SeasonRangeResult, error)
	ComparePlayers(ctx context.Context, season int, left, right string) (Comparison, error)
}

// Upstream is what the service needs from the totals client.
type Upstream interface {
	FetchBySeasonAndTeam(ctx context.Context, season int, team string) ([]model.PlayerSeasonRecord, error)
	FetchByNamePaged(ctx context.Context, name string, page, pageSize int) ([]model.PlayerSeasonRecord, error)
	FetchAllByName(ctx context.Context, name string) ([]model.PlayerSeasonRecord, error)
	FetchSingleByNameAndSeason(ctx context.Context, name string, season int) (*model.PlayerSeasonRecord, error)
}

// RangeFetcher is what the service needs from the range aggregator.
type RangeFetcher interface {
	FetchRange(ctx context.Context, name string, from, to int) model.SeasonRangeResult
}
