package application

import (
	"strconv"
	"strings"

	"github.com/sngm3741/feedbackpro/api/internal/feedback/domain"
)

// FilterConfig is the reviewer's predicate set. Empty options are inactive.
type FilterConfig struct {
	SearchTerm    string
	OverallRating string
	CanContact    string
	DateFrom      string
	DateTo        string
}

// Active reports whether any option constrains the result.
func (c FilterConfig) Active() bool {
	return c != FilterConfig{}
}

// Filter returns the records matching every active option, in input order.
func Filter(records []domain.Submission, cfg FilterConfig) []domain.Submission {
	result := make([]domain.Submission, 0, len(records))
	match := newMatcher(cfg)
	for _, record := range records {
		if match(record) {
			result = append(result, record)
		}
	}
	return result
}

func newMatcher(cfg FilterConfig) func(domain.Submission) bool {
	var predicates []func(domain.Submission) bool

	if cfg.SearchTerm != "" {
		term := strings.ToLower(cfg.SearchTerm)
		predicates = append(predicates, func(r domain.Submission) bool {
			return strings.Contains(strings.ToLower(r.Name), term) ||
				strings.Contains(strings.ToLower(r.Contact.String()), term)
		})
	}

	if cfg.OverallRating != "" {
		rating, err := strconv.Atoi(strings.TrimSpace(cfg.OverallRating))
		predicates = append(predicates, func(r domain.Submission) bool {
			// an unparsable rating matches nothing
			return err == nil && r.OverallExperience.Int() == rating
		})
	}

	if cfg.CanContact != "" {
		want := cfg.CanContact == "yes"
		predicates = append(predicates, func(r domain.Submission) bool {
			return r.CanContactAgain == want
		})
	}

	// YYYY-MM-DD is fixed width, so string order is date order.
	if cfg.DateFrom != "" {
		predicates = append(predicates, func(r domain.Submission) bool {
			return r.DateOfExperience.String() >= cfg.DateFrom
		})
	}
	if cfg.DateTo != "" {
		predicates = append(predicates, func(r domain.Submission) bool {
			return r.DateOfExperience.String() <= cfg.DateTo
		})
	}

	return func(r domain.Submission) bool {
		for _, p := range predicates {
			if !p(r) {
				return false
			}
		}
		return true
	}
}
