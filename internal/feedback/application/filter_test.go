package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/feedbackpro/api/internal/feedback/domain"
)

func filterFixture() []domain.Submission {
	a := sampleSubmission("a", 5)
	a.Name = "Jane Doe"
	a.Contact = "jane@gmail.com"
	a.DateOfExperience = "2024-01-10"
	a.CanContactAgain = true

	b := sampleSubmission("b", 3)
	b.Name = "Bob Stone"
	b.Contact = "555-123-4567"
	b.DateOfExperience = "2024-02-15"

	c := sampleSubmission("c", 3)
	c.Name = "Carla Janeway"
	c.Contact = "carla@gmail.com"
	c.DateOfExperience = "2024-03-20"
	c.CanContactAgain = true

	d := sampleSubmission("d", 1)
	d.Name = "Dmitri"
	d.Contact = "(555) 987-6543"
	d.DateOfExperience = "2024-04-01"

	return []domain.Submission{a, b, c, d}
}

func ids(records []domain.Submission) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter_EmptyConfigIsIdentity(t *testing.T) {
	records := filterFixture()
	assert.Equal(t, records, Filter(records, FilterConfig{}))
	assert.False(t, FilterConfig{}.Active())
	assert.Empty(t, Filter([]domain.Submission{}, FilterConfig{SearchTerm: "x"}))
}

func TestFilter_OverallRatingKeepsOrder(t *testing.T) {
	got := Filter(filterFixture(), FilterConfig{OverallRating: "3"})
	assert.Equal(t, []string{"b", "c"}, ids(got))
}

func TestFilter_Options(t *testing.T) {
	tests := []struct {
		name string
		cfg  FilterConfig
		want []string
	}{
		{"search matches name case-insensitively", FilterConfig{SearchTerm: "JANE"}, []string{"a", "c"}},
		{"search matches contact", FilterConfig{SearchTerm: "987"}, []string{"d"}},
		{"search without hits", FilterConfig{SearchTerm: "zzz"}, []string{}},
		{"unparsable rating matches nothing", FilterConfig{OverallRating: "three"}, []string{}},
		{"can contact yes", FilterConfig{CanContact: "yes"}, []string{"a", "c"}},
		{"can contact no", FilterConfig{CanContact: "no"}, []string{"b", "d"}},
		{"date from is inclusive", FilterConfig{DateFrom: "2024-02-15"}, []string{"b", "c", "d"}},
		{"date to is inclusive", FilterConfig{DateTo: "2024-02-15"}, []string{"a", "b"}},
		{"date range", FilterConfig{DateFrom: "2024-02-01", DateTo: "2024-03-31"}, []string{"b", "c"}},
		{"options are combined with and", FilterConfig{SearchTerm: "jane", OverallRating: "3", CanContact: "yes"}, []string{"c"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(filterFixture(), tc.cfg)
			assert.Equal(t, tc.want, ids(got))
			assert.True(t, tc.cfg.Active())
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	configs := []FilterConfig{
		{},
		{SearchTerm: "a"},
		{OverallRating: "3", DateTo: "2024-03-01"},
		{CanContact: "yes", DateFrom: "2024-01-01"},
	}
	for _, cfg := range configs {
		once := Filter(filterFixture(), cfg)
		twice := Filter(once, cfg)
		require.Equal(t, once, twice)
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := filterFixture()
	before := ids(records)
	_ = Filter(records, FilterConfig{OverallRating: "1"})
	assert.Equal(t, before, ids(records))
}
