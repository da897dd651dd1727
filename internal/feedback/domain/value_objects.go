package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the fixed-width calendar date format. Lexicographic order equals date order.
const DateLayout = "2006-01-02"

var allowedServiceRatings = []ServiceRating{RatingExcellent, RatingGood, RatingAverage, RatingPoor}

// CalendarDate is a YYYY-MM-DD date with no time zone attached.
type CalendarDate string

func NewCalendarDate(value string) (CalendarDate, error) {
	if _, err := time.Parse(DateLayout, value); err != nil {
		return "", fmt.Errorf("invalid calendar date %q: must be YYYY-MM-DD", value)
	}
	return CalendarDate(value), nil
}

// CalendarDateOf formats t in loc.
func CalendarDateOf(t time.Time, loc *time.Location) CalendarDate {
	if loc != nil {
		t = t.In(loc)
	}
	return CalendarDate(t.Format(DateLayout))
}

func (d CalendarDate) String() string {
	return string(d)
}

type OverallRating int

func NewOverallRating(value int) (OverallRating, error) {
	if value < 1 || value > 5 {
		return 0, fmt.Errorf("overall experience must be between 1 and 5, got %d", value)
	}
	return OverallRating(value), nil
}

func (r OverallRating) Int() int {
	return int(r)
}

// ServiceRating is one of Excellent, Good, Average, Poor.
type ServiceRating string

const (
	RatingExcellent ServiceRating = "Excellent"
	RatingGood      ServiceRating = "Good"
	RatingAverage   ServiceRating = "Average"
	RatingPoor      ServiceRating = "Poor"
)

func NewServiceRating(value string) (ServiceRating, error) {
	for _, allowed := range allowedServiceRatings {
		if string(allowed) == value {
			return allowed, nil
		}
	}
	return "", fmt.Errorf("invalid service rating: %q", value)
}

func (r ServiceRating) String() string {
	return string(r)
}

// ServiceRatingValues lists the closed set in display order.
func ServiceRatingValues() []string {
	values := make([]string, 0, len(allowedServiceRatings))
	for _, r := range allowedServiceRatings {
		values = append(values, string(r))
	}
	return values
}

// BlobKey references an uploaded image. The zero value means "no image".
type BlobKey string

func NewBlobKey(value string) (BlobKey, error) {
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("blob key must not be blank")
	}
	return BlobKey(value), nil
}

func (k BlobKey) Present() bool {
	return k != ""
}

func (k BlobKey) String() string {
	return string(k)
}
