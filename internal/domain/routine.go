package domain

import "time"

// FrequencyUnit is the unit of a routine step's usage frequency.
type FrequencyUnit string

const (
	FrequencyDay   FrequencyUnit = "day"
	FrequencyWeek  FrequencyUnit = "week"
	FrequencyMonth FrequencyUnit = "month"
)

// Frequency is how often a routine step is performed: once every
// Interval units, e.g. {2, week} = every two weeks.
type Frequency struct {
	Interval int           `json:"interval"`
	Unit     FrequencyUnit `json:"unit"`
}

// PerMonth normalizes the frequency to occurrences per month
// (a month is taken as 30 days). A non-positive interval counts as 1.
func (f Frequency) PerMonth() float64 {
	interval := f.Interval
	if interval <= 0 {
		interval = 1
	}

	switch f.Unit {
	case FrequencyDay:
		return 30.0 / float64(interval)
	case FrequencyWeek:
		return 30.0 / (7.0 * float64(interval))
	case FrequencyMonth:
		return 1.0 / float64(interval)
	default:
		return 1.0 / float64(interval)
	}
}

// Weight scales the frequency to [0.1, 1.0]: daily use is 1.0, monthly or
// rarer bottoms out at 0.1. Steps used more often weigh more in routine
// aggregation.
func (f Frequency) Weight() float64 {
	w := f.PerMonth() / 30.0
	if w > 1.0 {
		return 1.0
	}
	if w < 0.1 {
		return 0.1
	}
	return w
}

// RoutineStep is one ordered step of a routine. ProductID may be empty
// when the step describes a technique rather than a product.
type RoutineStep struct {
	ID        string          `json:"id"`
	Position  int             `json:"position"`
	Category  ProductCategory `json:"category"`
	ProductID string          `json:"product_id,omitempty"`
	Frequency Frequency       `json:"frequency"`
	Note      string          `json:"note,omitempty"`
}

// Weight combines the step's category importance with its usage frequency.
func (s RoutineStep) Weight() float64 {
	return CategoryImportance(s.Category) * s.Frequency.Weight()
}

// Routine is an ordered sequence of steps owned by a user. Only public
// routines are candidates for match scoring.
type Routine struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	OwnerID string        `json:"owner_id"`
	Public  bool          `json:"public"`
	Steps   []RoutineStep `json:"steps"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
