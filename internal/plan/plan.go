package plan

import "time"

// DateLayout is the calendar-date format used throughout plans.
const DateLayout = "2006-01-02"

// DayAssignment is one calendar day's ordered list of assigned dish ids.
// Dish ids may repeat; removal takes out the first occurrence only.
type DayAssignment struct {
	Date    string   `json:"date"`
	DishIDs []string `json:"dishIds"`
}

// MealPlan is a dated collection of day-by-day dish assignments.
type MealPlan struct {
	ID           string          `json:"id"`
	Name         string          `json:"name,omitempty"`
	StartDate    string          `json:"startDate"`
	NumberOfDays int             `json:"numberOfDays"`
	Days         []DayAssignment `json:"days"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// NewDays builds n consecutive empty day assignments starting at startDate.
func NewDays(startDate time.Time, n int) []DayAssignment {
	days := make([]DayAssignment, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, DayAssignment{
			Date:    startDate.AddDate(0, 0, i).Format(DateLayout),
			DishIDs: []string{},
		})
	}
	return days
}

// Clone returns a deep copy of the plan.
func (p MealPlan) Clone() MealPlan {
	c := p
	c.Days = cloneDays(p.Days)
	return c
}

func cloneDays(days []DayAssignment) []DayAssignment {
	out := make([]DayAssignment, len(days))
	for i, d := range days {
		out[i] = DayAssignment{Date: d.Date, DishIDs: append([]string{}, d.DishIDs...)}
	}
	return out
}

func findDay(days []DayAssignment, date string) int {
	for i := range days {
		if days[i].Date == date {
			return i
		}
	}
	return -1
}
