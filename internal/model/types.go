package model

import "time"

// Course is one line of the course catalog: a name and its landing page.
type Course struct {
	Name string
	Link string
}

// ScheduleEntry pairs a course name with its start date as written in the
// schedule file. The date is free text.
type ScheduleEntry struct {
	Name string
	Date string
}

// Open reports whether the course is accepting students. The literal
// markers "-" and "x" mean "not open".
func (e ScheduleEntry) Open() bool {
	return e.Date != "-" && e.Date != "x"
}

// PriceTier is a single level:price pair from the price list
type PriceTier struct {
	Level string
	Price string
}

// Registration records a user's intent to join a course.
type Registration struct {
	ID         int64
	UserID     int64
	Username   string // empty when the user has no public username
	CourseName string
	CreatedAt  time.Time
}
