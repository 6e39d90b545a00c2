package domain

// Category is a marketplace category as published by the course API.
type Category struct {
	ID          string
	Name        string
	Slug        string
	Description string
	CourseCount int
	IsActive    bool
	Order       int
}
