package domain

// DayCount is one day of search volume.
type DayCount struct {
	Date  string `json:"date"` // yyyy-mm-dd
	Count int64  `json:"count"`
}

// CourseViews pairs a course with its accumulated view count.
type CourseViews struct {
	CourseID string `json:"course_id"`
	Title    string `json:"title"`
	Views    int64  `json:"views"`
}

// Dashboard aggregates catalog activity for the admin dashboard.
type Dashboard struct {
	TotalCourses     int           `json:"total_courses"`
	PublishedCourses int           `json:"published_courses"`
	TotalSearches    int64         `json:"total_searches"`
	SearchesByDay    []DayCount    `json:"searches_by_day"`
	TopViewed        []CourseViews `json:"top_viewed"`
}
