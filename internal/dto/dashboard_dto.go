package dto

// Course completion statuses shown on the student dashboard.
const (
	StatusCompleted  = "COMPLETED"
	StatusInProgress = "IN_PROGRESS"
)

type AdminDashboardResponse struct {
	Teachers int64 `json:"teachers"`
	Students int64 `json:"students"`
	Courses  int64 `json:"courses"`
}

type TeacherDashboardResponse struct {
	Teacher *TeacherResponse `json:"teacher"`
	Courses []CourseResponse `json:"courses"`
}

type StudentCourseSummary struct {
	Course     CourseResponse `json:"course"`
	Attended   int64          `json:"attended"`
	Total      int            `json:"total"`
	Percentage float64        `json:"percentage"`
	Status     string         `json:"status"`
}

type StudentDashboardResponse struct {
	Student *StudentResponse       `json:"student"`
	Courses []StudentCourseSummary `json:"courses"`
}
