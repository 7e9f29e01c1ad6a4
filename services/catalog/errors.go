package catalog

import "fmt"

// LoginRequiredError is returned when a visitor who is not a student tries to enroll.
type LoginRequiredError struct {
	CourseID int64
}

func (e LoginRequiredError) Error() string {
	return fmt.Sprintf("sign in as a student to enroll in course %d", e.CourseID)
}

// Redirect is where the visitor is sent: login, returning to the course viewer.
func (e LoginRequiredError) Redirect() string {
	return "/login?redirect=" + ViewerPath(e.CourseID)
}

// ViewerPath is the student viewer route of a course.
func ViewerPath(courseID int64) string {
	return fmt.Sprintf("/student/course/%d/view", courseID)
}
