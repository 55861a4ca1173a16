// api/models/course.go
package models

// Lesson is a single unit of course content.
type Lesson struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
	VideoURL string `json:"videoUrl,omitempty"`
	PdfURL   string `json:"pdfUrl,omitempty"`
}

// Module groups lessons within a course syllabus.
type Module struct {
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`
}

// Course is a catalog entry. Tags and Category feed the recommendation
// scorer; Syllabus is only populated for detail views.
type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	Duration    string   `json:"duration"`
	LessonCount int      `json:"lessonCount"`
	Tags        []string `json:"tags,omitempty"`
	Category    string   `json:"category,omitempty"`
	Syllabus    []Module `json:"syllabus,omitempty"`
}
