// Package backend is the HTTP client for the learning-plan service: it asks
// for a topic's subtopics and looks up course and video resources per subtopic.
package backend

import (
	"fmt"
	"strings"
)

// Subtopic is a single generated sub-area of a topic. Title is its identity.
type Subtopic struct {
	Title string `json:"title"`
}

// Plan is the decoded response of a plan generation request.
type Plan struct {
	Subtopics []Subtopic `json:"subtopics"`
}

// CourseRef points at a course page.
type CourseRef struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Href returns the navigable form of the course link. Links without an
// http(s) scheme are presented as https URLs; the stored link is unchanged.
func (c CourseRef) Href() string {
	if c.Link == "" || strings.HasPrefix(c.Link, "http") {
		return c.Link
	}
	return "https://" + c.Link
}

// VideoRef points at a video. Thumbnail is optional.
type VideoRef struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// ResourceBundle is the resource lookup result for one subtopic.
type ResourceBundle struct {
	Subtopic     string      `json:"subtopic,omitempty"`
	Course       *CourseRef  `json:"mit"`
	ExtraCourses []CourseRef `json:"mit_extra,omitempty"`
	Videos       []VideoRef  `json:"youtube,omitempty"`
}

// Courses returns the primary course followed by the extra courses,
// skipping entries that carry no link.
func (b ResourceBundle) Courses() []CourseRef {
	var out []CourseRef
	if b.Course != nil && b.Course.Link != "" {
		out = append(out, *b.Course)
	}
	for _, c := range b.ExtraCourses {
		if c.Link != "" {
			out = append(out, c)
		}
	}
	return out
}

// FirstLink returns the first navigable link in the bundle, preferring
// courses over videos, or "" if there is none.
func (b ResourceBundle) FirstLink() string {
	if courses := b.Courses(); len(courses) > 0 {
		return courses[0].Href()
	}
	for _, v := range b.Videos {
		if v.Link != "" {
			return v.Link
		}
	}
	return ""
}

// Summary returns a short human-readable count like "2 courses, 1 video".
func (b ResourceBundle) Summary() string {
	return fmt.Sprintf("%s, %s",
		plural(len(b.Courses()), "course", "courses"),
		plural(len(b.Videos), "video", "videos"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
