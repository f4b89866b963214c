package tui

import (
	"fmt"
	"io"

	"github.com/smileynet/learnpath/internal/backend"
)

// WritePlan prints a numbered subtopic list for topic.
func WritePlan(w io.Writer, topic string, subtopics []backend.Subtopic) error {
	if _, err := fmt.Fprintf(w, "Learning plan: %s\n", topic); err != nil {
		return err
	}
	if len(subtopics) == 0 {
		_, err := fmt.Fprintln(w, "  (no subtopics)")
		return err
	}
	for i, st := range subtopics {
		if _, err := fmt.Fprintf(w, "%3d. %s\n", i+1, st.Title); err != nil {
			return err
		}
	}
	return nil
}

// WriteBundle prints the resource panel for one subtopic: the course
// section with normalized links, then the video section.
func WriteBundle(w io.Writer, title string, b backend.ResourceBundle) error {
	ew := &errWriter{w: w}

	ew.printf("\n%s\n", title)
	ew.printf("  MIT OCW\n")
	courses := b.Courses()
	if len(courses) == 0 {
		ew.printf("    No courses found.\n")
	}
	for _, c := range courses {
		ew.printf("    %s  %s\n", c.Title, c.Href())
	}

	ew.printf("  YouTube\n")
	if len(b.Videos) == 0 {
		ew.printf("    No videos found.\n")
	}
	for _, v := range b.Videos {
		ew.printf("    %s  %s\n", v.Title, v.Link)
		if v.Thumbnail != "" {
			ew.printf("      thumbnail: %s\n", v.Thumbnail)
		}
	}
	return ew.err
}

// errWriter keeps the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
