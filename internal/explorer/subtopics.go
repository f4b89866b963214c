package explorer

import "github.com/smileynet/learnpath/internal/backend"

// SubtopicList is the ordered list of generated subtopics, unique by title.
// It is not safe for concurrent use; confine it to the Bubble Tea update loop.
type SubtopicList struct {
	items []backend.Subtopic
}

// NewSubtopicList creates an empty list.
func NewSubtopicList() *SubtopicList {
	return &SubtopicList{}
}

// Replace swaps in a new list, preserving the given order.
// A repeated title keeps its first position and takes the later record.
func (l *SubtopicList) Replace(items []backend.Subtopic) {
	out := make([]backend.Subtopic, 0, len(items))
	index := make(map[string]int, len(items))
	for _, it := range items {
		if i, ok := index[it.Title]; ok {
			out[i] = it
			continue
		}
		index[it.Title] = len(out)
		out = append(out, it)
	}
	l.items = out
}

// Remove deletes the subtopic with the given title.
// It reports whether anything was removed; a missing title is a no-op.
func (l *SubtopicList) Remove(title string) bool {
	for i, it := range l.items {
		if it.Title == title {
			l.items = append(l.items[:i:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Has reports whether a subtopic with the given title is present.
func (l *SubtopicList) Has(title string) bool {
	for _, it := range l.items {
		if it.Title == title {
			return true
		}
	}
	return false
}

// Items returns a copy of the subtopics in order.
func (l *SubtopicList) Items() []backend.Subtopic {
	return append([]backend.Subtopic(nil), l.items...)
}

// Len returns the number of subtopics.
func (l *SubtopicList) Len() int {
	return len(l.items)
}

// At returns the title at index i, or "" if i is out of range.
func (l *SubtopicList) At(i int) string {
	if i < 0 || i >= len(l.items) {
		return ""
	}
	return l.items[i].Title
}
