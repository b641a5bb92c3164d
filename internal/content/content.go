// Package content holds the psychoeducation lessons shown by `wisemind learn`.
package content

import (
	"bufio"
	"embed"
	"fmt"
	"strings"
)

//go:embed lessons/*.md
var lessons embed.FS

// Section is one "## " block of a lesson.
type Section struct {
	Title string
	Body  string
}

type Lesson struct {
	ID       string
	Title    string
	Sections []Section
}

// Markdown reassembles the lesson as one document.
func (l Lesson) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", l.Title)
	for _, s := range l.Sections {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", s.Title, s.Body)
	}
	return b.String()
}

// Load reads the lesson for a screen ID.
func Load(id string) (Lesson, error) {
	data, err := lessons.ReadFile("lessons/" + id + ".md")
	if err != nil {
		return Lesson{}, fmt.Errorf("lesson %q: %w", id, err)
	}
	return parse(id, string(data))
}

func parse(id, src string) (Lesson, error) {
	l := Lesson{ID: id}
	var (
		cur  *Section
		body []string
	)
	flush := func() {
		if cur != nil {
			cur.Body = strings.TrimSpace(strings.Join(body, "\n"))
			l.Sections = append(l.Sections, *cur)
		}
		body = body[:0]
	}

	sc := bufio.NewScanner(strings.NewReader(src))
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "## "):
			flush()
			cur = &Section{Title: strings.TrimSpace(line[3:])}
		case strings.HasPrefix(line, "# ") && l.Title == "":
			l.Title = strings.TrimSpace(line[2:])
		default:
			body = append(body, line)
		}
	}
	if err := sc.Err(); err != nil {
		return Lesson{}, fmt.Errorf("lesson %q: %w", id, err)
	}
	flush()
	if len(l.Sections) == 0 {
		return Lesson{}, fmt.Errorf("lesson %q has no sections", id)
	}
	return l, nil
}
