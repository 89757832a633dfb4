package unit

// Payload is the wire shape for module create/update requests; an empty
// lesson list is omitted entirely.
type Payload struct {
	Title    string   `json:"title"`
	Children []string `json:"children,omitempty"`
}

// Payload maps the draft to the wire shape, unwrapping lesson titles to a
// plain ordered list of strings.
func (d Draft) Payload() Payload {
	p := Payload{Title: d.Title}
	if len(d.LessonTitles) > 0 {
		p.Children = make([]string, len(d.LessonTitles))
		for i, lesson := range d.LessonTitles {
			p.Children[i] = lesson.Value
		}
	}
	return p
}

// NewFormValues is the initial form tree for the create screen.
func NewFormValues() map[string]interface{} {
	return map[string]interface{}{
		"title":        "",
		"lessonTitles": []interface{}{},
	}
}

// FormValues converts the draft into the form tree shape (edit entry).
func (d Draft) FormValues() map[string]interface{} {
	lessons := make([]interface{}, len(d.LessonTitles))
	for i, lesson := range d.LessonTitles {
		lessons[i] = map[string]interface{}{"value": lesson.Value}
	}
	return map[string]interface{}{
		"title":        d.Title,
		"lessonTitles": lessons,
	}
}

// DraftFromValues builds a Draft from a form snapshot.
func DraftFromValues(values map[string]interface{}) Draft {
	d := Draft{}
	if title, ok := values["title"].(string); ok {
		d.Title = title
	}
	if lessons, ok := values["lessonTitles"].([]interface{}); ok {
		for _, v := range lessons {
			row, _ := v.(map[string]interface{})
			value, _ := row["value"].(string)
			d.LessonTitles = append(d.LessonTitles, Lesson{Value: value})
		}
	}
	return d
}
