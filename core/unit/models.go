// Package unit models the course modules screens. The entity is called a
// "module" by the backend; the package is named unit to keep it apart from Go
// module terminology.
package unit

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Andas-LV/skill-lab-frontend/core"
)

var (
	ErrNotFound = errors.New("module not found")

	errDraftInvalid = errors.New("draft is invalid")
)

// Module is a persisted course module as returned by the backend. Lessons
// travel under the wire name "children".
type Module struct {
	ID      int      `json:"id"`
	Title   string   `json:"title"`
	Lessons []string `json:"children,omitempty"`
}

// Draft is the in-progress representation of a module being authored or
// edited.
type Draft struct {
	Title        string   `json:"title" validate:"required,notblank"`
	LessonTitles []Lesson `json:"lessonTitles" validate:"dive"`
}

// Lesson wraps one lesson-title entry, mirroring the form manager's row shape.
type Lesson struct {
	Value string `json:"value" validate:"required,notblank"`
}

// DraftFromModule pre-populates a Draft from a fetched Module (edit entry).
func DraftFromModule(m Module) Draft {
	d := Draft{Title: m.Title}
	for _, lesson := range m.Lessons {
		d.LessonTitles = append(d.LessonTitles, Lesson{Value: lesson})
	}
	return d
}

// Validate checks the draft; failures come back as a *core.ValidationError
// with flattened field paths (eg. "lessonTitles[1].value").
func (d *Draft) Validate() error {
	d.Title = core.CleanString(d.Title)
	for i := range d.LessonTitles {
		d.LessonTitles[i].Value = core.CleanString(d.LessonTitles[i].Value)
	}
	if err := core.Validate.Struct(d); err != nil {
		if vErrs, ok := err.(validator.ValidationErrors); ok {
			return core.NewValidationError(errDraftInvalid, core.TranslateErrors(vErrs)...)
		}
		return err
	}
	return nil
}
