package course

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Andas-LV/skill-lab-frontend/core"
)

var (
	// custom validation tags & texts
	categoryTag  = "category"
	categoryText = "invalid category"

	gteTag  = "gte"
	gteText = "cannot be negative"

	minTag  = "min"
	minText = "at least 2 answer options are required"

	errDraftInvalid = errors.New("draft is invalid")
)

func init() {
	_ = core.Validate.RegisterValidation(categoryTag, categoryValidation)
	core.RegisterCustomTranslation(core.Validate, core.Translator, categoryTag, categoryText)

	// price is the only gte-constrained field; options the only min-constrained one
	core.RegisterCustomTranslation(core.Validate, core.Translator, gteTag, gteText, true)
	core.RegisterCustomTranslation(core.Validate, core.Translator, minTag, minText, true)
}

// categoryValidation checks membership in the fixed category enumeration.
func categoryValidation(fl validator.FieldLevel) bool {
	if cat, ok := fl.Field().Interface().(string); ok {
		return ValidCategory(cat)
	}
	return false
}

// Validate checks the draft and returns nil or a *core.ValidationError whose
// Fields map flattened field paths (eg. "quizQuestions[2].options[0].answerName")
// to human-readable messages. Pure; no network access.
func (d *Draft) Validate() error {
	d.Title = core.CleanString(d.Title)
	d.ImageURL = core.CleanString(d.ImageURL)
	d.ExternalLink = core.CleanString(d.ExternalLink)
	d.Category = core.CleanString(d.Category)
	for i := range d.LearningOutcomes {
		d.LearningOutcomes[i].Value = core.CleanString(d.LearningOutcomes[i].Value)
	}
	for i := range d.QuizQuestions {
		d.QuizQuestions[i].Title = core.CleanString(d.QuizQuestions[i].Title)
		for j := range d.QuizQuestions[i].Options {
			d.QuizQuestions[i].Options[j].AnswerName = core.CleanString(d.QuizQuestions[i].Options[j].AnswerName)
		}
	}

	if err := core.Validate.Struct(d); err != nil {
		if vErrs, ok := err.(validator.ValidationErrors); ok {
			return core.NewValidationError(errDraftInvalid, core.TranslateErrors(vErrs)...)
		}
		return err
	}
	return nil
}
