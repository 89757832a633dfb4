package course

import (
	"strconv"

	"github.com/Andas-LV/skill-lab-frontend/core"
)

// NewFormValues is the initial form tree for the create screen.
func NewFormValues() map[string]interface{} {
	return map[string]interface{}{
		"title":            "",
		"imageUrl":         "",
		"description":      "",
		"price":            "",
		"category":         "",
		"externalLink":     "",
		"learningOutcomes": []interface{}{},
		"moduleIds":        []interface{}{},
		"quizQuestions":    []interface{}{},
	}
}

// FormValues converts the draft into the form tree shape (edit entry).
func (d Draft) FormValues() map[string]interface{} {
	price := ""
	if d.Price != nil {
		price = strconv.FormatFloat(*d.Price, 'f', -1, 64)
	}
	outcomes := make([]interface{}, len(d.LearningOutcomes))
	for i, o := range d.LearningOutcomes {
		outcomes[i] = map[string]interface{}{"value": o.Value}
	}
	moduleIDs := make([]interface{}, len(d.ModuleIDs))
	for i, id := range d.ModuleIDs {
		moduleIDs[i] = id
	}
	questions := make([]interface{}, len(d.QuizQuestions))
	for i, q := range d.QuizQuestions {
		opts := make([]interface{}, len(q.Options))
		for j, opt := range q.Options {
			opts[j] = map[string]interface{}{"answerName": opt.AnswerName, "isCorrect": opt.IsCorrect}
		}
		questions[i] = map[string]interface{}{"title": q.Title, "options": opts}
	}
	return map[string]interface{}{
		"title":            d.Title,
		"imageUrl":         d.ImageURL,
		"description":      d.Description,
		"price":            price,
		"category":         d.Category,
		"externalLink":     d.ExternalLink,
		"learningOutcomes": outcomes,
		"moduleIds":        moduleIDs,
		"quizQuestions":    questions,
	}
}

// DraftFromValues builds a Draft from a form snapshot, coercing the price
// input ("" means absent). A non-numeric price is reported as a field error;
// range checks are left to Validate.
func DraftFromValues(values map[string]interface{}) (Draft, error) {
	d := Draft{
		Title:        stringValue(values["title"]),
		ImageURL:     stringValue(values["imageUrl"]),
		Description:  stringValue(values["description"]),
		Category:     stringValue(values["category"]),
		ExternalLink: stringValue(values["externalLink"]),
	}

	price, ok := numberValue(values["price"])
	if !ok {
		return d, core.NewValidationError(errDraftInvalid, core.FieldError{Field: "price", Error: "must be a number"})
	}
	d.Price = price

	for _, v := range listValue(values["learningOutcomes"]) {
		row, _ := v.(map[string]interface{})
		d.LearningOutcomes = append(d.LearningOutcomes, Outcome{Value: stringValue(row["value"])})
	}
	for _, v := range listValue(values["moduleIds"]) {
		if id, ok := intValue(v); ok {
			d.ModuleIDs = append(d.ModuleIDs, id)
		}
	}
	for _, v := range listValue(values["quizQuestions"]) {
		row, _ := v.(map[string]interface{})
		q := QuizQuestion{Title: stringValue(row["title"])}
		for _, ov := range listValue(row["options"]) {
			opt, _ := ov.(map[string]interface{})
			q.Options = append(q.Options, AnswerOption{
				AnswerName: stringValue(opt["answerName"]),
				IsCorrect:  boolValue(opt["isCorrect"]),
			})
		}
		d.QuizQuestions = append(d.QuizQuestions, q)
	}
	return d, nil
}

func stringValue(v interface{}) string {
	s, _ := v.(string)
	return s
}

func boolValue(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

func listValue(v interface{}) []interface{} {
	l, _ := v.([]interface{})
	return l
}

func intValue(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// numberValue coerces a form input to a number; nil and "" mean absent.
func numberValue(v interface{}) (*float64, bool) {
	switch n := v.(type) {
	case nil:
		return nil, true
	case string:
		s := core.CleanString(n)
		if s == "" {
			return nil, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		return &f, true
	case float64:
		return &n, true
	case int:
		f := float64(n)
		return &f, true
	default:
		return nil, false
	}
}
