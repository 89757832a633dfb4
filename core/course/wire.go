package course

// Payload is the wire shape for course create/update requests. Optional
// fields left empty in the draft are absent from the JSON body, not sent as
// empty strings or empty lists.
type Payload struct {
	Title       string            `json:"title"`
	Image       string            `json:"image,omitempty"`
	Description string            `json:"description,omitempty"`
	Price       *float64          `json:"price,omitempty"`
	Category    string            `json:"category,omitempty"`
	Link        string            `json:"link,omitempty"`
	Result      []string          `json:"result,omitempty"`
	ModuleIDs   []int             `json:"moduleIds,omitempty"`
	Questions   []QuestionPayload `json:"questions,omitempty"`
}

type QuestionPayload struct {
	Title   string          `json:"title"`
	Options []OptionPayload `json:"options"`
}

type OptionPayload struct {
	AnswerName string `json:"answerName"`
	Right      bool   `json:"right"`
}

// Payload maps the draft to the wire shape: learning outcomes are unwrapped
// to a plain ordered list of strings, and empty optional fields are dropped.
// Price is kept whenever present, including 0.
func (d Draft) Payload() Payload {
	p := Payload{
		Title:       d.Title,
		Image:       d.ImageURL,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		Link:        d.ExternalLink,
	}
	if len(d.LearningOutcomes) > 0 {
		p.Result = make([]string, len(d.LearningOutcomes))
		for i, o := range d.LearningOutcomes {
			p.Result[i] = o.Value
		}
	}
	if len(d.ModuleIDs) > 0 {
		p.ModuleIDs = append([]int(nil), d.ModuleIDs...)
	}
	if len(d.QuizQuestions) > 0 {
		p.Questions = make([]QuestionPayload, len(d.QuizQuestions))
		for i, q := range d.QuizQuestions {
			qp := QuestionPayload{Title: q.Title, Options: make([]OptionPayload, len(q.Options))}
			for j, opt := range q.Options {
				qp.Options[j] = OptionPayload{AnswerName: opt.AnswerName, Right: opt.IsCorrect}
			}
			p.Questions[i] = qp
		}
	}
	return p
}
