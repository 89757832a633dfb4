package course

// Course categories as known by the backend.
const (
	CategoryAll      = "ALL"
	CategoryFrontend = "FRONTEND"
	CategoryBackend  = "BACKEND"
	CategoryMobile   = "MOBILE"
	CategoryDesign   = "DESIGN"
)

var Categories = []string{CategoryAll, CategoryFrontend, CategoryBackend, CategoryMobile, CategoryDesign}

func ValidCategory(cat string) bool {
	for _, c := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// Course is a persisted course as returned by the backend.
type Course struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Image       string     `json:"image,omitempty"`
	Description string     `json:"description,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	Category    string     `json:"category,omitempty"`
	Link        string     `json:"link,omitempty"`
	Result      []string   `json:"result,omitempty"`
	ModuleIDs   []int      `json:"moduleIds,omitempty"`
	Questions   []Question `json:"questions,omitempty"`
}

// Question is a persisted quiz question of a Course.
type Question struct {
	Title   string   `json:"title"`
	Options []Option `json:"options"`
}

type Option struct {
	AnswerName string `json:"answerName"`
	Right      bool   `json:"right"`
}

// Draft is the in-progress, unsaved representation of a course being authored
// or edited. Field names follow the in-memory form shape; the wire shape is
// produced by Payload.
type Draft struct {
	Title            string         `json:"title" validate:"required,notblank"`
	ImageURL         string         `json:"imageUrl" validate:"omitempty,url"`
	Description      string         `json:"description"`
	Price            *float64       `json:"price" validate:"omitempty,gte=0"`
	Category         string         `json:"category" validate:"omitempty,category"`
	ExternalLink     string         `json:"externalLink" validate:"omitempty,url"`
	LearningOutcomes []Outcome      `json:"learningOutcomes" validate:"dive"`
	ModuleIDs        []int          `json:"moduleIds"`
	QuizQuestions    []QuizQuestion `json:"quizQuestions" validate:"dive"`
}

// Outcome wraps one learning-outcome entry; the wrapper mirrors the row shape
// the form manager keeps for list fields.
type Outcome struct {
	Value string `json:"value" validate:"required,notblank"`
}

// QuizQuestion is one quiz question of a Draft.
type QuizQuestion struct {
	Title   string         `json:"title" validate:"required,notblank"`
	Options []AnswerOption `json:"options" validate:"required,min=2,dive"`
}

// AnswerOption is one answer choice of a QuizQuestion. Any number of options
// may be marked correct; that is deliberately not constrained here.
type AnswerOption struct {
	AnswerName string `json:"answerName" validate:"required,notblank"`
	IsCorrect  bool   `json:"isCorrect"`
}

// DraftFromCourse pre-populates a Draft from a fetched Course (edit entry).
func DraftFromCourse(c Course) Draft {
	d := Draft{
		Title:        c.Title,
		ImageURL:     c.Image,
		Description:  c.Description,
		Price:        c.Price,
		Category:     c.Category,
		ExternalLink: c.Link,
		ModuleIDs:    append([]int(nil), c.ModuleIDs...),
	}
	for _, res := range c.Result {
		d.LearningOutcomes = append(d.LearningOutcomes, Outcome{Value: res})
	}
	for _, q := range c.Questions {
		qq := QuizQuestion{Title: q.Title}
		for _, opt := range q.Options {
			qq.Options = append(qq.Options, AnswerOption{AnswerName: opt.AnswerName, IsCorrect: opt.Right})
		}
		d.QuizQuestions = append(d.QuizQuestions, qq)
	}
	return d
}
