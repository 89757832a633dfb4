package course

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wireKeys(t *testing.T, d Draft) map[string]json.RawMessage {
	t.Helper()
	body, err := json.Marshal(d.Payload())
	require.NoError(t, err)
	keys := make(map[string]json.RawMessage)
	require.NoError(t, json.Unmarshal(body, &keys))
	return keys
}

func TestPayloadOmitsEmptyOptionals(t *testing.T) {
	keys := wireKeys(t, Draft{Title: "Bare"})

	assert.Contains(t, keys, "title")
	for _, fld := range []string{"image", "description", "price", "category", "link", "result", "moduleIds", "questions"} {
		assert.NotContains(t, keys, fld)
	}
}

func TestPayloadKeepsZeroPrice(t *testing.T) {
	zero := 0.0
	keys := wireKeys(t, Draft{Title: "Free course", Price: &zero})

	require.Contains(t, keys, "price")
	assert.JSONEq(t, "0", string(keys["price"]))
}

func TestPayloadWireNames(t *testing.T) {
	price := 49.99
	draft := Draft{
		Title:            "Go from scratch",
		ImageURL:         "https://cdn.test/go.png",
		Description:      "desc",
		Price:            &price,
		Category:         CategoryBackend,
		ExternalLink:     "https://example.test/course",
		LearningOutcomes: []Outcome{{Value: "Read Go"}, {Value: "Write Go"}},
		ModuleIDs:        []int{1, 2},
		QuizQuestions: []QuizQuestion{
			{
				Title: "Q1",
				Options: []AnswerOption{
					{AnswerName: "yes", IsCorrect: true},
					{AnswerName: "no"},
				},
			},
		},
	}

	body, err := json.Marshal(draft.Payload())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"title": "Go from scratch",
		"image": "https://cdn.test/go.png",
		"description": "desc",
		"price": 49.99,
		"category": "BACKEND",
		"link": "https://example.test/course",
		"result": ["Read Go", "Write Go"],
		"moduleIds": [1, 2],
		"questions": [{
			"title": "Q1",
			"options": [
				{"answerName": "yes", "right": true},
				{"answerName": "no", "right": false}
			]
		}]
	}`, string(body))
}

func TestDraftFromCourseRoundTrip(t *testing.T) {
	price := 15.0
	crs := Course{
		ID:        7,
		Title:     "Round trip",
		Image:     "https://cdn.test/rt.png",
		Price:     &price,
		Category:  CategoryMobile,
		Link:      "https://example.test/rt",
		Result:    []string{"one", "two"},
		ModuleIDs: []int{9},
		Questions: []Question{
			{Title: "Q", Options: []Option{{AnswerName: "a", Right: true}, {AnswerName: "b"}}},
		},
	}

	p := DraftFromCourse(crs).Payload()
	assert.Equal(t, crs.Title, p.Title)
	assert.Equal(t, crs.Image, p.Image)
	assert.Equal(t, crs.Price, p.Price)
	assert.Equal(t, crs.Category, p.Category)
	assert.Equal(t, crs.Link, p.Link)
	assert.Equal(t, crs.Result, p.Result)
	assert.Equal(t, crs.ModuleIDs, p.ModuleIDs)
	require.Len(t, p.Questions, 1)
	assert.Equal(t, "Q", p.Questions[0].Title)
	assert.Equal(t, []OptionPayload{{AnswerName: "a", Right: true}, {AnswerName: "b"}}, p.Questions[0].Options)
}
