package unit

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andas-LV/skill-lab-frontend/core"
	"github.com/Andas-LV/skill-lab-frontend/core/form"
)

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name    string
		draft   Draft
		wantFld string
	}{
		{name: "valid", draft: Draft{Title: "Basics"}},
		{name: "valid with lessons", draft: Draft{Title: "Basics", LessonTitles: []Lesson{{Value: "Intro"}}}},
		{name: "missing title", draft: Draft{}, wantFld: "title"},
		{name: "blank title", draft: Draft{Title: "  "}, wantFld: "title"},
		{
			name:    "blank lesson",
			draft:   Draft{Title: "Basics", LessonTitles: []Lesson{{Value: "Intro"}, {Value: ""}}},
			wantFld: "lessonTitles[1].value",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.wantFld == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *core.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.FieldMap(), tt.wantFld)
		})
	}
}

func TestPayloadOmitsEmptyLessons(t *testing.T) {
	body, err := json.Marshal(Draft{Title: "Bare"}.Payload())
	require.NoError(t, err)
	assert.JSONEq(t, `{"title": "Bare"}`, string(body))

	body, err = json.Marshal(Draft{
		Title:        "With lessons",
		LessonTitles: []Lesson{{Value: "One"}, {Value: "Two"}},
	}.Payload())
	require.NoError(t, err)
	assert.JSONEq(t, `{"title": "With lessons", "children": ["One", "Two"]}`, string(body))
}

func TestFormValuesRoundTrip(t *testing.T) {
	draft := Draft{Title: "Go basics", LessonTitles: []Lesson{{Value: "Syntax"}, {Value: "Types"}}}
	assert.Equal(t, draft, DraftFromValues(draft.FormValues()))

	got := DraftFromValues(DraftFromModule(Module{
		ID:      3,
		Title:   "Go basics",
		Lessons: []string{"Syntax", "Types"},
	}).FormValues())
	assert.Equal(t, draft, got)
}

type apiStub struct {
	modules     []Module
	listCalls   int
	createCalls int
	err         error
}

func (s *apiStub) CreateModule(ctx context.Context, p Payload) (Module, error) {
	s.createCalls++
	if s.err != nil {
		return Module{}, s.err
	}
	return Module{ID: 1, Title: p.Title, Lessons: p.Children}, nil
}

func (s *apiStub) ListModules(ctx context.Context) ([]Module, error) {
	s.listCalls++
	return s.modules, s.err
}

func (s *apiStub) UpdateModule(ctx context.Context, id int, p Payload) (Module, error) {
	if s.err != nil {
		return Module{}, s.err
	}
	return Module{ID: id, Title: p.Title, Lessons: p.Children}, nil
}

func (s *apiStub) DeleteModule(ctx context.Context, id int) error { return s.err }

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()
	api := &apiStub{}
	svc := NewService(api, nil)

	frm := form.New()
	frm.Initialize(NewFormValues())
	require.NoError(t, frm.Set("title", "New module"))
	_, err := frm.Append("lessonTitles", map[string]interface{}{"value": "Lesson 1"})
	require.NoError(t, err)

	mod, err := svc.Create(ctx, frm)
	require.NoError(t, err)
	assert.Equal(t, "New module", mod.Title)
	assert.Equal(t, []string{"Lesson 1"}, mod.Lessons)
	assert.Equal(t, StatusSuccess, svc.Status())
	assert.False(t, frm.Dirty())
}

func TestServiceCreateInvalidDraftNeverReachesAPI(t *testing.T) {
	ctx := context.Background()
	api := &apiStub{}
	svc := NewService(api, nil)

	frm := form.New()
	frm.Initialize(NewFormValues())

	_, err := svc.Create(ctx, frm)
	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Zero(t, api.createCalls)
}

func TestServiceLoadFindsByID(t *testing.T) {
	ctx := context.Background()
	api := &apiStub{modules: []Module{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}}
	svc := NewService(api, nil)

	mod, err := svc.Load(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "b", mod.Title)
	assert.Equal(t, 1, api.listCalls, "detail lookups resolve through the list endpoint")

	got, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, mod, got)
}

func TestServiceLoadNotFound(t *testing.T) {
	ctx := context.Background()
	api := &apiStub{modules: []Module{{ID: 1, Title: "a"}}}
	svc := NewService(api, nil)

	_, err := svc.Load(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	_, ok := svc.Current()
	assert.False(t, ok)
}
