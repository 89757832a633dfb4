package course

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/Andas-LV/skill-lab-frontend/core"
	"github.com/Andas-LV/skill-lab-frontend/core/form"
)

// Status is the transient submission state shown next to the form.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSaving  Status = "saving"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// API is the backend collaborator for courses.
type API interface {
	CreateCourse(ctx context.Context, p Payload) (Course, error)
	ListCourses(ctx context.Context, category string) ([]Course, error)
	GetCourse(ctx context.Context, id int) (Course, error)
	UpdateCourse(ctx context.Context, id int, p Payload) (Course, error)
	DeleteCourse(ctx context.Context, id int) error
}

// Service drives the course screens: it validates and submits drafts and
// holds the fetched list/detail state. At most one mutating request is in
// flight at a time; status transitions are observable via Status.
type Service struct {
	api API
	log core.Logger

	mu      sync.Mutex
	status  Status
	lastErr string
	courses []Course
	current *Course
	gen     int // detail-load generation; bumped on navigation/reset
}

func NewService(api API, logger core.Logger) *Service {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Service{api: api, log: logger, status: StatusIdle}
}

// Create validates the form and, if valid, submits it as a new course.
// Validation failures never reach the network; backend failures are surfaced
// unchanged and require an explicit re-submit.
func (svc *Service) Create(ctx context.Context, frm *form.Form) (Course, error) {
	return svc.submit(ctx, frm, func(p Payload) (Course, error) {
		return svc.api.CreateCourse(ctx, p)
	})
}

// Update validates the form and, if valid, submits it as an update of the
// course identified by id.
func (svc *Service) Update(ctx context.Context, id int, frm *form.Form) (Course, error) {
	return svc.submit(ctx, frm, func(p Payload) (Course, error) {
		return svc.api.UpdateCourse(ctx, id, p)
	})
}

func (svc *Service) submit(ctx context.Context, frm *form.Form, send func(Payload) (Course, error)) (Course, error) {
	draft, err := DraftFromValues(frm.Snapshot())
	if err != nil {
		return Course{}, err
	}
	if err := draft.Validate(); err != nil {
		return Course{}, err
	}

	svc.setStatus(StatusSaving, "")
	crs, err := send(draft.Payload())
	if err != nil {
		svc.setStatus(StatusError, err.Error())
		svc.log.Error("course submission failed", err)
		return Course{}, err
	}
	svc.setStatus(StatusSuccess, "")
	frm.ClearDirty()
	return crs, nil
}

// List fetches courses, optionally filtered by category.
func (svc *Service) List(ctx context.Context, category string) ([]Course, error) {
	if category != "" && !ValidCategory(category) {
		return nil, core.NewValidationError(errDraftInvalid, core.FieldError{Field: "category", Error: categoryText})
	}
	courses, err := svc.api.ListCourses(ctx, category)
	if err != nil {
		return nil, errors.Wrap(err, "listing courses")
	}
	svc.mu.Lock()
	svc.courses = courses
	svc.mu.Unlock()
	return courses, nil
}

// Load fetches the course detail. A response that arrives after the user has
// navigated elsewhere (Reset or a newer Load) is discarded silently.
func (svc *Service) Load(ctx context.Context, id int) (Course, error) {
	svc.mu.Lock()
	svc.gen++
	gen := svc.gen
	svc.mu.Unlock()

	crs, err := svc.api.GetCourse(ctx, id)
	if err != nil {
		return Course{}, errors.Wrapf(err, "loading course %d", id)
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if gen == svc.gen { // stale responses are dropped
		svc.current = &crs
	}
	return crs, nil
}

// Current returns the loaded course detail, if any.
func (svc *Service) Current() (Course, bool) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.current == nil {
		return Course{}, false
	}
	return *svc.current, true
}

// Reset clears the detail state and invalidates any in-flight Load.
func (svc *Service) Reset() {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.gen++
	svc.current = nil
	svc.status = StatusIdle
	svc.lastErr = ""
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	if err := svc.api.DeleteCourse(ctx, id); err != nil {
		return errors.Wrapf(err, "deleting course %d", id)
	}
	return nil
}

func (svc *Service) Status() Status {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.status
}

// LastError returns the message of the last failed submission, for the
// inline banner; cleared by the next action.
func (svc *Service) LastError() string {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.lastErr
}

func (svc *Service) setStatus(status Status, errMsg string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.status = status
	svc.lastErr = errMsg
}
