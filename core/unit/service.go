package unit

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

// API is the backend collaborator for modules. The backend has no get-by-id
// endpoint; detail lookups go through ListModules.
type API interface {
	CreateModule(ctx context.Context, p Payload) (Module, error)
	ListModules(ctx context.Context) ([]Module, error)
	UpdateModule(ctx context.Context, id int, p Payload) (Module, error)
	DeleteModule(ctx context.Context, id int) error
}

// Service drives the module screens.
type Service struct {
	api API
	log core.Logger

	mu      sync.Mutex
	status  Status
	lastErr string
	modules []Module
	current *Module
	gen     int
}

func NewService(api API, logger core.Logger) *Service {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Service{api: api, log: logger, status: StatusIdle}
}

// Create validates the form and, if valid, submits it as a new module.
func (svc *Service) Create(ctx context.Context, frm *form.Form) (Module, error) {
	return svc.submit(ctx, frm, func(p Payload) (Module, error) {
		return svc.api.CreateModule(ctx, p)
	})
}

// Update validates the form and, if valid, submits it as an update.
func (svc *Service) Update(ctx context.Context, id int, frm *form.Form) (Module, error) {
	return svc.submit(ctx, frm, func(p Payload) (Module, error) {
		return svc.api.UpdateModule(ctx, id, p)
	})
}

func (svc *Service) submit(ctx context.Context, frm *form.Form, send func(Payload) (Module, error)) (Module, error) {
	draft := DraftFromValues(frm.Snapshot())
	if err := draft.Validate(); err != nil {
		return Module{}, err
	}

	svc.setStatus(StatusSaving, "")
	mod, err := send(draft.Payload())
	if err != nil {
		svc.setStatus(StatusError, err.Error())
		svc.log.Error("module submission failed", err)
		return Module{}, err
	}
	svc.setStatus(StatusSuccess, "")
	frm.ClearDirty()
	return mod, nil
}

// List fetches all modules.
func (svc *Service) List(ctx context.Context) ([]Module, error) {
	modules, err := svc.api.ListModules(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing modules")
	}
	svc.mu.Lock()
	svc.modules = modules
	svc.mu.Unlock()
	return modules, nil
}

// Load resolves a module detail by fetching the list and finding the id.
// Stale responses (after Reset or a newer Load) are discarded silently.
func (svc *Service) Load(ctx context.Context, id int) (Module, error) {
	svc.mu.Lock()
	svc.gen++
	gen := svc.gen
	svc.mu.Unlock()

	modules, err := svc.api.ListModules(ctx)
	if err != nil {
		return Module{}, errors.Wrapf(err, "loading module %d", id)
	}
	for _, mod := range modules {
		if mod.ID == id {
			svc.mu.Lock()
			if gen == svc.gen {
				m := mod
				svc.current = &m
			}
			svc.mu.Unlock()
			return mod, nil
		}
	}
	return Module{}, ErrNotFound
}

// Current returns the loaded module detail, if any.
func (svc *Service) Current() (Module, bool) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.current == nil {
		return Module{}, false
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
	if err := svc.api.DeleteModule(ctx, id); err != nil {
		return errors.Wrapf(err, "deleting module %d", id)
	}
	return nil
}

func (svc *Service) Status() Status {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.status
}

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
