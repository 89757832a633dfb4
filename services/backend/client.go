// Package backend is the REST client for the skill-lab API. All JSON
// payloads and paths follow the backend's OpenAPI contract; authenticated
// requests carry the bearer credential read from the token store.
package backend

import (
	"encoding/json"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/Andas-LV/skill-lab-frontend/core"
	"github.com/Andas-LV/skill-lab-frontend/core/course"
	"github.com/Andas-LV/skill-lab-frontend/core/unit"
	"github.com/Andas-LV/skill-lab-frontend/core/user"
)

type Client struct {
	rst *resty.Client
	log core.Logger
}

var (
	_ course.API    = (*Client)(nil)
	_ unit.API      = (*Client)(nil)
	_ user.AuthAPI  = (*Client)(nil)
	_ user.AdminAPI = (*Client)(nil)
)

func NewClient(baseURL string, tokens user.TokenStore, logger core.Logger) *Client {
	if logger == nil {
		logger = core.NopLogger{}
	}
	rst := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(core.Conf.GetDuration("requestTimeout")).
		SetHeader("Content-Type", "application/json")

	rst.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		token, err := tokens.GetAuthToken()
		if err != nil {
			logger.Warn("reading auth token failed", err)
			return nil
		}
		if token != "" {
			req.SetHeader("Authorization", "Bearer "+token)
		}
		return nil
	})

	return &Client{rst: rst, log: logger}
}

// errorBody matches the backend's JSON error envelope.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// responseError converts a non-2xx response into a *core.APIError carrying
// the backend's message verbatim.
func responseError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	var body errorBody
	msg := ""
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		if body.Error != "" {
			msg = body.Error
		} else {
			msg = body.Message
		}
	}
	return core.NewAPIError(resp.StatusCode(), msg)
}

// call wraps transport errors; HTTP-level failures go through responseError.
func call(req func() (*resty.Response, error), op string) (*resty.Response, error) {
	resp, err := req()
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	if err := responseError(resp); err != nil {
		return nil, err
	}
	return resp, nil
}
