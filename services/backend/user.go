package backend

import (
	"context"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/Andas-LV/skill-lab-frontend/core/user"
)

// loginResponse is the backend's login envelope: a bearer token plus the
// authenticated profile.
type loginResponse struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, creds user.Credentials) (string, user.User, error) {
	var body loginResponse
	_, err := call(func() (*resty.Response, error) {
		return c.rst.R().SetContext(ctx).SetBody(creds).SetResult(&body).Post("/auth/login")
	}, "logging in")
	if err != nil {
		return "", user.User{}, err
	}
	return body.Token, body.User, nil
}

func (c *Client) GetMe(ctx context.Context) (user.User, error) {
	var usr user.User
	_, err := call(func() (*resty.Response, error) {
		return c.rst.R().SetContext(ctx).SetResult(&usr).Get("/user/me")
	}, "fetching profile")
	if err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]user.User, error) {
	var users []user.User
	_, err := call(func() (*resty.Response, error) {
		return c.rst.R().SetContext(ctx).SetResult(&users).Get("/user/all")
	}, "listing users")
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, id int) (user.User, error) {
	var usr user.User
	_, err := call(func() (*resty.Response, error) {
		return c.rst.R().SetContext(ctx).SetResult(&usr).Get("/user/" + strconv.Itoa(id))
	}, "getting user")
	if err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (c *Client) ChangeUserRole(ctx context.Context, id int, role string) (user.User, error) {
	var usr user.User
	_, err := call(func() (*resty.Response, error) {
		return c.rst.R().SetContext(ctx).
			SetBody(map[string]string{"role": role}).
			SetResult(&usr).
			Patch("/user/" + strconv.Itoa(id) + "/role")
	}, "changing user role")
	if err != nil {
		return user.User{}, err
	}
	return usr, nil
}
