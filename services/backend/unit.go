package backend

import (
	"context"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/Andas-LV/skill-lab-frontend/core/unit"
)

func (c *Client) CreateModule(ctx context.Context, p unit.Payload) (unit.Module, error) {
	var mod unit.Module
	_, err := call(func() (*resty.Response, error) {
		return c.rst.R().SetContext(ctx).SetBody(p).SetResult(&mod).Post("/modules/add")
	}, "creating module")
	if err != nil {
		return unit.Module{}, err
	}
	return mod, nil
}

func (c *Client) ListModules(ctx context.Context) ([]unit.Module, error) {
	var modules []unit.Module
	_, err := call(func() (*resty.Response, error) {
		return c.rst.R().SetContext(ctx).SetResult(&modules).Get("/modules/list")
	}, "listing modules")
	if err != nil {
		return nil, err
	}
	return modules, nil
}

func (c *Client) UpdateModule(ctx context.Context, id int, p unit.Payload) (unit.Module, error) {
	var mod unit.Module
	_, err := call(func() (*resty.Response, error) {
		return c.rst.R().SetContext(ctx).SetBody(p).SetResult(&mod).Patch("/modules/" + strconv.Itoa(id))
	}, "updating module")
	if err != nil {
		return unit.Module{}, err
	}
	return mod, nil
}

func (c *Client) DeleteModule(ctx context.Context, id int) error {
	_, err := call(func() (*resty.Response, error) {
		return c.rst.R().SetContext(ctx).Delete("/modules/" + strconv.Itoa(id))
	}, "deleting module")
	return err
}
