package backend

import (
	"context"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/Andas-LV/skill-lab-frontend/core/course"
)

func (c *Client) CreateCourse(ctx context.Context, p course.Payload) (course.Course, error) {
	var crs course.Course
	_, err := call(func() (*resty.Response, error) {
		return c.rst.R().SetContext(ctx).SetBody(p).SetResult(&crs).Post("/courses/add")
	}, "creating course")
	if err != nil {
		return course.Course{}, err
	}
	return crs, nil
}

func (c *Client) ListCourses(ctx context.Context, category string) ([]course.Course, error) {
	var courses []course.Course
	req := c.rst.R().SetContext(ctx).SetResult(&courses)
	if category != "" {
		req.SetQueryParam("category", category)
	}
	_, err := call(func() (*resty.Response, error) {
		return req.Get("/courses/list")
	}, "listing courses")
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *Client) GetCourse(ctx context.Context, id int) (course.Course, error) {
	var crs course.Course
	_, err := call(func() (*resty.Response, error) {
		return c.rst.R().SetContext(ctx).SetResult(&crs).Get("/courses/" + strconv.Itoa(id))
	}, "getting course")
	if err != nil {
		return course.Course{}, err
	}
	return crs, nil
}

func (c *Client) UpdateCourse(ctx context.Context, id int, p course.Payload) (course.Course, error) {
	var crs course.Course
	_, err := call(func() (*resty.Response, error) {
		return c.rst.R().SetContext(ctx).SetBody(p).SetResult(&crs).Patch("/courses/" + strconv.Itoa(id))
	}, "updating course")
	if err != nil {
		return course.Course{}, err
	}
	return crs, nil
}

func (c *Client) DeleteCourse(ctx context.Context, id int) error {
	_, err := call(func() (*resty.Response, error) {
		return c.rst.R().SetContext(ctx).Delete("/courses/" + strconv.Itoa(id))
	}, "deleting course")
	return err
}
