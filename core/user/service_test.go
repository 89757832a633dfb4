package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andas-LV/skill-lab-frontend/core"
	"github.com/Andas-LV/skill-lab-frontend/core/course"
)

type adminStub struct {
	calls int
	users []User
}

func (s *adminStub) ListUsers(ctx context.Context) ([]User, error) {
	s.calls++
	return s.users, nil
}

func (s *adminStub) GetUser(ctx context.Context, id int) (User, error) {
	s.calls++
	for _, usr := range s.users {
		if usr.ID == id {
			return usr, nil
		}
	}
	return User{}, core.NewAPIError(404, "user not found")
}

func (s *adminStub) ChangeUserRole(ctx context.Context, id int, role string) (User, error) {
	s.calls++
	return User{ID: id, Role: role}, nil
}

func gateWithRole(t *testing.T, role string) *Gate {
	t.Helper()
	api := &authStub{token: "tok", user: User{ID: 1, Username: "actor", Role: role}}
	gate := NewGate(api, &MemoryTokenStore{}, nil)
	_, err := gate.Login(context.Background(), Credentials{Username: "actor", Password: "pass"})
	require.NoError(t, err)
	return gate
}

func TestServiceDeniesNonAdmins(t *testing.T) {
	ctx := context.Background()
	for _, role := range []string{RoleUser, RoleTeacher} {
		t.Run(role, func(t *testing.T) {
			api := &adminStub{}
			svc := NewService(api, gateWithRole(t, role), nil)

			_, err := svc.List(ctx)
			assert.ErrorIs(t, err, ErrPermissionDenied)
			_, err = svc.Get(ctx, 1)
			assert.ErrorIs(t, err, ErrPermissionDenied)
			_, err = svc.ChangeRole(ctx, 1, RoleTeacher)
			assert.ErrorIs(t, err, ErrPermissionDenied)
			assert.Zero(t, api.calls, "a denied screen never hits the network")
		})
	}
}

func TestServiceDeniesAnonymous(t *testing.T) {
	ctx := context.Background()
	api := &adminStub{}
	gate := NewGate(&authStub{}, &MemoryTokenStore{}, nil)
	svc := NewService(api, gate, nil)

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Zero(t, api.calls)
}

func TestServiceList(t *testing.T) {
	ctx := context.Background()
	api := &adminStub{users: []User{{ID: 1, Username: "a"}, {ID: 2, Username: "b"}}}
	svc := NewService(api, gateWithRole(t, RoleAdmin), nil)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestServiceGet(t *testing.T) {
	ctx := context.Background()
	api := &adminStub{users: []User{{
		ID:            5,
		Username:      "b",
		FavoriteItems: []FavoriteItem{{Course: course.Course{ID: 9, Title: "Go"}}},
	}}}
	svc := NewService(api, gateWithRole(t, RoleAdmin), nil)

	usr, err := svc.Get(ctx, 5)
	require.NoError(t, err)
	favs := usr.FavoriteCourses()
	require.Len(t, favs, 1)
	assert.Equal(t, "Go", favs[0].Title)

	_, err = svc.Get(ctx, 99)
	assert.True(t, core.IsNotFound(err))
}

func TestServiceChangeRole(t *testing.T) {
	ctx := context.Background()
	api := &adminStub{}
	svc := NewService(api, gateWithRole(t, RoleAdmin), nil)

	usr, err := svc.ChangeRole(ctx, 3, RoleTeacher)
	require.NoError(t, err)
	assert.Equal(t, RoleTeacher, usr.Role)
}

func TestServiceChangeRoleInvalid(t *testing.T) {
	ctx := context.Background()
	api := &adminStub{}
	svc := NewService(api, gateWithRole(t, RoleAdmin), nil)

	_, err := svc.ChangeRole(ctx, 3, "SUPERUSER")
	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "invalid role", vErr.FieldMap()["role"])
	assert.Zero(t, api.calls, "an invalid role never reaches the backend")
}
