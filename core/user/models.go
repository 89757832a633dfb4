package user

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Andas-LV/skill-lab-frontend/core"
	"github.com/Andas-LV/skill-lab-frontend/core/course"
)

// Roles
const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
	RoleUser    = "USER"
)

var (
	AllRoles = []string{RoleAdmin, RoleTeacher, RoleUser}

	rolePriorities = map[string]int{
		RoleAdmin:   30,
		RoleTeacher: 20,
		RoleUser:    10,
	}

	// custom validation tags & texts
	roleTag  = "role"
	roleText = "invalid role"

	errCredentialsInvalid = errors.New("credentials are invalid")
	errRoleInvalid        = errors.New("role is invalid")
)

func init() {
	_ = core.Validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(core.Validate, core.Translator, roleTag, roleText)
}

func roleValidation(fl validator.FieldLevel) bool {
	if role, ok := fl.Field().Interface().(string); ok {
		return ValidRole(role)
	}
	return false
}

func RolePriority(role string) int {
	return rolePriorities[role]
}

func ValidRole(role string) bool {
	_, ok := rolePriorities[role]
	return ok
}

// User is a profile as returned by the backend. FavoriteItems is only
// populated on the user detail endpoint.
type User struct {
	ID            int            `json:"id"`
	Username      string         `json:"username"`
	Email         string         `json:"email"`
	Role          string         `json:"role,omitempty"`
	FavoriteItems []FavoriteItem `json:"favoriteItems,omitempty"`
}

type FavoriteItem struct {
	Course course.Course `json:"course"`
}

// FavoriteCourses unwraps the favorite items to plain courses.
func (u User) FavoriteCourses() []course.Course {
	if len(u.FavoriteItems) == 0 {
		return nil
	}
	courses := make([]course.Course, len(u.FavoriteItems))
	for i, item := range u.FavoriteItems {
		courses[i] = item.Course
	}
	return courses
}

// Session is the process-wide state representing the current authenticated
// actor. It is written only by the Gate and read by every gated screen.
type Session struct {
	UserID    int
	Username  string
	Email     string
	Role      string
	AuthToken string
}

// Allows reports whether the session's role is at least `min`.
func (s Session) Allows(min string) bool {
	return RolePriority(s.Role) >= RolePriority(min)
}

// Credentials is the login form submission.
type Credentials struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate() error {
	c.Username = core.CleanString(c.Username)
	if err := core.Validate.Struct(c); err != nil {
		if vErrs, ok := err.(validator.ValidationErrors); ok {
			return core.NewValidationError(errCredentialsInvalid, core.TranslateErrors(vErrs)...)
		}
		return err
	}
	return nil
}
