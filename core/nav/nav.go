// Package nav maps logical destinations to path strings and gates navigation
// on the current session's role. Screens issue navigation intents by logical
// destination, never by raw path.
package nav

import (
	"context"
	"fmt"

	"github.com/Andas-LV/skill-lab-frontend/core/user"
)

type Destination string

const (
	Home         Destination = "home"
	Login        Destination = "login"
	Courses      Destination = "courses"
	Course       Destination = "course"
	CreateCourse Destination = "createCourse"
	Modules      Destination = "modules"
	Module       Destination = "module"
	CreateModule Destination = "createModule"
	Profile      Destination = "profile"
	Users        Destination = "users"
	UserDetail   Destination = "user"
)

// Path renders the destination as a path string; detail destinations take
// the entity id as the only argument and fall back to their collection path
// when no id is given.
func Path(dest Destination, args ...interface{}) string {
	switch dest {
	case Home:
		return "/"
	case Login:
		return "/login"
	case Courses:
		return "/courses"
	case Course:
		return detailPath("/courses", args)
	case CreateCourse:
		return "/courses/create"
	case Modules:
		return "/modules"
	case Module:
		return detailPath("/modules", args)
	case CreateModule:
		return "/modules/create"
	case Profile:
		return "/profile"
	case Users:
		return "/users"
	case UserDetail:
		return detailPath("/users", args)
	default:
		return "/"
	}
}

func detailPath(collection string, args []interface{}) string {
	if len(args) == 0 {
		return collection
	}
	return fmt.Sprintf("%s/%v", collection, args[0])
}

// minRoles declares the minimum role per gated destination; destinations not
// listed are public.
var minRoles = map[Destination]string{
	Profile:      user.RoleUser,
	CreateCourse: user.RoleTeacher,
	CreateModule: user.RoleTeacher,
	Users:        user.RoleAdmin,
	UserDetail:   user.RoleAdmin,
}

// SessionResolver is what the guard needs from the session gate.
type SessionResolver interface {
	Resolve(ctx context.Context) (user.Session, bool)
}

// Guard resolves navigation intents before a screen's data fetch is issued:
// an unauthenticated visit to a gated destination redirects to login, an
// insufficient role redirects home. The guard never hits the network itself
// beyond the gate's own session resolution.
type Guard struct {
	gate SessionResolver
}

func NewGuard(gate SessionResolver) *Guard {
	return &Guard{gate: gate}
}

// Resolve returns the destination to actually navigate to.
func (g *Guard) Resolve(ctx context.Context, dest Destination) Destination {
	min, gated := minRoles[dest]
	if !gated {
		return dest
	}
	sess, ok := g.gate.Resolve(ctx)
	if !ok {
		return Login
	}
	if !sess.Allows(min) {
		return Home
	}
	return dest
}

// Allowed reports whether the destination would resolve to itself.
func (g *Guard) Allowed(ctx context.Context, dest Destination) bool {
	return g.Resolve(ctx, dest) == dest
}
