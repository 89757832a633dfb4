package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andas-LV/skill-lab-frontend/core/course"
	"github.com/Andas-LV/skill-lab-frontend/core/nav"
	"github.com/Andas-LV/skill-lab-frontend/core/unit"
	"github.com/Andas-LV/skill-lab-frontend/core/user"
	"github.com/Andas-LV/skill-lab-frontend/services/backend"
	testutil "github.com/Andas-LV/skill-lab-frontend/tests"
)

type cliFixture struct {
	cli     *commandLine
	backend *testutil.Backend
	tokens  *user.MemoryTokenStore
	out     *bytes.Buffer
}

func newCLI(t *testing.T) *cliFixture {
	t.Helper()
	b, baseURL := testutil.StartBackend(t)
	tokens := &user.MemoryTokenStore{}
	client := backend.NewClient(baseURL, tokens, nil)
	gate := user.NewGate(client, tokens, nil)
	out := &bytes.Buffer{}
	cli := &commandLine{
		out:    out,
		gate:   gate,
		guard:  nav.NewGuard(gate),
		crsSvc: course.NewService(client, nil),
		modSvc: unit.NewService(client, nil),
		usrSvc: user.NewService(client, gate, nil),
	}
	return &cliFixture{cli: cli, backend: b, tokens: tokens, out: out}
}

func (f *cliFixture) loginAs(t *testing.T, role string) {
	t.Helper()
	id := f.backend.AddUser("actor", "actor@test.io", "secret", role)
	require.NoError(t, f.tokens.SetAuthToken(f.backend.TokenFor(id)))
}

func (f *cliFixture) run(args ...string) error {
	return f.cli.run(append([]string{"skill-lab"}, args...))
}

func draftFile(t *testing.T, draft map[string]interface{}) string {
	t.Helper()
	data, err := json.Marshal(draft)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "draft.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestRunUsage(t *testing.T) {
	f := newCLI(t)
	assert.ErrorIs(t, f.run(), errHelp)
	assert.Contains(t, f.out.String(), "Usage:")

	f.out.Reset()
	assert.ErrorIs(t, f.run("frobnicate"), errHelp)
	assert.Contains(t, f.out.String(), "Usage:")
}

func TestLoginCommand(t *testing.T) {
	f := newCLI(t)
	f.backend.AddUser("amina", "amina@test.io", "secret", "TEACHER")

	origReadPassword := readPasswordFunc
	readPasswordFunc = func(int) ([]byte, error) { return []byte("secret"), nil }
	defer func() { readPasswordFunc = origReadPassword }()

	require.NoError(t, f.run("login", "-username", "amina"))
	assert.Contains(t, f.out.String(), "logged in as amina (TEACHER)")

	f.out.Reset()
	require.NoError(t, f.run("whoami"))
	assert.Contains(t, f.out.String(), "amina <amina@test.io> role=TEACHER")

	f.out.Reset()
	require.NoError(t, f.run("logout"))
	assert.Contains(t, f.out.String(), "logged out")

	f.out.Reset()
	require.NoError(t, f.run("whoami"))
	assert.Contains(t, f.out.String(), "not logged in")
}

func TestCourseCommands(t *testing.T) {
	f := newCLI(t)
	f.loginAs(t, "TEACHER")

	path := draftFile(t, map[string]interface{}{
		"title":    "Go course",
		"category": "BACKEND",
		"price":    "30",
	})
	require.NoError(t, f.run("course-create", "-file", path))
	assert.Contains(t, f.out.String(), "created course 2: Go course")

	f.out.Reset()
	require.NoError(t, f.run("courses", "-category", "BACKEND"))
	assert.Contains(t, f.out.String(), "Go course")

	f.out.Reset()
	require.NoError(t, f.run("course", "-id", "2"))
	assert.Contains(t, f.out.String(), `"title": "Go course"`)

	// The update overlays the draft file on the fetched course.
	f.out.Reset()
	update := draftFile(t, map[string]interface{}{"title": "Go course v2"})
	require.NoError(t, f.run("course-update", "-id", "2", "-file", update))
	assert.Contains(t, f.out.String(), "updated course 2: Go course v2")
	assert.Equal(t, "BACKEND", f.backend.StoredCourse(2)["category"], "unchanged fields survive the update")

	f.out.Reset()
	require.NoError(t, f.run("course-delete", "-id", "2"))
	assert.Contains(t, f.out.String(), "deleted course 2")
	assert.Nil(t, f.backend.StoredCourse(2))
}

func TestCourseCreateInvalidDraft(t *testing.T) {
	f := newCLI(t)
	f.loginAs(t, "TEACHER")

	path := draftFile(t, map[string]interface{}{"price": "-5"})
	err := f.run("course-create", "-file", path)
	require.Error(t, err)
	assert.Contains(t, f.out.String(), "title: this field is required")
	assert.Contains(t, f.out.String(), "price: cannot be negative")
	assert.Zero(t, f.backend.RequestCount("POST /courses/add"))
}

func TestCourseCreateDeniedForStudents(t *testing.T) {
	f := newCLI(t)
	f.loginAs(t, "USER")

	path := draftFile(t, map[string]interface{}{"title": "Nope"})
	err := f.run("course-create", "-file", path)
	require.Error(t, err)
	assert.Contains(t, f.out.String(), "redirecting to /")
	assert.Zero(t, f.backend.RequestCount("POST /courses/add"))
}

func TestModuleCommands(t *testing.T) {
	f := newCLI(t)
	f.loginAs(t, "TEACHER")

	require.NoError(t, f.run("module-create", "-title", "Basics", "-lesson", "Syntax", "-lesson", "Types"))
	assert.Contains(t, f.out.String(), "created module 2: Basics")

	f.out.Reset()
	require.NoError(t, f.run("modules"))
	assert.Contains(t, f.out.String(), "Basics (2 lessons)")

	f.out.Reset()
	require.NoError(t, f.run("module", "-id", "2"))
	assert.Contains(t, f.out.String(), `"children"`)

	// The update overlays the given flags on the fetched module.
	f.out.Reset()
	require.NoError(t, f.run("module-update", "-id", "2", "-title", "Basics v2"))
	assert.Contains(t, f.out.String(), "updated module 2: Basics v2")
	assert.Equal(t, []interface{}{"Syntax", "Types"}, f.backend.StoredModule(2)["children"], "unchanged lessons survive the update")

	f.out.Reset()
	require.NoError(t, f.run("module-update", "-id", "2", "-lesson", "Interfaces"))
	assert.Equal(t, []interface{}{"Interfaces"}, f.backend.StoredModule(2)["children"])

	f.out.Reset()
	require.NoError(t, f.run("module-delete", "-id", "2"))
	assert.Contains(t, f.out.String(), "deleted module 2")
	assert.Nil(t, f.backend.StoredModule(2))
}

func TestModuleMutationsDeniedForStudents(t *testing.T) {
	f := newCLI(t)
	f.loginAs(t, "USER")

	err := f.run("module-update", "-id", "1", "-title", "Nope")
	require.Error(t, err)
	assert.Contains(t, f.out.String(), "redirecting to /")
	assert.Zero(t, f.backend.RequestCount("PATCH /modules/1"))
	assert.Zero(t, f.backend.RequestCount("GET /modules/list"), "the denied update never loads the module either")

	f.out.Reset()
	err = f.run("module-delete", "-id", "1")
	require.Error(t, err)
	assert.Contains(t, f.out.String(), "redirecting to /")
	assert.Zero(t, f.backend.RequestCount("DELETE /modules/1"))
}

func TestUserCommandsRequireAdmin(t *testing.T) {
	f := newCLI(t)
	f.loginAs(t, "TEACHER")

	err := f.run("users")
	require.Error(t, err)
	assert.Contains(t, f.out.String(), "redirecting to /")
	assert.Zero(t, f.backend.RequestCount("GET /user/all"), "a denied screen issues no data fetch")

	// The detail and role commands redirect the same way, without panicking
	// on the id-less destination path.
	f.out.Reset()
	err = f.run("user", "-id", "2")
	require.Error(t, err)
	assert.Contains(t, f.out.String(), "redirecting to /")
	assert.Contains(t, err.Error(), "access to /users denied")
	assert.Zero(t, f.backend.RequestCount("GET /user/2"))

	f.out.Reset()
	err = f.run("user-role", "-id", "2", "-role", "USER")
	require.Error(t, err)
	assert.Contains(t, f.out.String(), "redirecting to /")
	assert.Zero(t, f.backend.RequestCount("PATCH /user/2/role"))
}

func TestCourseDeleteAnonymousRedirects(t *testing.T) {
	f := newCLI(t)

	err := f.run("course-delete", "-id", "1")
	require.Error(t, err)
	assert.Contains(t, f.out.String(), "redirecting to /login")
	assert.Zero(t, f.backend.RequestCount("DELETE /courses/1"))
}

func TestUserCommandsAnonymousRedirectsToLogin(t *testing.T) {
	f := newCLI(t)

	err := f.run("users")
	require.Error(t, err)
	assert.Contains(t, f.out.String(), "redirecting to /login")
	assert.Zero(t, f.backend.RequestCount("GET /user/all"))
}

func TestUserCommands(t *testing.T) {
	f := newCLI(t)
	f.loginAs(t, "ADMIN")
	f.backend.AddUser("student", "student@test.io", "secret", "USER")

	require.NoError(t, f.run("users"))
	assert.Contains(t, f.out.String(), "student <student@test.io>")

	f.out.Reset()
	require.NoError(t, f.run("user", "-id", "2"))
	assert.Contains(t, f.out.String(), `"username": "student"`)

	f.out.Reset()
	require.NoError(t, f.run("user-role", "-id", "2", "-role", "TEACHER"))
	assert.Contains(t, f.out.String(), "user 2 is now TEACHER")

	f.out.Reset()
	err := f.run("user-role", "-id", "2", "-role", "SUPERUSER")
	require.Error(t, err)
	assert.Contains(t, f.out.String(), "role: invalid role")
}
