// Package testutil provides an in-memory double of the skill-lab REST
// backend. Integration tests stand it up with httptest and point the client
// at it; it implements the documented contract (bearer auth, JSON errors,
// role checks) without any real persistence.
package testutil

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

var secretKey = []byte("test-secret")

// Claims carried by the double's tokens.
type Claims struct {
	jwt.StandardClaims
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

type backendUser struct {
	ID            int                      `json:"id"`
	Username      string                   `json:"username"`
	Email         string                   `json:"email"`
	Role          string                   `json:"role,omitempty"`
	FavoriteItems []map[string]interface{} `json:"favoriteItems,omitempty"`

	passwordHash []byte
}

// Backend is the in-memory API double. Stored entities are kept as the raw
// wire objects the client sent, so tests can assert on exactly what went
// over the wire.
type Backend struct {
	App *echo.Echo

	mu       sync.Mutex
	users    map[int]*backendUser
	courses  map[int]map[string]interface{}
	modules  map[int]map[string]interface{}
	nextID   int
	requests map[string]int
}

func NewBackend() *Backend {
	b := &Backend{
		users:    make(map[int]*backendUser),
		courses:  make(map[int]map[string]interface{}),
		modules:  make(map[int]map[string]interface{}),
		requests: make(map[string]int),
	}

	app := echo.New()
	app.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := http.StatusText(code)
		if herr, ok := err.(*echo.HTTPError); ok {
			code = herr.Code
			if m, ok := herr.Message.(string); ok {
				msg = m
			}
		}
		if !c.Response().Committed {
			_ = c.JSON(code, echo.Map{"error": msg})
		}
	}
	app.Use(b.countRequests)

	app.POST("/auth/login", b.login)

	authed := app.Group("", b.requireToken)
	authed.GET("/user/me", b.getMe)
	authed.GET("/user/all", b.listUsers, b.requireAdmin)
	authed.GET("/user/:id", b.getUser, b.requireAdmin)
	authed.PATCH("/user/:id/role", b.changeRole, b.requireAdmin)

	authed.POST("/courses/add", b.createCourse)
	authed.GET("/courses/list", b.listCourses)
	authed.GET("/courses/:id", b.getCourse)
	authed.PATCH("/courses/:id", b.updateCourse)
	authed.DELETE("/courses/:id", b.deleteCourse)

	authed.POST("/modules/add", b.createModule)
	authed.GET("/modules/list", b.listModules)
	authed.PATCH("/modules/:id", b.updateModule)
	authed.DELETE("/modules/:id", b.deleteModule)

	b.App = app
	return b
}

// AddUser seeds a user and returns its id.
func (b *Backend) AddUser(username, email, password, role string) int {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.users[b.nextID] = &backendUser{
		ID:           b.nextID,
		Username:     username,
		Email:        email,
		Role:         role,
		passwordHash: hash,
	}
	return b.nextID
}

// AddFavorite attaches a stored course to a user's favorites.
func (b *Backend) AddFavorite(userID, courseID int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if usr, ok := b.users[userID]; ok {
		if crs, ok := b.courses[courseID]; ok {
			usr.FavoriteItems = append(usr.FavoriteItems, map[string]interface{}{"course": crs})
		}
	}
}

// TokenFor issues a valid token for the user, expiring after ttl (default 1h).
func (b *Backend) TokenFor(userID int, ttl ...time.Duration) string {
	delta := time.Hour
	if len(ttl) > 0 {
		delta = ttl[0]
	}
	b.mu.Lock()
	usr := b.users[userID]
	b.mu.Unlock()
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.Itoa(userID),
			ExpiresAt: time.Now().Add(delta).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
		Username: usr.Username,
		Email:    usr.Email,
		Role:     usr.Role,
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
	return token
}

// RequestCount returns how many requests hit the given method+path prefix,
// eg. RequestCount("GET /user/all").
func (b *Backend) RequestCount(prefix string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	count := 0
	for key, n := range b.requests {
		if strings.HasPrefix(key, prefix) {
			count += n
		}
	}
	return count
}

// StoredCourse returns the raw wire object received for a course.
func (b *Backend) StoredCourse(id int) map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.courses[id]
}

// StoredModule returns the raw wire object received for a module.
func (b *Backend) StoredModule(id int) map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.modules[id]
}

// middleware

func (b *Backend) countRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		b.mu.Lock()
		b.requests[c.Request().Method+" "+c.Request().URL.Path]++
		b.mu.Unlock()
		return next(c)
	}
}

func (b *Backend) requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed jwt")
		}
		claims := &Claims{}
		_, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims, func(*jwt.Token) (interface{}, error) {
			return secretKey, nil
		})
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired jwt")
		}
		c.Set("claims", claims)
		return next(c)
	}
}

func (b *Backend) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := c.Get("claims").(*Claims)
		if claims.Role != "ADMIN" {
			return echo.NewHTTPError(http.StatusForbidden, "permission denied")
		}
		return next(c)
	}
}

// auth & user handlers

func (b *Backend) login(c echo.Context) error {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}
	b.mu.Lock()
	var usr *backendUser
	for _, u := range b.users {
		if u.Username == creds.Username {
			usr = u
			break
		}
	}
	b.mu.Unlock()
	if usr == nil || bcrypt.CompareHashAndPassword(usr.passwordHash, []byte(creds.Password)) != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "authentication failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"token": b.TokenFor(usr.ID), "user": usr})
}

func (b *Backend) getMe(c echo.Context) error {
	claims := c.Get("claims").(*Claims)
	id, _ := strconv.Atoi(claims.Subject)
	b.mu.Lock()
	usr, ok := b.users[id]
	b.mu.Unlock()
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
	}
	return c.JSON(http.StatusOK, usr)
}

func (b *Backend) listUsers(c echo.Context) error {
	b.mu.Lock()
	users := make([]*backendUser, 0, len(b.users))
	for id := 1; id <= b.nextID; id++ {
		if usr, ok := b.users[id]; ok {
			users = append(users, usr)
		}
	}
	b.mu.Unlock()
	return c.JSON(http.StatusOK, users)
}

func (b *Backend) getUser(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	b.mu.Lock()
	usr, ok := b.users[id]
	b.mu.Unlock()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, usr)
}

func (b *Backend) changeRole(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	var body struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	usr, ok := b.users[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	usr.Role = body.Role
	return c.JSON(http.StatusOK, usr)
}

// course handlers

func (b *Backend) createCourse(c echo.Context) error {
	body := map[string]interface{}{}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}
	b.mu.Lock()
	b.nextID++
	body["id"] = b.nextID
	b.courses[b.nextID] = body
	b.mu.Unlock()
	return c.JSON(http.StatusCreated, body)
}

func (b *Backend) listCourses(c echo.Context) error {
	category := c.QueryParam("category")
	b.mu.Lock()
	courses := make([]map[string]interface{}, 0, len(b.courses))
	for id := 1; id <= b.nextID; id++ {
		crs, ok := b.courses[id]
		if !ok {
			continue
		}
		if category != "" && crs["category"] != category {
			continue
		}
		courses = append(courses, crs)
	}
	b.mu.Unlock()
	return c.JSON(http.StatusOK, courses)
}

func (b *Backend) getCourse(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	b.mu.Lock()
	crs, ok := b.courses[id]
	b.mu.Unlock()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "course not found")
	}
	return c.JSON(http.StatusOK, crs)
}

func (b *Backend) updateCourse(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	body := map[string]interface{}{}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.courses[id]; !ok {
		return echo.NewHTTPError(http.StatusNotFound, "course not found")
	}
	body["id"] = id
	b.courses[id] = body
	return c.JSON(http.StatusOK, body)
}

func (b *Backend) deleteCourse(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	b.mu.Lock()
	delete(b.courses, id)
	b.mu.Unlock()
	return c.NoContent(http.StatusNoContent)
}

// module handlers

func (b *Backend) createModule(c echo.Context) error {
	body := map[string]interface{}{}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}
	b.mu.Lock()
	b.nextID++
	body["id"] = b.nextID
	b.modules[b.nextID] = body
	b.mu.Unlock()
	return c.JSON(http.StatusCreated, body)
}

func (b *Backend) listModules(c echo.Context) error {
	b.mu.Lock()
	modules := make([]map[string]interface{}, 0, len(b.modules))
	for id := 1; id <= b.nextID; id++ {
		if mod, ok := b.modules[id]; ok {
			modules = append(modules, mod)
		}
	}
	b.mu.Unlock()
	return c.JSON(http.StatusOK, modules)
}

func (b *Backend) updateModule(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	body := map[string]interface{}{}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.modules[id]; !ok {
		return echo.NewHTTPError(http.StatusNotFound, "module not found")
	}
	body["id"] = id
	b.modules[id] = body
	return c.JSON(http.StatusOK, body)
}

func (b *Backend) deleteModule(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	b.mu.Lock()
	delete(b.modules, id)
	b.mu.Unlock()
	return c.NoContent(http.StatusNoContent)
}
