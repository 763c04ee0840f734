package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobimama/mobimama-api/internal/model"
	"github.com/mobimama/mobimama-api/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	store  session.Store
	tokens *session.TokenCodec
}

func newFixture() *fixture {
	return &fixture{
		store:  session.NewMemoryStore(time.Hour),
		tokens: session.NewTokenCodec("test-secret", time.Hour),
	}
}

// Resolve makes the fixture a SessionResolver the way the auth service is.
func (f *fixture) Resolve(ctx context.Context, token string) (*session.Session, error) {
	sid, err := f.tokens.Decode(token)
	if err != nil {
		return nil, err
	}
	return f.store.Get(ctx, sid)
}

func (f *fixture) tokenFor(t *testing.T, role model.Role) string {
	t.Helper()
	sess := &session.Session{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Username: "user-" + string(role),
		Role:     role,
		Language: "en",
	}
	require.NoError(t, f.store.Create(context.Background(), sess))
	token, err := f.tokens.Encode(sess.ID)
	require.NoError(t, err)
	return token
}

func newRouter(f *fixture, roles ...model.Role) *gin.Engine {
	r := gin.New()
	r.Use(Authenticate(f))
	guarded := r.Group("/guarded")
	if len(roles) > 0 {
		guarded.Use(RequireRole(roles...))
	} else {
		guarded.Use(RequireAuth())
	}
	guarded.GET("", func(c *gin.Context) {
		actor := ActorFrom(c)
		c.JSON(http.StatusOK, gin.H{"username": actor.Username})
	})
	return r
}

func perform(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	f := newFixture()
	r := newRouter(f)

	w := perform(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthenticated")
}

func TestRequireAuthRejectsGarbageToken(t *testing.T) {
	f := newFixture()
	r := newRouter(f)

	w := perform(r, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthAcceptsLiveSession(t *testing.T) {
	f := newFixture()
	r := newRouter(f)

	w := perform(r, f.tokenFor(t, model.RoleMother))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleDistinguishesDenyReasons(t *testing.T) {
	f := newFixture()
	r := newRouter(f, model.RoleClinic, model.RoleNurse)

	// Anonymous: must log in.
	w := perform(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthenticated")

	// Logged in as mother: wrong role, not missing login.
	w = perform(r, f.tokenFor(t, model.RoleMother))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "wrong_role")

	// Staff roles pass.
	w = perform(r, f.tokenFor(t, model.RoleNurse))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminOnlyGroupLocksOutEveryoneElse(t *testing.T) {
	f := newFixture()
	r := newRouter(f, model.RoleAdmin)

	for _, role := range []model.Role{model.RoleMother, model.RoleClinic, model.RoleNurse} {
		w := perform(r, f.tokenFor(t, role))
		assert.Equal(t, http.StatusForbidden, w.Code, "role %s", role)
	}

	w := perform(r, f.tokenFor(t, model.RoleAdmin))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoggedOutSessionIsAnonymous(t *testing.T) {
	f := newFixture()
	r := newRouter(f)

	token := f.tokenFor(t, model.RoleMother)
	sid, err := f.tokens.Decode(token)
	require.NoError(t, err)
	require.NoError(t, f.store.Delete(context.Background(), sid))

	w := perform(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
