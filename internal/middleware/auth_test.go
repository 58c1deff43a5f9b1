package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/quizmind/quizmind-api/config"
	"github.com/quizmind/quizmind-api/internal/model"
	"github.com/quizmind/quizmind-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[uint]*model.User
}

func (r *stubUserRepo) Create(user *model.User) error { return nil }

func (r *stubUserRepo) FindByID(id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(email string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func authTestRouter(t *testing.T, secret string, users ...*model.User) (*gin.Engine, service.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &stubUserRepo{users: map[uint]*model.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	tokenSvc := service.NewTokenService(&config.Config{JWT: config.JWT{Secret: secret, ExpiryDays: 30}})

	r := gin.New()
	r.GET("/me", RequireAuth(tokenSvc, repo), func(ctx *gin.Context) {
		principal, _ := GetPrincipal(ctx)
		ctx.JSON(http.StatusOK, gin.H{"id": principal.ID, "role": string(principal.Role)})
	})
	r.GET("/admin", RequireAuth(tokenSvc, repo), AuthorizeRoles(model.RoleAdmin, model.RoleSuperAdmin), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})
	return r, tokenSvc
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_AttachesPrincipal(t *testing.T) {
	user := &model.User{ID: 7, Name: "Ada", Email: "ada@example.com", Role: model.RoleUser}
	r, tokenSvc := authTestRouter(t, "test-secret", user)

	token, err := tokenSvc.Issue(user.ID, user.Role)
	require.NoError(t, err)

	w := doGet(r, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":7`)
}

func TestRequireAuth_MissingToken(t *testing.T) {
	r, _ := authTestRouter(t, "test-secret")

	w := doGet(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ForeignSecretRejected(t *testing.T) {
	user := &model.User{ID: 7, Role: model.RoleUser}
	r, _ := authTestRouter(t, "server-secret", user)

	// A structurally valid token signed with a different secret.
	otherIssuer := service.NewTokenService(&config.Config{JWT: config.JWT{Secret: "attacker-secret", ExpiryDays: 30}})
	token, err := otherIssuer.Issue(user.ID, user.Role)
	require.NoError(t, err)

	w := doGet(r, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_DeletedUser(t *testing.T) {
	r, tokenSvc := authTestRouter(t, "test-secret") // no users in the repo

	token, err := tokenSvc.Issue(99, model.RoleUser)
	require.NoError(t, err)

	w := doGet(r, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorizeRoles(t *testing.T) {
	regular := &model.User{ID: 1, Role: model.RoleUser}
	admin := &model.User{ID: 2, Role: model.RoleAdmin}
	super := &model.User{ID: 3, Role: model.RoleSuperAdmin}
	r, tokenSvc := authTestRouter(t, "test-secret", regular, admin, super)

	for _, tc := range []struct {
		user *model.User
		want int
	}{
		{regular, http.StatusForbidden},
		{admin, http.StatusOK},
		{super, http.StatusOK},
	} {
		token, err := tokenSvc.Issue(tc.user.ID, tc.user.Role)
		require.NoError(t, err)
		w := doGet(r, "/admin", token)
		assert.Equal(t, tc.want, w.Code, "role %s", tc.user.Role)
	}
}
