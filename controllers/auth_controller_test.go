package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rian448/SMAve-System/models"
)

func TestLoginWrongPassword(t *testing.T) {
	fx := setup(t)

	w, env := fx.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "Invalid credentials", env.Message)
}

func TestLoginUnknownUser(t *testing.T) {
	fx := setup(t)

	w, _ := fx.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "nobody",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginCreatesSession(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "admin")

	var cnt int64
	fx.db.Model(&models.Session{}).Where("token = ?", token).Count(&cnt)
	assert.Equal(t, int64(1), cnt)

	w, env := fx.request(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[models.User](t, env.Data)
	assert.Equal(t, "admin", me.Username)
	assert.Equal(t, models.RoleAdministrator, me.Role)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "sup")

	w, _ := fx.request(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The token still verifies cryptographically but the session is gone.
	w, _ = fx.request(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMissingTokenRejected(t *testing.T) {
	fx := setup(t)

	w, _ := fx.request(t, http.MethodGet, "/api/dashboard/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = fx.request(t, http.MethodGet, "/api/dashboard/stats", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestArchivedUserCannotAuthenticate(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "staff")

	fx.db.Model(&models.User{}).Where("username = ?", "staff").Update("is_active", false)

	w, _ := fx.request(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecoverDoesNotLeakAccounts(t *testing.T) {
	fx := setup(t)

	_, envKnown := fx.request(t, http.MethodPost, "/api/auth/recover", "", gin.H{"email": "admin@seatmakers.com"})
	_, envUnknown := fx.request(t, http.MethodPost, "/api/auth/recover", "", gin.H{"email": "ghost@nowhere.com"})
	assert.Equal(t, envKnown.Message, envUnknown.Message)
}

func TestRoleGate(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "staff")

	// Staff can read inventory but not the admin-only audit trail.
	w, _ := fx.request(t, http.MethodGet, "/api/inventory/raw-materials/", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := fx.request(t, http.MethodGet, "/api/reports/audit-trail", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden - insufficient permissions", env.Message)
}
