package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Rian448/SMAve-System/config"
	"github.com/Rian448/SMAve-System/models"
	"github.com/Rian448/SMAve-System/routes"
)

const testPassword = "password123"

type fixture struct {
	router    *gin.Engine
	db        *gorm.DB
	warehouse models.Branch
	branchA   models.Branch
}

// setup spins up a fresh in-memory database, seeds one branch network and one
// user per role, and returns the full router. Each test gets its own database.
func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Branch{},
		&models.User{},
		&models.Session{},
		&models.RawMaterial{},
		&models.FinishedGood{},
		&models.JobOrder{},
		&models.JobOrderItem{},
		&models.LineupSlip{},
		&models.LineupSlipItem{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
		&models.Delivery{},
		&models.DeliveryItem{},
		&models.VoidRecord{},
		&models.AuditLog{},
		&models.Sequence{},
	))
	config.DB = db

	fx := &fixture{db: db}
	fx.warehouse = models.Branch{Name: "Main Warehouse", Code: "MW", Address: "123 Main St", IsWarehouse: true, IsActive: true}
	fx.branchA = models.Branch{Name: "Branch A", Code: "BA", Address: "456 Branch A St", IsActive: true}
	require.NoError(t, db.Create(&fx.warehouse).Error)
	require.NoError(t, db.Create(&fx.branchA).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	for username, role := range map[string]string{
		"admin": models.RoleAdministrator,
		"sup":   models.RoleSupervisor,
		"sales": models.RoleSalesManager,
		"staff": models.RoleStaff,
	} {
		require.NoError(t, db.Create(&models.User{
			Username:     username,
			PasswordHash: string(hash),
			Email:        username + "@seatmakers.com",
			FullName:     strings.ToUpper(username[:1]) + username[1:] + " User",
			Role:         role,
			BranchID:     fx.branchA.ID,
			IsActive:     true,
		}).Error)
	}

	fx.router = gin.New()
	routes.SetupRoutes(fx.router)
	return fx
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (fx *fixture) request(t *testing.T, method, path, token string, payload any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (fx *fixture) login(t *testing.T, username string) string {
	t.Helper()
	w, env := fx.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}
