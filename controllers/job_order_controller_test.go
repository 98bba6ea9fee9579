package controllers_test

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rian448/SMAve-System/models"
)

func jobOrderPayload(fx *fixture, downPayment float64) gin.H {
	return gin.H{
		"customer_name":  "Maria Santos",
		"customer_phone": "0917-555-0101",
		"branch_id":      fx.branchA.ID,
		"description":    "Full cabin reupholstery",
		"vehicle_make":   "Toyota",
		"vehicle_model":  "Hiace",
		"vehicle_plate":  "ABC-1234",
		"items": []gin.H{
			{"name": "Driver seat reupholstery", "quantity": 2, "unit_price": 150, "material_cost": 80, "labor_cost": 40},
			{"name": "Headrest repair", "quantity": 3, "unit_price": 60, "material_cost": 20, "labor_cost": 10},
		},
		"down_payment":         downPayment,
		"estimated_completion": time.Now().UTC().Add(14 * 24 * time.Hour).Format(time.RFC3339),
	}
}

func (fx *fixture) createJobOrder(t *testing.T, token string, downPayment float64) models.JobOrder {
	t.Helper()
	w, env := fx.request(t, http.MethodPost, "/api/sales/job-orders/", token, jobOrderPayload(fx, downPayment))
	require.Equal(t, http.StatusCreated, w.Code)
	return decode[models.JobOrder](t, env.Data)
}

func TestCreateJobOrderDerivesTotals(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "sales")

	order := fx.createJobOrder(t, token, 200)
	assert.Equal(t, 480.0, order.TotalPrice)
	assert.Equal(t, 330.0, order.EstimatedCost)
	assert.Equal(t, 280.0, order.Balance)
	assert.Equal(t, models.PaymentPartial, order.PaymentStatus)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Regexp(t, `^JO-BA-\d{4}-0001$`, order.OrderNo)
	assert.Len(t, order.Items, 2)

	// Audit trail records the creation.
	var cnt int64
	fx.db.Model(&models.AuditLog{}).Where("action = ? AND module = ?", "CREATE", "Sales").Count(&cnt)
	assert.Equal(t, int64(1), cnt)
}

func TestCreateJobOrderSequentialNumbers(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "sales")

	first := fx.createJobOrder(t, token, 0)
	second := fx.createJobOrder(t, token, 0)
	assert.NotEqual(t, first.OrderNo, second.OrderNo)
	assert.Regexp(t, `0002$`, second.OrderNo)
}

func TestCreateJobOrderRejectsOverpayment(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "sales")

	w, env := fx.request(t, http.MethodPost, "/api/sales/job-orders/", token, jobOrderPayload(fx, 500))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Down payment cannot exceed the order total", env.Message)
}

func TestCreateJobOrderRejectsEmptyItems(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "sales")

	payload := jobOrderPayload(fx, 0)
	payload["items"] = []gin.H{}
	w, _ := fx.request(t, http.MethodPost, "/api/sales/job-orders/", token, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateJobOrderStaffForbidden(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "staff")

	w, _ := fx.request(t, http.MethodPost, "/api/sales/job-orders/", token, jobOrderPayload(fx, 0))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateJobOrderPayment(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "sup")
	order := fx.createJobOrder(t, token, 200)

	w, env := fx.request(t, http.MethodPut, joPath(order.ID), token, gin.H{"down_payment": 480})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.JobOrder](t, env.Data)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
	assert.Equal(t, 0.0, updated.Balance)

	w, env = fx.request(t, http.MethodPut, joPath(order.ID), token, gin.H{"down_payment": 600})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Down payment cannot exceed the order total", env.Message)
}

func TestUpdateJobOrderCompletion(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "sup")
	order := fx.createJobOrder(t, token, 0)

	w, env := fx.request(t, http.MethodPut, joPath(order.ID), token, gin.H{
		"status":      models.OrderCompleted,
		"actual_cost": 350,
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.JobOrder](t, env.Data)
	assert.Equal(t, models.OrderCompleted, updated.Status)
	assert.NotNil(t, updated.CompletedAt)
	assert.Equal(t, 350.0, updated.ActualCost)
}

func TestUpdateJobOrderInvalidStatus(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "sup")
	order := fx.createJobOrder(t, token, 0)

	w, env := fx.request(t, http.MethodPut, joPath(order.ID), token, gin.H{"status": "finished"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid status", env.Message)
}

func TestVoidJobOrderWithinGracePeriod(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "sup")
	order := fx.createJobOrder(t, token, 0)

	w, env := fx.request(t, http.MethodPost, joPath(order.ID)+"/void", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Job order can only be voided after 60 days", env.Message)

	var cnt int64
	fx.db.Model(&models.VoidRecord{}).Count(&cnt)
	assert.Zero(t, cnt)
}

func TestVoidJobOrderAfterGracePeriod(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "sup")
	order := fx.createJobOrder(t, token, 0)

	backdated := time.Now().UTC().Add(-61 * 24 * time.Hour)
	require.NoError(t, fx.db.Model(&models.JobOrder{}).
		Where("id = ?", order.ID).
		UpdateColumn("created_at", backdated).Error)

	w, _ := fx.request(t, http.MethodPost, joPath(order.ID)+"/void", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var voided models.JobOrder
	require.NoError(t, fx.db.First(&voided, order.ID).Error)
	assert.Equal(t, models.OrderVoided, voided.Status)
	assert.NotNil(t, voided.VoidedAt)

	var records []models.VoidRecord
	fx.db.Where("original_id = ?", order.ID).Find(&records)
	require.Len(t, records, 1)
	assert.Equal(t, order.OrderNo, records[0].JobOrderNo)
	assert.Equal(t, "Unclaimed after 60 days", records[0].Reason)

	// A second void attempt fails and does not add another record.
	w, env := fx.request(t, http.MethodPost, joPath(order.ID)+"/void", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Job order is already voided", env.Message)

	var cnt int64
	fx.db.Model(&models.VoidRecord{}).Where("original_id = ?", order.ID).Count(&cnt)
	assert.Equal(t, int64(1), cnt)
}

func TestVoidJobOrderNotFound(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "admin")

	w, _ := fx.request(t, http.MethodPost, "/api/sales/job-orders/9999/void", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListJobOrdersStatusFilter(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "sales")

	first := fx.createJobOrder(t, token, 0)
	fx.createJobOrder(t, token, 0)

	supToken := fx.login(t, "sup")
	w, _ := fx.request(t, http.MethodPut, joPath(first.ID), supToken, gin.H{"status": models.OrderInProgress})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := fx.request(t, http.MethodGet, "/api/sales/job-orders/?status=in_progress", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	orders := decode[[]models.JobOrder](t, env.Data)
	require.Len(t, orders, 1)
	assert.Equal(t, first.ID, orders[0].ID)
}

func joPath(id uint) string {
	return "/api/sales/job-orders/" + strconv.FormatUint(uint64(id), 10)
}
