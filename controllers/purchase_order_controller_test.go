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

func poPath(id uint) string {
	return "/api/purchase-orders/" + strconv.FormatUint(uint64(id), 10)
}

func (fx *fixture) createPO(t *testing.T, token string, materialID *uint) models.PurchaseOrder {
	t.Helper()
	w, env := fx.request(t, http.MethodPost, "/api/purchase-orders/", token, gin.H{
		"supplier_name": "Premium Leather Co",
		"items": []gin.H{
			{"material_id": materialID, "name": "Leather hide", "quantity": 25, "unit": "sqm", "unit_price": 40},
			{"name": "Contact cement", "quantity": 10, "unit": "can", "unit_price": 8},
		},
		"expected_delivery": time.Now().UTC().Add(7 * 24 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return decode[models.PurchaseOrder](t, env.Data)
}

func TestCreatePurchaseOrder(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "sup")

	po := fx.createPO(t, token, nil)
	assert.Regexp(t, `^PO-\d{4}-0001$`, po.PONo)
	assert.Equal(t, models.POPending, po.Status)
	assert.Equal(t, 1080.0, po.TotalAmount)
	require.Len(t, po.Items, 2)
	assert.Equal(t, 1000.0, po.Items[0].LineTotal)
}

func TestApprovePurchaseOrder(t *testing.T) {
	fx := setup(t)
	supToken := fx.login(t, "sup")
	adminToken := fx.login(t, "admin")

	po := fx.createPO(t, supToken, nil)

	// Approval is admin-only.
	w, _ := fx.request(t, http.MethodPost, poPath(po.ID)+"/approve", supToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := fx.request(t, http.MethodPost, poPath(po.ID)+"/approve", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	approved := decode[models.PurchaseOrder](t, env.Data)
	assert.Equal(t, models.POApproved, approved.Status)
	assert.NotNil(t, approved.ApprovedAt)
	assert.NotNil(t, approved.ApprovedByID)

	// A second approval fails.
	w, env = fx.request(t, http.MethodPost, poPath(po.ID)+"/approve", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Only pending purchase orders can be approved", env.Message)
}

func TestRejectPurchaseOrder(t *testing.T) {
	fx := setup(t)
	supToken := fx.login(t, "sup")
	adminToken := fx.login(t, "admin")

	po := fx.createPO(t, supToken, nil)

	// A reason is mandatory.
	w, env := fx.request(t, http.MethodPost, poPath(po.ID)+"/reject", adminToken, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "A rejection reason is required", env.Message)

	w, _ = fx.request(t, http.MethodPost, poPath(po.ID)+"/reject", adminToken, gin.H{"reason": "Over budget"})
	require.Equal(t, http.StatusOK, w.Code)

	var rejected models.PurchaseOrder
	require.NoError(t, fx.db.First(&rejected, po.ID).Error)
	assert.Equal(t, models.PORejected, rejected.Status)

	// A rejected PO cannot be approved afterwards.
	w, _ = fx.request(t, http.MethodPost, poPath(po.ID)+"/approve", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReceivePurchaseOrderIncrementsStock(t *testing.T) {
	fx := setup(t)
	supToken := fx.login(t, "sup")
	adminToken := fx.login(t, "admin")

	material := models.RawMaterial{
		Name: "Leather hide", SKU: "RM-001", Quantity: 5, Unit: "sqm",
		Category: "Leather", Price: 45, ReorderPoint: 10,
		Supplier: "Premium Leather Co", BranchID: fx.warehouse.ID,
		LastUpdated: time.Now().UTC(),
	}
	require.NoError(t, fx.db.Create(&material).Error)

	po := fx.createPO(t, supToken, &material.ID)

	// Receiving before approval fails and stock is untouched.
	w, env := fx.request(t, http.MethodPost, poPath(po.ID)+"/receive", supToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Purchase order must be approved before receiving", env.Message)

	w, _ = fx.request(t, http.MethodPost, poPath(po.ID)+"/approve", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = fx.request(t, http.MethodPost, poPath(po.ID)+"/receive", supToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	received := decode[models.PurchaseOrder](t, env.Data)
	assert.Equal(t, models.POReceived, received.Status)
	assert.NotNil(t, received.ReceivedAt)

	var after models.RawMaterial
	require.NoError(t, fx.db.First(&after, material.ID).Error)
	assert.Equal(t, 30, after.Quantity)

	// Receiving twice neither succeeds nor double-counts stock.
	w, _ = fx.request(t, http.MethodPost, poPath(po.ID)+"/receive", supToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, fx.db.First(&after, material.ID).Error)
	assert.Equal(t, 30, after.Quantity)
}

func TestPurchaseOrdersRequireManageRole(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "staff")

	w, _ := fx.request(t, http.MethodGet, "/api/purchase-orders/", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
