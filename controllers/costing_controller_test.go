package controllers_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rian448/SMAve-System/models"
)

func costingPath(id uint) string {
	return "/api/costing/job-order/" + strconv.FormatUint(uint64(id), 10)
}

func TestGetJobOrderCosting(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "sup")
	order := fx.createJobOrder(t, token, 0)

	w, env := fx.request(t, http.MethodGet, costingPath(order.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	costing := decode[models.Costing](t, env.Data)

	// Material 2*80 + 3*20 = 220, labor 2*40 + 3*10 = 110, overhead 10% of material.
	assert.Equal(t, 220.0, costing.MaterialCost)
	assert.Equal(t, 110.0, costing.LaborCost)
	assert.Equal(t, 22.0, costing.OverheadCost)
	assert.Equal(t, 352.0, costing.TotalCost)
	assert.Equal(t, 128.0, costing.GrossProfit)
	assert.Equal(t, 0.0, costing.Variance)

	// The nested job-order path serves the same breakdown.
	w, env = fx.request(t, http.MethodGet, joPath(order.ID)+"/costing", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 352.0, decode[models.Costing](t, env.Data).TotalCost)
}

func TestUpdateActualCost(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "sup")
	order := fx.createJobOrder(t, token, 200)

	w, env := fx.request(t, http.MethodPut, costingPath(order.ID)+"/actual", token, gin.H{"actual_cost": 380})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.JobOrder](t, env.Data)
	assert.Equal(t, 380.0, updated.ActualCost)

	w, env = fx.request(t, http.MethodGet, costingPath(order.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	costing := decode[models.Costing](t, env.Data)
	assert.Equal(t, 50.0, costing.Variance)
}

func TestUpdateActualCostRejectsNegative(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "sup")
	order := fx.createJobOrder(t, token, 0)

	w, env := fx.request(t, http.MethodPut, costingPath(order.ID)+"/actual", token, gin.H{"actual_cost": -5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Actual cost cannot be negative", env.Message)
}

func TestUpdateCostingItemsRederivesTotals(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "sup")
	order := fx.createJobOrder(t, token, 200)

	w, env := fx.request(t, http.MethodPut, joPath(order.ID)+"/costing", token, gin.H{
		"items": []gin.H{
			{"name": "Bench seat rebuild", "quantity": 1, "unit_price": 800, "material_cost": 300, "labor_cost": 150},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.JobOrder](t, env.Data)
	assert.Equal(t, 800.0, updated.TotalPrice)
	assert.Equal(t, 450.0, updated.EstimatedCost)
	// The earlier down payment is re-applied against the new total.
	assert.Equal(t, 600.0, updated.Balance)
	assert.Equal(t, models.PaymentPartial, updated.PaymentStatus)
	require.Len(t, updated.Items, 1)
}

func TestVarianceReport(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "sup")

	over := fx.createJobOrder(t, token, 0)
	w, _ := fx.request(t, http.MethodPut, joPath(over.ID), token, gin.H{
		"status":      models.OrderCompleted,
		"actual_cost": 400,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Completed but without an actual cost: excluded.
	noCost := fx.createJobOrder(t, token, 0)
	w, _ = fx.request(t, http.MethodPut, joPath(noCost.ID), token, gin.H{"status": models.OrderCompleted})
	require.Equal(t, http.StatusOK, w.Code)

	// Still pending: excluded.
	fx.createJobOrder(t, token, 0)

	w, env := fx.request(t, http.MethodGet, "/api/costing/variance-report", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	type row struct {
		JobOrderNo string  `json:"job_order_no"`
		Variance   float64 `json:"variance"`
		Status     string  `json:"status"`
	}
	report := decode[[]row](t, env.Data)
	require.Len(t, report, 1)
	assert.Equal(t, over.OrderNo, report[0].JobOrderNo)
	assert.Equal(t, 70.0, report[0].Variance)
	assert.Equal(t, "over", report[0].Status)
}

func TestJobOrderReceipt(t *testing.T) {
	fx := setup(t)
	token := fx.login(t, "sales")
	order := fx.createJobOrder(t, token, 200)

	w, env := fx.request(t, http.MethodGet, "/api/costing/receipt/"+strconv.FormatUint(uint64(order.ID), 10), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	receipt := decode[map[string]any](t, env.Data)
	assert.Equal(t, "RCP-"+order.OrderNo, receipt["receipt_no"])
	assert.Equal(t, 480.0, receipt["subtotal"])
	assert.Equal(t, 200.0, receipt["down_payment"])
	assert.Equal(t, 280.0, receipt["balance"])
	assert.Equal(t, "partial", receipt["payment_status"])

	w, env = fx.request(t, http.MethodGet, joPath(order.ID)+"/receipt", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "RCP-"+order.OrderNo, decode[map[string]any](t, env.Data)["receipt_no"])
}
