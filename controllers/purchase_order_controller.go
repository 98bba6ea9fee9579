package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rian448/SMAve-System/config"
	"github.com/Rian448/SMAve-System/models"
	"github.com/Rian448/SMAve-System/utils"
)

var (
	errPONotFound    = errors.New("PO_NOT_FOUND")
	errPOBadStatus   = errors.New("PO_BAD_STATUS")
	errPOProcessed   = errors.New("PO_ALREADY_PROCESSED")
	errPONotApproved = errors.New("PO_NOT_APPROVED")
)

type purchaseOrderItemInput struct {
	MaterialID *uint   `json:"material_id"`
	Name       string  `json:"name" binding:"required"`
	Quantity   int     `json:"quantity" binding:"required,gt=0"`
	Unit       string  `json:"unit"`
	UnitPrice  float64 `json:"unit_price" binding:"gte=0"`
}

type purchaseOrderCreateInput struct {
	SupplierID       *uint                    `json:"supplier_id"`
	SupplierName     string                   `json:"supplier_name" binding:"required"`
	Items            []purchaseOrderItemInput `json:"items" binding:"required,min=1,dive"`
	ExpectedDelivery time.Time                `json:"expected_delivery" binding:"required"`
}

func ListPurchaseOrders(c *gin.Context) {
	q := config.DB.Preload("Items").Order("id DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.PurchaseOrder
	if err := q.Find(&orders).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to list purchase orders")
		return
	}
	utils.Success(c, http.StatusOK, orders)
}

func GetPurchaseOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var po models.PurchaseOrder
	if err := config.DB.Preload("Items").First(&po, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Purchase order not found")
		return
	}
	utils.Success(c, http.StatusOK, po)
}

func CreatePurchaseOrder(c *gin.Context) {
	var in purchaseOrderCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	items := make([]models.PurchaseOrderItem, 0, len(in.Items))
	var totalAmount float64
	for _, it := range in.Items {
		lineTotal := float64(it.Quantity) * it.UnitPrice
		totalAmount += lineTotal
		items = append(items, models.PurchaseOrderItem{
			MaterialID: it.MaterialID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			Unit:       it.Unit,
			UnitPrice:  it.UnitPrice,
			LineTotal:  lineTotal,
		})
	}

	user := currentUser(c)
	po := models.PurchaseOrder{
		SupplierID:       in.SupplierID,
		SupplierName:     in.SupplierName,
		Items:            items,
		TotalAmount:      totalAmount,
		Status:           models.POPending,
		ExpectedDelivery: in.ExpectedDelivery,
		CreatedByID:      user.ID,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		year := time.Now().UTC().Year()
		seq, err := utils.NextSequence(tx, utils.PurchaseOrderScope(year))
		if err != nil {
			return err
		}
		po.PONo = utils.PurchaseOrderNo(year, seq)

		if err := tx.Create(&po).Error; err != nil {
			return err
		}
		return utils.LogAction(tx, user, "CREATE", "Purchase Orders",
			fmt.Sprintf("Created PO: %s", po.PONo), c.ClientIP())
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to create purchase order")
		return
	}

	config.DB.Preload("Items").First(&po, po.ID)
	utils.Success(c, http.StatusCreated, po)
}

// ApprovePurchaseOrder moves a pending PO to approved. The transition is a
// guarded update so two concurrent approvals cannot both succeed.
func ApprovePurchaseOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	user := currentUser(c)
	now := time.Now().UTC()

	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		var po models.PurchaseOrder
		if err := tx.First(&po, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errPONotFound
			}
			return err
		}
		if po.Status != models.POPending {
			return errPOBadStatus
		}

		res := tx.Model(&models.PurchaseOrder{}).
			Where("id = ? AND status = ?", po.ID, models.POPending).
			Updates(map[string]any{
				"status":         models.POApproved,
				"approved_by_id": user.ID,
				"approved_at":    now,
				"updated_at":     now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errPOProcessed
		}

		return utils.LogAction(tx, user, "APPROVE", "Purchase Orders",
			fmt.Sprintf("Approved PO: %s", po.PONo), c.ClientIP())
	})

	switch {
	case txErr == nil:
		var po models.PurchaseOrder
		config.DB.Preload("Items").First(&po, id)
		utils.Success(c, http.StatusOK, po)
	case errors.Is(txErr, errPONotFound):
		utils.Error(c, http.StatusNotFound, "Purchase order not found")
	case errors.Is(txErr, errPOBadStatus), errors.Is(txErr, errPOProcessed):
		utils.Error(c, http.StatusBadRequest, "Only pending purchase orders can be approved")
	default:
		utils.Error(c, http.StatusInternalServerError, "Failed to approve purchase order")
	}
}

type rejectInput struct {
	Reason string `json:"reason" binding:"required"`
}

func RejectPurchaseOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var in rejectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "A rejection reason is required")
		return
	}

	user := currentUser(c)
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		var po models.PurchaseOrder
		if err := tx.First(&po, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errPONotFound
			}
			return err
		}
		if po.Status != models.POPending {
			return errPOBadStatus
		}

		res := tx.Model(&models.PurchaseOrder{}).
			Where("id = ? AND status = ?", po.ID, models.POPending).
			Update("status", models.PORejected)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errPOProcessed
		}

		return utils.LogAction(tx, user, "REJECT", "Purchase Orders",
			fmt.Sprintf("Rejected PO: %s (%s)", po.PONo, in.Reason), c.ClientIP())
	})

	switch {
	case txErr == nil:
		utils.SuccessMessage(c, "Purchase order rejected")
	case errors.Is(txErr, errPONotFound):
		utils.Error(c, http.StatusNotFound, "Purchase order not found")
	case errors.Is(txErr, errPOBadStatus), errors.Is(txErr, errPOProcessed):
		utils.Error(c, http.StatusBadRequest, "Only pending purchase orders can be rejected")
	default:
		utils.Error(c, http.StatusInternalServerError, "Failed to reject purchase order")
	}
}

// ReceivePurchaseOrder takes an approved PO to received and increments every
// resolvable material's stock by the ordered quantity, all in one transaction.
// Receipt is all-or-nothing: there is no partial receive.
func ReceivePurchaseOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	user := currentUser(c)
	now := time.Now().UTC()

	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		var po models.PurchaseOrder
		if err := tx.Preload("Items").First(&po, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errPONotFound
			}
			return err
		}
		if po.Status != models.POApproved {
			return errPONotApproved
		}

		res := tx.Model(&models.PurchaseOrder{}).
			Where("id = ? AND status = ?", po.ID, models.POApproved).
			Updates(map[string]any{
				"status":         models.POReceived,
				"received_by_id": user.ID,
				"received_at":    now,
				"updated_at":     now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errPOProcessed
		}

		for _, it := range po.Items {
			if it.MaterialID == nil {
				continue
			}
			// Items without a resolvable material are skipped, matching the
			// free-text lines a PO may carry.
			if err := tx.Model(&models.RawMaterial{}).
				Where("id = ?", *it.MaterialID).
				Updates(map[string]any{
					"quantity":     gorm.Expr("quantity + ?", it.Quantity),
					"last_updated": now,
				}).Error; err != nil {
				return err
			}
		}

		return utils.LogAction(tx, user, "RECEIVE", "Purchase Orders",
			fmt.Sprintf("Received PO: %s", po.PONo), c.ClientIP())
	})

	switch {
	case txErr == nil:
		var po models.PurchaseOrder
		config.DB.Preload("Items").First(&po, id)
		utils.Success(c, http.StatusOK, po)
	case errors.Is(txErr, errPONotFound):
		utils.Error(c, http.StatusNotFound, "Purchase order not found")
	case errors.Is(txErr, errPONotApproved), errors.Is(txErr, errPOProcessed):
		utils.Error(c, http.StatusBadRequest, "Purchase order must be approved before receiving")
	default:
		utils.Error(c, http.StatusInternalServerError, "Failed to receive purchase order")
	}
}
