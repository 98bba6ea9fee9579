package utils

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Rian448/SMAve-System/models"
)

// NextSequence allocates the next value for a counter scope. The increment is
// a single atomic UPDATE, so callers inside a transaction get duplicate-free
// numbers even under concurrent creation.
func NextSequence(tx *gorm.DB, scope string) (int64, error) {
	res := tx.Model(&models.Sequence{}).
		Where("scope = ?", scope).
		UpdateColumn("value", gorm.Expr("value + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.Create(&models.Sequence{Scope: scope, Value: 1}).Error; err != nil {
			return 0, err
		}
		return 1, nil
	}
	var seq models.Sequence
	if err := tx.Where("scope = ?", scope).First(&seq).Error; err != nil {
		return 0, err
	}
	return seq.Value, nil
}

// Document number formats. Job order and lineup slip sequences reset per
// branch and calendar year; PO and delivery sequences reset per year.

func JobOrderNo(branchCode string, year int, seq int64) string {
	return fmt.Sprintf("JO-%s-%d-%04d", branchCode, year, seq)
}

func LineupSlipNo(branchCode string, year int, seq int64) string {
	return fmt.Sprintf("LS-%s-%d-%04d", branchCode, year, seq)
}

func PurchaseOrderNo(year int, seq int64) string {
	return fmt.Sprintf("PO-%d-%04d", year, seq)
}

func DeliveryNo(year int, seq int64) string {
	return fmt.Sprintf("DL-%d-%04d", year, seq)
}

func JobOrderScope(branchCode string, year int) string {
	return fmt.Sprintf("job_order:%s:%d", branchCode, year)
}

func LineupSlipScope(branchCode string, year int) string {
	return fmt.Sprintf("lineup_slip:%s:%d", branchCode, year)
}

func PurchaseOrderScope(year int) string {
	return fmt.Sprintf("purchase_order:%d", year)
}

func DeliveryScope(year int) string {
	return fmt.Sprintf("delivery:%d", year)
}
