package controllers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rian448/SMAve-System/config"
	"github.com/Rian448/SMAve-System/models"
	"github.com/Rian448/SMAve-System/utils"
)

const reportDateLayout = "2006-01-02"

func reportPeriod(c *gin.Context) (start, end time.Time) {
	now := time.Now()
	start = now.AddDate(0, 0, -30)
	end = now

	if s := c.Query("startDate"); s != "" {
		if t, err := time.Parse(reportDateLayout, s); err == nil {
			start = t
		}
	}
	if s := c.Query("endDate"); s != "" {
		if t, err := time.Parse(reportDateLayout, s); err == nil {
			// Inclusive end of day.
			end = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
	}
	return start, end
}

type statusBucket struct {
	Status string  `json:"status"`
	Count  int     `json:"count"`
	Value  float64 `json:"value"`
}

type dailyBucket struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

func SalesReport(c *gin.Context) {
	start, end := reportPeriod(c)

	q := config.DB.Where("created_at BETWEEN ? AND ?", start, end)
	if branchID := c.Query("branchId"); branchID != "" {
		q = q.Where("branch_id = ?", branchID)
	}

	var orders []models.JobOrder
	if err := q.Find(&orders).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to build report")
		return
	}

	var totalRevenue, pendingRevenue float64
	completedCount := 0
	statusBreakdown := map[string]*statusBucket{}
	dailySales := map[string]*dailyBucket{}

	for _, o := range orders {
		if o.Status == models.OrderCompleted {
			completedCount++
			totalRevenue += o.TotalPrice
		}
		if o.PaymentStatus != models.PaymentPaid {
			pendingRevenue += o.Balance
		}

		sb, ok := statusBreakdown[o.Status]
		if !ok {
			sb = &statusBucket{Status: o.Status}
			statusBreakdown[o.Status] = sb
		}
		sb.Count++
		sb.Value += o.TotalPrice

		day := o.CreatedAt.Format(reportDateLayout)
		db, ok := dailySales[day]
		if !ok {
			db = &dailyBucket{Date: day}
			dailySales[day] = db
		}
		db.Orders++
		if o.Status == models.OrderCompleted {
			db.Revenue += o.TotalPrice
		}
	}

	statuses := make([]statusBucket, 0, len(statusBreakdown))
	for _, sb := range statusBreakdown {
		statuses = append(statuses, *sb)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Status < statuses[j].Status })

	days := make([]dailyBucket, 0, len(dailySales))
	for _, db := range dailySales {
		days = append(days, *db)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	averageOrder := 0.0
	if len(orders) > 0 {
		averageOrder = utils.Round2(totalRevenue / float64(len(orders)))
	}

	utils.Success(c, http.StatusOK, gin.H{
		"period": gin.H{
			"startDate": start.Format(reportDateLayout),
			"endDate":   end.Format(reportDateLayout),
		},
		"summary": gin.H{
			"totalOrders":       len(orders),
			"completedOrders":   completedCount,
			"totalRevenue":      totalRevenue,
			"pendingRevenue":    pendingRevenue,
			"averageOrderValue": averageOrder,
		},
		"statusBreakdown": statuses,
		"dailySales":      days,
	})
}

type categoryBucket struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Value    float64 `json:"value"`
}

type lowStockRow struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	CurrentStock int    `json:"currentStock"`
	ReorderPoint int    `json:"reorderPoint"`
	Unit         string `json:"unit"`
}

func InventoryReport(c *gin.Context) {
	rmQuery := config.DB.Where("is_archived = false")
	fgQuery := config.DB.Where("is_archived = false")
	if branchID := c.Query("branchId"); branchID != "" {
		rmQuery = rmQuery.Where("branch_id = ?", branchID)
		fgQuery = fgQuery.Where("branch_id = ?", branchID)
	}

	var materials []models.RawMaterial
	var goods []models.FinishedGood
	if err := rmQuery.Find(&materials).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to build report")
		return
	}
	if err := fgQuery.Find(&goods).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to build report")
		return
	}

	var rmValue, fgValue, fgCost float64
	lowStock := []lowStockRow{}
	categories := map[string]*categoryBucket{}

	for _, m := range materials {
		value := float64(m.Quantity) * m.Price
		rmValue += value

		if m.Quantity <= m.ReorderPoint {
			lowStock = append(lowStock, lowStockRow{
				ID:           m.ID,
				Name:         m.Name,
				CurrentStock: m.Quantity,
				ReorderPoint: m.ReorderPoint,
				Unit:         m.Unit,
			})
		}

		cb, ok := categories[m.Category]
		if !ok {
			cb = &categoryBucket{Category: m.Category}
			categories[m.Category] = cb
		}
		cb.Count++
		cb.Value += value
	}
	for _, g := range goods {
		fgValue += float64(g.Quantity) * g.Price
		fgCost += float64(g.Quantity) * g.Cost
	}

	breakdown := make([]categoryBucket, 0, len(categories))
	for _, cb := range categories {
		cb.Value = utils.Round2(cb.Value)
		breakdown = append(breakdown, *cb)
	}
	sort.Slice(breakdown, func(i, j int) bool { return breakdown[i].Category < breakdown[j].Category })

	utils.Success(c, http.StatusOK, gin.H{
		"summary": gin.H{
			"totalRawMaterials":  len(materials),
			"totalFinishedGoods": len(goods),
			"rawMaterialsValue":  utils.Round2(rmValue),
			"finishedGoodsValue": utils.Round2(fgValue),
			"finishedGoodsCost":  utils.Round2(fgCost),
			"potentialProfit":    utils.Round2(fgValue - fgCost),
			"lowStockItemsCount": len(lowStock),
		},
		"lowStockItems":     lowStock,
		"categoryBreakdown": breakdown,
	})
}

func AuditTrail(c *gin.Context) {
	q := config.DB.Order("created_at desc")

	if s := c.Query("startDate"); s != "" {
		if t, err := time.Parse(reportDateLayout, s); err == nil {
			q = q.Where("created_at >= ?", t)
		}
	}
	if s := c.Query("endDate"); s != "" {
		if t, err := time.Parse(reportDateLayout, s); err == nil {
			q = q.Where("created_at < ?", t.AddDate(0, 0, 1))
		}
	}
	if userID := c.Query("userId"); userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if module := c.Query("module"); module != "" {
		q = q.Where("module = ?", module)
	}

	var logs []models.AuditLog
	if err := q.Find(&logs).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to load audit trail")
		return
	}
	utils.Success(c, http.StatusOK, logs)
}
