package controllers

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rian448/SMAve-System/config"
	"github.com/Rian448/SMAve-System/models"
	"github.com/Rian448/SMAve-System/utils"
)

func DashboardStats(c *gin.Context) {
	db := config.DB

	var totalOrders, pendingOrders, inProgressOrders, completedOrders int64
	db.Model(&models.JobOrder{}).Count(&totalOrders)
	db.Model(&models.JobOrder{}).Where("status = ?", models.OrderPending).Count(&pendingOrders)
	db.Model(&models.JobOrder{}).Where("status = ?", models.OrderInProgress).Count(&inProgressOrders)
	db.Model(&models.JobOrder{}).Where("status = ?", models.OrderCompleted).Count(&completedOrders)

	var totalRevenue, totalCost float64
	db.Model(&models.JobOrder{}).Where("status = ?", models.OrderCompleted).
		Select("COALESCE(SUM(total_price), 0)").Scan(&totalRevenue)
	db.Model(&models.JobOrder{}).Where("status = ?", models.OrderCompleted).
		Select("COALESCE(SUM(actual_cost), 0)").Scan(&totalCost)
	profit := totalRevenue - totalCost

	profitMargin := 0.0
	if totalRevenue > 0 {
		profitMargin = utils.Round2(profit / totalRevenue * 100)
	}

	var lowStock, pendingDeliveries, totalRawMaterials, totalFinishedGoods int64
	db.Model(&models.RawMaterial{}).
		Where("quantity <= reorder_point AND is_archived = false").Count(&lowStock)
	db.Model(&models.Delivery{}).
		Where("status IN ?", []string{models.DeliveryScheduled, models.DeliveryInTransit}).Count(&pendingDeliveries)
	db.Model(&models.RawMaterial{}).Where("is_archived = false").Count(&totalRawMaterials)
	db.Model(&models.FinishedGood{}).Where("is_archived = false").Count(&totalFinishedGoods)

	stats := gin.H{
		"totalJobOrders":     totalOrders,
		"pendingOrders":      pendingOrders,
		"inProgressOrders":   inProgressOrders,
		"completedOrders":    completedOrders,
		"totalRevenue":       totalRevenue,
		"totalCost":          totalCost,
		"profit":             profit,
		"profitMargin":       profitMargin,
		"lowStockItems":      lowStock,
		"pendingDeliveries":  pendingDeliveries,
		"totalRawMaterials":  totalRawMaterials,
		"totalFinishedGoods": totalFinishedGoods,
	}

	if user := currentUser(c); user != nil && user.Role == models.RoleAdministrator {
		var totalUsers, totalBranches int64
		db.Model(&models.User{}).Where("is_active = true").Count(&totalUsers)
		db.Model(&models.Branch{}).Where("is_active = true").Count(&totalBranches)
		stats["totalUsers"] = totalUsers
		stats["totalBranches"] = totalBranches
	}

	utils.Success(c, http.StatusOK, stats)
}

type activityEntry struct {
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
}

func statusLabel(status string) string {
	words := strings.Split(status, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// RecentActivity merges the five most recently touched job orders and the
// five most recent deliveries into a single feed, newest first, capped at ten.
func RecentActivity(c *gin.Context) {
	var orders []models.JobOrder
	config.DB.Order("updated_at desc").Limit(5).Find(&orders)

	var deliveries []models.Delivery
	config.DB.Order("created_at desc").Limit(5).Find(&deliveries)

	activities := make([]activityEntry, 0, len(orders)+len(deliveries))
	for _, o := range orders {
		activities = append(activities, activityEntry{
			Type:        "job_order",
			Title:       fmt.Sprintf("Job Order %s", o.OrderNo),
			Description: fmt.Sprintf("%s - %s", o.CustomerName, statusLabel(o.Status)),
			Timestamp:   o.UpdatedAt,
			Status:      o.Status,
		})
	}
	for _, d := range deliveries {
		dest := d.CustomerName
		if d.ToBranchID != nil {
			var branch models.Branch
			if err := config.DB.First(&branch, *d.ToBranchID).Error; err == nil {
				dest = branch.Name
			}
		}
		activities = append(activities, activityEntry{
			Type:        "delivery",
			Title:       fmt.Sprintf("Delivery %s", d.DeliveryNo),
			Description: fmt.Sprintf("To %s - %s", dest, statusLabel(d.Status)),
			Timestamp:   d.CreatedAt,
			Status:      d.Status,
		})
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	if len(activities) > 10 {
		activities = activities[:10]
	}
	utils.Success(c, http.StatusOK, activities)
}

type alertEntry struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ItemID      uint   `json:"itemId"`
}

func DashboardAlerts(c *gin.Context) {
	now := time.Now()
	alerts := []alertEntry{}

	var materials []models.RawMaterial
	config.DB.Where("quantity <= reorder_point AND is_archived = false").Find(&materials)
	for _, m := range materials {
		severity := "warning"
		if m.Quantity <= 0 {
			severity = "critical"
		}
		alerts = append(alerts, alertEntry{
			Type:        "low_stock",
			Severity:    severity,
			Title:       fmt.Sprintf("Low Stock: %s", m.Name),
			Description: fmt.Sprintf("Current: %d %s (Reorder at: %d)", m.Quantity, m.Unit, m.ReorderPoint),
			ItemID:      m.ID,
		})
	}

	var dueDeliveries []models.Delivery
	config.DB.Where("status = ? AND scheduled_date <= ?", models.DeliveryScheduled, now).Find(&dueDeliveries)
	for _, d := range dueDeliveries {
		alerts = append(alerts, alertEntry{
			Type:        "delivery_due",
			Severity:    "info",
			Title:       fmt.Sprintf("Delivery Due: %s", d.DeliveryNo),
			Description: fmt.Sprintf("Scheduled for %s", d.ScheduledDate.Format("2006-01-02")),
			ItemID:      d.ID,
		})
	}

	var overdue []models.JobOrder
	config.DB.Where("status NOT IN ? AND estimated_completion < ?",
		[]string{models.OrderCompleted, models.OrderCancelled, models.OrderVoided}, now).Find(&overdue)
	for _, o := range overdue {
		alerts = append(alerts, alertEntry{
			Type:        "overdue_order",
			Severity:    "warning",
			Title:       fmt.Sprintf("Overdue: %s", o.OrderNo),
			Description: fmt.Sprintf("Was due on %s", o.EstimatedCompletion.Format("2006-01-02")),
			ItemID:      o.ID,
		})
	}

	utils.Success(c, http.StatusOK, alerts)
}
