package controllers

import (
	"math"
	"math/rand"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rian448/SMAve-System/config"
	"github.com/Rian448/SMAve-System/models"
	"github.com/Rian448/SMAve-System/utils"
)

const averageOrderValue = 500.0

// DemandForecast projects order volume for the next six months from the
// completed-order count. It is a plausibility simulation with light seasonal
// shaping and jitter, not a statistical model.
func DemandForecast(c *gin.Context) {
	var completed int64
	config.DB.Model(&models.JobOrder{}).Where("status = ?", models.OrderCompleted).Count(&completed)

	baseDemand := math.Max(float64(completed)*1.2, 5)

	now := time.Now()
	forecast := make([]gin.H, 0, 6)
	for i := 0; i < 6; i++ {
		month := now.AddDate(0, i+1, 0).Format("Jan")
		seasonal := 1.0 + 0.1*float64(i%3)
		forecasted := int(math.Round(baseDemand*seasonal + (rand.Float64()*4 - 2)))
		if forecasted < 1 {
			forecasted = 1
		}
		forecast = append(forecast, gin.H{
			"month":             month,
			"forecastedOrders":  forecasted,
			"forecastedRevenue": utils.Round2(float64(forecasted) * averageOrderValue),
			"confidence":        85.0 - float64(i)*3,
		})
	}
	utils.Success(c, http.StatusOK, forecast)
}

type materialForecast struct {
	MaterialID          uint    `json:"materialId"`
	Name                string  `json:"name"`
	CurrentStock        int     `json:"currentStock"`
	ReorderPoint        int     `json:"reorderPoint"`
	DailyUsage          float64 `json:"dailyUsage"`
	DaysUntilReorder    int     `json:"daysUntilReorder"`
	RecommendedOrderQty int     `json:"recommendedOrderQty"`
	Urgency             string  `json:"urgency"`
}

// MaterialForecast estimates when each active raw material will hit its
// reorder point, assuming 2% of stock is consumed per day.
func MaterialForecast(c *gin.Context) {
	var materials []models.RawMaterial
	if err := config.DB.Where("is_archived = false").Find(&materials).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to build forecast")
		return
	}

	forecasts := make([]materialForecast, 0, len(materials))
	for _, m := range materials {
		dailyUsage := float64(m.Quantity) * 0.02
		daysUntilReorder := 999
		if dailyUsage > 0 {
			daysUntilReorder = int(float64(m.Quantity-m.ReorderPoint) / dailyUsage)
			if daysUntilReorder < 0 {
				daysUntilReorder = 0
			}
		}

		urgency := "low"
		switch {
		case daysUntilReorder <= 7:
			urgency = "high"
		case daysUntilReorder <= 14:
			urgency = "medium"
		}

		recommended := int(dailyUsage * 30)
		if recommended < m.ReorderPoint {
			recommended = m.ReorderPoint
		}

		forecasts = append(forecasts, materialForecast{
			MaterialID:          m.ID,
			Name:                m.Name,
			CurrentStock:        m.Quantity,
			ReorderPoint:        m.ReorderPoint,
			DailyUsage:          utils.Round2(dailyUsage),
			DaysUntilReorder:    daysUntilReorder,
			RecommendedOrderQty: recommended,
			Urgency:             urgency,
		})
	}

	rank := map[string]int{"high": 0, "medium": 1, "low": 2}
	sort.SliceStable(forecasts, func(i, j int) bool {
		return rank[forecasts[i].Urgency] < rank[forecasts[j].Urgency]
	})
	utils.Success(c, http.StatusOK, forecasts)
}
