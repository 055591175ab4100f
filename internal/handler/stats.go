package handler

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Ankit-repo-24/BahhiKhata/internal/middleware"
	"github.com/Ankit-repo-24/BahhiKhata/internal/models"
	"github.com/Ankit-repo-24/BahhiKhata/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StatsHandler serves read-only rollups over the expenses table.
// Nothing here is cached or materialized; every call recomputes from
// the store.
type StatsHandler struct {
	DB *gorm.DB
}

func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{DB: db}
}

type monthlyTotal struct {
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

type categoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// Monthly returns (month, total) pairs for the given year, chronological,
// with empty months omitted. Defaults to the current year.
func (h *StatsHandler) Monthly(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		util.JSONError(c, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	year := time.Now().Year()
	if yearStr := c.Query("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil || y < 1970 || y > 9999 {
			util.JSONError(c, http.StatusBadRequest, "Invalid year")
			return
		}
		year = y
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	var expenses []models.Expense
	if err := h.DB.WithContext(c.Request.Context()).
		Where("user_id = ? AND expense_date >= ? AND expense_date < ?", userID, yearStart, yearEnd).
		Order("expense_date ASC").
		Find(&expenses).Error; err != nil {
		log.Printf("stats monthly: %v", err)
		util.JSONError(c, http.StatusInternalServerError, "Server error")
		return
	}

	sums := make(map[int]float64)
	for i := range expenses {
		sums[int(expenses[i].ExpenseDate.Month())] += expenses[i].Amount
	}

	totals := make([]monthlyTotal, 0, len(sums))
	for m := 1; m <= 12; m++ {
		if total, ok := sums[m]; ok {
			totals = append(totals, monthlyTotal{Month: m, Total: total})
		}
	}

	c.JSON(http.StatusOK, totals)
}

// ByCategory returns (category, total) pairs over all of the user's
// expenses, highest spend first.
func (h *StatsHandler) ByCategory(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		util.JSONError(c, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	totals := make([]categoryTotal, 0)
	if err := h.DB.WithContext(c.Request.Context()).
		Model(&models.Expense{}).
		Select("category, SUM(amount) AS total").
		Where("user_id = ?", userID).
		Group("category").
		Order("total DESC").
		Scan(&totals).Error; err != nil {
		log.Printf("stats by-category: %v", err)
		util.JSONError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, totals)
}

// DailyAverage returns the average of per-day sums across days that have
// at least one expense. Not total spend over elapsed calendar days: two
// expenses on the same day count as one day. Zero expenses yields 0.
func (h *StatsHandler) DailyAverage(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		util.JSONError(c, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var avg float64
	err := h.DB.WithContext(c.Request.Context()).Raw(`
		SELECT COALESCE(AVG(daily_total), 0)
		FROM (
			SELECT SUM(amount) AS daily_total
			FROM expenses
			WHERE user_id = ?
			GROUP BY expense_date
		) t`, userID).Scan(&avg).Error
	if err != nil {
		log.Printf("stats daily-average: %v", err)
		util.JSONError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"daily_average": avg})
}
