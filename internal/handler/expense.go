package handler

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Ankit-repo-24/BahhiKhata/internal/middleware"
	"github.com/Ankit-repo-24/BahhiKhata/internal/models"
	"github.com/Ankit-repo-24/BahhiKhata/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ExpenseHandler serves expense CRUD, always scoped to the
// authenticated user.
type ExpenseHandler struct {
	DB *gorm.DB
}

func NewExpenseHandler(db *gorm.DB) *ExpenseHandler {
	return &ExpenseHandler{DB: db}
}

type createExpenseReq struct {
	Title       string   `json:"title" binding:"max=255"`
	Amount      *float64 `json:"amount" binding:"required"`
	Category    string   `json:"category" binding:"required,max=50"`
	Description string   `json:"description" binding:"max=255"`
	Date        string   `json:"date"`
}

// Create validates and persists a new expense for the current user.
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		util.JSONError(c, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var req createExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		// covers malformed JSON, a non-numeric amount and missing fields
		util.JSONError(c, http.StatusBadRequest, "Invalid amount")
		return
	}

	if util.ValidateAmount(*req.Amount) != nil {
		util.JSONError(c, http.StatusBadRequest, "Invalid amount")
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	if err := util.ValidateCategory(req.Category); err != nil || !models.IsValidCategory(req.Category) {
		util.JSONError(c, http.StatusBadRequest, "Invalid category")
		return
	}

	date, err := util.ParseDate(req.Date)
	if err != nil {
		util.JSONError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	expense := models.Expense{
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Amount:      *req.Amount,
		Category:    req.Category,
		Description: strings.TrimSpace(req.Description),
		ExpenseDate: date,
	}

	if err := h.DB.WithContext(c.Request.Context()).Create(&expense).Error; err != nil {
		log.Printf("expense create: %v", err)
		util.JSONError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// List returns the current user's expenses newest first. Optional query
// parameters from/to (YYYY-MM-DD) and min/max (amount) narrow the result;
// all filters are ANDed.
func (h *ExpenseHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		util.JSONError(c, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	q := h.DB.WithContext(c.Request.Context()).
		Model(&models.Expense{}).
		Where("user_id = ?", userID)

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := util.ParseDate(fromStr)
		if err != nil {
			util.JSONError(c, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		q = q.Where("expense_date >= ?", from)
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := util.ParseDate(toStr)
		if err != nil {
			util.JSONError(c, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		q = q.Where("expense_date <= ?", to)
	}
	if minStr := c.Query("min"); minStr != "" {
		min, err := strconv.ParseFloat(minStr, 64)
		if err != nil {
			util.JSONError(c, http.StatusBadRequest, "Invalid min amount")
			return
		}
		q = q.Where("amount >= ?", min)
	}
	if maxStr := c.Query("max"); maxStr != "" {
		max, err := strconv.ParseFloat(maxStr, 64)
		if err != nil {
			util.JSONError(c, http.StatusBadRequest, "Invalid max amount")
			return
		}
		q = q.Where("amount <= ?", max)
	}

	expenses := make([]models.Expense, 0)
	if err := q.Order("expense_date DESC, id DESC").Find(&expenses).Error; err != nil {
		log.Printf("expense list: %v", err)
		util.JSONError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// Delete removes one of the current user's expenses. A missing id and an
// id owned by someone else return the same 404 so existence of other
// users' records never leaks.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		util.JSONError(c, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.JSONError(c, http.StatusNotFound, "Expense not found")
		return
	}

	res := h.DB.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Expense{})
	if res.Error != nil {
		log.Printf("expense delete: %v", res.Error)
		util.JSONError(c, http.StatusInternalServerError, "Server error")
		return
	}
	if res.RowsAffected == 0 {
		util.JSONError(c, http.StatusNotFound, "Expense not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}

// Categories returns the fixed category set used by expense forms.
func Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.Categories()})
}
