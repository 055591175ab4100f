package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Ankit-repo-24/BahhiKhata/internal/middleware"
	"github.com/Ankit-repo-24/BahhiKhata/internal/models"
	"github.com/Ankit-repo-24/BahhiKhata/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler streams the current user's expenses as a file download.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeader = []string{"Title", "Amount", "Category", "Description", "Date"}

func (h *ExportHandler) userExpenses(c *gin.Context, userID uint) ([]models.Expense, error) {
	var expenses []models.Expense
	err := h.DB.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("expense_date DESC, id DESC").
		Find(&expenses).Error
	return expenses, err
}

// ExportCSV downloads the user's expenses as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		util.JSONError(c, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	expenses, err := h.userExpenses(c, userID)
	if err != nil {
		log.Printf("export csv: %v", err)
		util.JSONError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeader)
	for _, e := range expenses {
		writer.Write([]string{
			e.Title,
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			e.Category,
			e.Description,
			e.ExpenseDate.Format("2006-01-02"),
		})
	}
}

// ExportXLSX downloads the user's expenses as an XLSX workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		util.JSONError(c, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	expenses, err := h.userExpenses(c, userID)
	if err != nil {
		log.Printf("export xlsx: %v", err)
		util.JSONError(c, http.StatusInternalServerError, "Server error")
		return
	}

	f := excelize.NewFile()
	sheetName := "Expenses"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		log.Printf("export xlsx: new sheet: %v", err)
		util.JSONError(c, http.StatusInternalServerError, "Server error")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, name := range exportHeader {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, name)
	}

	for idx, e := range expenses {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), e.Title)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), e.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), e.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), e.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), e.ExpenseDate.Format("2006-01-02"))
	}

	f.SetColWidth(sheetName, "A", "A", 24)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "C", 15)
	f.SetColWidth(sheetName, "D", "D", 30)
	f.SetColWidth(sheetName, "E", "E", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		log.Printf("export xlsx: write: %v", err)
	}
}
