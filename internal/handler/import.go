package handler

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Ankit-repo-24/BahhiKhata/internal/middleware"
	"github.com/Ankit-repo-24/BahhiKhata/internal/models"
	"github.com/Ankit-repo-24/BahhiKhata/internal/util"

	"github.com/gin-gonic/gin"
)

type importRowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportCSV bulk-creates expenses from a CSV upload. Columns are
// title,amount,category,date. Rows are validated with the same rules as
// single create; invalid rows are skipped and reported per line, valid
// rows are inserted. Unknown categories fall back to "Other".
func (h *ExpenseHandler) ImportCSV(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		util.JSONError(c, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	body, err := importBody(c)
	if err != nil {
		util.JSONError(c, http.StatusBadRequest, "CSV file is required")
		return
	}
	defer body.Close()

	reader := csv.NewReader(body)
	reader.FieldsPerRecord = -1 // ragged rows are handled per line
	reader.TrimLeadingSpace = true

	var (
		expenses []models.Expense
		rowErrs  = make([]importRowError, 0)
		line     int
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rowErrs = append(rowErrs, importRowError{Line: line, Message: "Malformed CSV row"})
			continue
		}

		// skip a leading header row
		if line == 1 && isHeaderRow(record) {
			continue
		}
		if isBlankRow(record) {
			continue
		}
		if len(record) < 2 {
			rowErrs = append(rowErrs, importRowError{Line: line, Message: "Expected columns title,amount,category,date"})
			continue
		}

		title := strings.TrimSpace(record[0])
		if title == "" {
			title = "Imported Expense"
		}

		amount, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil || util.ValidateAmount(amount) != nil {
			rowErrs = append(rowErrs, importRowError{Line: line, Message: "Invalid amount"})
			continue
		}

		category := models.CategoryOther
		if len(record) > 2 {
			if cat := strings.TrimSpace(record[2]); models.IsValidCategory(cat) {
				category = cat
			}
		}

		var dateStr string
		if len(record) > 3 {
			dateStr = strings.TrimSpace(record[3])
		}
		date, err := util.ParseDate(dateStr)
		if err != nil {
			rowErrs = append(rowErrs, importRowError{Line: line, Message: "Invalid date"})
			continue
		}

		expenses = append(expenses, models.Expense{
			UserID:      userID,
			Title:       title,
			Amount:      amount,
			Category:    category,
			ExpenseDate: date,
		})
	}

	if len(expenses) > 0 {
		if err := h.DB.WithContext(c.Request.Context()).Create(&expenses).Error; err != nil {
			log.Printf("expense import: %v", err)
			util.JSONError(c, http.StatusInternalServerError, "Server error")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"imported": len(expenses),
		"skipped":  len(rowErrs),
		"errors":   rowErrs,
	})
}

// importBody returns the CSV stream from either a multipart "file" field
// or the raw request body.
func importBody(c *gin.Context) (io.ReadCloser, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, err
		}
		return fh.Open()
	}
	if c.Request.Body == nil {
		return nil, fmt.Errorf("empty body")
	}
	return c.Request.Body, nil
}

func isHeaderRow(record []string) bool {
	if len(record) < 2 {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	return err != nil
}

func isBlankRow(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
