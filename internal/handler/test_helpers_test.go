package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Ankit-repo-24/BahhiKhata/internal/database"
	"github.com/Ankit-repo-24/BahhiKhata/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "handler-test-secret"

// newTestDB opens a throwaway sqlite database with the real schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	return db
}

// newTestRouter wires the full API route table against db.
func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("/api")

	authHandler := NewAuthHandler(db, testJWTSecret, 1, 4) // min bcrypt cost for speed
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(testJWTSecret))

	protected.GET("/me", GetMe(db))
	protected.GET("/categories", Categories)

	expenseHandler := NewExpenseHandler(db)
	protected.POST("/expenses", expenseHandler.Create)
	protected.GET("/expenses", expenseHandler.List)
	protected.DELETE("/expenses/:id", expenseHandler.Delete)
	protected.POST("/expenses/import", expenseHandler.ImportCSV)

	statsHandler := NewStatsHandler(db)
	protected.GET("/stats/monthly", statsHandler.Monthly)
	protected.GET("/stats/by-category", statsHandler.ByCategory)
	protected.GET("/stats/daily-average", statsHandler.DailyAverage)

	exportHandler := NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// registerUser registers an account and returns its session token.
func registerUser(t *testing.T, r *gin.Engine, name, email string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "pw123456",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// createExpense persists an expense through the API and returns its id.
func createExpense(t *testing.T, r *gin.Engine, token string, amount float64, category, date string) uint {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/expenses", token, gin.H{
		"title":    "test expense",
		"amount":   amount,
		"category": category,
		"date":     date,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotZero(t, resp.ID)
	return resp.ID
}
