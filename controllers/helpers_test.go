package controllers

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JhossefCons/Almacen-Papas-sub000/config"
	"github.com/JhossefCons/Almacen-Papas-sub000/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestServiceErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.GetLogger().SetOutput(io.Discard)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &service.ValidationError{Field: "amount", Reason: "must be greater than zero"}, http.StatusBadRequest},
		{"not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"insufficient stock", service.ErrInsufficientStock, http.StatusConflict},
		{"overpayment", service.ErrOverpayment, http.StatusConflict},
		{"advance already applied", service.ErrAlreadyApplied, http.StatusConflict},
		{"duplicate key", &pgconn.PgError{Code: pgUniqueViolation}, http.StatusConflict},
		{"other pg error", &pgconn.PgError{Code: "57014"}, http.StatusInternalServerError},
		{"storage error", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			serviceError(c, "boom", tc.err)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}
