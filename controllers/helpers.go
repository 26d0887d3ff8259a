package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/JhossefCons/Almacen-Papas-sub000/config"
	"github.com/JhossefCons/Almacen-Papas-sub000/service"
	"github.com/JhossefCons/Almacen-Papas-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var svc *service.Service

// Init wires the shared service into the handler package; main calls it
// once after the DB is up.
func Init(s *service.Service) { svc = s }

func currentActor(c *gin.Context) string {
	if v, ok := c.Get("username"); ok {
		if name, ok := v.(string); ok && name != "" {
			return name
		}
	}
	return "unknown"
}

func currentAdminID(c *gin.Context) (uint, error) {
	v, ok := c.Get("admin_id")
	if !ok {
		return 0, errors.New("admin_id not in context")
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, errors.New("admin_id not valid")
	}
	return id, nil
}

func currentUserID(c *gin.Context) (uint, error) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, errors.New("user_id not in context")
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, errors.New("user_id not valid")
	}
	return id, nil
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.Error(c, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return uint(id), true
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, errors.New(field + " must be YYYY-MM-DD")
	}
	return t, nil
}

func getDatePtr(c *gin.Context, key string) *time.Time {
	if s := strings.TrimSpace(c.Query(key)); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return &t
		}
	}
	return nil
}

// pgUniqueViolation is the postgres error code for duplicate keys
// (e.g. a customer or supplier name already taken).
const pgUniqueViolation = "23505"

// serviceError translates the service error taxonomy to HTTP statuses:
// validation 400, missing records 404, business-rule conflicts 409,
// anything else is a storage error already rolled back.
func serviceError(c *gin.Context, message string, err error) {
	var pgErr *pgconn.PgError
	status := http.StatusInternalServerError
	switch {
	case service.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrInsufficientPackaging),
		errors.Is(err, service.ErrOverpayment),
		errors.Is(err, service.ErrHasPayments),
		errors.Is(err, service.ErrAlreadyApplied),
		errors.Is(err, service.ErrAdvanceExceedsPurchase),
		errors.Is(err, service.ErrInvalidState):
		status = http.StatusConflict
	case errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation:
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		config.GetLogger().WithError(err).Error(message)
	}
	utils.Error(c, status, message, err)
}
