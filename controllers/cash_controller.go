package controllers

import (
	"net/http"
	"time"

	"github.com/JhossefCons/Almacen-Papas-sub000/models"
	"github.com/JhossefCons/Almacen-Papas-sub000/service"
	"github.com/JhossefCons/Almacen-Papas-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CashEntryRequest struct {
	Date          string          `json:"date" binding:"required"`
	Type          string          `json:"type" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Category      string          `json:"category"`
}

func AddCashEntry(c *gin.Context) {
	var in CashEntryRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	id, err := svc.AddCashEntry(service.CashEntryInput{
		Date:        date,
		Type:        models.CashEntryType(in.Type),
		Description: in.Description,
		Amount:      in.Amount,
		Method:      models.PaymentMethod(in.PaymentMethod),
		Category:    in.Category,
		RecordedBy:  currentActor(c),
	})
	if err != nil {
		serviceError(c, "could not add cash entry", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "cash entry recorded", "id": id})
}

func DeleteCashEntry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := svc.DeleteCashEntry(id); err != nil {
		serviceError(c, "could not delete cash entry", err)
		return
	}
	utils.Success(c, "cash entry deleted", nil)
}

func ListCashEntries(c *gin.Context) {
	rows, err := svc.GetCashEntries(service.CashFilter{
		From:   getDatePtr(c, "date_from"),
		To:     getDatePtr(c, "date_to"),
		Type:   c.Query("type"),
		Method: c.Query("payment_method"),
	})
	if err != nil {
		serviceError(c, "could not list cash entries", err)
		return
	}
	utils.Success(c, "cash entries", rows)
}

func GetCashBalance(c *gin.Context) {
	from := getDatePtr(c, "date_from")
	to := getDatePtr(c, "date_to")
	if from == nil || to == nil {
		utils.Error(c, http.StatusBadRequest, "date_from and date_to are required (YYYY-MM-DD)", nil)
		return
	}
	balance, err := svc.GetCashBalance(*from, endOfDay(*to))
	if err != nil {
		serviceError(c, "could not compute balance", err)
		return
	}
	utils.Success(c, "balance", balance)
}

func GetGroupedFlow(c *gin.Context) {
	from := getDatePtr(c, "date_from")
	to := getDatePtr(c, "date_to")
	if from == nil || to == nil {
		utils.Error(c, http.StatusBadRequest, "date_from and date_to are required (YYYY-MM-DD)", nil)
		return
	}
	group := service.FlowGroup(c.DefaultQuery("group_by", "day"))
	flow, err := svc.GetGroupedFlow(*from, endOfDay(*to), group)
	if err != nil {
		serviceError(c, "could not compute cash flow", err)
		return
	}
	utils.Success(c, "cash flow", flow)
}

func endOfDay(t time.Time) time.Time {
	return t.Add(24*time.Hour - time.Nanosecond)
}
