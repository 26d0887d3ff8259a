package controllers

import (
	"net/http"

	"github.com/JhossefCons/Almacen-Papas-sub000/models"
	"github.com/JhossefCons/Almacen-Papas-sub000/service"
	"github.com/JhossefCons/Almacen-Papas-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AdvanceRequest struct {
	SupplierName  string          `json:"supplier_name" binding:"required"`
	DateIssued    string          `json:"date_issued" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Notes         string          `json:"notes"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
}

func CreateAdvance(c *gin.Context) {
	var in AdvanceRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	issued, err := parseDate("date_issued", in.DateIssued)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	id, err := svc.CreateAdvance(service.AdvanceInput{
		SupplierName: in.SupplierName,
		DateIssued:   issued,
		Amount:       in.Amount,
		Notes:        in.Notes,
		Method:       models.PaymentMethod(in.PaymentMethod),
		RecordedBy:   currentActor(c),
	})
	if err != nil {
		serviceError(c, "could not create advance", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "advance recorded", "id": id})
}

type ApplyAdvanceRequest struct {
	ApplicationDate string          `json:"application_date" binding:"required"`
	PurchaseTotal   decimal.Decimal `json:"purchase_total" binding:"required"`
	PayRemaining    bool            `json:"pay_remaining"`
	PaymentMethod   string          `json:"payment_method"`
}

func ApplyAdvance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in ApplyAdvanceRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	date, err := parseDate("application_date", in.ApplicationDate)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	method := models.PaymentMethod(in.PaymentMethod)
	if in.PaymentMethod == "" {
		method = models.PaymentCash
	}
	if err := svc.ApplyAdvance(id, date, in.PurchaseTotal, in.PayRemaining, method, currentActor(c)); err != nil {
		serviceError(c, "could not apply advance", err)
		return
	}
	utils.Success(c, "advance applied", nil)
}

func DeleteAdvance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := svc.DeleteAdvance(id, currentActor(c)); err != nil {
		serviceError(c, "could not delete advance", err)
		return
	}
	utils.Success(c, "advance deleted, cash restored", nil)
}

func ListAdvances(c *gin.Context) {
	rows, err := svc.ListAdvances(c.Query("status"), c.Query("supplier"))
	if err != nil {
		serviceError(c, "could not list advances", err)
		return
	}
	utils.Success(c, "advances", rows)
}
