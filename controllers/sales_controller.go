package controllers

import (
	"net/http"

	"github.com/JhossefCons/Almacen-Papas-sub000/models"
	"github.com/JhossefCons/Almacen-Papas-sub000/service"
	"github.com/JhossefCons/Almacen-Papas-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ImmediateSaleRequest struct {
	Date          string          `json:"date" binding:"required"`
	Product       string          `json:"product" binding:"required"`
	Quality       string          `json:"quality" binding:"required"`
	Quantity      int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice     decimal.Decimal `json:"unit_price" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Customer      string          `json:"customer"`
	Notes         string          `json:"notes"`
	PostToCash    *bool           `json:"post_to_cash"`
}

func CreateImmediateSale(c *gin.Context) {
	var in ImmediateSaleRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	postToCash := true
	if in.PostToCash != nil {
		postToCash = *in.PostToCash
	}
	id, err := svc.CreateImmediateSale(service.ImmediateSaleInput{
		Date:       date,
		Product:    in.Product,
		Quality:    in.Quality,
		Quantity:   in.Quantity,
		UnitPrice:  in.UnitPrice,
		Method:     models.PaymentMethod(in.PaymentMethod),
		Customer:   in.Customer,
		Notes:      in.Notes,
		PostToCash: postToCash,
		RecordedBy: currentActor(c),
	})
	if err != nil {
		serviceError(c, "could not create sale", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "sale recorded", "movement_id": id})
}

type CreditSaleRequest struct {
	CustomerName string                  `json:"customer_name" binding:"required"`
	DateIssued   string                  `json:"date_issued" binding:"required"`
	DueDate      *string                 `json:"due_date"`
	Notes        string                  `json:"notes"`
	Items        []service.SaleItemInput `json:"items" binding:"required,min=1"`
}

func CreateCreditSale(c *gin.Context) {
	var in CreditSaleRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	issued, err := parseDate("date_issued", in.DateIssued)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	input := service.CreditSaleInput{
		CustomerName: in.CustomerName,
		DateIssued:   issued,
		Notes:        in.Notes,
		Items:        in.Items,
		RecordedBy:   currentActor(c),
	}
	if in.DueDate != nil {
		due, err := parseDate("due_date", *in.DueDate)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "invalid payload", err)
			return
		}
		input.DueDate = &due
	}
	id, err := svc.CreateCreditSale(input)
	if err != nil {
		serviceError(c, "could not create credit sale", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "credit sale created", "id": id})
}

type SalePaymentRequest struct {
	Date          string          `json:"date" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Notes         string          `json:"notes"`
}

func AddSalePayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in SalePaymentRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	paymentID, err := svc.AddSalePayment(id, date, in.Amount, models.PaymentMethod(in.PaymentMethod), in.Notes, currentActor(c))
	if err != nil {
		serviceError(c, "could not add payment", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "payment recorded", "id": paymentID})
}

func DeleteCreditSale(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := svc.DeleteCreditSale(id); err != nil {
		serviceError(c, "could not delete credit sale", err)
		return
	}
	utils.Success(c, "credit sale deleted, stock restored", nil)
}

func GetSaleSummary(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	summary, err := svc.GetSaleSummary(id)
	if err != nil {
		serviceError(c, "could not read sale", err)
		return
	}
	utils.Success(c, "sale summary", summary)
}

func ListCreditSales(c *gin.Context) {
	rows, err := svc.ListCreditSales(c.Query("status"), c.Query("customer"))
	if err != nil {
		serviceError(c, "could not list credit sales", err)
		return
	}
	utils.Success(c, "credit sales", rows)
}
