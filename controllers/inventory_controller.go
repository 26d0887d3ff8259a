package controllers

import (
	"net/http"

	"github.com/JhossefCons/Almacen-Papas-sub000/models"
	"github.com/JhossefCons/Almacen-Papas-sub000/service"
	"github.com/JhossefCons/Almacen-Papas-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type MovementRequest struct {
	Date         string          `json:"date" binding:"required"`
	Product      string          `json:"product" binding:"required"`
	Quality      string          `json:"quality" binding:"required"`
	Operation    string          `json:"operation" binding:"required"`
	Quantity     int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice    decimal.Decimal `json:"unit_price" binding:"required"`
	Counterparty string          `json:"counterparty"`
	Notes        string          `json:"notes"`
}

func RecordMovement(c *gin.Context) {
	var in MovementRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	id, err := svc.RecordMovement(service.MovementInput{
		Date:         date,
		Product:      in.Product,
		Quality:      in.Quality,
		Operation:    models.MovementOp(in.Operation),
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		Counterparty: in.Counterparty,
		Notes:        in.Notes,
		RecordedBy:   currentActor(c),
	})
	if err != nil {
		serviceError(c, "could not record movement", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "movement recorded", "id": id})
}

func GetStock(c *gin.Context) {
	product := c.Query("product")
	quality := c.Query("quality")
	if product == "" || quality == "" {
		utils.Error(c, http.StatusBadRequest, "product and quality are required", nil)
		return
	}
	stock, err := svc.GetStock(product, quality)
	if err != nil {
		serviceError(c, "could not read stock", err)
		return
	}
	utils.Success(c, "stock", gin.H{"product": product, "quality": quality, "stock": stock})
}

func ListMovements(c *gin.Context) {
	rows, err := svc.ListMovements(service.MovementFilter{
		From:      getDatePtr(c, "date_from"),
		To:        getDatePtr(c, "date_to"),
		Product:   c.Query("product"),
		Quality:   c.Query("quality"),
		Operation: c.Query("operation"),
	})
	if err != nil {
		serviceError(c, "could not list movements", err)
		return
	}
	utils.Success(c, "movements", rows)
}

type MovementCorrectionRequest struct {
	Quantity     *int             `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	Counterparty *string          `json:"counterparty"`
	Notes        *string          `json:"notes"`
}

func CorrectMovement(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in MovementCorrectionRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	err := svc.AdminCorrectMovement(id, service.MovementCorrection{
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		Counterparty: in.Counterparty,
		Notes:        in.Notes,
	})
	if err != nil {
		serviceError(c, "could not correct movement", err)
		return
	}
	utils.Success(c, "movement corrected", nil)
}

type AdjustStockRequest struct {
	Product     string `json:"product" binding:"required"`
	Quality     string `json:"quality" binding:"required"`
	TargetStock *int   `json:"target_stock" binding:"required"`
	Note        string `json:"note"`
}

func AdjustStock(c *gin.Context) {
	var in AdjustStockRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	id, err := svc.AdminAdjustStock(in.Product, in.Quality, *in.TargetStock, in.Note, currentActor(c))
	if err != nil {
		serviceError(c, "could not adjust stock", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "stock adjusted", "movement_id": id})
}

type ReferencePriceRequest struct {
	Product   string          `json:"product" binding:"required"`
	Quality   string          `json:"quality" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

func SetReferencePrice(c *gin.Context) {
	var in ReferencePriceRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if err := svc.SetReferencePrice(in.Product, in.Quality, in.UnitPrice); err != nil {
		serviceError(c, "could not set reference price", err)
		return
	}
	utils.Success(c, "reference price saved", nil)
}

func GetReferencePrice(c *gin.Context) {
	product := c.Query("product")
	quality := c.Query("quality")
	if product == "" || quality == "" {
		utils.Error(c, http.StatusBadRequest, "product and quality are required", nil)
		return
	}
	price, err := svc.GetReferencePrice(product, quality)
	if err != nil {
		serviceError(c, "could not read reference price", err)
		return
	}
	utils.Success(c, "reference price", gin.H{"product": product, "quality": quality, "unit_price": price})
}

func GetValuation(c *gin.Context) {
	rows, err := svc.GetValuation()
	if err != nil {
		serviceError(c, "could not build valuation", err)
		return
	}
	utils.Success(c, "valuation", rows)
}
