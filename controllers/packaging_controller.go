package controllers

import (
	"net/http"

	"github.com/JhossefCons/Almacen-Papas-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func GetPackaging(c *gin.Context) {
	pack, err := svc.GetPackaging()
	if err != nil {
		serviceError(c, "could not read packaging stock", err)
		return
	}
	utils.Success(c, "packaging stock", pack)
}

type AddPackagingRequest struct {
	Count     int              `json:"count" binding:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

func AddPackaging(c *gin.Context) {
	var in AddPackagingRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if err := svc.AddPackaging(in.Count, in.UnitPrice); err != nil {
		serviceError(c, "could not add packaging", err)
		return
	}
	utils.Success(c, "packaging added", nil)
}

type SetPackagingRequest struct {
	Count *int `json:"count" binding:"required"`
}

func SetPackaging(c *gin.Context) {
	var in SetPackagingRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if err := svc.SetPackaging(*in.Count); err != nil {
		serviceError(c, "could not set packaging", err)
		return
	}
	utils.Success(c, "packaging updated", nil)
}
