package controllers

import (
	"errors"
	"net/http"

	"github.com/JhossefCons/Almacen-Papas-sub000/config"
	"github.com/JhossefCons/Almacen-Papas-sub000/models"
	"github.com/JhossefCons/Almacen-Papas-sub000/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SupplierRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

func CreateSupplier(c *gin.Context) {
	var in SupplierRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	sup := models.Supplier{Name: in.Name, Phone: in.Phone, Address: in.Address, Notes: in.Notes}
	if err := config.DB.Create(&sup).Error; err != nil {
		utils.Error(c, http.StatusBadRequest, "could not create supplier (name taken?)", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "supplier created", "data": sup})
}

func GetAllSuppliers(c *gin.Context) {
	var rows []models.Supplier
	if err := config.DB.Order("name").Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "could not list suppliers", err)
		return
	}
	utils.Success(c, "suppliers", rows)
}

func GetSupplierByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var sup models.Supplier
	if err := config.DB.First(&sup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "supplier not found", err)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "could not read supplier", err)
		return
	}
	utils.Success(c, "supplier", sup)
}

func UpdateSupplier(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var sup models.Supplier
	if err := config.DB.First(&sup, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "supplier not found", err)
		return
	}
	var in SupplierRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	sup.Name = in.Name
	sup.Phone = in.Phone
	sup.Address = in.Address
	sup.Notes = in.Notes
	if err := config.DB.Save(&sup).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "could not update supplier", err)
		return
	}
	utils.Success(c, "supplier updated", sup)
}

func DeleteSupplier(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := config.DB.Delete(&models.Supplier{}, id)
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "could not delete supplier", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "supplier not found", nil)
		return
	}
	utils.Success(c, "supplier deleted", nil)
}
