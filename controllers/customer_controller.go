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

type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

func CreateCustomer(c *gin.Context) {
	var in CustomerRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	cust := models.Customer{Name: in.Name, Phone: in.Phone, Address: in.Address, Notes: in.Notes}
	if err := config.DB.Create(&cust).Error; err != nil {
		utils.Error(c, http.StatusBadRequest, "could not create customer (name taken?)", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "customer created", "data": cust})
}

func GetAllCustomers(c *gin.Context) {
	var rows []models.Customer
	if err := config.DB.Order("name").Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "could not list customers", err)
		return
	}
	utils.Success(c, "customers", rows)
}

func GetCustomerByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var cust models.Customer
	if err := config.DB.First(&cust, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "customer not found", err)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "could not read customer", err)
		return
	}
	utils.Success(c, "customer", cust)
}

func UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var cust models.Customer
	if err := config.DB.First(&cust, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "customer not found", err)
		return
	}
	var in CustomerRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	cust.Name = in.Name
	cust.Phone = in.Phone
	cust.Address = in.Address
	cust.Notes = in.Notes
	if err := config.DB.Save(&cust).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "could not update customer", err)
		return
	}
	utils.Success(c, "customer updated", cust)
}

func DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := config.DB.Delete(&models.Customer{}, id)
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "could not delete customer", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "customer not found", nil)
		return
	}
	utils.Success(c, "customer deleted", nil)
}
