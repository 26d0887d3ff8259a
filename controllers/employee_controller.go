package controllers

import (
	"errors"
	"net/http"

	"github.com/JhossefCons/Almacen-Papas-sub000/config"
	"github.com/JhossefCons/Almacen-Papas-sub000/models"
	"github.com/JhossefCons/Almacen-Papas-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type EmployeeRequest struct {
	FirstName string          `json:"first_name" binding:"required"`
	LastName  string          `json:"last_name" binding:"required"`
	Salary    decimal.Decimal `json:"salary" binding:"required"`
	IsActive  *bool           `json:"is_active"`
}

func CreateEmployee(c *gin.Context) {
	var in EmployeeRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if in.Salary.IsNegative() {
		utils.Error(c, http.StatusBadRequest, "salary must not be negative", nil)
		return
	}
	emp := models.Employee{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Salary:    in.Salary.Round(2),
		IsActive:  true,
	}
	if in.IsActive != nil {
		emp.IsActive = *in.IsActive
	}
	if err := config.DB.Create(&emp).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "could not create employee", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "employee created", "data": emp})
}

func GetAllEmployees(c *gin.Context) {
	var rows []models.Employee
	q := config.DB.Order("last_name, first_name")
	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "could not list employees", err)
		return
	}
	utils.Success(c, "employees", rows)
}

func GetEmployeeByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var emp models.Employee
	if err := config.DB.First(&emp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "employee not found", err)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "could not read employee", err)
		return
	}
	utils.Success(c, "employee", emp)
}

type EmployeeUpdateRequest struct {
	FirstName *string          `json:"first_name"`
	LastName  *string          `json:"last_name"`
	Salary    *decimal.Decimal `json:"salary"`
	IsActive  *bool            `json:"is_active"`
}

func UpdateEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var emp models.Employee
	if err := config.DB.First(&emp, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "employee not found", err)
		return
	}
	var in EmployeeUpdateRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	updates := map[string]any{}
	if in.FirstName != nil {
		updates["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		updates["last_name"] = *in.LastName
	}
	if in.Salary != nil {
		if in.Salary.IsNegative() {
			utils.Error(c, http.StatusBadRequest, "salary must not be negative", nil)
			return
		}
		updates["salary"] = in.Salary.Round(2)
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if len(updates) == 0 {
		utils.Error(c, http.StatusBadRequest, "nothing to update", nil)
		return
	}
	if err := config.DB.Model(&emp).Updates(updates).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "could not update employee", err)
		return
	}
	config.DB.First(&emp, id)
	utils.Success(c, "employee updated", emp)
}
