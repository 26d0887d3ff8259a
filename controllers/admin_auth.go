package controllers

import (
	"net/http"
	"time"

	"github.com/JhossefCons/Almacen-Papas-sub000/config"
	"github.com/JhossefCons/Almacen-Papas-sub000/models"
	"github.com/JhossefCons/Almacen-Papas-sub000/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AdminRegisterInput struct {
	Username string `json:"username" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

func AdminRegister(c *gin.Context) {
	var in AdminRegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	var exists models.Admin
	if err := config.DB.Where("username = ?", in.Username).First(&exists).Error; err == nil {
		utils.Error(c, http.StatusBadRequest, "username already taken", nil)
		return
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	admin := models.Admin{
		Username:     in.Username,
		FullName:     in.FullName,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "could not create admin", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "admin created", "username": admin.Username})
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func AdminLogin(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	var admin models.Admin
	if err := config.DB.Where("username = ? AND is_active = true", in.Username).First(&admin).Error; err != nil {
		utils.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)) != nil {
		utils.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	now := time.Now().UTC()
	config.DB.Model(&admin).Update("last_login_at", &now)
	token, err := utils.GenerateAdminToken(admin.ID, admin.Username, 24*time.Hour)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "could not issue token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login ok", "token": token})
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

func AdminChangePassword(c *gin.Context) {
	adminID, err := currentAdminID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	var admin models.Admin
	if err := config.DB.First(&admin, adminID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "admin not found", err)
		return
	}
	var in ChangePasswordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.CurrentPassword)) != nil {
		utils.Error(c, http.StatusUnauthorized, "current password does not match", nil)
		return
	}
	hashed, _ := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err := config.DB.Model(&admin).Update("password_hash", string(hashed)).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "could not change password", err)
		return
	}
	utils.Success(c, "password changed", nil)
}
