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

func UserLogin(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	var user models.User
	if err := config.DB.Where("username = ? AND is_active = true", in.Username).First(&user).Error; err != nil {
		utils.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		utils.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	now := time.Now().UTC()
	config.DB.Model(&user).Update("last_login_at", &now)
	token, err := utils.GenerateUserToken(user.ID, user.Username, 12*time.Hour)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "could not issue token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login ok", "token": token})
}

// GetMyPermissions lets the UI decide which menus to draw; the server
// still enforces every code on each route.
func GetMyPermissions(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	var codes []string
	if err := config.DB.Model(&models.UserPermission{}).
		Joins("JOIN permissions ON permissions.id = user_permissions.permission_id").
		Where("user_permissions.user_id = ?", userID).
		Pluck("permissions.code", &codes).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "could not read permissions", err)
		return
	}
	utils.Success(c, "permissions", codes)
}

type CreateUserInput struct {
	Username string `json:"username" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Position string `json:"position"`
	Phone    string `json:"phone"`
}

func AdminCreateUser(c *gin.Context) {
	var in CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	var exists models.User
	if err := config.DB.Where("username = ?", in.Username).First(&exists).Error; err == nil {
		utils.Error(c, http.StatusBadRequest, "username already taken", nil)
		return
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	user := models.User{
		Username:     in.Username,
		FullName:     in.FullName,
		Position:     in.Position,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "could not create user", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "user created", "username": user.Username})
}

func AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("username").Find(&users).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "could not list users", err)
		return
	}
	utils.Success(c, "users", users)
}

func AdminListPermissions(c *gin.Context) {
	var perms []models.Permission
	if err := config.DB.Order("code").Find(&perms).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "could not list permissions", err)
		return
	}
	utils.Success(c, "permissions", perms)
}

type SetUserPermissionsInput struct {
	PermissionCodes []string `json:"permission_codes"`
}

func AdminSetUserPermissions(c *gin.Context) {
	userID := c.Param("userID")
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "user not found", err)
		return
	}
	var in SetUserPermissionsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	var perms []models.Permission
	if len(in.PermissionCodes) > 0 {
		if err := config.DB.Where("code IN ?", in.PermissionCodes).Find(&perms).Error; err != nil {
			utils.Error(c, http.StatusBadRequest, "invalid permission codes", err)
			return
		}
	}
	// replace-all: delete then insert
	if err := config.DB.Where("user_id = ?", user.ID).Delete(&models.UserPermission{}).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "could not reset permissions", err)
		return
	}
	for _, p := range perms {
		config.DB.Create(&models.UserPermission{
			UserID:       user.ID,
			PermissionID: p.ID,
			GrantedAt:    time.Now().UTC(),
		})
	}
	utils.Success(c, "permissions saved", gin.H{"applied": len(perms)})
}
