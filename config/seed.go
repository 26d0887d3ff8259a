package config

import (
	"os"

	"github.com/JhossefCons/Almacen-Papas-sub000/models"

	"golang.org/x/crypto/bcrypt"
)

func SeedPermissions() {
	codes := []models.Permission{
		{Code: "RECORD_MOVEMENT", Name: "Registrar entradas y salidas"},
		{Code: "SALES", Name: "Ventas de contado y a crédito"},
		{Code: "CASH", Name: "Caja (ingresos y egresos)"},
		{Code: "ADVANCES", Name: "Anticipos a proveedores"},
		{Code: "LOANS", Name: "Préstamos a empleados"},
		{Code: "CUSTOMER", Name: "Registrar clientes"},
		{Code: "SUPPLIER", Name: "Registrar proveedores"},
		{Code: "REPORT_VIEW", Name: "Acceso a reportes"},
	}
	for _, p := range codes {
		var cnt int64
		DB.Model(&models.Permission{}).Where("code = ?", p.Code).Count(&cnt)
		if cnt == 0 {
			DB.Create(&p)
		}
	}
}

// SeedAdmin bootstraps the first admin from SEED_ADMIN_USER /
// SEED_ADMIN_PASS so a fresh install is reachable. Does nothing if any
// admin already exists.
func SeedAdmin() {
	user := os.Getenv("SEED_ADMIN_USER")
	pass := os.Getenv("SEED_ADMIN_PASS")
	if user == "" || pass == "" {
		return
	}
	var cnt int64
	DB.Model(&models.Admin{}).Count(&cnt)
	if cnt > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return
	}
	DB.Create(&models.Admin{
		Username:     user,
		FullName:     "Administrador",
		PasswordHash: string(hash),
		IsActive:     true,
	})
}
