package main

import (
	"context"
	"os"
	"time"

	"github.com/JhossefCons/Almacen-Papas-sub000/config"
	"github.com/JhossefCons/Almacen-Papas-sub000/controllers"
	"github.com/JhossefCons/Almacen-Papas-sub000/models"
	"github.com/JhossefCons/Almacen-Papas-sub000/notifier"
	"github.com/JhossefCons/Almacen-Papas-sub000/routes"
	"github.com/JhossefCons/Almacen-Papas-sub000/service"
	"github.com/JhossefCons/Almacen-Papas-sub000/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	log := config.GetLogger()
	config.ConnectDB()

	if err := config.DB.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.Permission{},
		&models.UserPermission{},
		&models.Movement{},
		&models.PackagingStock{},
		&models.ReferencePrice{},
		&models.CashEntry{},
		&models.CreditSale{},
		&models.CreditSaleItem{},
		&models.CreditSalePayment{},
		&models.SupplierAdvance{},
		&models.SupplierAdvanceApplication{},
		&models.Employee{},
		&models.Loan{},
		&models.LoanPayment{},
		&models.Customer{},
		&models.Supplier{},
	); err != nil {
		log.WithError(err).Fatal("auto-migrate failed")
	}

	config.SeedPermissions()
	config.SeedAdmin()

	if s := os.Getenv("ADMIN_JWT_SECRET"); s != "" {
		utils.AdminSecret = []byte(s)
	}
	if s := os.Getenv("USER_JWT_SECRET"); s != "" {
		utils.UserSecret = []byte(s)
	}

	controllers.Init(service.New(config.DB, log))

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	routes.SetupRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Almacen de papas API is running"})
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notifier.New(config.DB, log, time.Hour).Run(ctx)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
