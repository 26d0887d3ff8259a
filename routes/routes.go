package routes

import (
	"github.com/JhossefCons/Almacen-Papas-sub000/controllers"
	"github.com/JhossefCons/Almacen-Papas-sub000/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {

	api := r.Group("/api")
	{

		// ================= ADMIN APP =================
		admin := api.Group("/admin")
		{
			admin.POST("/register", controllers.AdminRegister)
			admin.POST("/login", controllers.AdminLogin)

			adminAuth := admin.Group("/", middlewares.AdminAuth())

			adminAuth.PUT("/profile/password", controllers.AdminChangePassword)

			// Manejo de usuarios operativos
			adminAuth.GET("/users", controllers.AdminGetAllUsers)
			adminAuth.POST("/users", controllers.AdminCreateUser)
			adminAuth.PUT("/users/:userID/permissions", controllers.AdminSetUserPermissions)
			adminAuth.GET("/permissions", controllers.AdminListPermissions)

			inventory := adminAuth.Group("/inventory")
			{
				inventory.POST("/movements", controllers.RecordMovement)
				inventory.GET("/movements", controllers.ListMovements)
				inventory.PUT("/movements/:id", controllers.CorrectMovement)
				inventory.GET("/stock", controllers.GetStock)
				inventory.POST("/stock/adjust", controllers.AdjustStock)
				inventory.GET("/valuation", controllers.GetValuation)
				inventory.PUT("/reference-price", controllers.SetReferencePrice)
				inventory.GET("/reference-price", controllers.GetReferencePrice)
			}

			packaging := adminAuth.Group("/packaging")
			{
				packaging.GET("/", controllers.GetPackaging)
				packaging.POST("/add", controllers.AddPackaging)
				packaging.PUT("/", controllers.SetPackaging)
			}

			cash := adminAuth.Group("/cash")
			{
				cash.POST("/", controllers.AddCashEntry)
				cash.GET("/", controllers.ListCashEntries)
				cash.DELETE("/:id", controllers.DeleteCashEntry)
				cash.GET("/balance", controllers.GetCashBalance)
				cash.GET("/flow", controllers.GetGroupedFlow)
			}

			sales := adminAuth.Group("/sales")
			{
				sales.POST("/immediate", controllers.CreateImmediateSale)
				sales.POST("/credit", controllers.CreateCreditSale)
				sales.GET("/credit", controllers.ListCreditSales)
				sales.GET("/credit/:id", controllers.GetSaleSummary)
				sales.POST("/credit/:id/payments", controllers.AddSalePayment)
				sales.DELETE("/credit/:id", controllers.DeleteCreditSale)
			}

			advances := adminAuth.Group("/advances")
			{
				advances.POST("/", controllers.CreateAdvance)
				advances.GET("/", controllers.ListAdvances)
				advances.POST("/:id/apply", controllers.ApplyAdvance)
				advances.DELETE("/:id", controllers.DeleteAdvance)
			}

			loans := adminAuth.Group("/loans")
			{
				loans.POST("/", controllers.CreateLoan)
				loans.GET("/", controllers.ListLoans)
				loans.GET("/:id", controllers.GetLoanSummary)
				loans.POST("/:id/payments", controllers.AddLoanPayment)
			}
			adminAuth.POST("/payroll", controllers.ProcessPayroll)

			employees := adminAuth.Group("/employees")
			{
				employees.GET("/", controllers.GetAllEmployees)
				employees.GET("/:id", controllers.GetEmployeeByID)
				employees.POST("/", controllers.CreateEmployee)
				employees.PUT("/:id", controllers.UpdateEmployee)
			}

			customers := adminAuth.Group("/customers")
			{
				customers.GET("/", controllers.GetAllCustomers)
				customers.GET("/:id", controllers.GetCustomerByID)
				customers.POST("/", controllers.CreateCustomer)
				customers.PUT("/:id", controllers.UpdateCustomer)
				customers.DELETE("/:id", controllers.DeleteCustomer)
			}

			suppliers := adminAuth.Group("/suppliers")
			{
				suppliers.GET("/", controllers.GetAllSuppliers)
				suppliers.GET("/:id", controllers.GetSupplierByID)
				suppliers.POST("/", controllers.CreateSupplier)
				suppliers.PUT("/:id", controllers.UpdateSupplier)
				suppliers.DELETE("/:id", controllers.DeleteSupplier)
			}
		}

		// ================= USER (operativo) APP =================
		user := api.Group("/user")
		{
			user.POST("/login", controllers.UserLogin)

			userAuth := user.Group("/", middlewares.UserAuth())
			{
				userAuth.GET("/permissions", controllers.GetMyPermissions)

				inventory := userAuth.Group("/inventory", middlewares.RequirePerm("RECORD_MOVEMENT"))
				{
					inventory.POST("/movements", controllers.RecordMovement)
					inventory.GET("/movements", controllers.ListMovements)
					inventory.GET("/stock", controllers.GetStock)
					inventory.GET("/reference-price", controllers.GetReferencePrice)
				}

				packaging := userAuth.Group("/packaging", middlewares.RequirePerm("RECORD_MOVEMENT"))
				{
					packaging.GET("/", controllers.GetPackaging)
					packaging.POST("/add", controllers.AddPackaging)
				}

				cash := userAuth.Group("/cash", middlewares.RequirePerm("CASH"))
				{
					cash.POST("/", controllers.AddCashEntry)
					cash.GET("/", controllers.ListCashEntries)
					cash.GET("/balance", controllers.GetCashBalance)
				}

				sales := userAuth.Group("/sales", middlewares.RequirePerm("SALES"))
				{
					sales.POST("/immediate", controllers.CreateImmediateSale)
					sales.POST("/credit", controllers.CreateCreditSale)
					sales.GET("/credit", controllers.ListCreditSales)
					sales.GET("/credit/:id", controllers.GetSaleSummary)
					sales.POST("/credit/:id/payments", controllers.AddSalePayment)
				}

				advances := userAuth.Group("/advances", middlewares.RequirePerm("ADVANCES"))
				{
					advances.POST("/", controllers.CreateAdvance)
					advances.GET("/", controllers.ListAdvances)
					advances.POST("/:id/apply", controllers.ApplyAdvance)
				}

				loans := userAuth.Group("/loans", middlewares.RequirePerm("LOANS"))
				{
					loans.GET("/", controllers.ListLoans)
					loans.GET("/:id", controllers.GetLoanSummary)
					loans.POST("/:id/payments", controllers.AddLoanPayment)
				}

				customers := userAuth.Group("/customers")
				{
					customers.GET("/", controllers.GetAllCustomers)
					customers.GET("/:id", controllers.GetCustomerByID)
					customers.POST("/", middlewares.RequirePerm("CUSTOMER"), controllers.CreateCustomer)
				}

				suppliers := userAuth.Group("/suppliers")
				{
					suppliers.GET("/", controllers.GetAllSuppliers)
					suppliers.GET("/:id", controllers.GetSupplierByID)
					suppliers.POST("/", middlewares.RequirePerm("SUPPLIER"), controllers.CreateSupplier)
				}

				reports := userAuth.Group("/reports", middlewares.RequirePerm("REPORT_VIEW"))
				{
					reports.GET("/valuation", controllers.GetValuation)
					reports.GET("/cash/flow", controllers.GetGroupedFlow)
				}
			}
		}

	}
}
