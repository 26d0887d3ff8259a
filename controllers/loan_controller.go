package controllers

import (
	"net/http"
	"strconv"

	"github.com/JhossefCons/Almacen-Papas-sub000/models"
	"github.com/JhossefCons/Almacen-Papas-sub000/service"
	"github.com/JhossefCons/Almacen-Papas-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type LoanRequest struct {
	EmployeeID     uint            `json:"employee_id" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	DateIssued     string          `json:"date_issued" binding:"required"`
	DueDate        string          `json:"due_date" binding:"required"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	Notes          string          `json:"notes"`
	RegisterInCash bool            `json:"register_in_cash"`
	PaymentMethod  string          `json:"payment_method"`
}

func CreateLoan(c *gin.Context) {
	var in LoanRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	issued, err := parseDate("date_issued", in.DateIssued)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	due, err := parseDate("due_date", in.DueDate)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	method := models.PaymentMethod(in.PaymentMethod)
	if in.PaymentMethod == "" {
		method = models.PaymentCash
	}
	id, err := svc.CreateLoan(service.LoanInput{
		EmployeeID:     in.EmployeeID,
		Amount:         in.Amount,
		DateIssued:     issued,
		DueDate:        due,
		InterestRate:   in.InterestRate,
		Notes:          in.Notes,
		RegisterInCash: in.RegisterInCash,
		Method:         method,
		RecordedBy:     currentActor(c),
	})
	if err != nil {
		serviceError(c, "could not create loan", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "loan created", "id": id})
}

type LoanPaymentRequest struct {
	Date           string          `json:"date" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Notes          string          `json:"notes"`
	RegisterInCash bool            `json:"register_in_cash"`
	PaymentMethod  string          `json:"payment_method"`
}

func AddLoanPayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in LoanPaymentRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	method := models.PaymentMethod(in.PaymentMethod)
	if in.PaymentMethod == "" {
		method = models.PaymentCash
	}
	paymentID, err := svc.AddLoanPayment(id, service.LoanPaymentInput{
		Date:           date,
		Amount:         in.Amount,
		Notes:          in.Notes,
		RegisterInCash: in.RegisterInCash,
		Method:         method,
		RecordedBy:     currentActor(c),
	})
	if err != nil {
		serviceError(c, "could not add loan payment", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "payment recorded", "id": paymentID})
}

func GetLoanSummary(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	summary, err := svc.GetLoanSummary(id)
	if err != nil {
		serviceError(c, "could not read loan", err)
		return
	}
	utils.Success(c, "loan summary", summary)
}

func ListLoans(c *gin.Context) {
	var employeeID *uint
	if v := c.Query("employee_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "invalid employee_id", err)
			return
		}
		u := uint(n)
		employeeID = &u
	}
	rows, err := svc.ListLoans(employeeID, c.Query("status"))
	if err != nil {
		serviceError(c, "could not list loans", err)
		return
	}
	utils.Success(c, "loans", rows)
}

type PayrollRequest struct {
	EmployeeID     uint   `json:"employee_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	PaymentMethod  string `json:"payment_method" binding:"required"`
	RegisterInCash bool   `json:"register_in_cash"`
}

func ProcessPayroll(c *gin.Context) {
	var in PayrollRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	result, err := svc.ProcessPayroll(in.EmployeeID, date, models.PaymentMethod(in.PaymentMethod), in.RegisterInCash, currentActor(c))
	if err != nil {
		serviceError(c, "could not process payroll", err)
		return
	}
	utils.Success(c, "payroll processed", result)
}
