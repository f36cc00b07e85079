package dto

import "github.com/google/uuid"

type MonthlyReportRequest struct {
	Year  int `json:"year" validate:"required,gte=2000,lte=2200"`
	Month int `json:"month" validate:"required,gte=1,lte=12"`
}

type EmployeeMonthlyReport struct {
	EmployeeId   uuid.UUID `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	FullName     string    `json:"full_name"`
	Salary       float64   `json:"salary"`
	DaysPresent  float64   `json:"days_present"`
	HoursWorked  float64   `json:"hours_worked"`
	SalaryEarned float64   `json:"salary_earned"`
}

type MonthlyReportResponse struct {
	Year  int                      `json:"year"`
	Month int                      `json:"month"`
	Rows  []*EmployeeMonthlyReport `json:"rows"`
}
