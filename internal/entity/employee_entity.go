package entity

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	Id           uuid.UUID
	EmployeeCode string
	FullName     string
	Email        string
	Department   string
	Position     string
	Salary       float64
	SubjectName  string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}
