package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeCode string         `gorm:"type:varchar(64);not null;uniqueIndex"`
	FullName     string         `gorm:"type:varchar(255);not null"`
	Email        string         `gorm:"type:varchar(255);index"`
	Department   string         `gorm:"type:varchar(128)"`
	Position     string         `gorm:"type:varchar(128)"`
	Salary       float64        `gorm:"type:numeric(12,2);not null;default:0"`
	SubjectName  string         `gorm:"type:varchar(128);not null;uniqueIndex"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
