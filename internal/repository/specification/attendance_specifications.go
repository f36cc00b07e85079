package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByEmployeeID filters rows belonging to one employee.
type ByEmployeeID struct {
	EmployeeID uuid.UUID
}

func (s ByEmployeeID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("employee_id = ?", s.EmployeeID)
}

// ByLogType filters attendance rows by IN/OUT type.
type ByLogType struct {
	LogType string
}

func (s ByLogType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("log_type = ?", s.LogType)
}

// TimestampAfter filters rows at or after the given instant.
type TimestampAfter struct {
	After time.Time
}

func (s TimestampAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("timestamp >= ?", s.After)
}

// TimestampBetween filters rows in [From, To).
type TimestampBetween struct {
	From time.Time
	To   time.Time
}

func (s TimestampBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("timestamp >= ? AND timestamp < ?", s.From, s.To)
}
