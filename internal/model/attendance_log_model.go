package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AttendanceLog struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeId uuid.UUID      `gorm:"type:uuid;not null;index"`
	LogType    string         `gorm:"type:varchar(8);not null;index"`
	Similarity float64        `gorm:"type:numeric(5,4);not null"`
	Timestamp  time.Time      `gorm:"not null;index"`
	Details    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
}

func (AttendanceLog) TableName() string {
	return "attendance_logs"
}
