package entity

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceLog struct {
	Id         uuid.UUID
	EmployeeId uuid.UUID
	LogType    string
	Similarity float64
	Timestamp  time.Time
	Details    map[string]interface{}
	CreatedAt  time.Time
}

const (
	LogTypeIn  = "IN"
	LogTypeOut = "OUT"
)
