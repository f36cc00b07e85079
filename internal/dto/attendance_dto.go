package dto

import (
	"time"

	"github.com/google/uuid"
)

type ClockRequest struct {
	LogType string `json:"log_type" validate:"required,oneof=IN OUT"`

	// ImageData is the frame to recognize, as a data URI. When empty
	// the pending capture artifact is used instead.
	ImageData string `json:"image_data"`
}

type ClockResponse struct {
	EmployeeId   uuid.UUID `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	FullName     string    `json:"full_name"`
	LogType      string    `json:"log_type"`
	Similarity   float64   `json:"similarity"`
	Timestamp    time.Time `json:"timestamp"`
	LocalTime    string    `json:"local_time"`
}

type AttendanceLogResponse struct {
	Id         uuid.UUID `json:"id"`
	EmployeeId uuid.UUID `json:"employee_id"`
	LogType    string    `json:"log_type"`
	Similarity float64   `json:"similarity"`
	Timestamp  time.Time `json:"timestamp"`
	LocalTime  string    `json:"local_time"`
}
