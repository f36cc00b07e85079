package entity

import (
	"time"

	"github.com/google/uuid"
)

type FaceImage struct {
	Id         uuid.UUID
	EmployeeId uuid.UUID
	ImageId    string
	Width      int
	Height     int
	ZoomFactor float64
	CreatedAt  time.Time
}
