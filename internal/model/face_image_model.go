package model

import (
	"time"

	"github.com/google/uuid"
)

type FaceImage struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeId uuid.UUID `gorm:"type:uuid;not null;index"`
	ImageId    string    `gorm:"type:varchar(128);not null"`
	Width      int       `gorm:"not null;default:0"`
	Height     int       `gorm:"not null;default:0"`
	ZoomFactor float64   `gorm:"type:numeric(4,2);not null;default:1"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (FaceImage) TableName() string {
	return "face_images"
}
