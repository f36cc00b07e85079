package dto

import (
	"time"

	"github.com/google/uuid"
)

type EnrollEmployeeRequest struct {
	EmployeeCode string  `json:"employee_code" validate:"required,min=1,max=64"`
	FullName     string  `json:"full_name" validate:"required,min=3"`
	Email        string  `json:"email" validate:"omitempty,email"`
	Department   string  `json:"department"`
	Position     string  `json:"position"`
	Salary       float64 `json:"salary" validate:"gte=0"`

	// ImageData is the captured still as a data URI. When empty the
	// pending capture artifact is used instead.
	ImageData string `json:"image_data"`
}

type EnrollEmployeeResponse struct {
	Id           uuid.UUID `json:"id"`
	EmployeeCode string    `json:"employee_code"`
	SubjectName  string    `json:"subject_name"`
	FaceImageId  string    `json:"face_image_id"`
}

type EmployeeResponse struct {
	Id           uuid.UUID  `json:"id"`
	EmployeeCode string     `json:"employee_code"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	Department   string     `json:"department"`
	Position     string     `json:"position"`
	Salary       float64    `json:"salary"`
	SubjectName  string     `json:"subject_name"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type UpdateEmployeeRequest struct {
	Id         uuid.UUID
	FullName   string  `json:"full_name" validate:"required,min=3"`
	Email      string  `json:"email" validate:"omitempty,email"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	Salary     float64 `json:"salary" validate:"gte=0"`
}

type UpdateEmployeeResponse struct {
	Id uuid.UUID `json:"id"`
}

type AddFaceImageRequest struct {
	EmployeeId uuid.UUID
	ImageData  string `json:"image_data"`
}

type AddFaceImageResponse struct {
	FaceImageId string `json:"face_image_id"`
}
