package contract

import (
	"context"

	"github.com/google/uuid"

	"github.com/ramabhadrarao/face-recognition/internal/entity"
	"github.com/ramabhadrarao/face-recognition/internal/repository/specification"
)

type FaceImageRepository interface {
	Create(ctx context.Context, image *entity.FaceImage) error
	DeleteAllByEmployeeId(ctx context.Context, employeeId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FaceImage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
