package contract

import (
	"context"

	"github.com/ramabhadrarao/face-recognition/internal/entity"
	"github.com/ramabhadrarao/face-recognition/internal/repository/specification"
)

type AttendanceLogRepository interface {
	Create(ctx context.Context, log *entity.AttendanceLog) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AttendanceLog, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AttendanceLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
