package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ramabhadrarao/face-recognition/internal/entity"
	"github.com/ramabhadrarao/face-recognition/internal/mapper"
	"github.com/ramabhadrarao/face-recognition/internal/model"
	"github.com/ramabhadrarao/face-recognition/internal/repository/contract"
	"github.com/ramabhadrarao/face-recognition/internal/repository/specification"
)

type AttendanceLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AttendanceLogMapper
}

func NewAttendanceLogRepository(db *gorm.DB) contract.AttendanceLogRepository {
	return &AttendanceLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewAttendanceLogMapper(),
	}
}

func (r *AttendanceLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AttendanceLogRepositoryImpl) Create(ctx context.Context, log *entity.AttendanceLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *AttendanceLogRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AttendanceLog, error) {
	var m model.AttendanceLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AttendanceLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AttendanceLog, error) {
	var models []*model.AttendanceLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AttendanceLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.AttendanceLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
