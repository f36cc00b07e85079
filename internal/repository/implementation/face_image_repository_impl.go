package implementation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ramabhadrarao/face-recognition/internal/entity"
	"github.com/ramabhadrarao/face-recognition/internal/mapper"
	"github.com/ramabhadrarao/face-recognition/internal/model"
	"github.com/ramabhadrarao/face-recognition/internal/repository/contract"
	"github.com/ramabhadrarao/face-recognition/internal/repository/specification"
)

type FaceImageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FaceImageMapper
}

func NewFaceImageRepository(db *gorm.DB) contract.FaceImageRepository {
	return &FaceImageRepositoryImpl{
		db:     db,
		mapper: mapper.NewFaceImageMapper(),
	}
}

func (r *FaceImageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FaceImageRepositoryImpl) Create(ctx context.Context, image *entity.FaceImage) error {
	m := r.mapper.ToModel(image)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*image = *r.mapper.ToEntity(m)
	return nil
}

func (r *FaceImageRepositoryImpl) DeleteAllByEmployeeId(ctx context.Context, employeeId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("employee_id = ?", employeeId).Delete(&model.FaceImage{}).Error
}

func (r *FaceImageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FaceImage, error) {
	var models []*model.FaceImage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FaceImageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.FaceImage{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
