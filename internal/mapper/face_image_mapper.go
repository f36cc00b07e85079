package mapper

import (
	"github.com/ramabhadrarao/face-recognition/internal/entity"
	"github.com/ramabhadrarao/face-recognition/internal/model"
)

type FaceImageMapper struct{}

func NewFaceImageMapper() *FaceImageMapper {
	return &FaceImageMapper{}
}

func (m *FaceImageMapper) ToEntity(f *model.FaceImage) *entity.FaceImage {
	if f == nil {
		return nil
	}
	return &entity.FaceImage{
		Id:         f.Id,
		EmployeeId: f.EmployeeId,
		ImageId:    f.ImageId,
		Width:      f.Width,
		Height:     f.Height,
		ZoomFactor: f.ZoomFactor,
		CreatedAt:  f.CreatedAt,
	}
}

func (m *FaceImageMapper) ToModel(f *entity.FaceImage) *model.FaceImage {
	if f == nil {
		return nil
	}
	return &model.FaceImage{
		Id:         f.Id,
		EmployeeId: f.EmployeeId,
		ImageId:    f.ImageId,
		Width:      f.Width,
		Height:     f.Height,
		ZoomFactor: f.ZoomFactor,
		CreatedAt:  f.CreatedAt,
	}
}

func (m *FaceImageMapper) ToEntities(images []*model.FaceImage) []*entity.FaceImage {
	entities := make([]*entity.FaceImage, len(images))
	for i, f := range images {
		entities[i] = m.ToEntity(f)
	}
	return entities
}
