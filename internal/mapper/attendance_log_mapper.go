package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/ramabhadrarao/face-recognition/internal/entity"
	"github.com/ramabhadrarao/face-recognition/internal/model"
)

type AttendanceLogMapper struct{}

func NewAttendanceLogMapper() *AttendanceLogMapper {
	return &AttendanceLogMapper{}
}

func (m *AttendanceLogMapper) ToEntity(l *model.AttendanceLog) *entity.AttendanceLog {
	if l == nil {
		return nil
	}

	var details map[string]interface{}
	if len(l.Details) > 0 {
		// Malformed details are dropped rather than failing the read.
		_ = json.Unmarshal(l.Details, &details)
	}

	return &entity.AttendanceLog{
		Id:         l.Id,
		EmployeeId: l.EmployeeId,
		LogType:    l.LogType,
		Similarity: l.Similarity,
		Timestamp:  l.Timestamp,
		Details:    details,
		CreatedAt:  l.CreatedAt,
	}
}

func (m *AttendanceLogMapper) ToModel(l *entity.AttendanceLog) *model.AttendanceLog {
	if l == nil {
		return nil
	}

	var details datatypes.JSON
	if l.Details != nil {
		if raw, err := json.Marshal(l.Details); err == nil {
			details = raw
		}
	}

	return &model.AttendanceLog{
		Id:         l.Id,
		EmployeeId: l.EmployeeId,
		LogType:    l.LogType,
		Similarity: l.Similarity,
		Timestamp:  l.Timestamp,
		Details:    details,
		CreatedAt:  l.CreatedAt,
	}
}

func (m *AttendanceLogMapper) ToEntities(logs []*model.AttendanceLog) []*entity.AttendanceLog {
	entities := make([]*entity.AttendanceLog, len(logs))
	for i, l := range logs {
		entities[i] = m.ToEntity(l)
	}
	return entities
}
