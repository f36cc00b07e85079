package service

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/ramabhadrarao/face-recognition/internal/dto"
	"github.com/ramabhadrarao/face-recognition/internal/entity"
	"github.com/ramabhadrarao/face-recognition/internal/pkg/logger"
	"github.com/ramabhadrarao/face-recognition/internal/pkg/serverutils"
	"github.com/ramabhadrarao/face-recognition/internal/repository/specification"
	"github.com/ramabhadrarao/face-recognition/internal/repository/unitofwork"
	"github.com/ramabhadrarao/face-recognition/pkg/events"
	pktNats "github.com/ramabhadrarao/face-recognition/pkg/nats"
	"github.com/ramabhadrarao/face-recognition/pkg/recognition"
)

// FaceMatcher is the subset of the recognition client used for
// attendance.
type FaceMatcher interface {
	Recognize(ctx context.Context, imageJPEG []byte) ([]recognition.DetectedFace, error)
}

type IAttendanceService interface {
	Clock(ctx context.Context, req *dto.ClockRequest) (*dto.ClockResponse, error)
	Logs(ctx context.Context, employeeId uuid.UUID) ([]*dto.AttendanceLogResponse, error)
}

type attendanceService struct {
	uowFactory          unitofwork.RepositoryFactory
	matcher             FaceMatcher
	artifacts           ArtifactSource
	recent              *cache.Cache
	similarityThreshold float64
	minimumInterval     time.Duration
	location            *time.Location
	eventPublisher      *pktNats.Publisher
	logger              logger.ILogger
}

func NewAttendanceService(
	uowFactory unitofwork.RepositoryFactory,
	matcher FaceMatcher,
	artifacts ArtifactSource,
	similarityThreshold float64,
	minimumInterval time.Duration,
	location *time.Location,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IAttendanceService {
	return &attendanceService{
		uowFactory:          uowFactory,
		matcher:             matcher,
		artifacts:           artifacts,
		recent:              cache.New(minimumInterval, 10*time.Minute),
		similarityThreshold: similarityThreshold,
		minimumInterval:     minimumInterval,
		location:            location,
		eventPublisher:      eventPublisher,
		logger:              log,
	}
}

func (s *attendanceService) Clock(ctx context.Context, req *dto.ClockRequest) (*dto.ClockResponse, error) {
	imageJPEG, err := s.resolveImage(req.ImageData)
	if err != nil {
		return nil, err
	}

	faces, err := s.matcher.Recognize(ctx, imageJPEG)
	if err != nil {
		return nil, serverutils.NewAppError(fiber.StatusBadGateway, "recognition service unavailable")
	}
	if len(faces) == 0 || len(faces[0].Subjects) == 0 {
		return nil, serverutils.NewAppError(fiber.StatusUnprocessableEntity, "no face recognized")
	}

	best := faces[0].Subjects[0]
	if best.Similarity < s.similarityThreshold {
		return nil, serverutils.NewAppError(fiber.StatusUnprocessableEntity, "face not recognized with sufficient confidence")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	employee, err := uow.EmployeeRepository().FindOne(ctx, specification.BySubjectName{SubjectName: best.Subject})
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, serverutils.NewAppError(fiber.StatusNotFound, "recognized subject has no enrolled employee")
	}

	now := time.Now().UTC()

	// Fast path duplicate check, then the authoritative DB check.
	cacheKey := employee.SubjectName + ":" + req.LogType
	if _, found := s.recent.Get(cacheKey); found {
		return nil, s.duplicateError(req.LogType)
	}
	recentLog, err := uow.AttendanceLogRepository().FindOne(ctx,
		specification.ByEmployeeID{EmployeeID: employee.Id},
		specification.ByLogType{LogType: req.LogType},
		specification.TimestampAfter{After: now.Add(-s.minimumInterval)},
	)
	if err != nil {
		return nil, err
	}
	if recentLog != nil {
		s.recent.Set(cacheKey, recentLog.Timestamp, cache.DefaultExpiration)
		return nil, s.duplicateError(req.LogType)
	}

	log := &entity.AttendanceLog{
		Id:         uuid.New(),
		EmployeeId: employee.Id,
		LogType:    req.LogType,
		Similarity: best.Similarity,
		Timestamp:  now,
		Details: map[string]interface{}{
			"subject":         best.Subject,
			"similarity":      best.Similarity,
			"det_probability": faces[0].DetProbability,
		},
		CreatedAt: now,
	}
	if err := uow.AttendanceLogRepository().Create(ctx, log); err != nil {
		return nil, err
	}

	s.recent.Set(cacheKey, now, cache.DefaultExpiration)

	s.logger.Info("Attendance", "Clock event recorded", map[string]interface{}{
		"employee_code": employee.EmployeeCode,
		"log_type":      req.LogType,
		"similarity":    best.Similarity,
	})

	s.publishEvent(req.LogType, employee, best.Similarity, now)

	return &dto.ClockResponse{
		EmployeeId:   employee.Id,
		EmployeeCode: employee.EmployeeCode,
		FullName:     employee.FullName,
		LogType:      req.LogType,
		Similarity:   best.Similarity,
		Timestamp:    now,
		LocalTime:    now.In(s.location).Format("2006-01-02 15:04:05"),
	}, nil
}

func (s *attendanceService) Logs(ctx context.Context, employeeId uuid.UUID) ([]*dto.AttendanceLogResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	logs, err := uow.AttendanceLogRepository().FindAll(ctx,
		specification.ByEmployeeID{EmployeeID: employeeId},
		specification.OrderBy{Field: "timestamp", Desc: true},
		specification.Pagination{Limit: 100, Offset: 0},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.AttendanceLogResponse, 0, len(logs))
	for _, log := range logs {
		result = append(result, &dto.AttendanceLogResponse{
			Id:         log.Id,
			EmployeeId: log.EmployeeId,
			LogType:    log.LogType,
			Similarity: log.Similarity,
			Timestamp:  log.Timestamp,
			LocalTime:  log.Timestamp.In(s.location).Format("2006-01-02 15:04:05"),
		})
	}
	return result, nil
}

func (s *attendanceService) resolveImage(imageData string) ([]byte, error) {
	if imageData != "" {
		raw, err := decodeImageData(imageData)
		if err != nil {
			return nil, serverutils.NewAppError(fiber.StatusBadRequest, err.Error())
		}
		return raw, nil
	}

	artifact := s.artifacts.TakePendingArtifact()
	if artifact == nil {
		return nil, serverutils.NewAppError(fiber.StatusBadRequest, "no image provided and no pending capture")
	}
	return artifact.JPEG, nil
}

func (s *attendanceService) duplicateError(logType string) error {
	return serverutils.NewAppError(fiber.StatusConflict,
		"already clocked "+logType+" within the minimum interval")
}

func (s *attendanceService) publishEvent(logType string, employee *entity.Employee, similarity float64, at time.Time) {
	if s.eventPublisher == nil {
		return
	}

	eventType := "EMPLOYEE_CLOCK_IN"
	if logType == entity.LogTypeOut {
		eventType = "EMPLOYEE_CLOCK_OUT"
	}

	event := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"employee_id":   employee.Id.String(),
			"employee_code": employee.EmployeeCode,
			"full_name":     employee.FullName,
			"similarity":    similarity,
			"timestamp":     at.Format(time.RFC3339),
		},
		OccurredAt: at,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Attendance", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
