package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ramabhadrarao/face-recognition/internal/capture"
	"github.com/ramabhadrarao/face-recognition/internal/dto"
	"github.com/ramabhadrarao/face-recognition/internal/entity"
	"github.com/ramabhadrarao/face-recognition/internal/pkg/logger"
	"github.com/ramabhadrarao/face-recognition/internal/pkg/mailer"
	"github.com/ramabhadrarao/face-recognition/internal/pkg/serverutils"
	"github.com/ramabhadrarao/face-recognition/internal/repository/specification"
	"github.com/ramabhadrarao/face-recognition/internal/repository/unitofwork"
	"github.com/ramabhadrarao/face-recognition/pkg/events"
	pktNats "github.com/ramabhadrarao/face-recognition/pkg/nats"
	"github.com/ramabhadrarao/face-recognition/pkg/recognition"
)

// FaceRegistry is the subset of the recognition client used for
// enrollment.
type FaceRegistry interface {
	RegisterFace(ctx context.Context, subject string, imageJPEG []byte) (*recognition.RegisterFaceResult, error)
	DeleteSubject(ctx context.Context, subject string) error
}

// ArtifactSource supplies the pending capture artifact when a request
// carries no image of its own. Implemented by the capture controller.
type ArtifactSource interface {
	TakePendingArtifact() *capture.Artifact
}

type IEmployeeService interface {
	Enroll(ctx context.Context, req *dto.EnrollEmployeeRequest) (*dto.EnrollEmployeeResponse, error)
	AddFaceImage(ctx context.Context, req *dto.AddFaceImageRequest) (*dto.AddFaceImageResponse, error)
	GetAll(ctx context.Context) ([]*dto.EmployeeResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.EmployeeResponse, error)
	Update(ctx context.Context, req *dto.UpdateEmployeeRequest) (*dto.UpdateEmployeeResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type employeeService struct {
	uowFactory     unitofwork.RepositoryFactory
	registry       FaceRegistry
	artifacts      ArtifactSource
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewEmployeeService(
	uowFactory unitofwork.RepositoryFactory,
	registry FaceRegistry,
	artifacts ArtifactSource,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IEmployeeService {
	return &employeeService{
		uowFactory:     uowFactory,
		registry:       registry,
		artifacts:      artifacts,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// SubjectName derives the recognition subject for an employee code.
func SubjectName(employeeCode string) string {
	return "emp_" + employeeCode
}

func (s *employeeService) Enroll(ctx context.Context, req *dto.EnrollEmployeeRequest) (*dto.EnrollEmployeeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.EmployeeRepository().FindOne(ctx, specification.ByEmployeeCode{EmployeeCode: req.EmployeeCode})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.NewAppError(fiber.StatusConflict, "employee code already enrolled")
	}

	imageJPEG, artifact, err := s.resolveImage(req.ImageData)
	if err != nil {
		return nil, err
	}

	subject := SubjectName(req.EmployeeCode)

	// Register with the recognition service first; a face that cannot
	// be detected must not produce a half-enrolled employee.
	registered, err := s.registry.RegisterFace(ctx, subject, imageJPEG)
	if err != nil {
		return nil, serverutils.NewAppError(fiber.StatusUnprocessableEntity, fmt.Sprintf("face registration failed: %v", err))
	}

	employee := &entity.Employee{
		Id:           uuid.New(),
		EmployeeCode: req.EmployeeCode,
		FullName:     req.FullName,
		Email:        req.Email,
		Department:   req.Department,
		Position:     req.Position,
		Salary:       req.Salary,
		SubjectName:  subject,
		CreatedAt:    time.Now(),
	}

	faceImage := &entity.FaceImage{
		Id:         uuid.New(),
		EmployeeId: employee.Id,
		ImageId:    registered.ImageId,
		CreatedAt:  time.Now(),
	}
	if artifact != nil {
		faceImage.Width = artifact.Width
		faceImage.Height = artifact.Height
		faceImage.ZoomFactor = artifact.ZoomFactor
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.EmployeeRepository().Create(ctx, employee); err != nil {
		s.cleanupSubject(subject)
		return nil, err
	}
	if err := uow.FaceImageRepository().Create(ctx, faceImage); err != nil {
		s.cleanupSubject(subject)
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		s.cleanupSubject(subject)
		return nil, err
	}

	s.logger.Info("Employee", "Employee enrolled", map[string]interface{}{
		"employee_id":   employee.Id.String(),
		"employee_code": employee.EmployeeCode,
		"subject":       subject,
	})

	if req.Email != "" {
		go func(email, fullName, code string) {
			if err := s.emailService.SendEnrollmentConfirmation(email, fullName, code); err != nil {
				s.logger.Warn("Employee", "Failed to send enrollment confirmation", map[string]interface{}{
					"email": email,
					"error": err.Error(),
				})
			}
		}(req.Email, req.FullName, req.EmployeeCode)
	}

	s.publishEvent("EMPLOYEE_ENROLLED", map[string]interface{}{
		"employee_id":   employee.Id.String(),
		"employee_code": employee.EmployeeCode,
		"full_name":     employee.FullName,
	})

	return &dto.EnrollEmployeeResponse{
		Id:           employee.Id,
		EmployeeCode: employee.EmployeeCode,
		SubjectName:  subject,
		FaceImageId:  registered.ImageId,
	}, nil
}

func (s *employeeService) AddFaceImage(ctx context.Context, req *dto.AddFaceImageRequest) (*dto.AddFaceImageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	employee, err := uow.EmployeeRepository().FindOne(ctx, specification.ByID{ID: req.EmployeeId})
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, serverutils.NewAppError(fiber.StatusNotFound, "employee not found")
	}

	imageJPEG, artifact, err := s.resolveImage(req.ImageData)
	if err != nil {
		return nil, err
	}

	registered, err := s.registry.RegisterFace(ctx, employee.SubjectName, imageJPEG)
	if err != nil {
		return nil, serverutils.NewAppError(fiber.StatusUnprocessableEntity, fmt.Sprintf("face registration failed: %v", err))
	}

	faceImage := &entity.FaceImage{
		Id:         uuid.New(),
		EmployeeId: employee.Id,
		ImageId:    registered.ImageId,
		CreatedAt:  time.Now(),
	}
	if artifact != nil {
		faceImage.Width = artifact.Width
		faceImage.Height = artifact.Height
		faceImage.ZoomFactor = artifact.ZoomFactor
	}
	if err := uow.FaceImageRepository().Create(ctx, faceImage); err != nil {
		return nil, err
	}

	return &dto.AddFaceImageResponse{FaceImageId: registered.ImageId}, nil
}

func (s *employeeService) GetAll(ctx context.Context) ([]*dto.EmployeeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	employees, err := uow.EmployeeRepository().FindAll(ctx, specification.OrderBy{Field: "created_at"})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.EmployeeResponse, 0, len(employees))
	for _, employee := range employees {
		result = append(result, toEmployeeResponse(employee))
	}
	return result, nil
}

func (s *employeeService) Show(ctx context.Context, id uuid.UUID) (*dto.EmployeeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	employee, err := uow.EmployeeRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, serverutils.NewAppError(fiber.StatusNotFound, "employee not found")
	}
	return toEmployeeResponse(employee), nil
}

func (s *employeeService) Update(ctx context.Context, req *dto.UpdateEmployeeRequest) (*dto.UpdateEmployeeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	employee, err := uow.EmployeeRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, serverutils.NewAppError(fiber.StatusNotFound, "employee not found")
	}

	employee.FullName = req.FullName
	employee.Email = req.Email
	employee.Department = req.Department
	employee.Position = req.Position
	employee.Salary = req.Salary

	if err := uow.EmployeeRepository().Update(ctx, employee); err != nil {
		return nil, err
	}
	return &dto.UpdateEmployeeResponse{Id: employee.Id}, nil
}

func (s *employeeService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	employee, err := uow.EmployeeRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if employee == nil {
		return serverutils.NewAppError(fiber.StatusNotFound, "employee not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.FaceImageRepository().DeleteAllByEmployeeId(ctx, employee.Id); err != nil {
		return err
	}
	if err := uow.EmployeeRepository().Delete(ctx, employee.Id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	// Best effort: the recognition service keeps working without this
	// subject, stale entries are only wasted storage.
	s.cleanupSubject(employee.SubjectName)
	return nil
}

func (s *employeeService) resolveImage(imageData string) ([]byte, *capture.Artifact, error) {
	if imageData != "" {
		raw, err := decodeImageData(imageData)
		if err != nil {
			return nil, nil, serverutils.NewAppError(fiber.StatusBadRequest, err.Error())
		}
		return raw, nil, nil
	}

	artifact := s.artifacts.TakePendingArtifact()
	if artifact == nil {
		return nil, nil, serverutils.NewAppError(fiber.StatusBadRequest, "no image provided and no pending capture")
	}
	return artifact.JPEG, artifact, nil
}

func (s *employeeService) cleanupSubject(subject string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.registry.DeleteSubject(ctx, subject); err != nil {
		s.logger.Warn("Employee", "Failed to delete recognition subject", map[string]interface{}{
			"subject": subject,
			"error":   err.Error(),
		})
	}
}

func (s *employeeService) publishEvent(eventType string, payload map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	event := events.BaseEvent{
		Type:       eventType,
		Data:       payload,
		OccurredAt: time.Now(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Employee", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func toEmployeeResponse(employee *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		Id:           employee.Id,
		EmployeeCode: employee.EmployeeCode,
		FullName:     employee.FullName,
		Email:        employee.Email,
		Department:   employee.Department,
		Position:     employee.Position,
		Salary:       employee.Salary,
		SubjectName:  employee.SubjectName,
		CreatedAt:    employee.CreatedAt,
		UpdatedAt:    employee.UpdatedAt,
	}
}
