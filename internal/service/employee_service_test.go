package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramabhadrarao/face-recognition/internal/capture"
	"github.com/ramabhadrarao/face-recognition/internal/dto"
	"github.com/ramabhadrarao/face-recognition/internal/entity"
	"github.com/ramabhadrarao/face-recognition/pkg/recognition"
)

func newEmployeeFixture() (IEmployeeService, *fakeUnitOfWork, *fakeRegistry, *fakeArtifactSource) {
	uow := newFakeUnitOfWork()
	registry := &fakeRegistry{}
	artifacts := &fakeArtifactSource{}
	svc := NewEmployeeService(
		&fakeRepositoryFactory{uow: uow},
		registry,
		artifacts,
		&fakeMailer{},
		nil,
		discardLogger{},
	)
	return svc, uow, registry, artifacts
}

func TestEnrollCreatesEmployeeAndFaceImage(t *testing.T) {
	svc, uow, registry, _ := newEmployeeFixture()
	registry.result = &recognition.RegisterFaceResult{ImageId: "img-42", Subject: "emp_E001"}

	resp, err := svc.Enroll(context.Background(), &dto.EnrollEmployeeRequest{
		EmployeeCode: "E001",
		FullName:     "Asha Rao",
		Salary:       26000,
		ImageData:    imageDataURI([]byte("jpeg-bytes")),
	})
	require.NoError(t, err)

	assert.Equal(t, "E001", resp.EmployeeCode)
	assert.Equal(t, "emp_E001", resp.SubjectName)
	assert.Equal(t, "img-42", resp.FaceImageId)

	require.Len(t, uow.employees.created, 1)
	require.Len(t, uow.faceImages.created, 1)
	assert.Equal(t, uow.employees.created[0].Id, uow.faceImages.created[0].EmployeeId)
	assert.Equal(t, []string{"emp_E001"}, registry.registered)
	assert.Equal(t, 1, uow.commitCalls)
}

func TestEnrollRejectsDuplicateEmployeeCode(t *testing.T) {
	svc, uow, registry, _ := newEmployeeFixture()
	uow.employees.employees = append(uow.employees.employees, &entity.Employee{
		Id:           uuid.New(),
		EmployeeCode: "E001",
		SubjectName:  "emp_E001",
	})

	_, err := svc.Enroll(context.Background(), &dto.EnrollEmployeeRequest{
		EmployeeCode: "E001",
		FullName:     "Asha Rao",
		ImageData:    imageDataURI([]byte("jpeg-bytes")),
	})
	requireAppError(t, err, 409)
	assert.Empty(t, registry.registered, "recognition service must not be touched")
}

func TestEnrollRequiresAnImage(t *testing.T) {
	svc, _, _, _ := newEmployeeFixture()

	_, err := svc.Enroll(context.Background(), &dto.EnrollEmployeeRequest{
		EmployeeCode: "E001",
		FullName:     "Asha Rao",
	})
	requireAppError(t, err, 400)
}

func TestEnrollFaceRegistrationFailure(t *testing.T) {
	svc, uow, registry, _ := newEmployeeFixture()
	registry.registerErr = errors.New("no face detected")

	_, err := svc.Enroll(context.Background(), &dto.EnrollEmployeeRequest{
		EmployeeCode: "E001",
		FullName:     "Asha Rao",
		ImageData:    imageDataURI([]byte("jpeg-bytes")),
	})
	requireAppError(t, err, 422)
	assert.Empty(t, uow.employees.created)
	assert.Empty(t, uow.faceImages.created)
}

func TestEnrollCleansUpSubjectWhenPersistenceFails(t *testing.T) {
	svc, uow, registry, _ := newEmployeeFixture()
	uow.employees.createErr = errors.New("database gone")

	_, err := svc.Enroll(context.Background(), &dto.EnrollEmployeeRequest{
		EmployeeCode: "E001",
		FullName:     "Asha Rao",
		ImageData:    imageDataURI([]byte("jpeg-bytes")),
	})
	require.Error(t, err)
	assert.Equal(t, []string{"emp_E001"}, registry.deletedSubjects)
	assert.Zero(t, uow.commitCalls)
}

func TestEnrollUsesPendingArtifactDimensions(t *testing.T) {
	svc, uow, _, artifacts := newEmployeeFixture()
	artifacts.artifact = &capture.Artifact{
		JPEG:       []byte("captured-jpeg"),
		Width:      1280,
		Height:     720,
		ZoomFactor: 1.5,
		CapturedAt: time.Now(),
	}

	_, err := svc.Enroll(context.Background(), &dto.EnrollEmployeeRequest{
		EmployeeCode: "E002",
		FullName:     "Ravi Kumar",
	})
	require.NoError(t, err)

	require.Len(t, uow.faceImages.created, 1)
	image := uow.faceImages.created[0]
	assert.Equal(t, 1280, image.Width)
	assert.Equal(t, 720, image.Height)
	assert.Equal(t, 1.5, image.ZoomFactor)
	assert.Nil(t, artifacts.artifact, "artifact must be consumed")
}

func TestAddFaceImageToExistingEmployee(t *testing.T) {
	svc, uow, registry, _ := newEmployeeFixture()
	employee := &entity.Employee{
		Id:           uuid.New(),
		EmployeeCode: "E001",
		SubjectName:  "emp_E001",
	}
	uow.employees.employees = append(uow.employees.employees, employee)
	registry.result = &recognition.RegisterFaceResult{ImageId: "img-7", Subject: "emp_E001"}

	resp, err := svc.AddFaceImage(context.Background(), &dto.AddFaceImageRequest{
		EmployeeId: employee.Id,
		ImageData:  imageDataURI([]byte("jpeg-bytes")),
	})
	require.NoError(t, err)
	assert.Equal(t, "img-7", resp.FaceImageId)
	assert.Equal(t, []string{"emp_E001"}, registry.registered)
	require.Len(t, uow.faceImages.created, 1)
	assert.Equal(t, employee.Id, uow.faceImages.created[0].EmployeeId)
}

func TestAddFaceImageUnknownEmployee(t *testing.T) {
	svc, _, _, _ := newEmployeeFixture()

	_, err := svc.AddFaceImage(context.Background(), &dto.AddFaceImageRequest{
		EmployeeId: uuid.New(),
		ImageData:  imageDataURI([]byte("jpeg-bytes")),
	})
	requireAppError(t, err, 404)
}

func TestDeleteRemovesFaceDataAndSubject(t *testing.T) {
	svc, uow, registry, _ := newEmployeeFixture()
	employee := &entity.Employee{
		Id:           uuid.New(),
		EmployeeCode: "E001",
		SubjectName:  "emp_E001",
	}
	uow.employees.employees = append(uow.employees.employees, employee)

	err := svc.Delete(context.Background(), employee.Id)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{employee.Id}, uow.faceImages.deletedFor)
	assert.Equal(t, []uuid.UUID{employee.Id}, uow.employees.deletedIds)
	assert.Equal(t, []string{"emp_E001"}, registry.deletedSubjects)
	assert.Equal(t, 1, uow.commitCalls)
}

func TestUpdateEmployeeFields(t *testing.T) {
	svc, uow, _, _ := newEmployeeFixture()
	employee := &entity.Employee{
		Id:           uuid.New(),
		EmployeeCode: "E001",
		FullName:     "Asha Rao",
		SubjectName:  "emp_E001",
		Salary:       20000,
	}
	uow.employees.employees = append(uow.employees.employees, employee)

	_, err := svc.Update(context.Background(), &dto.UpdateEmployeeRequest{
		Id:       employee.Id,
		FullName: "Asha R. Rao",
		Salary:   30000,
	})
	require.NoError(t, err)

	updated, _ := uow.employees.FindOne(context.Background())
	assert.Equal(t, "Asha R. Rao", updated.FullName)
	assert.Equal(t, 30000.0, updated.Salary)
}
