package service

import (
	"context"
	"encoding/base64"

	"github.com/google/uuid"

	"github.com/ramabhadrarao/face-recognition/internal/capture"
	"github.com/ramabhadrarao/face-recognition/internal/entity"
	"github.com/ramabhadrarao/face-recognition/internal/repository/contract"
	"github.com/ramabhadrarao/face-recognition/internal/repository/specification"
	"github.com/ramabhadrarao/face-recognition/internal/repository/unitofwork"
	"github.com/ramabhadrarao/face-recognition/pkg/recognition"
)

// In-memory repository fakes backing the service tests. They evaluate
// the same specifications the GORM implementations translate to SQL,
// so service code exercises its real query composition.

type fakeUserRepository struct {
	users   []*entity.User
	created []*entity.User
}

func (r *fakeUserRepository) Create(_ context.Context, user *entity.User) error {
	r.users = append(r.users, user)
	r.created = append(r.created, user)
	return nil
}

func (r *fakeUserRepository) Update(_ context.Context, user *entity.User) error {
	for i, u := range r.users {
		if u.Id == user.Id {
			r.users[i] = user
		}
	}
	return nil
}

func (r *fakeUserRepository) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.users {
		if userMatches(u, specs) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	var n int64
	for _, u := range r.users {
		if userMatches(u, specs) {
			n++
		}
	}
	return n, nil
}

func userMatches(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email != s.Email {
				return false
			}
		case specification.ByGoogleId:
			if u.GoogleId == nil || *u.GoogleId != s.GoogleId {
				return false
			}
		}
	}
	return true
}

type fakeEmployeeRepository struct {
	employees  []*entity.Employee
	created    []*entity.Employee
	deletedIds []uuid.UUID
	createErr  error
}

func (r *fakeEmployeeRepository) Create(_ context.Context, employee *entity.Employee) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.employees = append(r.employees, employee)
	r.created = append(r.created, employee)
	return nil
}

func (r *fakeEmployeeRepository) Update(_ context.Context, employee *entity.Employee) error {
	for i, e := range r.employees {
		if e.Id == employee.Id {
			r.employees[i] = employee
		}
	}
	return nil
}

func (r *fakeEmployeeRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.deletedIds = append(r.deletedIds, id)
	return nil
}

func (r *fakeEmployeeRepository) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Employee, error) {
	for _, e := range r.employees {
		if employeeMatches(e, specs) {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeEmployeeRepository) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Employee, error) {
	var result []*entity.Employee
	for _, e := range r.employees {
		if employeeMatches(e, specs) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *fakeEmployeeRepository) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(context.Background(), specs...)
	return int64(len(all)), nil
}

func employeeMatches(e *entity.Employee, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if e.Id != s.ID {
				return false
			}
		case specification.ByEmployeeCode:
			if e.EmployeeCode != s.EmployeeCode {
				return false
			}
		case specification.BySubjectName:
			if e.SubjectName != s.SubjectName {
				return false
			}
		}
	}
	return true
}

type fakeAttendanceLogRepository struct {
	logs         []*entity.AttendanceLog
	created      []*entity.AttendanceLog
	findOneCalls int
}

func (r *fakeAttendanceLogRepository) Create(_ context.Context, log *entity.AttendanceLog) error {
	r.logs = append(r.logs, log)
	r.created = append(r.created, log)
	return nil
}

func (r *fakeAttendanceLogRepository) FindOne(_ context.Context, specs ...specification.Specification) (*entity.AttendanceLog, error) {
	r.findOneCalls++
	for _, l := range r.logs {
		if attendanceLogMatches(l, specs) {
			return l, nil
		}
	}
	return nil, nil
}

func (r *fakeAttendanceLogRepository) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.AttendanceLog, error) {
	var result []*entity.AttendanceLog
	for _, l := range r.logs {
		if attendanceLogMatches(l, specs) {
			result = append(result, l)
		}
	}
	return result, nil
}

func (r *fakeAttendanceLogRepository) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(context.Background(), specs...)
	return int64(len(all)), nil
}

func attendanceLogMatches(l *entity.AttendanceLog, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByEmployeeID:
			if l.EmployeeId != s.EmployeeID {
				return false
			}
		case specification.ByLogType:
			if l.LogType != s.LogType {
				return false
			}
		case specification.TimestampAfter:
			if l.Timestamp.Before(s.After) {
				return false
			}
		case specification.TimestampBetween:
			if l.Timestamp.Before(s.From) || !l.Timestamp.Before(s.To) {
				return false
			}
		}
	}
	return true
}

type fakeFaceImageRepository struct {
	images     []*entity.FaceImage
	created    []*entity.FaceImage
	deletedFor []uuid.UUID
	createErr  error
}

func (r *fakeFaceImageRepository) Create(_ context.Context, image *entity.FaceImage) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.images = append(r.images, image)
	r.created = append(r.created, image)
	return nil
}

func (r *fakeFaceImageRepository) DeleteAllByEmployeeId(_ context.Context, employeeId uuid.UUID) error {
	r.deletedFor = append(r.deletedFor, employeeId)
	return nil
}

func (r *fakeFaceImageRepository) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.FaceImage, error) {
	return r.images, nil
}

func (r *fakeFaceImageRepository) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.images)), nil
}

type fakeUnitOfWork struct {
	users       *fakeUserRepository
	employees   *fakeEmployeeRepository
	attendance  *fakeAttendanceLogRepository
	faceImages  *fakeFaceImageRepository
	beginCalls  int
	commitCalls int
	rollbacks   int
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		users:      &fakeUserRepository{},
		employees:  &fakeEmployeeRepository{},
		attendance: &fakeAttendanceLogRepository{},
		faceImages: &fakeFaceImageRepository{},
	}
}

func (u *fakeUnitOfWork) Begin(_ context.Context) error {
	u.beginCalls++
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	u.commitCalls++
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	u.rollbacks++
	return nil
}

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository { return u.users }
func (u *fakeUnitOfWork) EmployeeRepository() contract.EmployeeRepository {
	return u.employees
}
func (u *fakeUnitOfWork) AttendanceLogRepository() contract.AttendanceLogRepository {
	return u.attendance
}
func (u *fakeUnitOfWork) FaceImageRepository() contract.FaceImageRepository {
	return u.faceImages
}

type fakeRepositoryFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeRepositoryFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeMatcher struct {
	faces []recognition.DetectedFace
	err   error
	calls int
}

func (m *fakeMatcher) Recognize(_ context.Context, _ []byte) ([]recognition.DetectedFace, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.faces, nil
}

type fakeRegistry struct {
	result          *recognition.RegisterFaceResult
	registerErr     error
	registered      []string
	deletedSubjects []string
}

func (r *fakeRegistry) RegisterFace(_ context.Context, subject string, _ []byte) (*recognition.RegisterFaceResult, error) {
	r.registered = append(r.registered, subject)
	if r.registerErr != nil {
		return nil, r.registerErr
	}
	if r.result != nil {
		return r.result, nil
	}
	return &recognition.RegisterFaceResult{ImageId: "img-1", Subject: subject}, nil
}

func (r *fakeRegistry) DeleteSubject(_ context.Context, subject string) error {
	r.deletedSubjects = append(r.deletedSubjects, subject)
	return nil
}

type fakeArtifactSource struct {
	artifact *capture.Artifact
}

func (s *fakeArtifactSource) TakePendingArtifact() *capture.Artifact {
	a := s.artifact
	s.artifact = nil
	return a
}

type fakeMailer struct {
	sentTo []string
}

func (m *fakeMailer) SendEnrollmentConfirmation(toEmail, _, _ string) error {
	m.sentTo = append(m.sentTo, toEmail)
	return nil
}

type discardLogger struct{}

func (discardLogger) Debug(string, string, map[string]interface{}) {}
func (discardLogger) Info(string, string, map[string]interface{})  {}
func (discardLogger) Warn(string, string, map[string]interface{})  {}
func (discardLogger) Error(string, string, map[string]interface{}) {}
func (discardLogger) Sync() error                                  { return nil }

// imageDataURI wraps raw bytes as the data URI the HTTP API accepts.
func imageDataURI(raw []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)
}
