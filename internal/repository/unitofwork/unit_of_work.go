package unitofwork

import (
	"context"

	"github.com/ramabhadrarao/face-recognition/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	EmployeeRepository() contract.EmployeeRepository
	AttendanceLogRepository() contract.AttendanceLogRepository
	FaceImageRepository() contract.FaceImageRepository
}
