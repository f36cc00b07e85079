package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramabhadrarao/face-recognition/internal/entity"
	"github.com/ramabhadrarao/face-recognition/internal/repository/specification"
	"github.com/ramabhadrarao/face-recognition/internal/repository/unitofwork"
	"github.com/ramabhadrarao/face-recognition/pkg/database"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.EmployeeRepository())
	assert.NotNil(t, uow.AttendanceLogRepository())
	assert.NotNil(t, uow.FaceImageRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Employee Repository", func(t *testing.T) {
		count, err := uow.EmployeeRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Employee count: %d", count)
	})

	t.Run("Check Attendance Log Repository", func(t *testing.T) {
		count, err := uow.AttendanceLogRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("AttendanceLog count: %d", count)
	})

	t.Run("Transactional Enrollment Round Trip", func(t *testing.T) {
		ctx := context.Background()
		txUow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, txUow.Begin(ctx))
		defer txUow.Rollback()

		code := "itest-" + uuid.New().String()[:8]
		employee := &entity.Employee{
			Id:           uuid.New(),
			EmployeeCode: code,
			FullName:     "Integration Test Employee",
			SubjectName:  "emp_" + code,
			Salary:       10000,
			CreatedAt:    time.Now(),
		}
		require.NoError(t, txUow.EmployeeRepository().Create(ctx, employee))

		faceImage := &entity.FaceImage{
			Id:         uuid.New(),
			EmployeeId: employee.Id,
			ImageId:    "itest-image",
			Width:      1280,
			Height:     720,
			ZoomFactor: 1.5,
			CreatedAt:  time.Now(),
		}
		require.NoError(t, txUow.FaceImageRepository().Create(ctx, faceImage))

		found, err := txUow.EmployeeRepository().FindOne(ctx,
			specification.ByEmployeeCode{EmployeeCode: code},
		)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, employee.Id, found.Id)
		assert.Equal(t, "emp_"+code, found.SubjectName)

		clockLog := &entity.AttendanceLog{
			Id:         uuid.New(),
			EmployeeId: employee.Id,
			LogType:    entity.LogTypeIn,
			Similarity: 0.93,
			Timestamp:  time.Now().UTC(),
			Details:    map[string]interface{}{"subject": found.SubjectName},
			CreatedAt:  time.Now(),
		}
		require.NoError(t, txUow.AttendanceLogRepository().Create(ctx, clockLog))

		recent, err := txUow.AttendanceLogRepository().FindOne(ctx,
			specification.ByEmployeeID{EmployeeID: employee.Id},
			specification.ByLogType{LogType: entity.LogTypeIn},
			specification.TimestampAfter{After: time.Now().UTC().Add(-time.Minute)},
		)
		require.NoError(t, err)
		require.NotNil(t, recent)
		assert.Equal(t, "emp_"+code, recent.Details["subject"])

		// Rollback via defer leaves no test rows behind.
	})
}
