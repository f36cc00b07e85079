package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramabhadrarao/face-recognition/internal/dto"
	"github.com/ramabhadrarao/face-recognition/internal/entity"
)

func logAt(employeeId uuid.UUID, logType string, at time.Time) *entity.AttendanceLog {
	return &entity.AttendanceLog{
		Id:         uuid.New(),
		EmployeeId: employeeId,
		LogType:    logType,
		Timestamp:  at.UTC(),
	}
}

func TestSummarizeMonthFullDay(t *testing.T) {
	id := uuid.New()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	logs := []*entity.AttendanceLog{
		logAt(id, entity.LogTypeIn, day.Add(9*time.Hour)),
		logAt(id, entity.LogTypeOut, day.Add(13*time.Hour+30*time.Minute)),
	}

	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	days, hours := summarizeMonth(logs, time.UTC, now, 8)

	assert.Equal(t, 1.0, days)
	assert.Equal(t, 4.5, hours)
}

func TestSummarizeMonthCapsHoursAtWorkingDay(t *testing.T) {
	id := uuid.New()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	logs := []*entity.AttendanceLog{
		logAt(id, entity.LogTypeIn, day.Add(8*time.Hour)),
		logAt(id, entity.LogTypeOut, day.Add(19*time.Hour)),
	}

	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	days, hours := summarizeMonth(logs, time.UTC, now, 8)

	assert.Equal(t, 1.0, days)
	assert.Equal(t, 8.0, hours)
}

func TestSummarizeMonthUsesFirstInAndLastOut(t *testing.T) {
	id := uuid.New()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	logs := []*entity.AttendanceLog{
		logAt(id, entity.LogTypeIn, day.Add(9*time.Hour+30*time.Minute)),
		logAt(id, entity.LogTypeIn, day.Add(9*time.Hour)),
		logAt(id, entity.LogTypeOut, day.Add(12*time.Hour)),
		logAt(id, entity.LogTypeOut, day.Add(16*time.Hour)),
	}

	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	days, hours := summarizeMonth(logs, time.UTC, now, 8)

	assert.Equal(t, 1.0, days)
	assert.Equal(t, 7.0, hours)
}

func TestSummarizeMonthPastDayMissingOut(t *testing.T) {
	id := uuid.New()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	logs := []*entity.AttendanceLog{
		logAt(id, entity.LogTypeIn, day.Add(9*time.Hour)),
	}

	now := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	days, hours := summarizeMonth(logs, time.UTC, now, 8)

	assert.Equal(t, 0.5, days)
	assert.Equal(t, 4.0, hours)
}

func TestSummarizeMonthTodayStillClockedIn(t *testing.T) {
	id := uuid.New()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	logs := []*entity.AttendanceLog{
		logAt(id, entity.LogTypeIn, day.Add(9*time.Hour)),
	}

	now := day.Add(12 * time.Hour)
	days, hours := summarizeMonth(logs, time.UTC, now, 8)

	assert.Equal(t, 0.5, days)
	assert.Equal(t, 3.0, hours)
}

func TestSummarizeMonthTodayElapsedHoursAreCapped(t *testing.T) {
	id := uuid.New()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	logs := []*entity.AttendanceLog{
		logAt(id, entity.LogTypeIn, day.Add(30*time.Minute)),
	}

	now := day.Add(23 * time.Hour)
	days, hours := summarizeMonth(logs, time.UTC, now, 8)

	assert.Equal(t, 0.5, days)
	assert.Equal(t, 8.0, hours)
}

func TestSummarizeMonthIgnoresOutWithoutIn(t *testing.T) {
	id := uuid.New()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	logs := []*entity.AttendanceLog{
		logAt(id, entity.LogTypeOut, day.Add(17*time.Hour)),
	}

	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	days, hours := summarizeMonth(logs, time.UTC, now, 8)

	assert.Zero(t, days)
	assert.Zero(t, hours)
}

func TestSummarizeMonthAccumulatesAcrossDays(t *testing.T) {
	id := uuid.New()
	base := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	logs := []*entity.AttendanceLog{
		logAt(id, entity.LogTypeIn, base.Add(9*time.Hour)),
		logAt(id, entity.LogTypeOut, base.Add(17*time.Hour)),
		logAt(id, entity.LogTypeIn, base.Add(24*time.Hour+9*time.Hour)),
	}

	now := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	days, hours := summarizeMonth(logs, time.UTC, now, 8)

	assert.Equal(t, 1.5, days)
	assert.Equal(t, 12.0, hours)
}

func TestSummarizeMonthGroupsDaysInLocalTimezone(t *testing.T) {
	// 20:00 UTC and 04:00 UTC next day are the same IST calendar day
	// (01:30 and 09:30), so they form one IN/OUT pair.
	ist := time.FixedZone("IST", 5*3600+30*60)
	id := uuid.New()
	logs := []*entity.AttendanceLog{
		logAt(id, entity.LogTypeIn, time.Date(2026, 3, 9, 20, 0, 0, 0, time.UTC)),
		logAt(id, entity.LogTypeOut, time.Date(2026, 3, 10, 4, 0, 0, 0, time.UTC)),
	}

	now := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	days, hours := summarizeMonth(logs, ist, now, 8)

	assert.Equal(t, 1.0, days)
	assert.Equal(t, 8.0, hours)
}

func TestMonthlyReportComputesEarnedSalary(t *testing.T) {
	uow := newFakeUnitOfWork()
	employee := &entity.Employee{
		Id:           uuid.New(),
		EmployeeCode: "E001",
		FullName:     "Asha Rao",
		Salary:       26000,
		SubjectName:  "emp_E001",
	}
	uow.employees.employees = append(uow.employees.employees, employee)

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	uow.attendance.logs = append(uow.attendance.logs,
		logAt(employee.Id, entity.LogTypeIn, day.Add(9*time.Hour)),
		logAt(employee.Id, entity.LogTypeOut, day.Add(17*time.Hour)),
		// Outside the requested month, must not count.
		logAt(employee.Id, entity.LogTypeIn, time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)),
	)

	svc := NewReportService(&fakeRepositoryFactory{uow: uow}, time.UTC, 8, 26)

	resp, err := svc.MonthlyReport(context.Background(), &dto.MonthlyReportRequest{Year: 2026, Month: 3})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)

	row := resp.Rows[0]
	assert.Equal(t, "E001", row.EmployeeCode)
	assert.Equal(t, 1.0, row.DaysPresent)
	assert.Equal(t, 8.0, row.HoursWorked)
	assert.InDelta(t, 1000.0, row.SalaryEarned, 1e-9)
}
