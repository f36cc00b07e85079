package service

import (
	"context"
	"time"

	"github.com/ramabhadrarao/face-recognition/internal/dto"
	"github.com/ramabhadrarao/face-recognition/internal/entity"
	"github.com/ramabhadrarao/face-recognition/internal/repository/specification"
	"github.com/ramabhadrarao/face-recognition/internal/repository/unitofwork"
)

type IReportService interface {
	MonthlyReport(ctx context.Context, req *dto.MonthlyReportRequest) (*dto.MonthlyReportResponse, error)
}

type reportService struct {
	uowFactory          unitofwork.RepositoryFactory
	location            *time.Location
	workingHoursPerDay  float64
	workingDaysPerMonth float64
}

func NewReportService(
	uowFactory unitofwork.RepositoryFactory,
	location *time.Location,
	workingHoursPerDay float64,
	workingDaysPerMonth float64,
) IReportService {
	return &reportService{
		uowFactory:          uowFactory,
		location:            location,
		workingHoursPerDay:  workingHoursPerDay,
		workingDaysPerMonth: workingDaysPerMonth,
	}
}

func (s *reportService) MonthlyReport(ctx context.Context, req *dto.MonthlyReportRequest) (*dto.MonthlyReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Month boundaries in the configured timezone, queried in UTC.
	from := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, s.location)
	to := from.AddDate(0, 1, 0)

	employees, err := uow.EmployeeRepository().FindAll(ctx, specification.OrderBy{Field: "employee_code"})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rows := make([]*dto.EmployeeMonthlyReport, 0, len(employees))
	for _, employee := range employees {
		logs, err := uow.AttendanceLogRepository().FindAll(ctx,
			specification.ByEmployeeID{EmployeeID: employee.Id},
			specification.TimestampBetween{From: from.UTC(), To: to.UTC()},
			specification.OrderBy{Field: "timestamp"},
		)
		if err != nil {
			return nil, err
		}

		days, hours := summarizeMonth(logs, s.location, now, s.workingHoursPerDay)

		earned := 0.0
		if s.workingDaysPerMonth > 0 {
			earned = employee.Salary / s.workingDaysPerMonth * days
		}

		rows = append(rows, &dto.EmployeeMonthlyReport{
			EmployeeId:   employee.Id,
			EmployeeCode: employee.EmployeeCode,
			FullName:     employee.FullName,
			Salary:       employee.Salary,
			DaysPresent:  days,
			HoursWorked:  hours,
			SalaryEarned: earned,
		})
	}

	return &dto.MonthlyReportResponse{
		Year:  req.Year,
		Month: req.Month,
		Rows:  rows,
	}, nil
}

// summarizeMonth folds a month of IN/OUT logs into worked days and
// hours, evaluated per calendar day in the given timezone:
//
//   - a day with both IN and OUT counts as one full day, hours capped
//     at the daily working hours
//   - a past day with IN but no OUT counts as half a day
//   - today with IN but no OUT counts as half a day plus the hours
//     elapsed so far, capped at the daily working hours
func summarizeMonth(logs []*entity.AttendanceLog, loc *time.Location, now time.Time, hoursPerDay float64) (days float64, hours float64) {
	type daySpan struct {
		firstIn *time.Time
		lastOut *time.Time
	}

	spans := make(map[string]*daySpan)
	for _, log := range logs {
		local := log.Timestamp.In(loc)
		key := local.Format("2006-01-02")

		span, ok := spans[key]
		if !ok {
			span = &daySpan{}
			spans[key] = span
		}

		switch log.LogType {
		case entity.LogTypeIn:
			if span.firstIn == nil || local.Before(*span.firstIn) {
				t := local
				span.firstIn = &t
			}
		case entity.LogTypeOut:
			if span.lastOut == nil || local.After(*span.lastOut) {
				t := local
				span.lastOut = &t
			}
		}
	}

	today := now.In(loc).Format("2006-01-02")
	for key, span := range spans {
		switch {
		case span.firstIn != nil && span.lastOut != nil:
			worked := span.lastOut.Sub(*span.firstIn).Hours()
			if worked < 0 {
				worked = 0
			}
			if worked > hoursPerDay {
				worked = hoursPerDay
			}
			days++
			hours += worked

		case span.firstIn != nil && key == today:
			worked := now.In(loc).Sub(*span.firstIn).Hours()
			if worked < 0 {
				worked = 0
			}
			if worked > hoursPerDay {
				worked = hoursPerDay
			}
			days += 0.5
			hours += worked

		case span.firstIn != nil:
			days += 0.5
			hours += hoursPerDay / 2
		}
	}
	return days, hours
}
