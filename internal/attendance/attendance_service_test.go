package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	attendanceerrors "hr-portal/internal/attendance/errors"
	"hr-portal/internal/employee"
	"hr-portal/internal/events"
	"hr-portal/internal/leave"
	"hr-portal/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                  func(tx *sql.Tx) Repository
	createFn                  func(ctx context.Context, o *AttendanceOverride) error
	findByEmployeeAndPeriodFn func(ctx context.Context, employeeCode string, month, year int) (*AttendanceOverride, error)
	findAllByPeriodFn         func(ctx context.Context, month, year int) ([]AttendanceOverride, error)
	updateFn                  func(ctx context.Context, o *AttendanceOverride) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, o *AttendanceOverride) error {
	return f.createFn(ctx, o)
}
func (f *fakeRepo) FindByEmployeeAndPeriod(ctx context.Context, employeeCode string, month, year int) (*AttendanceOverride, error) {
	return f.findByEmployeeAndPeriodFn(ctx, employeeCode, month, year)
}
func (f *fakeRepo) FindAllByPeriod(ctx context.Context, month, year int) ([]AttendanceOverride, error) {
	return f.findAllByPeriodFn(ctx, month, year)
}
func (f *fakeRepo) Update(ctx context.Context, o *AttendanceOverride) error {
	return f.updateFn(ctx, o)
}

type fakeEmployeeRepo struct {
	findAllFn    func(ctx context.Context) ([]employee.Employee, error)
	findByCodeFn func(ctx context.Context, employeeCode string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository             { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return f.findAllFn(ctx)
}
func (f *fakeEmployeeRepo) FindByCode(ctx context.Context, employeeCode string) (*employee.Employee, error) {
	return f.findByCodeFn(ctx, employeeCode)
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(ctx context.Context, employeeCode string) error  { return nil }

type fakeLeaveRepo struct {
	findAllFn        func(ctx context.Context) ([]leave.Leave, error)
	findByEmployeeFn func(ctx context.Context, employeeCode string) ([]leave.Leave, error)
}

func (f *fakeLeaveRepo) WithTx(tx *sql.Tx) leave.Repository          { return f }
func (f *fakeLeaveRepo) Create(ctx context.Context, l *leave.Leave) error { return nil }
func (f *fakeLeaveRepo) FindAll(ctx context.Context) ([]leave.Leave, error) {
	return f.findAllFn(ctx)
}
func (f *fakeLeaveRepo) FindByEmployee(ctx context.Context, employeeCode string) ([]leave.Leave, error) {
	return f.findByEmployeeFn(ctx, employeeCode)
}
func (f *fakeLeaveRepo) FindByID(ctx context.Context, id string) (*leave.Leave, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeLeaveRepo) Update(ctx context.Context, l *leave.Leave) error { return nil }

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, e kafka.OutboxEvent) error {
	f.created = append(f.created, e)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func TestService_Upsert_CreatesOverride(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	emp := testEmployee("EMP-001", 66000)

	var saved *AttendanceOverride
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByEmployeeAndPeriodFn = func(ctx context.Context, code string, month, year int) (*AttendanceOverride, error) {
		return nil, gorm.ErrRecordNotFound
	}
	repo.createFn = func(ctx context.Context, o *AttendanceOverride) error {
		saved = o
		return nil
	}

	empRepo := &fakeEmployeeRepo{
		findByCodeFn: func(ctx context.Context, code string) (*employee.Employee, error) {
			assert.Equal(t, "EMP-001", code)
			return &emp, nil
		},
	}
	leaveRepo := &fakeLeaveRepo{
		findByEmployeeFn: func(ctx context.Context, code string) ([]leave.Leave, error) {
			return nil, nil
		},
	}
	outbox := &fakeOutbox{}

	svc := NewServiceWithOutbox(db, repo, empRepo, leaveRepo, outbox)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Upsert(ctx, UpsertAttendanceRequest{
		EmployeeCode: "EMP-001",
		Month:        3,
		Year:         2025,
		AbsentDays:   2,
	})
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, 2, saved.AbsentDays)
	assert.Nil(t, saved.DailyDeduction)

	assert.Equal(t, 2, resp.UnapprovedAbsenceDays)
	assert.Equal(t, 6000.0, resp.TotalDeduction)
	assert.Equal(t, 60000.0, resp.FinalSalary)
	assert.Equal(t, emp.FullName, resp.EmployeeName)

	require.Len(t, outbox.created, 1)
	assert.Equal(t, events.AttendanceSummaryRecomputedTopic, outbox.created[0].Topic)
	var event events.AttendanceSummaryRecomputedEvent
	require.NoError(t, json.Unmarshal(outbox.created[0].Payload, &event))
	assert.Equal(t, "EMP-001", event.EmployeeCode)
	assert.Equal(t, 60000.0, event.FinalSalary)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Upsert_ReplacesExistingOverride(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	emp := testEmployee("EMP-001", 44000)
	oldRate := 1500.0
	existing := AttendanceOverride{
		EmployeeCode:   "EMP-001",
		Month:          3,
		Year:           2025,
		AbsentDays:     9,
		DailyDeduction: &oldRate,
	}

	var updated *AttendanceOverride
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByEmployeeAndPeriodFn = func(ctx context.Context, code string, month, year int) (*AttendanceOverride, error) {
		o := existing
		return &o, nil
	}
	repo.updateFn = func(ctx context.Context, o *AttendanceOverride) error {
		updated = o
		return nil
	}

	empRepo := &fakeEmployeeRepo{
		findByCodeFn: func(ctx context.Context, code string) (*employee.Employee, error) { return &emp, nil },
	}
	leaveRepo := &fakeLeaveRepo{
		findByEmployeeFn: func(ctx context.Context, code string) ([]leave.Leave, error) { return nil, nil },
	}

	svc := NewService(db, repo, empRepo, leaveRepo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Upsert(ctx, UpsertAttendanceRequest{
		EmployeeCode: "EMP-001",
		Month:        3,
		Year:         2025,
		AbsentDays:   1,
	})
	require.NoError(t, err)

	// Whole-record replace: the old manual rate does not survive.
	require.NotNil(t, updated)
	assert.Equal(t, 1, updated.AbsentDays)
	assert.Nil(t, updated.DailyDeduction)
	assert.Equal(t, 2000.0, resp.EffectiveDailyDeduction)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Upsert_Validation(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeEmployeeRepo{}, &fakeLeaveRepo{})
	ctx := context.Background()

	_, err = svc.Upsert(ctx, UpsertAttendanceRequest{EmployeeCode: "EMP-001", Month: 13, Year: 2025})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidPeriod)

	_, err = svc.Upsert(ctx, UpsertAttendanceRequest{EmployeeCode: "EMP-001", Month: 3, Year: 2025, AbsentDays: -1})
	assert.ErrorIs(t, err, attendanceerrors.ErrNegativeAbsentDays)

	dd := -10.0
	_, err = svc.Upsert(ctx, UpsertAttendanceRequest{EmployeeCode: "EMP-001", Month: 3, Year: 2025, DailyDeduction: &dd})
	assert.ErrorIs(t, err, attendanceerrors.ErrNegativeDailyDeduction)
}

func TestService_Upsert_UnknownEmployee(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	empRepo := &fakeEmployeeRepo{
		findByCodeFn: func(ctx context.Context, code string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(db, &fakeRepo{}, empRepo, &fakeLeaveRepo{})

	_, err = svc.Upsert(context.Background(), UpsertAttendanceRequest{EmployeeCode: "GHOST", Month: 3, Year: 2025})
	assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
}

func TestService_GetSummary_MissingOverride(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	emp := testEmployee("EMP-001", 66000)
	repo := &fakeRepo{
		findByEmployeeAndPeriodFn: func(ctx context.Context, code string, month, year int) (*AttendanceOverride, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	empRepo := &fakeEmployeeRepo{
		findByCodeFn: func(ctx context.Context, code string) (*employee.Employee, error) { return &emp, nil },
	}
	leaveRepo := &fakeLeaveRepo{
		findByEmployeeFn: func(ctx context.Context, code string) ([]leave.Leave, error) { return nil, nil },
	}

	svc := NewService(db, repo, empRepo, leaveRepo)

	resp, err := svc.GetSummary(context.Background(), "EMP-001", 3, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.AbsentDays)
	assert.Equal(t, 66000.0, resp.FinalSalary)
}

func TestService_GetAllSummaries(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	roster := []employee.Employee{
		testEmployee("EMP-001", 66000),
		testEmployee("EMP-002", 44000),
	}
	repo := &fakeRepo{
		findAllByPeriodFn: func(ctx context.Context, month, year int) ([]AttendanceOverride, error) {
			return []AttendanceOverride{
				{EmployeeCode: "EMP-001", Month: month, Year: year, AbsentDays: 2},
				{EmployeeCode: "EMP-002", Month: month, Year: year, AbsentDays: -4},
			}, nil
		},
	}
	empRepo := &fakeEmployeeRepo{
		findAllFn: func(ctx context.Context) ([]employee.Employee, error) { return roster, nil },
	}
	leaveRepo := &fakeLeaveRepo{
		findAllFn: func(ctx context.Context) ([]leave.Leave, error) { return nil, nil },
	}

	svc := NewService(db, repo, empRepo, leaveRepo)

	items, err := svc.GetAllSummaries(context.Background(), 3, 2025)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "EMP-001", items[0].EmployeeCode)
	require.NotNil(t, items[0].Summary)
	assert.Equal(t, 60000.0, items[0].Summary.FinalSalary)
	assert.Empty(t, items[0].Error)

	assert.Equal(t, "EMP-002", items[1].EmployeeCode)
	assert.Nil(t, items[1].Summary)
	assert.NotEmpty(t, items[1].Error)
}
