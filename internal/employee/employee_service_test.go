package employee

import (
	"context"
	"database/sql"
	"testing"

	employeeerrors "hr-portal/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn     func(tx *sql.Tx) Repository
	createFn     func(ctx context.Context, e *Employee) error
	findAllFn    func(ctx context.Context) ([]Employee, error)
	findByCodeFn func(ctx context.Context, employeeCode string) (*Employee, error)
	updateFn     func(ctx context.Context, e *Employee) error
	deleteFn     func(ctx context.Context, employeeCode string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository          { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, e *Employee) error { return f.createFn(ctx, e) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]Employee, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) FindByCode(ctx context.Context, employeeCode string) (*Employee, error) {
	return f.findByCodeFn(ctx, employeeCode)
}
func (f *fakeRepo) Update(ctx context.Context, e *Employee) error { return f.updateFn(ctx, e) }
func (f *fakeRepo) Delete(ctx context.Context, employeeCode string) error {
	return f.deleteFn(ctx, employeeCode)
}

func TestService_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var saved *Employee
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, e *Employee) error { saved = e; return nil }

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), CreateEmployeeRequest{
		EmployeeCode:  "EMP-001",
		FullName:      "Ayesha Khan",
		Email:         "ayesha@example.com",
		MonthlySalary: 66000,
		JoinedAt:      "2024-01-15",
	})
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, "EMP-001", saved.EmployeeCode)
	assert.Equal(t, 66000.0, saved.MonthlySalary)

	assert.Equal(t, "EMP-001", resp.EmployeeCode)
	assert.Equal(t, "2024-01-15", resp.JoinedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_Validation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	svc := NewService(db, repo)
	ctx := context.Background()

	t.Run("bad join date", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.Create(ctx, CreateEmployeeRequest{
			EmployeeCode: "EMP-001", FullName: "X", JoinedAt: "15/01/2024",
		})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidJoinDate)
	})

	t.Run("negative salary", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.Create(ctx, CreateEmployeeRequest{
			EmployeeCode: "EMP-001", FullName: "X", MonthlySalary: -1, JoinedAt: "2024-01-15",
		})
		assert.ErrorIs(t, err, employeeerrors.ErrNegativeSalary)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_DuplicateCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, e *Employee) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "idx_employees_employee_code"}
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Create(context.Background(), CreateEmployeeRequest{
		EmployeeCode: "EMP-001", FullName: "X", JoinedAt: "2024-01-15",
	})
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeCodeTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetByCode_NotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeRepo{
		findByCodeFn: func(ctx context.Context, code string) (*Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(db, repo)

	_, err = svc.GetByCode(context.Background(), "GHOST")
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestService_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	existing := Employee{EmployeeCode: "EMP-001", FullName: "Old Name", MonthlySalary: 50000}

	var updated *Employee
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByCodeFn = func(ctx context.Context, code string) (*Employee, error) {
		e := existing
		return &e, nil
	}
	repo.updateFn = func(ctx context.Context, e *Employee) error { updated = e; return nil }

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Update(context.Background(), "EMP-001", UpdateEmployeeRequest{
		FullName:      "New Name",
		MonthlySalary: 72000,
		JoinedAt:      "2024-01-15",
	})
	require.NoError(t, err)

	require.NotNil(t, updated)
	assert.Equal(t, "New Name", updated.FullName)
	assert.Equal(t, 72000.0, updated.MonthlySalary)
	assert.Equal(t, 72000.0, resp.MonthlySalary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByCodeFn = func(ctx context.Context, code string) (*Employee, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	err = svc.Delete(context.Background(), "GHOST")
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
