package attendance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, o *AttendanceOverride) error
	FindByEmployeeAndPeriod(ctx context.Context, employeeCode string, month, year int) (*AttendanceOverride, error)
	FindAllByPeriod(ctx context.Context, month, year int) ([]AttendanceOverride, error)
	Update(ctx context.Context, o *AttendanceOverride) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, o *AttendanceOverride) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repository) FindByEmployeeAndPeriod(ctx context.Context, employeeCode string, month, year int) (*AttendanceOverride, error) {
	var o AttendanceOverride
	err := r.db.WithContext(ctx).
		Where("employee_code = ?", employeeCode).
		Where("month = ?", month).
		Where("year = ?", year).
		First(&o).Error
	return &o, err
}

func (r *repository) FindAllByPeriod(ctx context.Context, month, year int) ([]AttendanceOverride, error) {
	var rows []AttendanceOverride
	err := r.db.WithContext(ctx).
		Where("month = ?", month).
		Where("year = ?", year).
		Order("employee_code ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, o *AttendanceOverride) error {
	return r.db.WithContext(ctx).Save(o).Error
}
