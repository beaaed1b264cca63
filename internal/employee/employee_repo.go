package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByCode(ctx context.Context, employeeCode string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, employeeCode string) error
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Order("employee_code ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByCode(ctx context.Context, employeeCode string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Where("employee_code = ?", employeeCode).
		First(&e).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, employeeCode string) error {
	return r.db.WithContext(ctx).
		Where("employee_code = ?", employeeCode).
		Delete(&Employee{}).Error
}
