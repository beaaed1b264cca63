package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeCode string    `gorm:"type:varchar(30);not null;uniqueIndex"`
	FullName     string    `gorm:"type:varchar(120);not null"`
	Email        string    `gorm:"type:varchar(120);uniqueIndex"`

	// Monthly salary in currency units. Zero means "not set yet";
	// the reconciliation engine treats it as no fallback rate.
	MonthlySalary float64   `gorm:"type:numeric(14,2);not null;default:0"`
	JoinedAt      time.Time `gorm:"type:date;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
