package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceOverride is the only persisted attendance input: a manually
// entered absent-day count plus an optional manual daily-deduction rate for
// one employee/period. One row per (employee, month, year), last write wins,
// no edit history.
type AttendanceOverride struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeCode string    `gorm:"type:varchar(30);not null;index:idx_overrides_employee_period,unique"`
	Month        int       `gorm:"type:int;not null;index:idx_overrides_employee_period,unique"`
	Year         int       `gorm:"type:int;not null;index:idx_overrides_employee_period,unique"`

	AbsentDays int `gorm:"type:int;not null;default:0"`

	// Nil means "use the fallback daily rate". A present value still goes
	// through the sanity bound before it is applied.
	DailyDeduction *float64 `gorm:"type:numeric(14,2)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (AttendanceOverride) TableName() string {
	return "attendance_overrides"
}
