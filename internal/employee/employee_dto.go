package employee

type CreateEmployeeRequest struct {
	EmployeeCode  string  `json:"employee_code" binding:"required,min=4,max=30"`
	FullName      string  `json:"full_name" binding:"required"`
	Email         string  `json:"email" binding:"omitempty,email"`
	MonthlySalary float64 `json:"monthly_salary" binding:"omitempty,gte=0"`
	JoinedAt      string  `json:"joined_at" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FullName      string  `json:"full_name" binding:"required"`
	Email         string  `json:"email" binding:"omitempty,email"`
	MonthlySalary float64 `json:"monthly_salary" binding:"omitempty,gte=0"`
	JoinedAt      string  `json:"joined_at" binding:"required"`
}

type EmployeeResponse struct {
	ID            string  `json:"id"`
	EmployeeCode  string  `json:"employee_code"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email,omitempty"`
	MonthlySalary float64 `json:"monthly_salary"`
	JoinedAt      string  `json:"joined_at"`
}
