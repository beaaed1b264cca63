package leave_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hr-portal/internal/leave"
	leaveerrors "hr-portal/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	createFn        func(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	getAllFn        func(ctx context.Context) ([]leave.LeaveResponse, error)
	getByEmployeeFn func(ctx context.Context, employeeCode string) ([]leave.LeaveResponse, error)
	getByIDFn       func(ctx context.Context, id string) (leave.LeaveResponse, error)
	updateStatusFn  func(ctx context.Context, id string, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error)
	getQuotaFn      func(ctx context.Context, employeeCode string, asOf time.Time) (leave.LeaveQuotaResponse, error)
}

func (f *fakeService) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeService) GetAll(ctx context.Context) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx)
}
func (f *fakeService) GetByEmployee(ctx context.Context, employeeCode string) ([]leave.LeaveResponse, error) {
	return f.getByEmployeeFn(ctx, employeeCode)
}
func (f *fakeService) GetByID(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeService) UpdateStatus(ctx context.Context, id string, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error) {
	return f.updateStatusFn(ctx, id, req)
}
func (f *fakeService) GetQuota(ctx context.Context, employeeCode string, asOf time.Time) (leave.LeaveQuotaResponse, error) {
	return f.getQuotaFn(ctx, employeeCode, asOf)
}

func TestHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		createFn: func(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
			assert.Equal(t, "EMP-001", req.EmployeeCode)
			assert.Equal(t, "CASUAL", req.LeaveType)
			return leave.LeaveResponse{
				ID:           uuid.New().String(),
				EmployeeCode: req.EmployeeCode,
				Status:       "PENDING",
			}, nil
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"employee_code":"EMP-001","leave_type":"CASUAL","start_date":"2025-03-10","end_date":"2025-03-12","reason":"family event"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"PENDING"`)
}

func TestHandler_Create_UnknownType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := leave.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"employee_code":"EMP-001","leave_type":"SABBATICAL","start_date":"2025-03-10","end_date":"2025-03-12","reason":"x"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
}

func TestHandler_GetAll_Paginates(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getAllFn: func(ctx context.Context) ([]leave.LeaveResponse, error) {
			return []leave.LeaveResponse{
				{ID: "a"}, {ID: "b"}, {ID: "c"},
			}, nil
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/leaves?page=2&page_size=2", nil)
	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"meta"`)
	assert.Contains(t, w.Body.String(), `"id":"c"`)
	assert.NotContains(t, w.Body.String(), `"id":"a"`)
}

func TestHandler_UpdateStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := uuid.New().String()

	svc := &fakeService{
		updateStatusFn: func(ctx context.Context, leaveID string, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error) {
			assert.Equal(t, id, leaveID)
			assert.Equal(t, "APPROVED", req.Status)
			return leave.LeaveResponse{ID: leaveID, Status: req.Status}, nil
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: id}}
	c.Request = httptest.NewRequest(http.MethodPatch, "/leaves/"+id+"/status", strings.NewReader(`{"status":"APPROVED"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.UpdateStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"APPROVED"`)
}

func TestHandler_UpdateStatus_InvalidTransition(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		updateStatusFn: func(ctx context.Context, id string, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest(http.MethodPatch, "/leaves/x/status", strings.NewReader(`{"status":"REJECTED"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.UpdateStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
}

func TestHandler_GetQuota(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getQuotaFn: func(ctx context.Context, code string, asOf time.Time) (leave.LeaveQuotaResponse, error) {
			assert.Equal(t, "EMP-001", code)
			assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), asOf)
			return leave.LeaveQuotaResponse{
				EmployeeCode: code,
				AsOf:         "2025-03-15",
				Casual:       leave.QuotaUsageResponse{Allowance: 2, Used: 3, Remaining: 0},
			}, nil
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "employee_code", Value: "EMP-001"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/leaves/quota/EMP-001?as_of=2025-03-15", nil)
	h.GetQuota(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"remaining":0`)
}

func TestHandler_GetQuota_BadAsOf(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := leave.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "employee_code", Value: "EMP-001"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/leaves/quota/EMP-001?as_of=15-03-2025", nil)
	h.GetQuota(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
