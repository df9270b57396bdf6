package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-uerp/internal/leave"
	"go-uerp/internal/shared/approval"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	createFn  func(ctx context.Context, campusID, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	getPageFn func(ctx context.Context, campusID string, page, limit int) ([]leave.LeaveResponse, int64, error)
	getByIDFn func(ctx context.Context, campusID, id string) (leave.LeaveResponse, error)
	approveFn func(ctx context.Context, campusID, actorID, id string, remarks string) (leave.LeaveResponse, error)
	rejectFn  func(ctx context.Context, campusID, actorID, id, rejectionReason string) (leave.LeaveResponse, error)
	cancelFn  func(ctx context.Context, campusID, actorID, id string) (leave.LeaveResponse, error)
	deleteFn  func(ctx context.Context, campusID, id string) error
}

func (f *fakeLeaveService) Create(ctx context.Context, campusID, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.createFn(ctx, campusID, actorID, req)
}
func (f *fakeLeaveService) GetPage(ctx context.Context, campusID string, page, limit int) ([]leave.LeaveResponse, int64, error) {
	return f.getPageFn(ctx, campusID, page, limit)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, campusID, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, campusID, id)
}
func (f *fakeLeaveService) Approve(ctx context.Context, campusID, actorID, id string, remarks string) (leave.LeaveResponse, error) {
	return f.approveFn(ctx, campusID, actorID, id, remarks)
}
func (f *fakeLeaveService) Reject(ctx context.Context, campusID, actorID, id, rejectionReason string) (leave.LeaveResponse, error) {
	return f.rejectFn(ctx, campusID, actorID, id, rejectionReason)
}
func (f *fakeLeaveService) Cancel(ctx context.Context, campusID, actorID, id string) (leave.LeaveResponse, error) {
	return f.cancelFn(ctx, campusID, actorID, id)
}
func (f *fakeLeaveService) Delete(ctx context.Context, campusID, id string) error {
	return f.deleteFn(ctx, campusID, id)
}

func TestLeaveHandler_Create(t *testing.T) {
	t.Run("success uses user_id fallback actor", func(t *testing.T) {
		campusID := uuid.New().String()
		actorID := uuid.New().String()
		employeeID := uuid.New().String()

		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, cid, aid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, campusID, cid)
				assert.Equal(t, actorID, aid)
				assert.Equal(t, employeeID, req.EmployeeID)
				return leave.LeaveResponse{
					ID:         uuid.New().String(),
					CampusID:   cid,
					EmployeeID: req.EmployeeID,
					LeaveType:  req.LeaveType,
					StartDate:  req.StartDate,
					EndDate:    req.EndDate,
					TotalDays:  2,
					Status:     approval.StatusPending,
					CreatedBy:  aid,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + employeeID + `","leave_type":"ANNUAL","start_date":"2026-09-10","end_date":"2026-09-11","reason":"Family matters"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/hr/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("campus_id", campusID)
		c.Set("user_id", actorID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Success)
		var got leave.LeaveResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Equal(t, employeeID, got.EmployeeID)
		assert.Equal(t, approval.StatusPending, got.Status)
	})

	t.Run("negative invalid body", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/hr/leaves", strings.NewReader(`{"leave_type":"ANNUAL"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("campus_id", uuid.New().String())
		c.Set("user_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Success)
		assert.NotNil(t, env.Error)
	})
}

func TestLeaveHandler_Approve(t *testing.T) {
	t.Run("success passes remarks through", func(t *testing.T) {
		campusID := uuid.New().String()
		actorID := uuid.New().String()
		id := uuid.New().String()

		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, cid, aid, targetID, remarks string) (leave.LeaveResponse, error) {
				assert.Equal(t, campusID, cid)
				assert.Equal(t, actorID, aid)
				assert.Equal(t, id, targetID)
				assert.Equal(t, "ok", remarks)
				r := remarks
				return leave.LeaveResponse{
					ID:      targetID,
					Status:  approval.StatusApproved,
					Remarks: &r,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/hr/leaves/"+id+"/approve", strings.NewReader(`{"remarks":"ok"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("campus_id", campusID)
		c.Set("employee_id", actorID)

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Success)
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, approval.StatusApproved, got.Status)
	})

	t.Run("negative invalid transition maps to 422", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, cid, aid, targetID, remarks string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, approval.ErrInvalidTransition
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/hr/leaves/x/approve", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("campus_id", uuid.New().String())
		c.Set("employee_id", uuid.New().String())

		h.Approve(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Success)
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}

func TestLeaveHandler_Reject(t *testing.T) {
	t.Run("negative missing rejection_reason", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/hr/leaves/x/reject", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("campus_id", uuid.New().String())
		c.Set("employee_id", uuid.New().String())

		h.Reject(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
