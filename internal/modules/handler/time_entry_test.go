package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/harborline/stafftrack/internal/modules/model"
	"github.com/harborline/stafftrack/internal/modules/repo"
	"github.com/harborline/stafftrack/internal/modules/service"
	"github.com/harborline/stafftrack/internal/pkg/errs"
	"github.com/harborline/stafftrack/internal/pkg/policy"
)

// MockTimeEntryService is a mock implementation of service.TimeEntryService
type MockTimeEntryService struct {
	mock.Mock
}

func (m *MockTimeEntryService) Create(ctx context.Context, actor policy.Actor, e *model.DeliverableTimeEntry) (*service.CreateTimeEntryResult, error) {
	args := m.Called(ctx, actor, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CreateTimeEntryResult), args.Error(1)
}

func (m *MockTimeEntryService) Update(ctx context.Context, actor policy.Actor, e *model.DeliverableTimeEntry) error {
	args := m.Called(ctx, actor, e)
	return args.Error(0)
}

func (m *MockTimeEntryService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockTimeEntryService) Get(ctx context.Context, actor policy.Actor, id uuid.UUID) (*model.DeliverableTimeEntry, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeliverableTimeEntry), args.Error(1)
}

func (m *MockTimeEntryService) List(ctx context.Context, actor policy.Actor, f repo.TimeEntryFilter) ([]model.DeliverableTimeEntry, error) {
	args := m.Called(ctx, actor, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DeliverableTimeEntry), args.Error(1)
}

func setupTimeEntryRouter(svc service.TimeEntryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewTimeEntryHandler(svc)

	actor := policy.Actor{Authenticated: true, HasProfile: true, StaffID: uuid.New(), Role: policy.RoleManager}
	r.Use(func(c *gin.Context) { c.Set("actor", actor) })

	r.POST("/time-entries", h.CreateTimeEntry)
	r.GET("/time-entries/:time_entry_id", h.GetTimeEntry)
	return r
}

func timeEntryBody(t *testing.T) []byte {
	body, err := sonic.Marshal(map[string]any{
		"deliverable_id": uuid.New().String(),
		"entry_date":     "2024-03-05",
		"hours":          "4",
	})
	assert.NoError(t, err)
	return body
}

func TestTimeEntryHandler_CreateStatusCodes(t *testing.T) {
	stored := &model.DeliverableTimeEntry{
		ID:        uuid.New(),
		EntryDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Hours:     decimal.NewFromInt(4),
	}

	tests := []struct {
		name           string
		setup          func(*MockTimeEntryService)
		expectedStatus int
	}{
		{
			name: "fresh entry returns 201",
			setup: func(svc *MockTimeEntryService) {
				svc.On("Create", mock.Anything, mock.Anything, mock.Anything).
					Return(&service.CreateTimeEntryResult{Entry: stored, Created: true}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "idempotent replay returns 200",
			setup: func(svc *MockTimeEntryService) {
				svc.On("Create", mock.Anything, mock.Anything, mock.Anything).
					Return(&service.CreateTimeEntryResult{Entry: stored, Created: false}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "validation error returns 400",
			setup: func(svc *MockTimeEntryService) {
				svc.On("Create", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, errs.Validation("hours", "must be greater than zero"))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing deliverable returns 404",
			setup: func(svc *MockTimeEntryService) {
				svc.On("Create", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, errs.NotFound("deliverable"))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockTimeEntryService{}
			tt.setup(mockService)
			router := setupTimeEntryRouter(mockService)

			req := httptest.NewRequest(http.MethodPost, "/time-entries", bytes.NewReader(timeEntryBody(t)))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestTimeEntryHandler_CreateBadPayload(t *testing.T) {
	mockService := &MockTimeEntryService{}
	router := setupTimeEntryRouter(mockService)

	// Missing required deliverable_id fails binding before the service runs.
	req := httptest.NewRequest(http.MethodPost, "/time-entries", bytes.NewReader([]byte(`{"entry_date":"2024-03-05"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)

	// Malformed date.
	req = httptest.NewRequest(http.MethodPost, "/time-entries",
		bytes.NewReader([]byte(`{"deliverable_id":"`+uuid.New().String()+`","entry_date":"03/05/2024"}`)))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimeEntryHandler_GetInvalidID(t *testing.T) {
	mockService := &MockTimeEntryService{}
	router := setupTimeEntryRouter(mockService)

	req := httptest.NewRequest(http.MethodGet, "/time-entries/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}
