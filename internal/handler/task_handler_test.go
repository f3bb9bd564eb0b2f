package handler

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "uptask/internal/errors"
	"uptask/internal/model"
	"uptask/internal/service"
)

func newTaskServer(svc *MockTaskService) *echo.Echo {
	e := newTestEcho()
	h := NewTaskHandler(svc)
	g := e.Group("/api/tareas", asCaller(testCaller))
	g.POST("", h.CreateTask)
	g.GET("/:id", h.GetTask)
	g.PUT("/:id", h.UpdateTask)
	g.DELETE("/:id", h.DeleteTask)
	g.POST("/estado/:id", h.ToggleTaskState)
	return e
}

func TestTaskHandler_MalformedIDsNeverReachTheService(t *testing.T) {
	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/tareas/1", ""},
		{http.MethodPut, "/api/tareas/1", `{"nombre":"x"}`},
		{http.MethodDelete, "/api/tareas/1", ""},
		{http.MethodPost, "/api/tareas/estado/1", ""},
		{http.MethodPost, "/api/tareas", `{"nombre":"x","descripcion":"y","prioridad":"Alta","proyecto":"1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			svc := new(MockTaskService)
			rec := doJSON(newTaskServer(svc), tt.method, tt.path, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, svc.Calls)
		})
	}
}

func TestTaskHandler_CreateTask(t *testing.T) {
	svc := new(MockTaskService)
	svc.On("Create", mock.Anything, callerID, mock.MatchedBy(func(in service.TaskInput) bool {
		return in.Proyecto == projectID && in.Prioridad == model.PriorityHigh && in.FechaEntrega != nil
	})).Return(&model.Task{ID: taskID, Proyecto: projectID, Prioridad: model.PriorityHigh}, nil)

	rec := doJSON(newTaskServer(svc), http.MethodPost, "/api/tareas",
		`{"nombre":"Maquetar","descripcion":"Home","prioridad":"Alta","fechaEntrega":"2025-02-01T10:00:00Z","proyecto":"`+projectID+`"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"prioridad":"Alta"`)
	svc.AssertExpectations(t)
}

func TestTaskHandler_CreateTaskRejectsUnknownPriority(t *testing.T) {
	svc := new(MockTaskService)

	rec := doJSON(newTaskServer(svc), http.MethodPost, "/api/tareas",
		`{"nombre":"Maquetar","descripcion":"Home","prioridad":"Urgente","proyecto":"`+projectID+`"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.Calls)
}

func TestTaskHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden},
		{"missing task", apperrors.ErrTaskNotFound, http.StatusNotFound},
		{"missing project", apperrors.ErrProjectNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockTaskService)
			svc.On("Get", mock.Anything, callerID, taskID).Return(nil, tt.err)
			svc.On("Delete", mock.Anything, callerID, taskID).Return(tt.err)
			e := newTaskServer(svc)

			assert.Equal(t, tt.wantStatus, doJSON(e, http.MethodGet, "/api/tareas/"+taskID, "").Code)
			assert.Equal(t, tt.wantStatus, doJSON(e, http.MethodDelete, "/api/tareas/"+taskID, "").Code)
		})
	}
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	svc := new(MockTaskService)
	svc.On("Update", mock.Anything, callerID, taskID, service.TaskInput{Prioridad: model.PriorityLow}).
		Return(&model.Task{ID: taskID, Prioridad: model.PriorityLow}, nil)

	rec := doJSON(newTaskServer(svc), http.MethodPut, "/api/tareas/"+taskID, `{"prioridad":"Baja"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestTaskHandler_ToggleTaskState(t *testing.T) {
	svc := new(MockTaskService)
	svc.On("ToggleState", mock.Anything, callerID, taskID).Return(&model.Task{ID: taskID, Estado: true}, nil)

	rec := doJSON(newTaskServer(svc), http.MethodPost, "/api/tareas/estado/"+taskID, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"estado":true`)
}
