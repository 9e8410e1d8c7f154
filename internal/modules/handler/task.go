package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborline/stafftrack/internal/modules/model"
	"github.com/harborline/stafftrack/internal/modules/repo"
	"github.com/harborline/stafftrack/internal/modules/serializer"
	"github.com/harborline/stafftrack/internal/modules/service"
)

type TaskHandler struct {
	svc service.TaskService
}

func NewTaskHandler(s service.TaskService) *TaskHandler {
	return &TaskHandler{svc: s}
}

type TaskReq struct {
	DeliverableID string          `json:"deliverable_id" binding:"required"`
	AssigneeID    *string         `json:"assignee_id"`
	Title         string          `json:"title" binding:"required"`
	BudgetHours   decimal.Decimal `json:"budget_hours"`
	Status        string          `json:"status"`
}

func (r TaskReq) toModel() (model.Task, error) {
	deliverableID, err := uuidField(r.DeliverableID, "deliverable_id")
	if err != nil {
		return model.Task{}, err
	}
	var assigneeID *uuid.UUID
	if r.AssigneeID != nil && *r.AssigneeID != "" {
		id, err := uuidField(*r.AssigneeID, "assignee_id")
		if err != nil {
			return model.Task{}, err
		}
		assigneeID = &id
	}
	return model.Task{
		DeliverableID: deliverableID,
		AssigneeID:    assigneeID,
		Title:         r.Title,
		BudgetHours:   r.BudgetHours,
		Status:        r.Status,
	}, nil
}

var taskOrderFields = map[string]string{
	"title":      "title",
	"status":     "status",
	"created_at": "created_at",
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	f := repo.TaskFilter{
		Status:     c.Query("status"),
		Unassigned: boolQuery(c, "unassigned"),
		Order:      orderingQuery(c, taskOrderFields),
	}
	var err error
	if f.ContractID, err = uuidQuery(c, "contract_id"); err != nil {
		serializer.WriteError(c, err)
		return
	}
	if f.DeliverableID, err = uuidQuery(c, "deliverable_id"); err != nil {
		serializer.WriteError(c, err)
		return
	}
	if f.AssigneeID, err = uuidQuery(c, "assignee_id"); err != nil {
		serializer.WriteError(c, err)
		return
	}

	items, err := h.svc.List(c.Request.Context(), actorFrom(c), f)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: items})
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	req := TaskReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	t, err := req.toModel()
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	if err := h.svc.Create(c.Request.Context(), actorFrom(c), &t); err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: t})
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := uuidParam(c, "task_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	out, err := h.svc.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := uuidParam(c, "task_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	req := TaskReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	t, err := req.toModel()
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	t.ID = id
	if err := h.svc.Update(c.Request.Context(), actorFrom(c), &t); err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: t})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := uuidParam(c, "task_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "deleted"})
}
