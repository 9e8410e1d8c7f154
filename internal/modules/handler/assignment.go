package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/harborline/stafftrack/internal/modules/model"
	"github.com/harborline/stafftrack/internal/modules/repo"
	"github.com/harborline/stafftrack/internal/modules/serializer"
	"github.com/harborline/stafftrack/internal/modules/service"
)

type AssignmentHandler struct {
	svc service.AssignmentService
}

func NewAssignmentHandler(s service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{svc: s}
}

type AssignmentReq struct {
	DeliverableID string          `json:"deliverable_id" binding:"required"`
	StaffID       string          `json:"staff_id" binding:"required"`
	BudgetHours   decimal.Decimal `json:"budget_hours"`
	IsLead        bool            `json:"is_lead"`
}

func (r AssignmentReq) toModel() (model.DeliverableAssignment, error) {
	deliverableID, err := uuidField(r.DeliverableID, "deliverable_id")
	if err != nil {
		return model.DeliverableAssignment{}, err
	}
	staffID, err := uuidField(r.StaffID, "staff_id")
	if err != nil {
		return model.DeliverableAssignment{}, err
	}
	return model.DeliverableAssignment{
		DeliverableID: deliverableID,
		StaffID:       staffID,
		BudgetHours:   r.BudgetHours,
		IsLead:        r.IsLead,
	}, nil
}

var assignmentOrderFields = map[string]string{
	"budget_hours": "budget_hours",
	"created_at":   "created_at",
}

func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	f := repo.AssignmentFilter{
		LeadOnly: boolQuery(c, "lead_only"),
		Order:    orderingQuery(c, assignmentOrderFields),
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
	if f.StaffID, err = uuidQuery(c, "staff_id"); err != nil {
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

func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	req := AssignmentReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	a, err := req.toModel()
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	if err := h.svc.Create(c.Request.Context(), actorFrom(c), &a); err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: a})
}

func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	id, err := uuidParam(c, "assignment_id")
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

func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	id, err := uuidParam(c, "assignment_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	req := AssignmentReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	a, err := req.toModel()
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	a.ID = id
	if err := h.svc.Update(c.Request.Context(), actorFrom(c), &a); err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: a})
}

func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	id, err := uuidParam(c, "assignment_id")
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
