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

type DeliverableHandler struct {
	svc service.DeliverableService
}

func NewDeliverableHandler(s service.DeliverableService) *DeliverableHandler {
	return &DeliverableHandler{svc: s}
}

type DeliverableReq struct {
	ContractID  string          `json:"contract_id" binding:"required"`
	Name        string          `json:"name"`
	ChargeCode  string          `json:"charge_code"`
	BudgetHours decimal.Decimal `json:"budget_hours"`
	StartDate   *string         `json:"start_date"`
	DueDate     *string         `json:"due_date"`
	Status      string          `json:"status"`
}

func (r DeliverableReq) toModel() (model.Deliverable, error) {
	contractID, err := uuidField(r.ContractID, "contract_id")
	if err != nil {
		return model.Deliverable{}, err
	}
	start, err := parseOptionalDateField(r.StartDate, "start_date")
	if err != nil {
		return model.Deliverable{}, err
	}
	due, err := parseOptionalDateField(r.DueDate, "due_date")
	if err != nil {
		return model.Deliverable{}, err
	}
	return model.Deliverable{
		ContractID:  contractID,
		Name:        r.Name,
		ChargeCode:  r.ChargeCode,
		BudgetHours: r.BudgetHours,
		StartDate:   start,
		DueDate:     due,
		Status:      r.Status,
	}, nil
}

var deliverableOrderFields = map[string]string{
	"name":       "name",
	"due_date":   "due_date",
	"status":     "status",
	"created_at": "created_at",
}

func (h *DeliverableHandler) ListDeliverables(c *gin.Context) {
	in := service.ListDeliverablesInput{
		DeliverableFilter: repo.DeliverableFilter{
			Status:         c.Query("status"),
			LeadOnly:       boolQuery(c, "lead_only"),
			HasAssignments: boolQuery(c, "has_assignments"),
			Order:          orderingQuery(c, deliverableOrderFields),
		},
		OverExpected:    boolQuery(c, "over_expected"),
		MissingLead:     boolQuery(c, "missing_lead"),
		MissingEstimate: boolQuery(c, "missing_estimate"),
	}
	var err error
	if in.ContractID, err = uuidQuery(c, "contract_id"); err != nil {
		serializer.WriteError(c, err)
		return
	}
	if in.StaffID, err = uuidQuery(c, "staff_id"); err != nil {
		serializer.WriteError(c, err)
		return
	}
	if in.DueDateFrom, err = dateQuery(c, "due_date_from"); err != nil {
		serializer.WriteError(c, err)
		return
	}
	if in.DueDateTo, err = dateQuery(c, "due_date_to"); err != nil {
		serializer.WriteError(c, err)
		return
	}

	items, err := h.svc.List(c.Request.Context(), actorFrom(c), in)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: items})
}

func (h *DeliverableHandler) CreateDeliverable(c *gin.Context) {
	req := DeliverableReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	d, err := req.toModel()
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	if err := h.svc.Create(c.Request.Context(), actorFrom(c), &d); err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: d})
}

func (h *DeliverableHandler) GetDeliverable(c *gin.Context) {
	id, err := uuidParam(c, "deliverable_id")
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

func (h *DeliverableHandler) UpdateDeliverable(c *gin.Context) {
	id, err := uuidParam(c, "deliverable_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	req := DeliverableReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	d, err := req.toModel()
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	d.ID = id
	if err := h.svc.Update(c.Request.Context(), actorFrom(c), &d); err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: d})
}

func (h *DeliverableHandler) DeleteDeliverable(c *gin.Context) {
	id, err := uuidParam(c, "deliverable_id")
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
