package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harborline/stafftrack/internal/modules/model"
	"github.com/harborline/stafftrack/internal/modules/repo"
	"github.com/harborline/stafftrack/internal/modules/serializer"
	"github.com/harborline/stafftrack/internal/modules/service"
)

type StatusUpdateHandler struct {
	svc service.StatusUpdateService
}

func NewStatusUpdateHandler(s service.StatusUpdateService) *StatusUpdateHandler {
	return &StatusUpdateHandler{svc: s}
}

type StatusUpdateReq struct {
	DeliverableID string `json:"deliverable_id" binding:"required"`
	PeriodEnd     string `json:"period_end" binding:"required"`
	Status        string `json:"status" binding:"required"`
	Summary       string `json:"summary"`
}

func (r StatusUpdateReq) toModel() (model.DeliverableStatusUpdate, error) {
	deliverableID, err := uuidField(r.DeliverableID, "deliverable_id")
	if err != nil {
		return model.DeliverableStatusUpdate{}, err
	}
	periodEnd, err := parseDateField(r.PeriodEnd, "period_end")
	if err != nil {
		return model.DeliverableStatusUpdate{}, err
	}
	return model.DeliverableStatusUpdate{
		DeliverableID: deliverableID,
		PeriodEnd:     periodEnd,
		Status:        r.Status,
		Summary:       r.Summary,
	}, nil
}

var statusUpdateOrderFields = map[string]string{
	"period_end": "period_end",
	"created_at": "created_at",
}

func (h *StatusUpdateHandler) ListStatusUpdates(c *gin.Context) {
	f := repo.StatusUpdateFilter{
		Status: c.Query("status"),
		Order:  orderingQuery(c, statusUpdateOrderFields),
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
	if f.PeriodEndFrom, err = dateQuery(c, "period_end_from"); err != nil {
		serializer.WriteError(c, err)
		return
	}
	if f.PeriodEndTo, err = dateQuery(c, "period_end_to"); err != nil {
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

func (h *StatusUpdateHandler) CreateStatusUpdate(c *gin.Context) {
	req := StatusUpdateReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	u, err := req.toModel()
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	if err := h.svc.Create(c.Request.Context(), actorFrom(c), &u); err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: u})
}

func (h *StatusUpdateHandler) GetStatusUpdate(c *gin.Context) {
	id, err := uuidParam(c, "status_update_id")
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

func (h *StatusUpdateHandler) UpdateStatusUpdate(c *gin.Context) {
	id, err := uuidParam(c, "status_update_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	req := StatusUpdateReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	u, err := req.toModel()
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	u.ID = id
	if err := h.svc.Update(c.Request.Context(), actorFrom(c), &u); err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: u})
}

func (h *StatusUpdateHandler) DeleteStatusUpdate(c *gin.Context) {
	id, err := uuidParam(c, "status_update_id")
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
