package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harborline/stafftrack/internal/modules/serializer"
	"github.com/harborline/stafftrack/internal/modules/service"
	"github.com/harborline/stafftrack/internal/pkg/errs"
)

type ReportHandler struct {
	svc service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{svc: s}
}

// bucketParam validates the bucket granularity. Weekly is the only
// granularity today; the param exists so callers fail loudly rather than
// silently getting weeks.
func bucketParam(c *gin.Context) error {
	if b := c.Query("bucket"); b != "" && b != "week" {
		return errs.Validation("bucket", "must be \"week\"")
	}
	return nil
}

func (h *ReportHandler) ContractBurn(c *gin.Context) {
	id, err := uuidParam(c, "contract_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	if err := bucketParam(c); err != nil {
		serializer.WriteError(c, err)
		return
	}
	out, err := h.svc.ContractBurn(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *ReportHandler) ContractDeliverables(c *gin.Context) {
	id, err := uuidParam(c, "contract_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	out, err := h.svc.ContractDeliverables(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *ReportHandler) DeliverableBurn(c *gin.Context) {
	id, err := uuidParam(c, "deliverable_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	if err := bucketParam(c); err != nil {
		serializer.WriteError(c, err)
		return
	}
	out, err := h.svc.DeliverableBurn(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *ReportHandler) DeliverableStatusHistory(c *gin.Context) {
	id, err := uuidParam(c, "deliverable_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	out, err := h.svc.DeliverableStatusHistory(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}
