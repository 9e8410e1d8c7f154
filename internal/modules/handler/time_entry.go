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

type TimeEntryHandler struct {
	svc service.TimeEntryService
}

func NewTimeEntryHandler(s service.TimeEntryService) *TimeEntryHandler {
	return &TimeEntryHandler{svc: s}
}

type TimeEntryReq struct {
	DeliverableID  string          `json:"deliverable_id" binding:"required"`
	StaffID        string          `json:"staff_id"`
	EntryDate      string          `json:"entry_date" binding:"required"`
	Hours          decimal.Decimal `json:"hours"`
	Note           string          `json:"note"`
	ExternalSource string          `json:"external_source"`
	ExternalID     string          `json:"external_id"`
}

func (r TimeEntryReq) toModel() (model.DeliverableTimeEntry, error) {
	deliverableID, err := uuidField(r.DeliverableID, "deliverable_id")
	if err != nil {
		return model.DeliverableTimeEntry{}, err
	}
	// staff_id is optional on create; staff-role requests default to the
	// caller's own profile.
	staffID := uuid.Nil
	if r.StaffID != "" {
		if staffID, err = uuidField(r.StaffID, "staff_id"); err != nil {
			return model.DeliverableTimeEntry{}, err
		}
	}
	entryDate, err := parseDateField(r.EntryDate, "entry_date")
	if err != nil {
		return model.DeliverableTimeEntry{}, err
	}
	return model.DeliverableTimeEntry{
		DeliverableID:  deliverableID,
		StaffID:        staffID,
		EntryDate:      entryDate,
		Hours:          r.Hours,
		Note:           r.Note,
		ExternalSource: r.ExternalSource,
		ExternalID:     r.ExternalID,
	}, nil
}

var timeEntryOrderFields = map[string]string{
	"entry_date": "entry_date",
	"hours":      "hours",
	"created_at": "created_at",
}

func (h *TimeEntryHandler) ListTimeEntries(c *gin.Context) {
	f := repo.TimeEntryFilter{
		Order: orderingQuery(c, timeEntryOrderFields),
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
	if f.EntryDateFrom, err = dateQuery(c, "entry_date_from"); err != nil {
		serializer.WriteError(c, err)
		return
	}
	if f.EntryDateTo, err = dateQuery(c, "entry_date_to"); err != nil {
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

// CreateTimeEntry returns 201 for a fresh row and 200 when an external key
// replays an earlier submission.
func (h *TimeEntryHandler) CreateTimeEntry(c *gin.Context) {
	req := TimeEntryReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	e, err := req.toModel()
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	res, err := h.svc.Create(c.Request.Context(), actorFrom(c), &e)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	c.JSON(status, serializer.Response{Data: res.Entry})
}

func (h *TimeEntryHandler) GetTimeEntry(c *gin.Context) {
	id, err := uuidParam(c, "time_entry_id")
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

func (h *TimeEntryHandler) UpdateTimeEntry(c *gin.Context) {
	id, err := uuidParam(c, "time_entry_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	req := TimeEntryReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	e, err := req.toModel()
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	e.ID = id
	if err := h.svc.Update(c.Request.Context(), actorFrom(c), &e); err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: e})
}

func (h *TimeEntryHandler) DeleteTimeEntry(c *gin.Context) {
	id, err := uuidParam(c, "time_entry_id")
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
