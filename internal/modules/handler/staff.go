package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harborline/stafftrack/internal/modules/model"
	"github.com/harborline/stafftrack/internal/modules/repo"
	"github.com/harborline/stafftrack/internal/modules/serializer"
	"github.com/harborline/stafftrack/internal/modules/service"
)

type StaffHandler struct {
	svc service.StaffService
}

func NewStaffHandler(s service.StaffService) *StaffHandler {
	return &StaffHandler{svc: s}
}

type StaffReq struct {
	Email       string  `json:"email" binding:"required"`
	FirstName   string  `json:"first_name" binding:"required"`
	LastName    string  `json:"last_name" binding:"required"`
	Status      string  `json:"status"`
	Role        string  `json:"role"`
	AuthSubject *string `json:"auth_subject"`
}

var staffOrderFields = map[string]string{
	"email":      "email",
	"last_name":  "last_name",
	"first_name": "first_name",
	"created_at": "created_at",
}

func (h *StaffHandler) ListStaff(c *gin.Context) {
	f := repo.StaffFilter{
		Status: c.Query("status"),
		Role:   c.Query("role"),
		Order:  orderingQuery(c, staffOrderFields),
	}
	items, err := h.svc.List(c.Request.Context(), actorFrom(c), f)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: items})
}

func (h *StaffHandler) CreateStaff(c *gin.Context) {
	req := StaffReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	staff := model.Staff{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Status:      req.Status,
		Role:        req.Role,
		AuthSubject: req.AuthSubject,
	}
	if err := h.svc.Create(c.Request.Context(), actorFrom(c), &staff); err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: staff})
}

func (h *StaffHandler) GetStaff(c *gin.Context) {
	id, err := uuidParam(c, "staff_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	staff, err := h.svc.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: staff})
}

func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	id, err := uuidParam(c, "staff_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	req := StaffReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	staff := model.Staff{
		ID:          id,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Status:      req.Status,
		Role:        req.Role,
		AuthSubject: req.AuthSubject,
	}
	if err := h.svc.Update(c.Request.Context(), actorFrom(c), &staff); err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: staff})
}

func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	id, err := uuidParam(c, "staff_id")
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
