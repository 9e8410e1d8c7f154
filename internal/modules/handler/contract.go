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

type ContractHandler struct {
	svc service.ContractService
}

func NewContractHandler(s service.ContractService) *ContractHandler {
	return &ContractHandler{svc: s}
}

type ContractReq struct {
	Name        string          `json:"name"`
	ClientName  string          `json:"client_name"`
	StartDate   string          `json:"start_date" binding:"required"`
	EndDate     string          `json:"end_date" binding:"required"`
	BudgetHours decimal.Decimal `json:"budget_hours"`
	Status      string          `json:"status"`
}

func (r ContractReq) toModel() (model.Contract, error) {
	start, err := parseDateField(r.StartDate, "start_date")
	if err != nil {
		return model.Contract{}, err
	}
	end, err := parseDateField(r.EndDate, "end_date")
	if err != nil {
		return model.Contract{}, err
	}
	return model.Contract{
		Name:        r.Name,
		ClientName:  r.ClientName,
		StartDate:   start,
		EndDate:     end,
		BudgetHours: r.BudgetHours,
		Status:      r.Status,
	}, nil
}

var contractOrderFields = map[string]string{
	"name":       "name",
	"start_date": "start_date",
	"end_date":   "end_date",
	"status":     "status",
	"created_at": "created_at",
}

func (h *ContractHandler) ListContracts(c *gin.Context) {
	in := service.ListContractsInput{
		ContractFilter: repo.ContractFilter{
			Status: c.Query("status"),
			Order:  orderingQuery(c, contractOrderFields),
		},
		OverBudget:   boolQuery(c, "over_budget"),
		OverExpected: boolQuery(c, "over_expected"),
	}
	var err error
	if in.StartDateFrom, err = dateQuery(c, "start_date_from"); err != nil {
		serializer.WriteError(c, err)
		return
	}
	if in.StartDateTo, err = dateQuery(c, "start_date_to"); err != nil {
		serializer.WriteError(c, err)
		return
	}
	if in.EndDateFrom, err = dateQuery(c, "end_date_from"); err != nil {
		serializer.WriteError(c, err)
		return
	}
	if in.EndDateTo, err = dateQuery(c, "end_date_to"); err != nil {
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

func (h *ContractHandler) CreateContract(c *gin.Context) {
	req := ContractReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	contract, err := req.toModel()
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	if err := h.svc.Create(c.Request.Context(), actorFrom(c), &contract); err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: contract})
}

func (h *ContractHandler) GetContract(c *gin.Context) {
	id, err := uuidParam(c, "contract_id")
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

func (h *ContractHandler) UpdateContract(c *gin.Context) {
	id, err := uuidParam(c, "contract_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	req := ContractReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	contract, err := req.toModel()
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	contract.ID = id
	if err := h.svc.Update(c.Request.Context(), actorFrom(c), &contract); err != nil {
		serializer.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: contract})
}

func (h *ContractHandler) DeleteContract(c *gin.Context) {
	id, err := uuidParam(c, "contract_id")
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
