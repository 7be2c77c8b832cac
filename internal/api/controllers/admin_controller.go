package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"storefront/internal/models/request_models"
	"storefront/internal/services"
	"storefront/pkg/utils"
)

type AdminController struct {
	financeService services.FinanceService
}

func NewAdminController(financeService services.FinanceService) *AdminController {
	return &AdminController{financeService: financeService}
}

// ListOrders godoc
// @Summary List reconciled store orders
// @Tags Admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/orders [get]
func (a *AdminController) ListOrders(c *gin.Context) {
	var q request_models.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}

	page, err := a.financeService.ListOrders(c.Request.Context(), q.Page, q.PageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, page, "Orders retrieved successfully")
}

// ListFinance godoc
// @Summary List finance records
// @Tags Admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/finance [get]
func (a *AdminController) ListFinance(c *gin.Context) {
	var q request_models.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}

	page, err := a.financeService.ListFinance(c.Request.Context(), q.Page, q.PageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, page, "Finance records retrieved successfully")
}

func (a *AdminController) CreateFinanceRecord(c *gin.Context) {
	var request request_models.CreateFinanceRecordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	record, err := a.financeService.CreateManualRecord(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, record, "Finance record created successfully")
}

func (a *AdminController) ConfirmFinanceRecord(c *gin.Context) {
	record, err := a.financeService.ConfirmPaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, record, "Finance record confirmed as paid")
}
