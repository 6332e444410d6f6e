package handlers

import (
	"errors"
	"strconv"

	"rentroll/internal/middleware"
	"rentroll/internal/models"
	"rentroll/internal/services"
	"rentroll/pkg/pagination"
	"rentroll/pkg/response"

	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	expenseService *services.ExpenseService
}

func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// CreateExpenseRequest 记录支出请求
type CreateExpenseRequest struct {
	PropertyID  *uint  `json:"property_id"`
	Amount      int64  `json:"amount" binding:"required,min=1"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"omitempty,oneof=Maintenance Utilities Taxes Other"`
	Date        string `json:"date"`
}

// Create 记录一笔支出
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	expense := &models.Expense{
		OwnerID:     middleware.GetUserID(c),
		PropertyID:  req.PropertyID,
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
	}

	if err := h.expenseService.Create(expense); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, expense)
}

// List 支出列表
func (h *ExpenseHandler) List(c *gin.Context) {
	pageParams := pagination.ParsePageParams(c)

	expenses, total, err := h.expenseService.GetByOwnerWithPage(
		middleware.GetUserID(c), pageParams.Page, pageParams.PageSize, c.Query("category"))
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, expenses, pageInfo)
}

// Delete 删除支出记录
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.expenseService.Delete(middleware.GetUserID(c), uint(id)); err != nil {
		if errors.Is(err, services.ErrExpenseMissing) {
			response.NotFound(c, "支出记录不存在")
			return
		}
		response.ServerError(c, "删除失败")
		return
	}

	response.Success(c, nil)
}
