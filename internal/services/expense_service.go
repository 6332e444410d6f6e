package services

import (
	"errors"
	"rentroll/internal/models"
	"time"

	"gorm.io/gorm"
)

var ErrExpenseMissing = errors.New("支出记录不存在")

// ExpenseService 支出记录管理
type ExpenseService struct {
	db *gorm.DB
}

// NewExpenseService 创建支出服务
func NewExpenseService(db *gorm.DB) *ExpenseService {
	return &ExpenseService{db: db}
}

// Create 记录一笔支出
func (s *ExpenseService) Create(expense *models.Expense) error {
	if expense.Amount <= 0 {
		return errors.New("支出金额必须为正数")
	}
	if expense.Description == "" {
		return errors.New("支出说明不能为空")
	}
	if expense.Category == "" {
		expense.Category = models.ExpenseCategoryOther
	}
	if expense.Date == "" {
		expense.Date = time.Now().Format("2006-01-02")
	}
	return s.db.Create(expense).Error
}

// GetByOwnerWithPage 房东支出列表（分页）
func (s *ExpenseService) GetByOwnerWithPage(ownerID uint, page, pageSize int, category string) ([]*models.Expense, int64, error) {
	var expenses []*models.Expense
	var total int64

	query := s.db.Model(&models.Expense{}).Where("owner_id = ?", ownerID)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("date DESC, id DESC").Offset(offset).Limit(pageSize).Find(&expenses).Error
	if err != nil {
		return nil, 0, err
	}

	return expenses, total, nil
}

// Delete 删除支出记录
func (s *ExpenseService) Delete(ownerID, expenseID uint) error {
	result := s.db.Where("id = ? AND owner_id = ?", expenseID, ownerID).
		Delete(&models.Expense{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrExpenseMissing
	}
	return nil
}
