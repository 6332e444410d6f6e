package services

import (
	"errors"
	"fmt"
	"rentroll/internal/models"
	"rentroll/pkg/logger"
	"rentroll/pkg/queue"

	"gorm.io/gorm"
)

// 申请流转的业务错误
var (
	ErrApplicationMissing = errors.New("申请不存在")
)

// ApplicationService 租房申请生命周期
// pending只有两个终点：批准（事务内创建租客并删除申请行）
// 或拒绝（直接删除），不会留下半批准的中间状态
type ApplicationService struct {
	db     *gorm.DB
	events *queue.RedisQueue
}

// NewApplicationService 创建申请服务
func NewApplicationService(db *gorm.DB, events *queue.RedisQueue) *ApplicationService {
	return &ApplicationService{
		db:     db,
		events: events,
	}
}

// Submit 公开提交申请，ownerID可为空（未分配，等管理员归档）
func (s *ApplicationService) Submit(app *models.RentalApplication) error {
	if app.Name == "" || app.Email == "" || app.DesiredUnit == "" {
		return errors.New("姓名、邮箱和意向单元为必填项")
	}
	app.Status = models.ApplicationStatusPending
	return s.db.Create(app).Error
}

// GetByID 获取单个申请
func (s *ApplicationService) GetByID(id uint) (*models.RentalApplication, error) {
	var app models.RentalApplication
	if err := s.db.First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationMissing
		}
		return nil, err
	}
	return &app, nil
}

// GetByOwnerWithPage 房东视角的申请列表（分页）
func (s *ApplicationService) GetByOwnerWithPage(ownerID uint, page, pageSize int) ([]*models.RentalApplication, int64, error) {
	var apps []*models.RentalApplication
	var total int64

	query := s.db.Model(&models.RentalApplication{}).Where("owner_id = ?", ownerID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// GetUnassigned 未分配房东的申请（管理员归档用）
func (s *ApplicationService) GetUnassigned() ([]*models.RentalApplication, error) {
	var apps []*models.RentalApplication
	err := s.db.Where("owner_id IS NULL").Order("created_at DESC").Find(&apps).Error
	return apps, err
}

// Assign 管理员把未分配申请归档给某个房东
func (s *ApplicationService) Assign(appID, ownerID uint) error {
	result := s.db.Model(&models.RentalApplication{}).
		Where("id = ? AND owner_id IS NULL", appID).
		UpdateColumn("owner_id", ownerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationMissing
	}
	return nil
}

// Approve 批准申请：创建租客并删除申请行，二者同一事务提交
// 新租客归属发起批准的房东（管理员代批时不一定是申请原归属），
// 月租金刻意置0，由房东事后设置，不从申请信息推断
func (s *ApplicationService) Approve(appID, callerOwnerID uint) (*models.Tenant, error) {
	var tenant *models.Tenant

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var app models.RentalApplication
		if err := tx.First(&app, appID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationMissing
			}
			return err
		}

		t := models.Tenant{
			OwnerID:     callerOwnerID,
			PropertyID:  app.PropertyID,
			Name:        app.Name,
			Email:       app.Email,
			Phone:       app.Phone,
			Unit:        app.DesiredUnit,
			Type:        models.TenantTypeLongTerm,
			Status:      models.TenantStatusOccupied,
			MonthlyRent: 0,
			Balance:     0,
		}
		if err := tx.Create(&t).Error; err != nil {
			return fmt.Errorf("创建租客失败: %v", err)
		}

		result := tx.Delete(&models.RentalApplication{}, appID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrApplicationMissing
		}

		tenant = &t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishApprovedEvent(tenant)
	return tenant, nil
}

// Reject 拒绝申请：单条删除，没有租客侧副作用
func (s *ApplicationService) Reject(appID uint) error {
	result := s.db.Delete(&models.RentalApplication{}, appID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationMissing
	}
	return nil
}

func (s *ApplicationService) publishApprovedEvent(tenant *models.Tenant) {
	if s.events == nil || tenant == nil {
		return
	}
	event := &queue.LedgerEvent{
		EventType: "application.approved",
		OwnerID:   tenant.OwnerID,
		TenantID:  tenant.ID,
	}
	if err := s.events.Publish(event); err != nil {
		logger.GetLogger().Warnf("申请批准事件发布失败: %v", err)
	}
}
