package services

import (
	"fmt"
	"rentroll/pkg/logger"

	"github.com/robfig/cron/v3"
)

// IntentSweeper 过期支付意向清理调度器
// 服务商一直不回调的意向不会自动入账，也不做超时对账，
// 这里只定期封死过期意向，防止迟到的确认把旧金额记进账本
type IntentSweeper struct {
	intents  *PaymentIntentService
	cron     *cron.Cron
	cronExpr string
	running  bool
}

// NewIntentSweeper 创建清理调度器
func NewIntentSweeper(intents *PaymentIntentService, cronExpr string) *IntentSweeper {
	return &IntentSweeper{
		intents:  intents,
		cron:     cron.New(),
		cronExpr: cronExpr,
	}
}

// Start 启动调度器
func (s *IntentSweeper) Start() error {
	if s.running {
		return fmt.Errorf("调度器已经在运行")
	}

	_, err := s.cron.AddFunc(s.cronExpr, func() {
		count, err := s.intents.SweepExpired()
		if err != nil {
			logger.GetLogger().Errorf("清理过期支付意向失败: %v", err)
			return
		}
		if count > 0 {
			logger.GetLogger().Infof("已标记 %d 个过期支付意向", count)
		}
	})
	if err != nil {
		return fmt.Errorf("注册清理任务失败: %v", err)
	}

	s.cron.Start()
	s.running = true
	logger.GetLogger().Infof("支付意向清理调度器启动成功: %s", s.cronExpr)
	return nil
}

// Stop 停止调度器
func (s *IntentSweeper) Stop() {
	if !s.running {
		return
	}
	logger.GetLogger().Info("停止支付意向清理调度器")
	s.cron.Stop()
	s.running = false
}
