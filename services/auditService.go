package services

import (
	"context"

	"gorm.io/gorm"

	"resto-pos/models"
	"resto-pos/utils"
)

type AuditService interface {
	List(ctx context.Context, limit int) ([]models.AuditLog, error)
}

type auditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) AuditService {
	return &auditService{db: db}
}

func (s *auditService) List(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var logs []models.AuditLog
	err := s.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

// recordAudit writes an audit row on db, which may be a transaction.
func recordAudit(db *gorm.DB, userID *uint, action, entity string, entityID *uint, payload any) error {
	return db.Create(&models.AuditLog{
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Payload:  utils.ToJSON(payload),
	}).Error
}

func uintPtr(v uint) *uint {
	return &v
}
