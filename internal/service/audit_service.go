package service

import (
	"context"
	"log"

	"commerce/internal/model"
	"commerce/internal/repository"

	"github.com/google/uuid"
)

// AuditService records who changed what and when. Recording is best effort:
// a failed audit write never fails the mutation it describes.
type AuditService interface {
	Record(ctx context.Context, userID uuid.UUID, action, entity, entityID, entityName string)
	List(ctx context.Context, entity string, page, limit int) ([]model.AuditLog, int64, error)
}

type auditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) Record(ctx context.Context, userID uuid.UUID, action, entity, entityID, entityName string) {
	entry := &model.AuditLog{
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
		EntityName: entityName,
	}
	if userID != uuid.Nil {
		entry.UserID = &userID
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("audit: failed to record %s %s/%s: %v", action, entity, entityID, err)
	}
}

func (s *auditService) List(ctx context.Context, entity string, page, limit int) ([]model.AuditLog, int64, error) {
	return s.auditRepo.List(ctx, entity, page, limit)
}
