package service

import (
	"aba_assessment_backend/internal/model"
	"aba_assessment_backend/internal/repository"
	"aba_assessment_backend/internal/util"
	"aba_assessment_backend/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Templates are immutable after seeding, so cached copies never go stale.
const templateCacheTTL = 12 * time.Hour

type TemplateService struct {
	TemplateRepo *repository.TemplateRepository
	Redis        *redis.Client
}

func NewTemplateService(templateRepo *repository.TemplateRepository, redisClient *redis.Client) *TemplateService {
	return &TemplateService{
		TemplateRepo: templateRepo,
		Redis:        redisClient,
	}
}

func (s *TemplateService) ListSummaries() ([]repository.TemplateSummary, error) {
	return s.TemplateRepo.ListSummaries()
}

// GetByType returns the full template, read through the redis cache when
// one is configured.
func (s *TemplateService) GetByType(ctx context.Context, assessmentType string) (*model.QuestionnaireTemplate, error) {
	cacheKey := "template:" + assessmentType

	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var template model.QuestionnaireTemplate
			if err := json.Unmarshal([]byte(cached), &template); err == nil {
				return &template, nil
			}
			logger.Log.Warn("Discarding unreadable cached template", zap.String("key", cacheKey))
		} else if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("Template cache read failed", zap.Error(err))
		}
	}

	template, err := s.TemplateRepo.FindByType(assessmentType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTemplateNotFound
		}
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(template); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, templateCacheTTL).Err(); err != nil {
				logger.Log.Warn("Template cache write failed", zap.Error(err))
			}
		}
	}

	return template, nil
}
