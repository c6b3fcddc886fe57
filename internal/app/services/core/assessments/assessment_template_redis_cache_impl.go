package assessments

import (
	"context"
	"konsulin-assessment-engine/internal/app/contracts"
	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/app/services/core/templates"
	"konsulin-assessment-engine/internal/pkg/constvars"
	"konsulin-assessment-engine/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
)

type assessmentTemplateRedisCache struct {
	RedisRepository contracts.RedisRepository
	TTL             time.Duration
}

func NewAssessmentTemplateRedisCache(redisRepository contracts.RedisRepository, ttl time.Duration) contracts.AssessmentTemplateCache {
	return &assessmentTemplateRedisCache{
		RedisRepository: redisRepository,
		TTL:             ttl,
	}
}

func redisKey(templateKey string) string {
	return constvars.RedisKeyPrefixAssessmentTemplate + templateKey
}

func (c *assessmentTemplateRedisCache) GetTemplateDefinition(ctx context.Context, templateKey string) (*models.TemplateDefinition, error) {
	raw, err := c.RedisRepository.Get(ctx, redisKey(templateKey))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var definition models.TemplateDefinition
	if err := json.Unmarshal([]byte(raw), &definition); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return &definition, nil
}

func (c *assessmentTemplateRedisCache) SetTemplateDefinition(ctx context.Context, definition *models.TemplateDefinition) error {
	return c.RedisRepository.Set(ctx, redisKey(templates.Key(definition.ID, definition.Version)), definition, c.TTL)
}

func (c *assessmentTemplateRedisCache) DeleteTemplateDefinition(ctx context.Context, templateKey string) error {
	return c.RedisRepository.Delete(ctx, redisKey(templateKey))
}
