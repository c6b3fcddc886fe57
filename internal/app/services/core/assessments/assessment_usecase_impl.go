package assessments

import (
	"context"
	"konsulin-assessment-engine/internal/app/contracts"
	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/app/services/core/templates"
	"konsulin-assessment-engine/internal/pkg/constvars"
	"konsulin-assessment-engine/internal/pkg/exceptions"
	"konsulin-assessment-engine/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	cacheLayerMemory = "memory"
	cacheLayerRedis  = "redis"
	cacheLayerMongo  = "mongo"
)

const (
	seedLockExpiration  = 30 * time.Second
	templateLoadTimeout = 10 * time.Second
)

type assessmentUsecase struct {
	TemplateRepository contracts.AssessmentTemplateRepository
	TemplateCache      contracts.AssessmentTemplateCache
	MemoryCache        *templates.Cache
	Locker             contracts.LockerService
	Log                *zap.Logger
	loads              singleflight.Group
}

// NewAssessmentUsecase resolves templates through the in-memory cache, then
// Redis, then MongoDB. templateCache and locker may be nil when Redis is not
// available.
func NewAssessmentUsecase(
	templateRepository contracts.AssessmentTemplateRepository,
	templateCache contracts.AssessmentTemplateCache,
	memoryCache *templates.Cache,
	locker contracts.LockerService,
	logger *zap.Logger,
) contracts.AssessmentUsecase {
	if memoryCache == nil {
		memoryCache = templates.NewCache()
	}
	return &assessmentUsecase{
		TemplateRepository: templateRepository,
		TemplateCache:      templateCache,
		MemoryCache:        memoryCache,
		Locker:             locker,
		Log:                logger,
	}
}

func (uc *assessmentUsecase) GetTemplate(ctx context.Context, templateID, templateVersion string) (*templates.Template, error) {
	requestID := utils.GetRequestID(ctx)
	templateKey := templates.Key(templateID, templateVersion)

	if template, ok := uc.MemoryCache.Get(templateKey); ok {
		uc.Log.Debug("assessmentUsecase.GetTemplate served from cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTemplateKey, templateKey),
			zap.String(constvars.LoggingCacheLayerKey, cacheLayerMemory),
		)
		return template, nil
	}

	uc.Log.Info("assessmentUsecase.GetTemplate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTemplateKey, templateKey),
	)

	// The shared load outlives any single caller; each caller stops waiting
	// on its own context.
	loads := uc.loads.DoChan(templateKey, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), templateLoadTimeout)
		defer cancel()
		return uc.loadTemplate(loadCtx, templateID, templateVersion)
	})

	var result singleflight.Result
	select {
	case result = <-loads:
	case <-ctx.Done():
		uc.Log.Warn("assessmentUsecase.GetTemplate caller stopped waiting",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTemplateKey, templateKey),
			zap.Error(ctx.Err()),
		)
		return nil, ctx.Err()
	}
	if result.Err != nil {
		uc.Log.Error("assessmentUsecase.GetTemplate error loading template",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTemplateKey, templateKey),
			zap.Error(result.Err),
		)
		return nil, result.Err
	}

	uc.Log.Info("assessmentUsecase.GetTemplate succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTemplateKey, templateKey),
	)
	return result.Val.(*templates.Template), nil
}

func (uc *assessmentUsecase) loadTemplate(ctx context.Context, templateID, templateVersion string) (*templates.Template, error) {
	requestID := utils.GetRequestID(ctx)
	templateKey := templates.Key(templateID, templateVersion)

	definition, layer := uc.findCachedDefinition(ctx, templateKey)
	if definition == nil {
		var err error
		definition, err = uc.TemplateRepository.FindTemplate(ctx, templateID, templateVersion)
		if err != nil {
			return nil, err
		}
		if definition == nil {
			return nil, exceptions.ErrTemplateNotFound(nil, templateKey)
		}
		layer = cacheLayerMongo
	}

	template, err := templates.NewTemplate(*definition)
	if err != nil {
		return nil, err
	}

	if layer == cacheLayerMongo && uc.TemplateCache != nil {
		if err := uc.TemplateCache.SetTemplateDefinition(ctx, definition); err != nil {
			uc.Log.Warn("assessmentUsecase.loadTemplate failed to populate redis cache",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingTemplateKey, templateKey),
				zap.Error(err),
			)
		}
	}

	uc.Log.Info("assessmentUsecase.loadTemplate template loaded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTemplateKey, templateKey),
		zap.String(constvars.LoggingCacheLayerKey, layer),
	)
	return uc.MemoryCache.Put(template), nil
}

// findCachedDefinition treats Redis failures as a cache miss.
func (uc *assessmentUsecase) findCachedDefinition(ctx context.Context, templateKey string) (*models.TemplateDefinition, string) {
	if uc.TemplateCache == nil {
		return nil, ""
	}
	definition, err := uc.TemplateCache.GetTemplateDefinition(ctx, templateKey)
	if err != nil {
		requestID := utils.GetRequestID(ctx)
		uc.Log.Warn("assessmentUsecase.findCachedDefinition redis lookup failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTemplateKey, templateKey),
			zap.Error(err),
		)
		return nil, ""
	}
	if definition == nil {
		return nil, ""
	}
	return definition, cacheLayerRedis
}

// SeedTemplate validates a definition and stores it. It is used by the
// seeding command, not by the HTTP API.
func (uc *assessmentUsecase) SeedTemplate(ctx context.Context, definition models.TemplateDefinition) error {
	template, err := templates.NewTemplate(definition)
	if err != nil {
		return err
	}
	templateKey := template.Key()

	uc.Log.Info("assessmentUsecase.SeedTemplate called",
		zap.String(constvars.LoggingTemplateKey, templateKey),
	)

	if uc.Locker != nil {
		lockKey := constvars.RedisKeyPrefixSeedLock + templateKey
		acquired, lockValue, err := uc.Locker.TryLock(ctx, lockKey, seedLockExpiration)
		if err != nil {
			return err
		}
		if !acquired {
			return exceptions.ErrTemplateSeedLocked(templateKey)
		}
		defer func() {
			if err := uc.Locker.Unlock(ctx, lockKey, lockValue); err != nil {
				uc.Log.Warn("assessmentUsecase.SeedTemplate failed to release seed lock",
					zap.String(constvars.LoggingTemplateKey, templateKey),
					zap.Error(err),
				)
			}
		}()
	}

	stored := template.Definition()
	if err := uc.TemplateRepository.UpsertTemplate(ctx, &stored); err != nil {
		uc.Log.Error("assessmentUsecase.SeedTemplate error upserting template",
			zap.String(constvars.LoggingTemplateKey, templateKey),
			zap.Error(err),
		)
		return err
	}

	if uc.TemplateCache != nil {
		if err := uc.TemplateCache.DeleteTemplateDefinition(ctx, templateKey); err != nil {
			uc.Log.Warn("assessmentUsecase.SeedTemplate failed to evict redis entry",
				zap.String(constvars.LoggingTemplateKey, templateKey),
				zap.Error(err),
			)
		}
	}

	uc.Log.Info("assessmentUsecase.SeedTemplate succeeded",
		zap.String(constvars.LoggingTemplateKey, templateKey),
	)
	return nil
}
