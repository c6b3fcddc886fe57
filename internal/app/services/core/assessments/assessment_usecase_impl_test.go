package assessments

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/app/services/core/templates"
	"konsulin-assessment-engine/internal/pkg/constvars"
	"konsulin-assessment-engine/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func gad7Definition() models.TemplateDefinition {
	def := models.TemplateDefinition{
		ID:       "gad-7",
		Version:  "1.0.0",
		Name:     "GAD-7",
		Category: models.CategoryAnxiety,
		ResponseOptions: []models.ResponseOption{
			{Value: "0", Label: "Not at all", Score: 0},
			{Value: "1", Label: "Several days", Score: 1},
			{Value: "2", Label: "More than half the days", Score: 2},
			{Value: "3", Label: "Nearly every day", Score: 3},
		},
		Scoring: models.Scoring{Method: models.ScoringMethodSum, TotalScoreRange: models.ScoreRange{Min: 0, Max: 21}},
		InterpretationRules: []models.InterpretationRule{
			{MinScore: 0, MaxScore: 4, Severity: models.SeverityMinimal, Label: "Minimal"},
			{MinScore: 5, MaxScore: 21, Severity: models.SeverityModerate, Label: "Elevated"},
		},
	}
	for i := 1; i <= 7; i++ {
		def.Items = append(def.Items, models.Item{Number: i, Text: "item"})
	}
	return def
}

type fakeTemplateRepository struct {
	mu          sync.Mutex
	definitions map[string]models.TemplateDefinition
	findCalls   int
	findErr     error
	entered     chan struct{}
	release     chan struct{}
}

func newFakeTemplateRepository(defs ...models.TemplateDefinition) *fakeTemplateRepository {
	repo := &fakeTemplateRepository{definitions: map[string]models.TemplateDefinition{}}
	for _, def := range defs {
		repo.definitions[templates.Key(def.ID, def.Version)] = def
	}
	return repo
}

func (f *fakeTemplateRepository) FindTemplate(ctx context.Context, templateID, templateVersion string) (*models.TemplateDefinition, error) {
	f.mu.Lock()
	f.findCalls++
	entered, release := f.entered, f.release
	f.mu.Unlock()

	if release != nil {
		if entered != nil {
			entered <- struct{}{}
		}
		select {
		case <-release:
		case <-ctx.Done():
			return nil, exceptions.ErrMongoDBFindDocument(ctx.Err())
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	def, ok := f.definitions[templates.Key(templateID, templateVersion)]
	if !ok {
		return nil, nil
	}
	return &def, nil
}

func (f *fakeTemplateRepository) UpsertTemplate(ctx context.Context, definition *models.TemplateDefinition) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.definitions[templates.Key(definition.ID, definition.Version)] = *definition
	return nil
}

func (f *fakeTemplateRepository) EnsureIndexes(ctx context.Context) error { return nil }

type fakeTemplateCache struct {
	mu          sync.Mutex
	definitions map[string]models.TemplateDefinition
	getErr      error
	deleted     []string
}

func newFakeTemplateCache() *fakeTemplateCache {
	return &fakeTemplateCache{definitions: map[string]models.TemplateDefinition{}}
}

func (f *fakeTemplateCache) GetTemplateDefinition(ctx context.Context, templateKey string) (*models.TemplateDefinition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	def, ok := f.definitions[templateKey]
	if !ok {
		return nil, nil
	}
	return &def, nil
}

func (f *fakeTemplateCache) SetTemplateDefinition(ctx context.Context, definition *models.TemplateDefinition) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.definitions[templates.Key(definition.ID, definition.Version)] = *definition
	return nil
}

func (f *fakeTemplateCache) DeleteTemplateDefinition(ctx context.Context, templateKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.definitions, templateKey)
	f.deleted = append(f.deleted, templateKey)
	return nil
}

type fakeLocker struct {
	held     map[string]string
	unlocked []string
}

func (f *fakeLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	if _, ok := f.held[key]; ok {
		return false, "", nil
	}
	f.held[key] = "owner"
	return true, "owner", nil
}

func (f *fakeLocker) Unlock(ctx context.Context, key, lockValue string) error {
	delete(f.held, key)
	f.unlocked = append(f.unlocked, key)
	return nil
}

func TestGetTemplate(t *testing.T) {
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")

	t.Run("Loads From Repository Then Memory", func(t *testing.T) {
		repo := newFakeTemplateRepository(gad7Definition())
		cache := newFakeTemplateCache()
		uc := NewAssessmentUsecase(repo, cache, templates.NewCache(), nil, zap.NewNop())

		first, err := uc.GetTemplate(ctx, "gad-7", "1.0.0")
		require.NoError(t, err)
		second, err := uc.GetTemplate(ctx, "gad-7", "1.0.0")
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, 1, repo.findCalls)
		assert.Contains(t, cache.definitions, "gad-7@1.0.0", "redis should be populated after a repository hit")
	})

	t.Run("Served From Redis", func(t *testing.T) {
		repo := newFakeTemplateRepository()
		cache := newFakeTemplateCache()
		require.NoError(t, cache.SetTemplateDefinition(ctx, func() *models.TemplateDefinition { d := gad7Definition(); return &d }()))
		uc := NewAssessmentUsecase(repo, cache, nil, nil, zap.NewNop())

		tmpl, err := uc.GetTemplate(ctx, "gad-7", "1.0.0")
		require.NoError(t, err)
		assert.Equal(t, 7, tmpl.ItemCount())
		assert.Equal(t, 0, repo.findCalls)
	})

	t.Run("Redis Failure Falls Back To Repository", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		repo := newFakeTemplateRepository(gad7Definition())
		cache := newFakeTemplateCache()
		cache.getErr = errors.New("connection refused")
		uc := NewAssessmentUsecase(repo, cache, nil, nil, zap.New(core))

		tmpl, err := uc.GetTemplate(ctx, "gad-7", "1.0.0")
		require.NoError(t, err)
		assert.Equal(t, "gad-7@1.0.0", tmpl.Key())
		assert.Equal(t, 1, repo.findCalls)
		assert.Equal(t, 1, logs.FilterMessage("assessmentUsecase.findCachedDefinition redis lookup failed").Len())
	})

	t.Run("Without Redis", func(t *testing.T) {
		repo := newFakeTemplateRepository(gad7Definition())
		uc := NewAssessmentUsecase(repo, nil, nil, nil, zap.NewNop())

		_, err := uc.GetTemplate(ctx, "gad-7", "1.0.0")
		require.NoError(t, err)
	})

	t.Run("Not Found", func(t *testing.T) {
		uc := NewAssessmentUsecase(newFakeTemplateRepository(), newFakeTemplateCache(), nil, nil, zap.NewNop())

		tmpl, err := uc.GetTemplate(ctx, "gad-7", "9.9.9")
		assert.Nil(t, tmpl)

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("Repository Error", func(t *testing.T) {
		repo := newFakeTemplateRepository()
		repo.findErr = exceptions.ErrMongoDBFindDocument(errors.New("timeout"))
		uc := NewAssessmentUsecase(repo, nil, nil, nil, zap.NewNop())

		_, err := uc.GetTemplate(ctx, "gad-7", "1.0.0")
		assert.Error(t, err)
	})

	t.Run("Invalid Stored Definition", func(t *testing.T) {
		def := gad7Definition()
		def.Scoring.Method = "median"
		uc := NewAssessmentUsecase(newFakeTemplateRepository(def), nil, nil, nil, zap.NewNop())

		_, err := uc.GetTemplate(ctx, "gad-7", "1.0.0")

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode)
	})

	t.Run("Concurrent Lookups Share One Template", func(t *testing.T) {
		repo := newFakeTemplateRepository(gad7Definition())
		uc := NewAssessmentUsecase(repo, nil, nil, nil, zap.NewNop())

		results := make([]*templates.Template, 16)
		var wg sync.WaitGroup
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				tmpl, err := uc.GetTemplate(ctx, "gad-7", "1.0.0")
				assert.NoError(t, err)
				results[i] = tmpl
			}(i)
		}
		wg.Wait()

		for _, tmpl := range results {
			assert.Same(t, results[0], tmpl)
		}
	})
}

func TestGetTemplate_CancelledCallerDoesNotAbortSharedLoad(t *testing.T) {
	repo := newFakeTemplateRepository(gad7Definition())
	repo.entered = make(chan struct{}, 1)
	repo.release = make(chan struct{})
	uc := NewAssessmentUsecase(repo, nil, nil, nil, zap.NewNop())

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := uc.GetTemplate(firstCtx, "gad-7", "1.0.0")
		firstErr <- err
	}()

	select {
	case <-repo.entered:
	case <-time.After(time.Second):
		t.Fatal("repository lookup never started")
	}

	cancelFirst()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting on the shared load")
	}

	close(repo.release)

	tmpl, err := uc.GetTemplate(context.Background(), "gad-7", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "gad-7@1.0.0", tmpl.Key())
	assert.Equal(t, 1, repo.findCalls)
}

func TestSeedTemplate(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores And Evicts", func(t *testing.T) {
		repo := newFakeTemplateRepository()
		cache := newFakeTemplateCache()
		uc := NewAssessmentUsecase(repo, cache, nil, nil, zap.NewNop())

		err := uc.SeedTemplate(ctx, gad7Definition())
		require.NoError(t, err)

		assert.Contains(t, repo.definitions, "gad-7@1.0.0")
		assert.Equal(t, []string{"gad-7@1.0.0"}, cache.deleted)
	})

	t.Run("Rejects Invalid Definition", func(t *testing.T) {
		repo := newFakeTemplateRepository()
		uc := NewAssessmentUsecase(repo, nil, nil, nil, zap.NewNop())

		def := gad7Definition()
		def.Items = nil
		err := uc.SeedTemplate(ctx, def)

		assert.Error(t, err)
		assert.Empty(t, repo.definitions)
	})

	t.Run("Holds Seed Lock", func(t *testing.T) {
		repo := newFakeTemplateRepository()
		locker := &fakeLocker{held: map[string]string{}}
		uc := NewAssessmentUsecase(repo, nil, nil, locker, zap.NewNop())

		require.NoError(t, uc.SeedTemplate(ctx, gad7Definition()))

		assert.Equal(t, []string{constvars.RedisKeyPrefixSeedLock + "gad-7@1.0.0"}, locker.unlocked)
		assert.Empty(t, locker.held)
	})

	t.Run("Locked By Another Seeder", func(t *testing.T) {
		repo := newFakeTemplateRepository()
		locker := &fakeLocker{held: map[string]string{constvars.RedisKeyPrefixSeedLock + "gad-7@1.0.0": "other"}}
		uc := NewAssessmentUsecase(repo, nil, nil, locker, zap.NewNop())

		err := uc.SeedTemplate(ctx, gad7Definition())

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
		assert.Empty(t, repo.definitions)
	})
}
