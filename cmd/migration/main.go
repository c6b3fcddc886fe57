package main

import (
	"context"
	"fmt"
	"konsulin-assessment-engine/internal/app/config"
	"konsulin-assessment-engine/internal/app/drivers/database"
	"konsulin-assessment-engine/internal/app/drivers/logger"
	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/app/services/core/assessments"
	"konsulin-assessment-engine/internal/app/services/core/templates"
	"konsulin-assessment-engine/internal/app/services/shared/locker"
	"konsulin-assessment-engine/internal/app/services/shared/redis"
	"konsulin-assessment-engine/internal/pkg/constvars"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "migration",
		Short:        "Database maintenance for the assessment engine",
		SilenceUsage: true,
	}
	root.AddCommand(newSeedCommand())
	return root
}

func newSeedCommand() *cobra.Command {
	var (
		dir     string
		dryRun  bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load template definitions from a directory into MongoDB",
		Long: `Reads every .yaml, .yml and .json definition in the directory, validates it
and upserts it keyed by id and version. Cached copies in Redis are evicted so
running services pick up the new definition on their next miss.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			definitions, err := templates.LoadDefinitionDir(dir)
			if err != nil {
				return err
			}
			if len(definitions) == 0 {
				return fmt.Errorf("no template definitions found in %s", dir)
			}

			if dryRun {
				for _, definition := range definitions {
					template, err := templates.NewTemplate(definition)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "valid %s (%d items)\n", template.Key(), template.ItemCount())
				}
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return seed(ctx, cmd, definitions)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "definitions", "directory holding template definitions")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate definitions without writing them")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "overall time limit for seeding")
	return cmd
}

func seed(ctx context.Context, cmd *cobra.Command, definitions []models.TemplateDefinition) error {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	log := logger.NewZapLogger(driverConfig, internalConfig)
	defer log.Sync()

	mongoDB := database.NewMongoDB(driverConfig)
	defer mongoDB.Disconnect(context.Background())
	redisClient := database.NewRedisClient(driverConfig)
	defer redisClient.Close()

	redisRepository := redis.NewRedisRepository(redisClient)
	templateRepository := assessments.NewAssessmentTemplateMongoRepository(mongoDB, driverConfig.MongoDB.DbName)
	if err := templateRepository.EnsureIndexes(ctx); err != nil {
		return err
	}
	assessmentUsecase := assessments.NewAssessmentUsecase(
		templateRepository,
		assessments.NewAssessmentTemplateRedisCache(redisRepository, internalConfig.Template.CacheTTL),
		nil,
		locker.NewLockService(redisRepository, log),
		log,
	)

	for _, definition := range definitions {
		if err := assessmentUsecase.SeedTemplate(ctx, definition); err != nil {
			log.Error("Failed to seed template",
				zap.String(constvars.LoggingTemplateIDKey, definition.ID),
				zap.String(constvars.LoggingTemplateVersionKey, definition.Version),
				zap.Error(err),
			)
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %s\n", templates.Key(definition.ID, definition.Version))
	}
	return nil
}
