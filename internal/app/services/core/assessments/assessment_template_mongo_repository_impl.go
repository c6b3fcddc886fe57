package assessments

import (
	"context"
	"konsulin-assessment-engine/internal/app/contracts"
	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/pkg/constvars"
	"konsulin-assessment-engine/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AssessmentTemplateMongoRepository struct {
	Collection *mongo.Collection
}

func NewAssessmentTemplateMongoRepository(db *mongo.Client, dbName string) contracts.AssessmentTemplateRepository {
	return &AssessmentTemplateMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.CollectionAssessmentTemplates),
	}
}

func templateFilter(templateID, templateVersion string) bson.M {
	return bson.M{"id": templateID, "version": templateVersion}
}

func (repo *AssessmentTemplateMongoRepository) FindTemplate(ctx context.Context, templateID, templateVersion string) (*models.TemplateDefinition, error) {
	var definition models.TemplateDefinition
	err := repo.Collection.FindOne(ctx, templateFilter(templateID, templateVersion)).Decode(&definition)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &definition, nil
}

func (repo *AssessmentTemplateMongoRepository) UpsertTemplate(ctx context.Context, definition *models.TemplateDefinition) error {
	_, err := repo.Collection.ReplaceOne(
		ctx,
		templateFilter(definition.ID, definition.Version),
		definition,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *AssessmentTemplateMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := repo.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}, {Key: "version", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("template_id_version_unique"),
	})
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
