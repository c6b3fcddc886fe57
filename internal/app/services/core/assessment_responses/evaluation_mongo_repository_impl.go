package assessmentResponses

import (
	"context"
	"konsulin-assessment-engine/internal/app/contracts"
	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/pkg/constvars"
	"konsulin-assessment-engine/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type EvaluationMongoRepository struct {
	Collection *mongo.Collection
}

func NewEvaluationMongoRepository(db *mongo.Client, dbName string) contracts.EvaluationRepository {
	return &EvaluationMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.CollectionAssessmentEvaluations),
	}
}

func (repo *EvaluationMongoRepository) CreateEvaluation(ctx context.Context, record *models.EvaluationRecord) error {
	_, err := repo.Collection.InsertOne(ctx, record)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *EvaluationMongoRepository) FindEvaluationByID(ctx context.Context, evaluationID string) (*models.EvaluationRecord, error) {
	var record models.EvaluationRecord
	err := repo.Collection.FindOne(ctx, bson.M{"_id": evaluationID}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &record, nil
}
