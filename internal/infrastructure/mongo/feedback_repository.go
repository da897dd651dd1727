package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/feedbackpro/api/internal/feedback/application"
	"github.com/sngm3741/feedbackpro/api/internal/feedback/domain"
)

// FeedbackRepository はフィードバックコレクションを扱うリポジトリ。
type FeedbackRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewFeedbackRepository binds the repository to a collection of db.
func NewFeedbackRepository(db *mongo.Database, collectionName string) *FeedbackRepository {
	return &FeedbackRepository{collection: db.Collection(collectionName), now: time.Now}
}

// Create assigns the id and createdAt, then inserts the record.
func (r *FeedbackRepository) Create(ctx context.Context, submission *domain.Submission) error {
	if submission == nil {
		return errors.New("feedback payload is nil")
	}
	doc := mapSubmissionToDocument(submission)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = r.now().UTC()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	submission.ID = doc.ID.Hex()
	submission.CreatedAt = doc.CreatedAt
	return nil
}

// List は全件を createdAt 降順で返す。ページングはしない。
func (r *FeedbackRepository) List(ctx context.Context) ([]domain.Submission, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]domain.Submission, 0)
	for cursor.Next(ctx) {
		var doc FeedbackDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		record, err := mapFeedbackDocument(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *FeedbackRepository) FindByID(ctx context.Context, id string) (*domain.Submission, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc FeedbackDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, application.ErrNotFound
		}
		return nil, err
	}
	record, err := mapFeedbackDocument(doc)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes the record. Unknown or malformed ids yield application.ErrNotFound.
func (r *FeedbackRepository) Delete(ctx context.Context, id string) error {
	objectID, err := parseObjectID(id)
	if err != nil {
		return err
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return application.ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the dashboard and seed tooling rely on.
func (r *FeedbackRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_feedback_created"),
		},
		{
			Keys:    bson.D{{Key: "dateOfExperience", Value: 1}},
			Options: options.Index().SetName("idx_feedback_experienced"),
		},
		{
			Keys:    bson.D{{Key: "overallExperience", Value: 1}},
			Options: options.Index().SetName("idx_feedback_overall"),
		},
	})
	return err
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", application.ErrNotFound, id)
	}
	return objectID, nil
}
