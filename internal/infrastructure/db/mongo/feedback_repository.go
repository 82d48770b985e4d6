package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/legalaid/practice-api/internal/core/domain"
	"github.com/legalaid/practice-api/internal/core/ports"
)

const collectionFeedback = "casefeedbacks"

// FeedbackRepository stores append-only case feedback.
type FeedbackRepository struct {
	col *mongo.Collection
}

func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{col: db.Collection(collectionFeedback)}
}

// Collection returns the name of the backing collection.
func (r *FeedbackRepository) Collection() string { return r.col.Name() }

var _ ports.FeedbackRepository = (*FeedbackRepository)(nil)

type feedbackDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Lawyer      primitive.ObjectID `bson:"lawyerId"`
	CaseType    string             `bson:"caseType"`
	SearchQuery domain.SearchQuery `bson:"searchQuery"`
	IsHappy     bool               `bson:"isHappy"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

type feedbackListDoc struct {
	feedbackDoc `bson:",inline"`
	LawyerInfo  []lawyerSummaryDoc `bson:"lawyerInfo"`
}

type lawyerSummaryDoc struct {
	ID    primitive.ObjectID `bson:"_id"`
	Name  string             `bson:"name"`
	Email string             `bson:"email"`
}

func (d *feedbackDoc) toDomain() *domain.CaseFeedback {
	return &domain.CaseFeedback{
		ID:          d.ID.Hex(),
		LawyerID:    d.Lawyer.Hex(),
		CaseType:    domain.CaseType(d.CaseType),
		SearchQuery: d.SearchQuery,
		IsHappy:     d.IsHappy,
		CreatedAt:   d.CreatedAt,
	}
}

func (r *FeedbackRepository) Insert(ctx context.Context, fb *domain.CaseFeedback) (*domain.CaseFeedback, error) {
	lawyer, err := primitive.ObjectIDFromHex(fb.LawyerID)
	if err != nil {
		return nil, fmt.Errorf("insert feedback: invalid lawyer id %q", fb.LawyerID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := feedbackDoc{
		Lawyer:      lawyer,
		CaseType:    string(fb.CaseType),
		SearchQuery: fb.SearchQuery,
		IsHappy:     fb.IsHappy,
		CreatedAt:   fb.CreatedAt,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert feedback: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

// Counts returns the total and happy counts in a single $group pass.
func (r *FeedbackRepository) Counts(ctx context.Context) (domain.FeedbackCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": 1},
			"happy": bson.M{"$sum": bson.M{"$cond": bson.A{"$isHappy", 1, 0}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return domain.FeedbackCounts{}, fmt.Errorf("aggregate feedback: %w", err)
	}
	var rows []struct {
		Total int64 `bson:"total"`
		Happy int64 `bson:"happy"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return domain.FeedbackCounts{}, fmt.Errorf("decode feedback counts: %w", err)
	}
	if len(rows) == 0 {
		return domain.FeedbackCounts{}, nil
	}
	return domain.FeedbackCounts{Total: rows[0].Total, Happy: rows[0].Happy}, nil
}

// ListRecent returns up to limit records, newest first, with the lawyer's
// name and email attached.
func (r *FeedbackRepository) ListRecent(ctx context.Context, limit int) ([]*domain.CaseFeedback, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionUsers,
			"localField":   "lawyerId",
			"foreignField": "_id",
			"as":           "lawyerInfo",
		}}},
		{{Key: "$project", Value: bson.M{
			"lawyerId":         1,
			"caseType":         1,
			"searchQuery":      1,
			"isHappy":          1,
			"createdAt":        1,
			"lawyerInfo._id":   1,
			"lawyerInfo.name":  1,
			"lawyerInfo.email": 1,
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate feedback list: %w", err)
	}
	var docs []feedbackListDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode feedback list: %w", err)
	}

	out := make([]*domain.CaseFeedback, 0, len(docs))
	for i := range docs {
		fb := docs[i].toDomain()
		if len(docs[i].LawyerInfo) > 0 {
			l := docs[i].LawyerInfo[0]
			fb.Lawyer = &domain.LawyerSummary{ID: l.ID.Hex(), Name: l.Name, Email: l.Email}
		}
		out = append(out, fb)
	}
	return out, nil
}

// EnsureIndexes creates the createdAt index backing ListRecent.
func (r *FeedbackRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	return err
}
