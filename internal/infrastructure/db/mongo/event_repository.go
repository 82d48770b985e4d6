package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/legalaid/practice-api/internal/core/domain"
	"github.com/legalaid/practice-api/internal/core/ports"
)

const collectionEvents = "events"

// EventRepository implements ports.EventRepository using MongoDB. Client
// references are stored as ObjectIDs and expanded with a $lookup on users.
type EventRepository struct {
	col *mongo.Collection
	now func() time.Time
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents), now: time.Now}
}

// Collection returns the name of the backing collection.
func (r *EventRepository) Collection() string { return r.col.Name() }

var _ ports.EventRepository = (*EventRepository)(nil)

type eventDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Title       string               `bson:"title"`
	Date        string               `bson:"date"`
	Description string               `bson:"description,omitempty"`
	Clients     []primitive.ObjectID `bson:"clients"`
	CreatedBy   primitive.ObjectID   `bson:"createdBy"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

// expandedEventDoc is an event after the client $lookup stage.
type expandedEventDoc struct {
	eventDoc       `bson:",inline"`
	ClientAccounts []clientSummaryDoc `bson:"clientAccounts"`
}

type clientSummaryDoc struct {
	ID    primitive.ObjectID `bson:"_id"`
	Name  string             `bson:"name"`
	Email string             `bson:"email"`
}

func (d *expandedEventDoc) toDomain() *domain.Event {
	e := &domain.Event{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Date:        d.Date,
		Description: d.Description,
		ClientIDs:   make([]string, 0, len(d.Clients)),
		Clients:     make([]domain.ClientSummary, 0, len(d.ClientAccounts)),
		OwnerID:     d.CreatedBy.Hex(),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	for _, id := range d.Clients {
		e.ClientIDs = append(e.ClientIDs, id.Hex())
	}

	// $lookup does not preserve the order of the local array.
	byID := make(map[primitive.ObjectID]clientSummaryDoc, len(d.ClientAccounts))
	for _, c := range d.ClientAccounts {
		byID[c.ID] = c
	}
	for _, id := range d.Clients {
		if c, ok := byID[id]; ok {
			e.Clients = append(e.Clients, domain.ClientSummary{ID: c.ID.Hex(), Name: c.Name, Email: c.Email})
		}
	}
	return e
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	owner, err := primitive.ObjectIDFromHex(e.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("create event: invalid owner id %q", e.OwnerID)
	}

	now := r.now().UTC()
	doc := eventDoc{
		Title:       e.Title,
		Date:        e.Date,
		Description: e.Description,
		Clients:     objectIDs(e.ClientIDs),
		CreatedBy:   owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	insertCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	res, err := r.col.InsertOne(insertCtx, doc)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	return r.findExpanded(ctx, bson.M{"_id": res.InsertedID, "createdBy": owner})
}

// ListByOwner returns the owner's events ordered by date ascending.
func (r *EventRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return []*domain.Event{}, nil
	}
	return r.aggregate(ctx, bson.M{"createdBy": owner})
}

func (r *EventRepository) Update(ctx context.Context, id, ownerID string, f ports.EventFields) (*domain.Event, error) {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return nil, domain.ErrEventNotFound
	}

	set := bson.M{
		"title":     f.Title,
		"date":      f.Date,
		"clients":   objectIDs(f.ClientIDs),
		"updatedAt": r.now().UTC(),
	}
	update := bson.M{"$set": set}
	if f.Description == "" {
		update["$unset"] = bson.M{"description": ""}
	} else {
		set["description"] = f.Description
	}

	updateCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	res, err := r.col.UpdateOne(updateCtx, filter, update)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrEventNotFound
	}

	return r.findExpanded(ctx, filter)
}

func (r *EventRepository) Delete(ctx context.Context, id, ownerID string) error {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// RemoveClientRefs pulls clientID from the clients array of every event.
func (r *EventRepository) RemoveClientRefs(ctx context.Context, clientID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(clientID)
	if err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		bson.M{"clients": oid},
		bson.M{"$pull": bson.M{"clients": oid}},
	)
	if err != nil {
		return 0, fmt.Errorf("remove client refs: %w", err)
	}
	return res.ModifiedCount, nil
}

// EnsureIndexes creates the owner/date index used by ListByOwner and the
// clients index used by RemoveClientRefs.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdBy", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "clients", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *EventRepository) findExpanded(ctx context.Context, filter bson.M) (*domain.Event, error) {
	events, err := r.aggregate(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		// Deleted between the write and the read-back.
		return nil, domain.ErrEventNotFound
	}
	return events[0], nil
}

func (r *EventRepository) aggregate(ctx context.Context, match bson.M) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionUsers,
			"localField":   "clients",
			"foreignField": "_id",
			"as":           "clientAccounts",
		}}},
		{{Key: "$project", Value: bson.M{
			"clientAccounts.password": 0,
			"clientAccounts.role":     0,
			"clientAccounts.username": 0,
			"clientAccounts.status":   0,
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline, options.Aggregate())
	if err != nil {
		return nil, fmt.Errorf("aggregate events: %w", err)
	}
	var docs []expandedEventDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	out := make([]*domain.Event, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func ownedFilter(id, ownerID string) (bson.M, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": oid, "createdBy": owner}, true
}
