package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	isoerrors "github.com/isotrack/isotrack/pkg/errors"
)

// Collection names.
const (
	diagramsCollection = "diagrams"
	linksCollection    = "diagram_links"
	flowsCollection    = "flows"
)

// MongoStore is a MongoDB-backed Store.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	now    func() time.Time
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI      string
	Database string
}

// NewMongo connects to MongoDB and verifies the connection with a ping.
func NewMongo(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, isoerrors.Wrap(isoerrors.ErrCodeStorage, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, isoerrors.Wrap(isoerrors.ErrCodeStorage, err, "ping mongodb")
	}

	return &MongoStore{
		client: client,
		db:     client.Database(cfg.Database),
		now:    time.Now,
	}, nil
}

// ListDiagrams returns every diagram ordered by creation time.
func (s *MongoStore) ListDiagrams(ctx context.Context) ([]Diagram, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.db.Collection(diagramsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, isoerrors.Wrap(isoerrors.ErrCodeStorage, err, "list diagrams")
	}
	defer cur.Close(ctx)

	var out []Diagram
	if err := cur.All(ctx, &out); err != nil {
		return nil, isoerrors.Wrap(isoerrors.ErrCodeStorage, err, "decode diagrams")
	}
	return out, nil
}

// GetDiagram returns a diagram by ID.
func (s *MongoStore) GetDiagram(ctx context.Context, id string) (*Diagram, error) {
	var d Diagram
	err := s.db.Collection(diagramsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, NotFoundDiagram(id)
	}
	if err != nil {
		return nil, isoerrors.Wrap(isoerrors.ErrCodeStorage, err, "get diagram %s", id)
	}
	return &d, nil
}

// PutDiagram upserts a diagram, stamping CreatedAt on first write and
// UpdatedAt on every write.
func (s *MongoStore) PutDiagram(ctx context.Context, d *Diagram) error {
	now := s.now()
	d.UpdatedAt = now

	update := bson.M{
		"$set": bson.M{
			"name":        d.Name,
			"code":        d.Code,
			"type":        d.Type,
			"description": d.Description,
			"company_id":  d.CompanyID,
			"data":        d.Data,
			"svg_export":  d.SVGExport,
			"updated_at":  d.UpdatedAt,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}

	_, err := s.db.Collection(diagramsCollection).
		UpdateOne(ctx, bson.M{"_id": d.ID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return isoerrors.Wrap(isoerrors.ErrCodeStorage, err, "put diagram %s", d.ID)
	}
	return nil
}

// DeleteDiagram removes a diagram and its links.
func (s *MongoStore) DeleteDiagram(ctx context.Context, id string) error {
	res, err := s.db.Collection(diagramsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return isoerrors.Wrap(isoerrors.ErrCodeStorage, err, "delete diagram %s", id)
	}
	if res.DeletedCount == 0 {
		return NotFoundDiagram(id)
	}
	_, _ = s.db.Collection(linksCollection).DeleteOne(ctx, bson.M{"_id": id})
	return nil
}

// linkDoc stores a diagram's artifact links as one document.
type linkDoc struct {
	ID    string `bson:"_id"`
	Links []Link `bson:"links"`
}

// DiagramLinks returns the artifact links of a diagram.
func (s *MongoStore) DiagramLinks(ctx context.Context, diagramID string) ([]Link, error) {
	if _, err := s.GetDiagram(ctx, diagramID); err != nil {
		return nil, err
	}

	var doc linkDoc
	err := s.db.Collection(linksCollection).FindOne(ctx, bson.M{"_id": diagramID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, isoerrors.Wrap(isoerrors.ErrCodeStorage, err, "get links for %s", diagramID)
	}
	return doc.Links, nil
}

// PutDiagramLinks replaces the artifact links of a diagram.
func (s *MongoStore) PutDiagramLinks(ctx context.Context, diagramID string, links []Link) error {
	if _, err := s.GetDiagram(ctx, diagramID); err != nil {
		return err
	}

	_, err := s.db.Collection(linksCollection).
		ReplaceOne(ctx, bson.M{"_id": diagramID}, linkDoc{ID: diagramID, Links: links},
			options.Replace().SetUpsert(true))
	if err != nil {
		return isoerrors.Wrap(isoerrors.ErrCodeStorage, err, "put links for %s", diagramID)
	}
	return nil
}

// ListFlows returns every flow ordered by creation time.
func (s *MongoStore) ListFlows(ctx context.Context) ([]Flow, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.db.Collection(flowsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, isoerrors.Wrap(isoerrors.ErrCodeStorage, err, "list flows")
	}
	defer cur.Close(ctx)

	var out []Flow
	if err := cur.All(ctx, &out); err != nil {
		return nil, isoerrors.Wrap(isoerrors.ErrCodeStorage, err, "decode flows")
	}
	return out, nil
}

// GetFlow returns a flow by ID.
func (s *MongoStore) GetFlow(ctx context.Context, id string) (*Flow, error) {
	var f Flow
	err := s.db.Collection(flowsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, NotFoundFlow(id)
	}
	if err != nil {
		return nil, isoerrors.Wrap(isoerrors.ErrCodeStorage, err, "get flow %s", id)
	}
	return &f, nil
}

// PutFlow upserts a flow record.
func (s *MongoStore) PutFlow(ctx context.Context, f *Flow) error {
	now := s.now()
	f.UpdatedAt = now

	update := bson.M{
		"$set": bson.M{
			"title":            f.Title,
			"description":      f.Description,
			"type":             f.Type,
			"tags":             f.Tags,
			"area":             f.Area,
			"visibility":       f.Visibility,
			"visibility_roles": f.VisibilityRoles,
			"company_id":       f.CompanyID,
			"data":             f.Data,
			"updated_at":       f.UpdatedAt,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}

	_, err := s.db.Collection(flowsCollection).
		UpdateOne(ctx, bson.M{"_id": f.ID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return isoerrors.Wrap(isoerrors.ErrCodeStorage, err, "put flow %s", f.ID)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
