package store

import (
	"context"
	"errors"

	"docstore/src/settings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go.uber.org/zap"
)

// driverCollection is the slice of the driver's collection surface this
// package uses. *mongo.Collection satisfies it.
type driverCollection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) *mongo.SingleResult
	FindOneAndDelete(ctx context.Context, filter interface{}, opts ...*options.FindOneAndDeleteOptions) *mongo.SingleResult
	UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// CollectionConfig holds the optional per-collection defaults and hooks.
// Defaults keys must be fields of the collection's document shape; values
// are overlaid shallowly, never deep-merged.
type CollectionConfig struct {
	Defaults Document
	Hooks    Hooks
}

// Factory binds a database handle to the collections derived from it.
type Factory struct {
	db       *mongo.Database
	logger   *zap.SugaredLogger
	settings *settings.Arguments
}

func NewFactory(db *mongo.Database, logger *zap.SugaredLogger, args *settings.Arguments) *Factory {
	return &Factory{
		db:       db,
		logger:   logger,
		settings: args,
	}
}

// Collection binds a collection name plus configuration to the database
// handle. It does not touch the database: no existence check, no schema
// creation. The configuration is copied in and immutable afterwards.
func (f *Factory) Collection(name string, config *CollectionConfig) (*Collection, error) {
	if name == "" {
		return nil, ErrEmptyCollectionName
	}

	c := &Collection{
		name:     name,
		coll:     f.db.Collection(name),
		logger:   f.logger,
		settings: f.settings,
	}
	if config != nil {
		c.defaults = copyDocument(config.Defaults)
		c.hooks = config.Hooks
	}
	return c, nil
}

// Collection is a stateless accessor over one named collection. It holds no
// per-operation state, so a single value is safe for concurrent use; any
// consistency guarantees across concurrent operations are exactly the
// driver's.
type Collection struct {
	name     string
	coll     driverCollection
	defaults Document
	hooks    Hooks
	logger   *zap.SugaredLogger
	settings *settings.Arguments
}

func (c *Collection) Name() string {
	return c.name
}

// CreateOne inserts the input with the collection defaults overlaid
// (input fields win) and returns the created document, identifier included.
// The after-create hook is awaited before return; if it fails, the call
// reports a *HookError even though the insert has committed.
func (c *Collection) CreateOne(ctx context.Context, input Document) (Document, error) {
	doc := overlayDefaults(c.defaults, input)

	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	if res == nil || res.InsertedID == nil {
		return nil, ErrNoDocumentCreated
	}
	doc["_id"] = res.InsertedID

	if c.settings.Debug {
		c.logger.Debugf("collection '%s': created document %v", c.name, doc["_id"])
	}

	if err := c.runHook(ctx, "create", c.hooks.AfterCreate, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// CreateMany inserts every input with defaults overlaid and returns the
// assigned identifiers in the order the driver reports them (its documented
// insertion order). The bulk path invokes no hook: firing N hook calls
// synchronously would make bulk inserts scale linearly with no escape
// hatch, so observability is traded for throughput here.
func (c *Collection) CreateMany(ctx context.Context, inputs []Document) ([]interface{}, error) {
	docs := make([]interface{}, 0, len(inputs))
	for _, input := range inputs {
		docs = append(docs, overlayDefaults(c.defaults, input))
	}

	res, err := c.coll.InsertMany(ctx, docs)
	if err != nil {
		return nil, err
	}

	if c.settings.Debug {
		c.logger.Debugf("collection '%s': created %d documents", c.name, len(res.InsertedIDs))
	}
	return res.InsertedIDs, nil
}

// ReadOne returns the first document matching the query, or nil if none does.
func (c *Collection) ReadOne(ctx context.Context, query Document) (Document, error) {
	var doc Document
	err := c.coll.FindOne(ctx, query).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ReadMany returns every document matching the query in driver order, or an
// empty slice if none does.
func (c *Collection) ReadMany(ctx context.Context, query Document) ([]Document, error) {
	cursor, err := c.coll.Find(ctx, query)
	if err != nil {
		return nil, err
	}

	docs := []Document{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// UpdateOne merges the partial update into the single document matched by
// the query and returns the post-update image, or nil if nothing matched.
// The whole document is never replaced. The after-update hook is awaited
// only when a document was found.
func (c *Collection) UpdateOne(ctx context.Context, query Document, update Document) (Document, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc Document
	err := c.coll.FindOneAndUpdate(ctx, query, bson.M{"$set": update}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if c.settings.Debug {
		c.logger.Debugf("collection '%s': updated document %v", c.name, doc["_id"])
	}

	if err := c.runHook(ctx, "update", c.hooks.AfterUpdate, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// DeleteOne removes the single document matched by the query and returns its
// pre-deletion image, or nil if nothing matched. The after-delete hook is
// awaited only when a document was found.
func (c *Collection) DeleteOne(ctx context.Context, query Document) (Document, error) {
	var doc Document
	err := c.coll.FindOneAndDelete(ctx, query).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if c.settings.Debug {
		c.logger.Debugf("collection '%s': deleted document %v", c.name, doc["_id"])
	}

	if err := c.runHook(ctx, "delete", c.hooks.AfterDelete, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// UpdateMany merges the partial update into every document matched by the
// query and returns the matched count, which may exceed the number actually
// changed. No hook fires on the bulk path.
func (c *Collection) UpdateMany(ctx context.Context, query Document, update Document) (int64, error) {
	res, err := c.coll.UpdateMany(ctx, query, bson.M{"$set": update})
	if err != nil {
		return 0, err
	}

	if c.settings.Debug {
		c.logger.Debugf("collection '%s': updated %d documents", c.name, res.MatchedCount)
	}
	return res.MatchedCount, nil
}

// DeleteMany removes every document matched by the query and returns the
// deleted count. No hook fires on the bulk path.
func (c *Collection) DeleteMany(ctx context.Context, query Document) (int64, error) {
	res, err := c.coll.DeleteMany(ctx, query)
	if err != nil {
		return 0, err
	}

	if c.settings.Debug {
		c.logger.Debugf("collection '%s': deleted %d documents", c.name, res.DeletedCount)
	}
	return res.DeletedCount, nil
}

func (c *Collection) runHook(ctx context.Context, op string, hook Hook, doc Document) error {
	if hook == nil {
		return nil
	}
	if err := hook(ctx, doc); err != nil {
		return &HookError{Op: op, Err: err}
	}
	return nil
}
