package store

import (
	"context"

	"docstore/src/helpers"
	"docstore/src/settings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"go.uber.org/zap"
)

// Connection represents a live handle to a MongoDB database
type Connection struct {
	ID       string
	Database *mongo.Database
	client   *mongo.Client
	logger   *zap.SugaredLogger
}

// Connect establishes a client connection from the given connection string
// and selects the default database encoded in it (or the one overridden in
// settings). Parse and dial failures come straight from the driver.
func Connect(ctx context.Context, uri string, logger *zap.SugaredLogger) (*Connection, error) {
	args := settings.GetSettings()

	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, err
	}

	dbName := cs.Database
	if args.DatabaseName != "" {
		dbName = args.DatabaseName
	}
	if dbName == "" {
		return nil, ErrNoDefaultDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// mongo.Connect does not dial eagerly, so ping to surface an
	// unreachable server now rather than on the first operation.
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	conn := &Connection{
		ID:       helpers.GenerateUUID(),
		Database: client.Database(dbName),
		client:   client,
		logger:   logger,
	}

	if args.Debug {
		logger.Debugf("connection %s established to database '%s'", conn.ID, dbName)
	}

	return conn, nil
}

// Close releases all underlying network resources. Operations issued on the
// database handle afterwards fail with driver errors, passed through as-is.
func (c *Connection) Close(ctx context.Context) error {
	args := settings.GetSettings()
	if args.Debug {
		c.logger.Debugf("closing connection %s", c.ID)
	}
	return c.client.Disconnect(ctx)
}
