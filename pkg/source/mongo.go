package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/matzehuels/progresstwin/pkg/buildinfo"
	"github.com/matzehuels/progresstwin/pkg/cache"
	"github.com/matzehuels/progresstwin/pkg/errors"
	"github.com/matzehuels/progresstwin/pkg/matrix"
)

// Collection names read by [MongoLoader].
const (
	CollectionStructures = "structures"
	CollectionColumns    = "columns"
	CollectionRows       = "rows"
)

// DefaultMongoDatabase is used when the URI names no database.
const DefaultMongoDatabase = "progress"

// MongoLoader reads a dataset from the structures, columns and rows
// collections of a MongoDB database. Documents use the bson tags of the
// matrix types; ids are strings stored in _id.
type MongoLoader struct {
	// Timeout bounds one load attempt, connect included.
	Timeout time.Duration
	// Retry governs attempts after network failures and timeouts; the
	// zero value makes a single attempt.
	Retry cache.RetryPolicy
}

// NewMongoLoader returns a loader with a 30 second attempt timeout and
// [cache.DefaultRetry].
func NewMongoLoader() MongoLoader {
	return MongoLoader{Timeout: 30 * time.Second, Retry: cache.DefaultRetry}
}

// Type implements [Loader].
func (MongoLoader) Type() string { return "mongodb" }

// Supports implements [Loader].
func (MongoLoader) Supports(src string) bool {
	return strings.HasPrefix(src, "mongodb://") || strings.HasPrefix(src, "mongodb+srv://")
}

// Load implements [Loader]. Network failures and timeouts are retried
// under l.Retry.
func (l MongoLoader) Load(ctx context.Context, src string) (*matrix.Dataset, error) {
	db, err := databaseName(src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "mongodb uri")
	}

	var d *matrix.Dataset
	err = l.Retry.Do(ctx, func() error {
		var err error
		d, err = l.loadOnce(ctx, src, db)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "load %s", db)
	}
	return d, nil
}

func (l MongoLoader) loadOnce(ctx context.Context, uri, db string) (*matrix.Dataset, error) {
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetAppName(buildinfo.UserAgent()))
	if err != nil {
		return nil, classify(fmt.Errorf("connect: %w", err))
	}
	defer client.Disconnect(context.WithoutCancel(ctx))

	database := client.Database(db)
	var d matrix.Dataset
	if err := findAll(ctx, database.Collection(CollectionStructures), bson.D{{Key: "_id", Value: 1}}, &d.Structures); err != nil {
		return nil, err
	}
	if err := findAll(ctx, database.Collection(CollectionColumns), bson.D{{Key: "order_index", Value: 1}, {Key: "_id", Value: 1}}, &d.Columns); err != nil {
		return nil, err
	}
	if err := findAll(ctx, database.Collection(CollectionRows), bson.D{{Key: "structure_id", Value: 1}, {Key: "order_index", Value: 1}, {Key: "_id", Value: 1}}, &d.Rows); err != nil {
		return nil, err
	}
	return &d, nil
}

func findAll(ctx context.Context, coll *mongo.Collection, sort bson.D, out any) error {
	cur, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(sort))
	if err != nil {
		return classify(fmt.Errorf("find %s: %w", coll.Name(), err))
	}
	if err := cur.All(ctx, out); err != nil {
		return classify(fmt.Errorf("decode %s: %w", coll.Name(), err))
	}
	return nil
}

// classify marks transient driver errors retryable.
func classify(err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	return err
}

func databaseName(uri string) (string, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", err
	}
	if cs.Database == "" {
		return DefaultMongoDatabase, nil
	}
	return cs.Database, nil
}
