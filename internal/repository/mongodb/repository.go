package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
	"github.com/sebaaaap/Dashboard-prueba1/internal/repository"
)

// MongoDBRepository implements repository.Store on top of three MongoDB collections.
type MongoDBRepository struct {
	client   *mongo.Client
	days     *mongo.Collection
	services *mongo.Collection
	costs    *mongo.Collection
	logger   *zap.Logger
}

var _ repository.Store = (*MongoDBRepository)(nil)

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string, logger *zap.Logger) (*MongoDBRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(dbName)
	logger.Info("connected to mongodb", zap.String("database", dbName))

	return &MongoDBRepository{
		client:   client,
		days:     db.Collection(repository.DaysCollection),
		services: db.Collection(repository.ServicesCollection),
		costs:    db.Collection(repository.CostsCollection),
		logger:   logger,
	}, nil
}

// EnsureIndexes creates the unique date index on days and the lookup indexes on lines.
func (r *MongoDBRepository) EnsureIndexes(ctx context.Context) error {
	if _, err := r.days.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "fecha", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_fecha"),
	}); err != nil {
		return fmt.Errorf("%w: create days index: %w", models.ErrStore, err)
	}

	lineIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "fecha", Value: 1}}},
		{Keys: bson.D{{Key: "dia_id", Value: 1}}},
	}
	for _, coll := range []*mongo.Collection{r.services, r.costs} {
		if _, err := coll.Indexes().CreateMany(ctx, lineIndexes); err != nil {
			return fmt.Errorf("%w: create %s indexes: %w", models.ErrStore, coll.Name(), err)
		}
	}

	return nil
}

// InsertDay stores an operating day and returns its hex identifier.
func (r *MongoDBRepository) InsertDay(ctx context.Context, day *models.OperatingDay) (string, error) {
	res, err := r.days.InsertOne(ctx, day)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%w: day %s already stored", models.ErrValidation, day.Date.Format("2006-01-02"))
		}
		return "", fmt.Errorf("%w: insert day: %w", models.ErrStore, err)
	}
	return insertedHex(res)
}

// InsertService stores a service line.
func (r *MongoDBRepository) InsertService(ctx context.Context, line *models.ServiceLine) (string, error) {
	res, err := r.services.InsertOne(ctx, line)
	if err != nil {
		return "", fmt.Errorf("%w: insert service line: %w", models.ErrStore, err)
	}
	return insertedHex(res)
}

// InsertCost stores a cost line.
func (r *MongoDBRepository) InsertCost(ctx context.Context, line *models.CostLine) (string, error) {
	res, err := r.costs.InsertOne(ctx, line)
	if err != nil {
		return "", fmt.Errorf("%w: insert cost line: %w", models.ErrStore, err)
	}
	return insertedHex(res)
}

// FindDays returns the operating days matching the query.
func (r *MongoDBRepository) FindDays(ctx context.Context, q repository.DayQuery) ([]models.OperatingDay, error) {
	cursor, err := r.days.Find(ctx, dayFilter(q), dayFindOptions(q))
	if err != nil {
		return nil, fmt.Errorf("%w: find days: %w", models.ErrStore, err)
	}

	days := make([]models.OperatingDay, 0)
	if err := cursor.All(ctx, &days); err != nil {
		return nil, fmt.Errorf("%w: decode days: %w", models.ErrStore, err)
	}
	return days, nil
}

// FindServices returns the service lines matching the query.
func (r *MongoDBRepository) FindServices(ctx context.Context, q repository.LineQuery) ([]models.ServiceLine, error) {
	cursor, err := r.services.Find(ctx, lineFilter(q), lineFindOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: find service lines: %w", models.ErrStore, err)
	}

	lines := make([]models.ServiceLine, 0)
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, fmt.Errorf("%w: decode service lines: %w", models.ErrStore, err)
	}
	return lines, nil
}

// FindCosts returns the cost lines matching the query.
func (r *MongoDBRepository) FindCosts(ctx context.Context, q repository.LineQuery) ([]models.CostLine, error) {
	cursor, err := r.costs.Find(ctx, lineFilter(q), lineFindOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: find cost lines: %w", models.ErrStore, err)
	}

	lines := make([]models.CostLine, 0)
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, fmt.Errorf("%w: decode cost lines: %w", models.ErrStore, err)
	}
	return lines, nil
}

// ServiceTotals groups service lines with a $group stage.
func (r *MongoDBRepository) ServiceTotals(ctx context.Context, dr repository.DateRange, byMonth bool) ([]repository.ServiceTotal, error) {
	cursor, err := r.services.Aggregate(ctx, serviceTotalsPipeline(dr, byMonth))
	if err != nil {
		return nil, fmt.Errorf("%w: aggregate service lines: %w", models.ErrStore, err)
	}

	var rows []serviceTotalRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%w: decode service totals: %w", models.ErrStore, err)
	}

	out := make([]repository.ServiceTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, repository.ServiceTotal{
			Type:     row.ID.Type,
			Month:    time.Month(row.ID.Month),
			Quantity: row.Quantity,
			Revenue:  row.Revenue,
		})
	}
	return out, nil
}

// MonthTotals groups operating days per calendar month with a $group stage.
func (r *MongoDBRepository) MonthTotals(ctx context.Context, dr repository.DateRange) ([]repository.MonthTotal, error) {
	cursor, err := r.days.Aggregate(ctx, monthTotalsPipeline(dr))
	if err != nil {
		return nil, fmt.Errorf("%w: aggregate days: %w", models.ErrStore, err)
	}

	var rows []monthTotalRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%w: decode month totals: %w", models.ErrStore, err)
	}

	out := make([]repository.MonthTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, repository.MonthTotal{
			Year:     row.ID.Year,
			Month:    time.Month(row.ID.Month),
			Revenue:  row.Revenue,
			Costs:    row.Costs,
			Profit:   row.Profit,
			Services: row.Services,
			Days:     row.Days,
		})
	}
	return out, nil
}

// Ping checks that the server is reachable.
func (r *MongoDBRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("%w: ping: %w", models.ErrStore, err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func insertedHex(res *mongo.InsertOneResult) (string, error) {
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("%w: unexpected inserted id type %T", models.ErrStore, res.InsertedID)
	}
	return oid.Hex(), nil
}
