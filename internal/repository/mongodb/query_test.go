package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
	"github.com/sebaaaap/Dashboard-prueba1/internal/repository"
)

func TestDayFilter(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)

	t.Run("empty query matches everything", func(t *testing.T) {
		assert.Equal(t, bson.M{}, dayFilter(repository.DayQuery{}))
	})

	t.Run("closed range and state", func(t *testing.T) {
		filter := dayFilter(repository.DayQuery{Range: repository.Between(from, to), State: models.DayOpen})
		assert.Equal(t, bson.M{
			"fecha":  bson.M{"$gte": from, "$lte": to},
			"estado": models.DayOpen,
		}, filter)
	})

	t.Run("open upper bound", func(t *testing.T) {
		filter := dayFilter(repository.DayQuery{Range: repository.Since(from)})
		assert.Equal(t, bson.M{"fecha": bson.M{"$gte": from}}, filter)
	})
}

func TestDayFindOptions(t *testing.T) {
	opts := dayFindOptions(repository.DayQuery{Sort: repository.SortByRevenueDesc, Limit: 3})
	assert.Equal(t, bson.D{{Key: "ingresos_totales", Value: -1}, {Key: "fecha", Value: 1}}, opts.Sort)
	if assert.NotNil(t, opts.Limit) {
		assert.Equal(t, int64(3), *opts.Limit)
	}

	opts = dayFindOptions(repository.DayQuery{})
	assert.Equal(t, bson.D{{Key: "fecha", Value: 1}}, opts.Sort)
	assert.Nil(t, opts.Limit)
}

func TestLineFilter(t *testing.T) {
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	filter := lineFilter(repository.LineQuery{Range: repository.DateRange{To: &to}, DayID: "abc"})
	assert.Equal(t, bson.M{"fecha": bson.M{"$lte": to}, "dia_id": "abc"}, filter)
}

func TestServiceTotalsPipeline(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("by type over a range", func(t *testing.T) {
		p := serviceTotalsPipeline(repository.Since(from), false)
		require.Len(t, p, 3)
		assert.Equal(t, bson.D{{Key: "$match", Value: bson.M{"fecha": bson.M{"$gte": from}}}}, p[0])
		assert.Equal(t, bson.D{
			{Key: "_id", Value: bson.D{{Key: "tipo", Value: "$tipo_servicio"}}},
			{Key: "cantidad", Value: bson.D{{Key: "$sum", Value: "$cantidad"}}},
			{Key: "ingresos", Value: bson.D{{Key: "$sum", Value: "$ingresos"}}},
		}, p[1][0].Value)
		assert.Equal(t, bson.D{{Key: "$sort", Value: bson.D{{Key: "_id.tipo", Value: 1}}}}, p[2])
	})

	t.Run("by type and month without range", func(t *testing.T) {
		p := serviceTotalsPipeline(repository.DateRange{}, true)
		assert.Equal(t, bson.D{{Key: "$match", Value: bson.M{}}}, p[0])

		group := p[1][0].Value.(bson.D)
		assert.Equal(t, bson.D{
			{Key: "tipo", Value: "$tipo_servicio"},
			{Key: "mes", Value: bson.D{{Key: "$month", Value: "$fecha"}}},
		}, group[0].Value)
		assert.Equal(t, bson.D{{Key: "$sort", Value: bson.D{{Key: "_id.tipo", Value: 1}, {Key: "_id.mes", Value: 1}}}}, p[2])
	})
}

func TestMonthTotalsPipeline(t *testing.T) {
	p := monthTotalsPipeline(repository.DateRange{})
	require.Len(t, p, 3)
	assert.Equal(t, "$group", p[1][0].Key)

	group := p[1][0].Value.(bson.D)
	assert.Equal(t, bson.D{
		{Key: "anio", Value: bson.D{{Key: "$year", Value: "$fecha"}}},
		{Key: "mes", Value: bson.D{{Key: "$month", Value: "$fecha"}}},
	}, group[0].Value)
	assert.Contains(t, group, bson.E{Key: "dias", Value: bson.D{{Key: "$sum", Value: 1}}})
	assert.Contains(t, group, bson.E{Key: "costos", Value: bson.D{{Key: "$sum", Value: "$costos_totales"}}})
	assert.Equal(t, bson.D{{Key: "$sort", Value: bson.D{{Key: "_id.anio", Value: 1}, {Key: "_id.mes", Value: 1}}}}, p[2])
}
