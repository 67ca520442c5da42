package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
	"github.com/sebaaaap/Dashboard-prueba1/internal/repository"
)

func dateCriteria(r repository.DateRange) bson.M {
	if r.From == nil && r.To == nil {
		return nil
	}
	criteria := bson.M{}
	if r.From != nil {
		criteria["$gte"] = *r.From
	}
	if r.To != nil {
		criteria["$lte"] = *r.To
	}
	return criteria
}

func dayFilter(q repository.DayQuery) bson.M {
	filter := bson.M{}
	if criteria := dateCriteria(q.Range); criteria != nil {
		filter["fecha"] = criteria
	}
	if q.State != "" {
		filter["estado"] = q.State
	}
	return filter
}

func dayFindOptions(q repository.DayQuery) *options.FindOptions {
	opts := options.Find()
	switch q.Sort {
	case repository.SortByRevenueDesc:
		opts.SetSort(bson.D{{Key: "ingresos_totales", Value: -1}, {Key: "fecha", Value: 1}})
	default:
		opts.SetSort(bson.D{{Key: "fecha", Value: 1}})
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	return opts
}

func lineFilter(q repository.LineQuery) bson.M {
	filter := bson.M{}
	if criteria := dateCriteria(q.Range); criteria != nil {
		filter["fecha"] = criteria
	}
	if q.DayID != "" {
		filter["dia_id"] = q.DayID
	}
	return filter
}

func lineFindOptions() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "fecha", Value: 1}})
}

func rangeMatch(r repository.DateRange) bson.D {
	if criteria := dateCriteria(r); criteria != nil {
		return bson.D{{Key: "$match", Value: bson.M{"fecha": criteria}}}
	}
	return bson.D{{Key: "$match", Value: bson.M{}}}
}

func serviceTotalsPipeline(r repository.DateRange, byMonth bool) mongo.Pipeline {
	id := bson.D{{Key: "tipo", Value: "$tipo_servicio"}}
	sortBy := bson.D{{Key: "_id.tipo", Value: 1}}
	if byMonth {
		id = append(id, bson.E{Key: "mes", Value: bson.D{{Key: "$month", Value: "$fecha"}}})
		sortBy = append(sortBy, bson.E{Key: "_id.mes", Value: 1})
	}

	return mongo.Pipeline{
		rangeMatch(r),
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "cantidad", Value: bson.D{{Key: "$sum", Value: "$cantidad"}}},
			{Key: "ingresos", Value: bson.D{{Key: "$sum", Value: "$ingresos"}}},
		}}},
		{{Key: "$sort", Value: sortBy}},
	}
}

func monthTotalsPipeline(r repository.DateRange) mongo.Pipeline {
	return mongo.Pipeline{
		rangeMatch(r),
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "anio", Value: bson.D{{Key: "$year", Value: "$fecha"}}},
				{Key: "mes", Value: bson.D{{Key: "$month", Value: "$fecha"}}},
			}},
			{Key: "ingresos", Value: bson.D{{Key: "$sum", Value: "$ingresos_totales"}}},
			{Key: "costos", Value: bson.D{{Key: "$sum", Value: "$costos_totales"}}},
			{Key: "ganancia", Value: bson.D{{Key: "$sum", Value: "$ganancia_neta"}}},
			{Key: "servicios", Value: bson.D{{Key: "$sum", Value: "$servicios_atendidos"}}},
			{Key: "dias", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id.anio", Value: 1}, {Key: "_id.mes", Value: 1}}}},
	}
}

type serviceTotalRow struct {
	ID struct {
		Type  models.ServiceType `bson:"tipo"`
		Month int                `bson:"mes"`
	} `bson:"_id"`
	Quantity int     `bson:"cantidad"`
	Revenue  float64 `bson:"ingresos"`
}

type monthTotalRow struct {
	ID struct {
		Year  int `bson:"anio"`
		Month int `bson:"mes"`
	} `bson:"_id"`
	Revenue  float64 `bson:"ingresos"`
	Costs    float64 `bson:"costos"`
	Profit   float64 `bson:"ganancia"`
	Services int     `bson:"servicios"`
	Days     int     `bson:"dias"`
}
