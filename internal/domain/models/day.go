package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ClosedSentinel marks a day without opening hours in both the spreadsheet and the stored schedule.
const ClosedSentinel = "Cerrado"

// DayState enumerates the operational state of a business day.
type DayState string

const (
	DayOpen   DayState = "abierto"
	DayClosed DayState = "cerrado"
)

// Schedule holds the opening and closing time of a day.
type Schedule struct {
	Opening string `bson:"apertura" json:"apertura"`
	Closing string `bson:"cierre" json:"cierre"`
}

// OperatingDay is one business day's summary as stored in dias_operacion.
type OperatingDay struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date          time.Time          `bson:"fecha" json:"fecha"`
	Weekday       string             `bson:"dia_semana" json:"dia_semana"`
	Schedule      Schedule           `bson:"horario" json:"horario"`
	State         DayState           `bson:"estado" json:"estado"`
	ServicesCount int                `bson:"servicios_atendidos" json:"servicios_atendidos"`
	Revenue       float64            `bson:"ingresos_totales" json:"ingresos_totales"`
	NetProfit     float64            `bson:"ganancia_neta" json:"ganancia_neta"`
	TotalCosts    float64            `bson:"costos_totales" json:"costos_totales"`
}

// ServiceType identifies a wash offering. New values can be stored without code changes.
type ServiceType string

const (
	ServiceNormal      ServiceType = "normal"
	ServicePremium     ServiceType = "premium"
	ServiceFullPremium ServiceType = "full_premium"
)

// ServiceTypes lists the offerings read from every spreadsheet row, in column order.
var ServiceTypes = []ServiceType{ServiceNormal, ServicePremium, ServiceFullPremium}

// Label renders the type for display, e.g. full_premium -> "Full Premium".
func (t ServiceType) Label() string {
	return cases.Title(language.Spanish).String(strings.ReplaceAll(string(t), "_", " "))
}

// ListPrice returns the unit price charged for the known offerings, 0 otherwise.
func (t ServiceType) ListPrice() float64 {
	switch t {
	case ServiceNormal:
		return 15000
	case ServicePremium:
		return 25000
	case ServiceFullPremium:
		return 35000
	default:
		return 0
	}
}

// ServiceLine records one service type's activity within a day.
type ServiceLine struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DayID     string             `bson:"dia_id" json:"dia_id"`
	Date      time.Time          `bson:"fecha" json:"fecha"`
	Type      ServiceType        `bson:"tipo_servicio" json:"tipo_servicio"`
	Quantity  int                `bson:"cantidad" json:"cantidad"`
	Revenue   float64            `bson:"ingresos" json:"ingresos"`
	UnitPrice float64            `bson:"precio_unitario" json:"precio_unitario"`
}

// CostCategory identifies an expense bucket.
type CostCategory string

const (
	CostRawMaterials  CostCategory = "materia_prima"
	CostBasicSupplies CostCategory = "insumos_basicos"
	CostPayroll       CostCategory = "sueldos"
	CostRent          CostCategory = "arriendo"
)

// CostCategories lists the expense buckets read from every spreadsheet row.
var CostCategories = []CostCategory{CostRawMaterials, CostBasicSupplies, CostPayroll, CostRent}

// Display categories used by the expense distribution.
const (
	DisplayChemicals = "Químicos"
	DisplayUtilities = "Agua/Electricidad"
	DisplayStaff     = "Personal"
	DisplayRent      = "Arriendo"
	DisplayOther     = "Otros"
)

// DisplayCategories is the order in which expense shares are reported.
var DisplayCategories = []string{DisplayChemicals, DisplayUtilities, DisplayStaff, DisplayRent, DisplayOther}

// DisplayCategory maps a stored category to its reporting bucket.
func (c CostCategory) DisplayCategory() string {
	switch c {
	case CostRawMaterials:
		return DisplayChemicals
	case CostBasicSupplies:
		return DisplayUtilities
	case CostPayroll:
		return DisplayStaff
	case CostRent:
		return DisplayRent
	default:
		return DisplayOther
	}
}

// Description is the fixed text stored alongside ingested cost lines.
func (c CostCategory) Description() string {
	switch c {
	case CostRawMaterials:
		return "Costo de materia prima del día"
	case CostBasicSupplies:
		return "Insumos básicos del día"
	case CostPayroll:
		return "Costos de personal"
	case CostRent:
		return "Arriendo del local"
	default:
		return string(c)
	}
}

// CostLine records one cost category's expenditure within a day.
type CostLine struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DayID       string             `bson:"dia_id" json:"dia_id"`
	Date        time.Time          `bson:"fecha" json:"fecha"`
	Category    CostCategory       `bson:"tipo_costo" json:"tipo_costo"`
	Amount      float64            `bson:"monto" json:"monto"`
	Description string             `bson:"descripcion,omitempty" json:"descripcion,omitempty"`
}

// IngestResult counts the records written by one ingestion batch.
type IngestResult struct {
	DaysInserted     int `json:"days_inserted"`
	ServicesInserted int `json:"services_inserted"`
	CostsInserted    int `json:"costs_inserted"`
	RowsSkipped      int `json:"rows_skipped"`
}
