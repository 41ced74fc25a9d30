package entity

// StreamStatistics agrega as métricas de um fluxo (combustível ou eletricidade).
// Valores nil significam "dados insuficientes"; totais usam zero.
// All values are metric: quantities in L or kWh, distances in km, rates per 100 km.
type StreamStatistics struct {
	Category            Category     `json:"category"`
	EventCount          int          `json:"event_count"`
	TotalQuantity       float64      `json:"total_quantity"`
	AverageConsumption  *float64     `json:"average_consumption"`
	AveragePricePerUnit *float64     `json:"average_price_per_unit"`
	AverageEventCost    *float64     `json:"average_event_cost"`
	TotalCost           float64      `json:"total_cost"`
	CostPer100Km        *float64     `json:"cost_per_100km"`
	TotalDistanceKm     *float64     `json:"total_distance_km"`
	AverageDistanceKm   *float64     `json:"average_distance_km"`
	LongestIntervalKm   *float64     `json:"longest_interval_km"`
	AverageDaysBetween  *float64     `json:"average_days_between"`
	DaysSinceLast       *float64     `json:"days_since_last"`
	LastEventAt         *EpochMillis `json:"last_event_at,omitempty"`
}

// ConsumptionPoint is one plotted point of the consumption-over-time chart.
type ConsumptionPoint struct {
	DateLabel     string      `json:"date_label"`
	Value         float64     `json:"consumption_value"`
	Category      Category    `json:"category"`
	OdometerKm    float64     `json:"odometer_km"`
	SequenceIndex int         `json:"sequence_index"`
	Date          EpochMillis `json:"date"`
}

// Series contém as sub-séries por categoria e a série combinada ordenada por odômetro.
type Series struct {
	Fuel        []ConsumptionPoint `json:"fuel"`
	Electricity []ConsumptionPoint `json:"electricity"`
	Combined    []ConsumptionPoint `json:"combined"`
}

// Points returns the sub-series for a category.
func (s Series) Points(c Category) []ConsumptionPoint {
	if c == CategoryElectricity {
		return s.Electricity
	}
	return s.Fuel
}

// IsEmpty reports whether no point survived filtering.
func (s Series) IsEmpty() bool {
	return len(s.Fuel) == 0 && len(s.Electricity) == 0
}

// DiagnosticReason classifica por que um registro foi ignorado ou sinalizado.
type DiagnosticReason string

const (
	ReasonInvalidDate        DiagnosticReason = "invalid_date"
	ReasonNonPositiveAmount  DiagnosticReason = "non_positive_quantity"
	ReasonNonPositiveDelta   DiagnosticReason = "non_positive_distance"
	ReasonImplausibleRate    DiagnosticReason = "implausible_rate"
	ReasonOdometerOutOfOrder DiagnosticReason = "odometer_out_of_order"
)

// Diagnostic describes a record that was skipped or flagged. It carries
// values only; the wording is left to the presentation layer.
//
// Value holds the measured quantity for the reason: the odometer delta in km
// (non_positive_distance), the quantity (non_positive_quantity) or the rate
// per 100 km (implausible_rate). RelatedEventID is the neighbouring record
// the check compared against. Detail is the raw input for invalid_date.
type Diagnostic struct {
	EventID        string           `json:"event_id"`
	Category       Category         `json:"category"`
	Reason         DiagnosticReason `json:"reason"`
	RelatedEventID string           `json:"related_event_id,omitempty"`
	Value          *float64         `json:"value,omitempty"`
	Detail         string           `json:"detail,omitempty"`
}

// Statistics is the single object shared by the console and every export, so
// the on-screen and exported numbers come from the same computation.
type Statistics struct {
	VehicleID   string            `json:"vehicle_id"`
	VehicleType VehicleType       `json:"vehicle_type"`
	Fuel        *StreamStatistics `json:"fuel,omitempty"`
	Electricity *StreamStatistics `json:"electricity,omitempty"`
	TotalCost   float64           `json:"total_cost"`
	Series      Series            `json:"series"`
	Diagnostics []Diagnostic      `json:"diagnostics,omitempty"`
	ComputedAt  EpochMillis       `json:"computed_at"`
}

// ReportBundle é tudo que o formatador de relatórios recebe.
type ReportBundle struct {
	Vehicle     Vehicle       `json:"vehicle"`
	Fillings    []UsageRecord `json:"fillings"`
	Charging    []UsageRecord `json:"charging_sessions"`
	Statistics  Statistics    `json:"statistics"`
	Preferences Preferences   `json:"preferences"`
}
