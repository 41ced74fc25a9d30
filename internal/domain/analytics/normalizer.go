package analytics

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/diillson/fuellog-go/internal/domain/entity"
)

// isoLayouts são tentados em ordem; layouts sem fuso são interpretados em UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ToDate converts a raw date into the canonical epoch-milliseconds value.
// Seconds values are scaled by 1000 (plus any nanoseconds). Unrecognized or
// unparseable input fails with an *InvalidDateError.
func ToDate(raw entity.RawDate) (entity.EpochMillis, error) {
	switch raw.Kind {
	case entity.DateKindSeconds:
		return entity.EpochMillis(raw.Seconds*1000 + raw.Nanoseconds/int64(time.Millisecond)), nil
	case entity.DateKindISO:
		s := strings.TrimSpace(raw.ISO)
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return entity.MillisOf(t), nil
			}
		}
	case entity.DateKindNative:
		if !raw.Native.IsZero() {
			return entity.MillisOf(raw.Native), nil
		}
	}
	return 0, &InvalidDateError{Value: raw.String()}
}

// ToDateValue discrimina um valor arbitrário (string, {seconds}, time.Time...)
// e o converte com ToDate.
func ToDateValue(v any) (entity.EpochMillis, error) {
	return ToDate(entity.RawDateOf(v))
}

// DateStyle controls FormatDateLabel. An empty Layout is derived from Locale.
type DateStyle struct {
	Locale   string
	Layout   string
	Location *time.Location
}

// layoutFor escolhe o layout curto conforme o idioma/região.
func layoutFor(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return "02. 01. 06"
	}
	base, _, region := tag.Raw()
	switch base.String() {
	case "en":
		if region.String() == "US" {
			return "01/02/06"
		}
		return "02/01/06"
	case "de", "fi", "nb", "da", "ru", "pl", "cs":
		return "02.01.06"
	case "fr", "es", "it", "pt":
		return "02/01/06"
	}
	return "02. 01. 06"
}

// FormatDateLabel renders a short axis/row label such as "15. 03. 24".
func FormatDateLabel(date entity.EpochMillis, style DateStyle) string {
	layout := style.Layout
	if layout == "" {
		layout = layoutFor(style.Locale)
	}
	t := date.Time()
	if style.Location != nil {
		t = t.In(style.Location)
	}
	return t.Format(layout)
}

// DatePolicy decide o que fazer com registros cuja data não pode ser lida.
type DatePolicy int

const (
	// SkipInvalidDates drops the record and records a Diagnostic.
	SkipInvalidDates DatePolicy = iota
	// FailOnInvalidDate aborts the batch with the *InvalidDateError.
	FailOnInvalidDate
)

// NormalizeFillings converts fillings into usage records with canonical dates.
func NormalizeFillings(events []entity.FillingEvent, policy DatePolicy) ([]entity.UsageRecord, []entity.Diagnostic, error) {
	records := make([]entity.UsageRecord, 0, len(events))
	var diags []entity.Diagnostic
	for _, e := range events {
		at, err := ToDate(e.Date)
		if err != nil {
			d, ferr := dateFailure(e.ID, entity.CategoryFuel, err, policy)
			if ferr != nil {
				return nil, nil, ferr
			}
			diags = append(diags, d)
			continue
		}
		records = append(records, entity.UsageRecord{
			ID:         e.ID,
			Category:   entity.CategoryFuel,
			OdometerKm: e.OdometerKm,
			Quantity:   e.Liters,
			Cost:       e.Cost,
			Date:       at,
		})
	}
	return records, diags, nil
}

// NormalizeCharging converts charging sessions into usage records with canonical dates.
func NormalizeCharging(events []entity.ChargingEvent, policy DatePolicy) ([]entity.UsageRecord, []entity.Diagnostic, error) {
	records := make([]entity.UsageRecord, 0, len(events))
	var diags []entity.Diagnostic
	for _, e := range events {
		at, err := ToDate(e.Date)
		if err != nil {
			d, ferr := dateFailure(e.ID, entity.CategoryElectricity, err, policy)
			if ferr != nil {
				return nil, nil, ferr
			}
			diags = append(diags, d)
			continue
		}
		records = append(records, entity.UsageRecord{
			ID:         e.ID,
			Category:   entity.CategoryElectricity,
			OdometerKm: e.OdometerKm,
			Quantity:   e.EnergyAddedKWh,
			Cost:       e.Cost,
			Date:       at,
			Location:   e.Location,
		})
	}
	return records, diags, nil
}

func dateFailure(id string, c entity.Category, err error, policy DatePolicy) (entity.Diagnostic, error) {
	var value string
	if ide, ok := err.(*InvalidDateError); ok {
		ide.EventID = id
		value = ide.Value
	}
	if policy == FailOnInvalidDate {
		return entity.Diagnostic{}, fmt.Errorf("normalizing %s events: %w", c, err)
	}
	return entity.Diagnostic{EventID: id, Category: c, Reason: entity.ReasonInvalidDate, Detail: value}, nil
}
