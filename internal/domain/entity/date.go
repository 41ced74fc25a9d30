package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"gopkg.in/yaml.v3"
)

// DateKind identifica o formato em que a data chegou da fonte de dados.
type DateKind int

const (
	DateKindUnset DateKind = iota
	DateKindISO
	DateKindSeconds
	DateKindNative
	DateKindUnrecognized
)

func (k DateKind) String() string {
	switch k {
	case DateKindISO:
		return "iso"
	case DateKindSeconds:
		return "seconds"
	case DateKindNative:
		return "native"
	case DateKindUnrecognized:
		return "unrecognized"
	}
	return "unset"
}

// RawDate is the tagged union of date shapes a data source may hand over: an
// ISO-8601 string, an epoch-seconds object ({seconds, nanoseconds}) or a native
// time value. Decoding never fails; shapes that match none of the three are
// kept as DateKindUnrecognized so the normalizer can report them.
type RawDate struct {
	Kind        DateKind
	ISO         string
	Seconds     int64
	Nanoseconds int64
	Native      time.Time
	Raw         string
}

// DateFromISO builds a RawDate holding an ISO-8601 string.
func DateFromISO(s string) RawDate {
	return RawDate{Kind: DateKindISO, ISO: s}
}

// DateFromSeconds builds a RawDate holding an epoch-seconds value.
func DateFromSeconds(seconds, nanoseconds int64) RawDate {
	return RawDate{Kind: DateKindSeconds, Seconds: seconds, Nanoseconds: nanoseconds}
}

// DateFromTime builds a RawDate holding a native time value.
func DateFromTime(t time.Time) RawDate {
	return RawDate{Kind: DateKindNative, Native: t}
}

// secondsGetter cobre timestamps no estilo protobuf/Firestore.
type secondsGetter interface {
	GetSeconds() int64
}

// RawDateOf discriminates a loosely typed value into a RawDate. The checks run
// in a fixed order: a seconds field first, then a string, then a native time.
func RawDateOf(v any) RawDate {
	switch d := v.(type) {
	case nil:
		return RawDate{}
	case RawDate:
		return d
	case *RawDate:
		if d == nil {
			return RawDate{}
		}
		return *d
	case secondsGetter:
		var nanos int64
		if n, ok := v.(interface{ GetNanos() int32 }); ok {
			nanos = int64(n.GetNanos())
		}
		return DateFromSeconds(d.GetSeconds(), nanos)
	case map[string]any:
		if raw, ok := secondsField(d); ok {
			return raw
		}
	case string:
		return DateFromISO(d)
	case time.Time:
		return DateFromTime(d)
	case *time.Time:
		if d == nil {
			return RawDate{}
		}
		return DateFromTime(*d)
	}
	return RawDate{Kind: DateKindUnrecognized, Raw: fmt.Sprint(v)}
}

func secondsField(m map[string]any) (RawDate, bool) {
	for _, key := range []string{"seconds", "_seconds"} {
		sv, ok := m[key]
		if !ok {
			continue
		}
		secs, ok := toFloat(sv)
		if !ok {
			return RawDate{}, false
		}
		var nanos int64
		for _, nkey := range []string{"nanoseconds", "_nanoseconds", "nanos"} {
			if nv, ok := m[nkey]; ok {
				if n, ok := toFloat(nv); ok {
					nanos = int64(n)
				}
				break
			}
		}
		whole := math.Floor(secs)
		nanos += int64(math.Round((secs - whole) * 1e9))
		return DateFromSeconds(int64(whole), nanos), true
	}
	return RawDate{}, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// IsZero reports whether no date was provided at all.
func (d RawDate) IsZero() bool {
	return d.Kind == DateKindUnset
}

// String devolve uma representação legível, usada em diagnósticos.
func (d RawDate) String() string {
	switch d.Kind {
	case DateKindISO:
		return d.ISO
	case DateKindSeconds:
		return fmt.Sprintf("{seconds: %d}", d.Seconds)
	case DateKindNative:
		return d.Native.Format(time.RFC3339Nano)
	case DateKindUnrecognized:
		return d.Raw
	}
	return "<unset>"
}

// MarshalJSON preserva o formato original sempre que possível.
func (d RawDate) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case DateKindISO:
		return json.Marshal(d.ISO)
	case DateKindSeconds:
		return json.Marshal(struct {
			Seconds     int64 `json:"seconds"`
			Nanoseconds int64 `json:"nanoseconds"`
		}{d.Seconds, d.Nanoseconds})
	case DateKindNative:
		return json.Marshal(d.Native.Format(time.RFC3339Nano))
	case DateKindUnrecognized:
		return json.Marshal(d.Raw)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts any JSON value.
func (d *RawDate) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	if n, ok := v.(json.Number); ok {
		*d = RawDate{Kind: DateKindUnrecognized, Raw: n.String()}
		return nil
	}
	*d = RawDateOf(v)
	return nil
}

// MarshalYAML implementa yaml.Marshaler.
func (d RawDate) MarshalYAML() (any, error) {
	switch d.Kind {
	case DateKindISO:
		return d.ISO, nil
	case DateKindSeconds:
		return map[string]int64{"seconds": d.Seconds, "nanoseconds": d.Nanoseconds}, nil
	case DateKindNative:
		return d.Native, nil
	case DateKindUnrecognized:
		return d.Raw, nil
	}
	return nil, nil
}

// UnmarshalYAML maps YAML timestamps to native dates and quoted strings to ISO.
func (d *RawDate) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		switch node.ShortTag() {
		case "!!null":
			*d = RawDate{}
			return nil
		case "!!timestamp":
			var t time.Time
			if err := node.Decode(&t); err != nil {
				*d = RawDate{Kind: DateKindUnrecognized, Raw: node.Value}
				return nil
			}
			*d = DateFromTime(t)
			return nil
		case "!!str":
			*d = DateFromISO(node.Value)
			return nil
		default:
			*d = RawDate{Kind: DateKindUnrecognized, Raw: node.Value}
			return nil
		}
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	*d = RawDateOf(v)
	return nil
}

// EpochMillis is the canonical date: milliseconds since the Unix epoch.
type EpochMillis int64

const millisPerDay = 24 * 60 * 60 * 1000

// Time converte para time.Time em UTC.
func (m EpochMillis) Time() time.Time {
	return time.UnixMilli(int64(m)).UTC()
}

// DaysUntil returns the fractional number of days from m to other.
func (m EpochMillis) DaysUntil(other EpochMillis) float64 {
	return float64(other-m) / millisPerDay
}

// MillisOf converte um time.Time para EpochMillis.
func MillisOf(t time.Time) EpochMillis {
	return EpochMillis(t.UnixMilli())
}
