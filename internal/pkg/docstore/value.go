package docstore

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeLayout is the fixed-width layout used for stored timestamps so that
// string ordering matches chronological ordering.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Timestamp is the seconds/nanos shape hosted document databases export.
type Timestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int32 `json:"nanos"`
}

func (t Timestamp) Time() time.Time {
	return time.Unix(t.Seconds, int64(t.Nanos)).UTC()
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// ToDate normalizes any stored date representation to a time. It returns nil
// for unset or unparseable input and never panics.
//
// Accepted: time.Time, *time.Time, Timestamp, {"seconds","nanos"} maps,
// ISO-8601/RFC3339 strings, "YYYY-MM-DD", "DD/MM/YYYY", and integer unix
// milliseconds.
func ToDate(value any) *time.Time {
	var t time.Time
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return nil
		}
		t = *v
	case Timestamp:
		t = v.Time()
	case *Timestamp:
		if v == nil {
			return nil
		}
		t = v.Time()
	case map[string]any:
		seconds, ok := v["seconds"].(float64)
		if !ok {
			return nil
		}
		nanos, _ := v["nanos"].(float64)
		t = Timestamp{Seconds: int64(seconds), Nanos: int32(nanos)}.Time()
	case string:
		parsed, ok := parseDateString(v)
		if !ok {
			return nil
		}
		t = parsed
	case int64:
		t = time.UnixMilli(v).UTC()
	case int:
		t = time.UnixMilli(int64(v)).UTC()
	default:
		return nil
	}
	if t.IsZero() {
		return nil
	}
	return &t
}

func parseDateString(s string) (time.Time, bool) {
	// cheap reject for ids, names and numbers
	if len(s) < 10 {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Plain converts v into the plain JSON value space stored in documents.
// time.Time values are written in TimeLayout (UTC).
func Plain(v any) (any, error) {
	switch tv := v.(type) {
	case nil, string, float64, bool:
		return tv, nil
	case time.Time:
		if tv.IsZero() {
			return nil, nil
		}
		return tv.UTC().Format(TimeLayout), nil
	case *time.Time:
		if tv == nil || tv.IsZero() {
			return nil, nil
		}
		return tv.UTC().Format(TimeLayout), nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal value: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unmarshal value: %w", err)
	}
	return out, nil
}

// Encode turns a tagged struct into document data. The "id" key is dropped;
// ids live outside the data.
func Encode(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	delete(data, "id")
	return data, nil
}

// Decode fills v from a document, exposing the document id under "id".
func Decode(doc Document, v any) error {
	data := make(map[string]any, len(doc.Data)+1)
	for k, val := range doc.Data {
		data[k] = val
	}
	data["id"] = doc.ID
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("decode document %s: %w", doc.ID, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode document %s: %w", doc.ID, err)
	}
	return nil
}

func deepCopy(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, val := range tv {
			out[k] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, val := range tv {
			out[i] = deepCopy(val)
		}
		return out
	default:
		return tv
	}
}

func copyData(data map[string]any) map[string]any {
	if data == nil {
		return map[string]any{}
	}
	return deepCopy(data).(map[string]any)
}
