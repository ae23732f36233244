package docstore

import (
	"fmt"
	"strings"
	"time"
)

type serverTimestamp struct{}

// ServerTimestamp is replaced by the store's clock when a write is applied.
var ServerTimestamp any = serverTimestamp{}

type arrayUnion struct{ values []any }

type arrayRemove struct{ values []any }

type arrayAppend struct{ values []any }

// ArrayUnion appends the values that are not already present in the array field.
func ArrayUnion(values ...any) any {
	return arrayUnion{values: values}
}

// ArrayAppend appends the values to the array field, duplicates included.
func ArrayAppend(values ...any) any {
	return arrayAppend{values: values}
}

// ArrayRemove removes every occurrence of the values from the array field.
func ArrayRemove(values ...any) any {
	return arrayRemove{values: values}
}

// Resolve applies field values and mutators on top of current, returning the
// new document data. Keys may be dotted paths into nested maps.
func Resolve(current, patch map[string]any, now time.Time) (map[string]any, error) {
	out := copyData(current)
	for key, raw := range patch {
		if strings.TrimSpace(key) == "" || key == "id" {
			return nil, fmt.Errorf("%w: field %q", ErrInvalidPatch, key)
		}
		existing, _ := Lookup(out, key)
		value, err := resolveValue(existing, raw, now)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		if err := setPath(out, key, value); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func resolveValue(existing, raw any, now time.Time) (any, error) {
	switch m := raw.(type) {
	case serverTimestamp:
		return now.UTC().Format(TimeLayout), nil
	case arrayUnion:
		arr, _ := existing.([]any)
		result := make([]any, len(arr))
		copy(result, arr)
		for _, v := range m.values {
			pv, err := Plain(v)
			if err != nil {
				return nil, err
			}
			if !containsValue(result, pv) {
				result = append(result, pv)
			}
		}
		return result, nil
	case arrayAppend:
		arr, _ := existing.([]any)
		result := make([]any, len(arr), len(arr)+len(m.values))
		copy(result, arr)
		for _, v := range m.values {
			pv, err := Plain(v)
			if err != nil {
				return nil, err
			}
			result = append(result, pv)
		}
		return result, nil
	case arrayRemove:
		arr, _ := existing.([]any)
		removals := make([]any, 0, len(m.values))
		for _, v := range m.values {
			pv, err := Plain(v)
			if err != nil {
				return nil, err
			}
			removals = append(removals, pv)
		}
		result := make([]any, 0, len(arr))
		for _, v := range arr {
			if !containsValue(removals, v) {
				result = append(result, v)
			}
		}
		return result, nil
	case map[string]any:
		// nested maps may carry mutators too
		nested := make(map[string]any, len(m))
		current, _ := existing.(map[string]any)
		for k, v := range m {
			rv, err := resolveValue(current[k], v, now)
			if err != nil {
				return nil, err
			}
			nested[k] = rv
		}
		return nested, nil
	default:
		return Plain(raw)
	}
}

// Prepare resolves a full document body for Add/Set.
func Prepare(data map[string]any, now time.Time) (map[string]any, error) {
	return Resolve(map[string]any{}, data, now)
}

func containsValue(list []any, v any) bool {
	for _, item := range list {
		if equalValues(item, v) {
			return true
		}
	}
	return false
}

func setPath(data map[string]any, path string, value any) error {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part]
		if !ok || next == nil {
			child := map[string]any{}
			current[part] = child
			current = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %q is not an object", ErrInvalidPatch, part)
		}
		current = child
	}
	current[parts[len(parts)-1]] = value
	return nil
}
