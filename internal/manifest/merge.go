package manifest

import (
	"fmt"
	"strconv"
)

// ListMerge is how DeepMerge combines two scalar lists found under the same key.
type ListMerge int

const (
	// ListReplace keeps only the overlay list.
	ListReplace ListMerge = iota
	// ListUnion keeps base order and adds overlay entries not yet present.
	ListUnion
	// ListAppend concatenates base and overlay.
	ListAppend
)

// ListMerges holds the property keys whose lists do not simply replace.
// cc.admins and uaa supported_versions accumulate; stager queues stack.
var ListMerges = map[string]ListMerge{
	"admins":             ListUnion,
	"supported_versions": ListUnion,
	"queues":             ListAppend,
}

// DeepMerge returns a new tree with overlay merged onto base. Maps merge
// key by key, scalar lists follow ListMerges, everything else is replaced
// by the overlay value. Neither input is modified and the result shares
// no containers with them.
func DeepMerge(base, overlay map[string]any) map[string]any {
	result := cloneTree(base)
	for key, value := range overlay {
		current, exists := result[key]
		if !exists {
			result[key] = deepCopy(value)
			continue
		}
		result[key] = mergeValue(key, current, value)
	}
	return result
}

// MergeProperties deep-merges overlay into the document's properties.
func MergeProperties(doc *Document, overlay map[string]any) {
	doc.Properties = Properties(DeepMerge(doc.Properties, overlay))
}

func mergeValue(key string, current, value any) any {
	currentMap, ok1 := asMap(current)
	valueMap, ok2 := asMap(value)
	if ok1 && ok2 {
		return DeepMerge(currentMap, valueMap)
	}

	currentList, ok1 := scalarList(current)
	valueList, ok2 := scalarList(value)
	if ok1 && ok2 {
		var merged []any
		switch ListMerges[key] {
		case ListUnion:
			merged = union(currentList, valueList)
		case ListAppend:
			merged = append(append([]any(nil), currentList...), valueList...)
		default:
			return deepCopy(value)
		}
		if isStrings(current) && isStrings(value) {
			return toStrings(merged)
		}
		return merged
	}

	return deepCopy(value)
}

// asMap views the package's property map types as a plain map.
func asMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case Properties:
		return map[string]any(v), true
	case CloudProperties:
		return map[string]any(v), true
	}
	return nil, false
}

// scalarList returns the items of a list of scalars, unchanged. Lists holding
// maps or other lists (roles, databases, plans) are not scalar lists.
func scalarList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []any:
		for _, item := range v {
			switch item.(type) {
			case map[string]any, Properties, CloudProperties, []any, []string:
				return nil, false
			}
		}
		return append([]any(nil), v...), true
	}
	return nil, false
}

func isStrings(value any) bool {
	_, ok := value.([]string)
	return ok
}

// toStrings converts items that are known to be strings.
func toStrings(items []any) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.(string)
	}
	return out
}

// union returns a followed by the items of b it lacks. Items are compared by
// scalarKey, so 9, 9.0 and "9.0" count as one version.
func union(a, b []any) []any {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]any, 0, len(a)+len(b))
	for _, list := range [][]any{a, b} {
		for _, item := range list {
			k := scalarKey(item)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}

// scalarKey is the identity of a scalar for union. Numbers and numeric
// strings share one form; other values are keyed by type and value.
func scalarKey(item any) string {
	switch v := item.(type) {
	case nil:
		return "nil"
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return "num:" + strconv.FormatFloat(f, 'g', -1, 64)
		}
		return "str:" + v
	case int:
		return "num:" + strconv.FormatFloat(float64(v), 'g', -1, 64)
	case int64:
		return "num:" + strconv.FormatFloat(float64(v), 'g', -1, 64)
	case uint64:
		return "num:" + strconv.FormatFloat(float64(v), 'g', -1, 64)
	case float64:
		return "num:" + strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return "num:" + strconv.FormatFloat(float64(v), 'g', -1, 64)
	default:
		return fmt.Sprintf("%T:%v", v, v)
	}
}

// cloneTree deep-copies m, returning an empty map for nil.
func cloneTree(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return deepCopy(m).(map[string]any)
}

// deepCopy copies maps and lists recursively. Typed property maps come back
// as plain map[string]any; scalars are returned as is.
func deepCopy(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = deepCopy(item)
		}
		return out
	case Properties:
		return deepCopy(map[string]any(v))
	case CloudProperties:
		return deepCopy(map[string]any(v))
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = deepCopy(item)
		}
		return out
	case []string:
		return append([]string(nil), v...)
	default:
		return value
	}
}
