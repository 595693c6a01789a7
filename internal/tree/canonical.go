package tree

import (
	"fmt"
	"sort"
	"strconv"
)

// Canonical converts an arbitrary Go value into its canonical node form:
// booleans become Leaf("1")/Leaf("0"), numbers and strings become leaves,
// slices become lists, and maps become ordered maps keyed in sorted order
// (builtin map iteration carries no usable order). Values that are already
// nodes pass through unchanged; nil becomes an empty leaf. Types outside
// this set are an error.
func Canonical(value any) (Node, error) {
	switch v := value.(type) {
	case nil:
		return Leaf(""), nil
	case Node:
		return v, nil
	case bool:
		if v {
			return Leaf("1"), nil
		}
		return Leaf("0"), nil
	case string:
		return Leaf(v), nil
	case int:
		return Leaf(strconv.Itoa(v)), nil
	case int8:
		return Leaf(strconv.FormatInt(int64(v), 10)), nil
	case int16:
		return Leaf(strconv.FormatInt(int64(v), 10)), nil
	case int32:
		return Leaf(strconv.FormatInt(int64(v), 10)), nil
	case int64:
		return Leaf(strconv.FormatInt(v, 10)), nil
	case uint:
		return Leaf(strconv.FormatUint(uint64(v), 10)), nil
	case uint8:
		return Leaf(strconv.FormatUint(uint64(v), 10)), nil
	case uint16:
		return Leaf(strconv.FormatUint(uint64(v), 10)), nil
	case uint32:
		return Leaf(strconv.FormatUint(uint64(v), 10)), nil
	case uint64:
		return Leaf(strconv.FormatUint(v, 10)), nil
	case float32:
		return Leaf(strconv.FormatFloat(float64(v), 'f', -1, 32)), nil
	case float64:
		return Leaf(strconv.FormatFloat(v, 'f', -1, 64)), nil
	case []string:
		list := make(List, 0, len(v))
		for _, item := range v {
			list = append(list, Leaf(item))
		}
		return list, nil
	case []any:
		list := make(List, 0, len(v))
		for _, item := range v {
			child, err := Canonical(item)
			if err != nil {
				return nil, err
			}
			list = append(list, child)
		}
		return list, nil
	case map[string]string:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMap()
		for _, k := range keys {
			m.Set(k, Leaf(v[k]))
		}
		return m, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMap()
		for _, k := range keys {
			child, err := Canonical(v[k])
			if err != nil {
				return nil, err
			}
			m.Set(k, child)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", value)
	}
}
