package orgsync

import (
	"strconv"
	"strings"
)

// ParseFieldValues flattens the values of Keeper custom fields into strings.
// Multi-line and comma separated values are split.
func ParseFieldValues(fields []map[string]any) (values []string) {
	for _, field := range fields {
		var v any
		var ok bool
		if v, ok = field["value"]; !ok || v == nil {
			continue
		}
		var raw []string
		switch vt := v.(type) {
		case []any:
			for _, v = range vt {
				var s string
				if s, ok = v.(string); ok {
					raw = append(raw, s)
				}
			}
		case string:
			raw = append(raw, vt)
		}
		for _, x := range raw {
			for _, y := range strings.Split(x, "\n") {
				for _, z := range strings.Split(y, ",") {
					z = strings.TrimSpace(z)
					if len(z) > 0 {
						values = append(values, z)
					}
				}
			}
		}
	}
	return
}

func firstValue(intf any) any {
	if av, ok := intf.([]any); ok {
		if len(av) > 0 {
			return av[0]
		}
		return nil
	}
	return intf
}

func toBoolean(intf any) (result bool, ok bool) {
	switch fv := firstValue(intf).(type) {
	case bool:
		result = fv
		ok = true
	case string:
		switch strings.ToLower(strings.TrimSpace(fv)) {
		case "1", "true", "ok", "yes":
			result = true
			ok = true
		case "0", "false", "no":
			result = false
			ok = true
		}
	}
	return
}

func toInt64(intf any) (result int64, ok bool) {
	ok = true
	switch iv := firstValue(intf).(type) {
	case int:
		result = int64(iv)
	case int32:
		result = int64(iv)
	case int64:
		result = iv
	case float64:
		result = int64(iv)
	case string:
		var er1 error
		if result, er1 = strconv.ParseInt(strings.TrimSpace(iv), 10, 64); er1 != nil {
			ok = false
		}
	default:
		ok = false
	}
	return
}

type Set[K comparable] map[K]struct{}

func NewSet[K comparable]() Set[K] {
	return make(Set[K])
}

func (s Set[K]) Has(key K) (ok bool) {
	_, ok = s[key]
	return
}

func (s Set[K]) Add(key K) {
	s[key] = struct{}{}
}
