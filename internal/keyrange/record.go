package keyrange

import (
	"fmt"
	"math"
)

// Field names of a bson/json encoded SrvKeyspace.
const (
	fieldShardingColumnType = "ShardingColumnType"
	fieldServedFrom         = "ServedFrom"
	fieldPartitions         = "Partitions"
	fieldTabletType         = "TabletType"
	fieldKeyspace           = "Keyspace"
	fieldServedType         = "ServedType"
	fieldShardReferences    = "ShardReferences"
)

// TranslateRecord converts a decoded proto3 SrvKeyspace record into the
// legacy shape in place and returns it. Fields absent from rec are left
// alone. On error rec is not modified.
func TranslateRecord(rec map[string]any) (map[string]any, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", ErrMalformedRecord)
	}

	updates := make(map[string]any, 3)

	if v, ok := rec[fieldShardingColumnType]; ok {
		code, isInt := asInt64(v)
		if !isInt {
			code = KeyspaceIDTypeUnset
		}
		updates[fieldShardingColumnType] = KeyspaceIDTypeName(code)
	}

	if v, ok := rec[fieldServedFrom]; ok {
		entries, err := asRecords(fieldServedFrom, v)
		if err != nil {
			return nil, err
		}
		sfmap := make(map[string]any, len(entries))
		for _, sf := range entries {
			name, err := roleName(fieldServedFrom, sf, fieldTabletType)
			if err != nil {
				return nil, err
			}
			keyspace, ok := sf[fieldKeyspace]
			if !ok {
				return nil, fmt.Errorf("%w: %s entry missing %s", ErrMalformedRecord, fieldServedFrom, fieldKeyspace)
			}
			sfmap[name] = keyspace
		}
		updates[fieldServedFrom] = sfmap
	}

	if v, ok := rec[fieldPartitions]; ok {
		entries, err := asRecords(fieldPartitions, v)
		if err != nil {
			return nil, err
		}
		pmap := make(map[string]any, len(entries))
		for _, p := range entries {
			name, err := roleName(fieldPartitions, p, fieldServedType)
			if err != nil {
				return nil, err
			}
			refs, ok := p[fieldShardReferences]
			if !ok {
				return nil, fmt.Errorf("%w: %s entry missing %s", ErrMalformedRecord, fieldPartitions, fieldShardReferences)
			}
			pmap[name] = map[string]any{fieldShardReferences: refs}
		}
		updates[fieldPartitions] = pmap
	}

	for k, v := range updates {
		rec[k] = v
	}
	return rec, nil
}

func roleName(field string, entry map[string]any, key string) (string, error) {
	raw, ok := entry[key]
	if !ok {
		return "", fmt.Errorf("%w: %s entry missing %s", ErrMalformedRecord, field, key)
	}
	code, ok := asInt64(raw)
	if !ok {
		return "", fmt.Errorf("%w: %s.%s is not an integer: %v", ErrMalformedRecord, field, key, raw)
	}
	name, err := TabletTypeName(code)
	if err != nil {
		return "", withField(err, field)
	}
	return name, nil
}

func asRecords(field string, v any) ([]map[string]any, error) {
	switch list := v.(type) {
	case []map[string]any:
		return list, nil
	case []any:
		out := make([]map[string]any, len(list))
		for i, e := range list {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d] is %T, want object", ErrMalformedRecord, field, i, e)
			}
			out[i] = m
		}
		return out, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s is %T, want list", ErrMalformedRecord, field, v)
	}
}

// asInt64 accepts any Go integer, or a float holding an integral value
// as produced by generic JSON decoders.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), uint64(n) <= math.MaxInt64
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= math.MaxInt64
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	default:
		return 0, false
	}
}

func floatToInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
