package keyrange

import "fmt"

// KeyRange is a half-open [Start, End) range of keyspace ids. Empty
// bounds are open.
type KeyRange struct {
	Start []byte `json:"Start,omitempty"`
	End   []byte `json:"End,omitempty"`
}

// ShardReference names a shard and the keyrange it serves.
type ShardReference struct {
	Name     string    `json:"Name"`
	KeyRange *KeyRange `json:"KeyRange,omitempty"`
}

// ServedFrom redirects a tablet type to another keyspace.
type ServedFrom struct {
	TabletType int64  `json:"TabletType"`
	Keyspace   string `json:"Keyspace"`
}

// Partition lists the shards serving one tablet type.
type Partition struct {
	ServedType      int64            `json:"ServedType"`
	ShardReferences []ShardReference `json:"ShardReferences"`
}

// SrvKeyspace is the proto3 shape of a serving keyspace. Nil fields are
// absent from the wire record and stay absent after translation.
type SrvKeyspace struct {
	ShardingColumnName string       `json:"ShardingColumnName,omitempty"`
	ShardingColumnType *int64       `json:"ShardingColumnType,omitempty"`
	ServedFrom         []ServedFrom `json:"ServedFrom,omitempty"`
	Partitions         []Partition  `json:"Partitions,omitempty"`
}

// LegacyPartition wraps the shard references of one tablet type.
type LegacyPartition struct {
	ShardReferences []ShardReference `json:"ShardReferences"`
}

// LegacySrvKeyspace is the string keyed shape expected by older clients.
type LegacySrvKeyspace struct {
	ShardingColumnName string                     `json:"ShardingColumnName,omitempty"`
	ShardingColumnType *string                    `json:"ShardingColumnType,omitempty"`
	ServedFrom         map[string]string          `json:"ServedFrom,omitempty"`
	Partitions         map[string]LegacyPartition `json:"Partitions,omitempty"`
}

// Translate converts sk into its legacy form. sk is not modified.
func Translate(sk *SrvKeyspace) (*LegacySrvKeyspace, error) {
	if sk == nil {
		return nil, fmt.Errorf("%w: nil keyspace", ErrMalformedRecord)
	}

	out := &LegacySrvKeyspace{ShardingColumnName: sk.ShardingColumnName}

	if sk.ShardingColumnType != nil {
		kit := KeyspaceIDTypeName(*sk.ShardingColumnType)
		out.ShardingColumnType = &kit
	}

	if sk.ServedFrom != nil {
		out.ServedFrom = make(map[string]string, len(sk.ServedFrom))
		for _, sf := range sk.ServedFrom {
			name, err := TabletTypeName(sf.TabletType)
			if err != nil {
				return nil, withField(err, fieldServedFrom)
			}
			out.ServedFrom[name] = sf.Keyspace
		}
	}

	if sk.Partitions != nil {
		out.Partitions = make(map[string]LegacyPartition, len(sk.Partitions))
		for _, p := range sk.Partitions {
			name, err := TabletTypeName(p.ServedType)
			if err != nil {
				return nil, withField(err, fieldPartitions)
			}
			out.Partitions[name] = LegacyPartition{ShardReferences: p.ShardReferences}
		}
	}

	return out, nil
}

func withField(err error, field string) error {
	if rc, ok := err.(*UnknownRoleCodeError); ok {
		rc.Field = field
	}
	return err
}
