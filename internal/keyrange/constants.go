package keyrange

import (
	"errors"
	"fmt"
)

// ShardZero is the shard name used when a keyrange covers the entire
// space of an unsharded keyspace.
const ShardZero = "0"

// Keyrange bounds spanning the entire space, used for unsharded keyspaces.
const (
	NonPartialKeyRange = ""
	MinKey             = ""
	MaxKey             = ""
)

// Keyspace id types, in their legacy string form.
const (
	KitUnset  = ""
	KitUint64 = "uint64"
	KitBytes  = "bytes"
)

// Proto3 keyspace id type codes.
const (
	KeyspaceIDTypeUnset  int64 = 0
	KeyspaceIDTypeUint64 int64 = 1
	KeyspaceIDTypeBytes  int64 = 2
)

// KeyspaceIDTypeName maps a proto3 keyspace id type code to its legacy
// name. The mapping is total: any code other than uint64 or bytes,
// including out of range values, yields KitUnset.
func KeyspaceIDTypeName(code int64) string {
	switch code {
	case KeyspaceIDTypeUint64:
		return KitUint64
	case KeyspaceIDTypeBytes:
		return KitBytes
	default:
		return KitUnset
	}
}

// tabletTypeNames is indexed by proto3 tablet type code.
var tabletTypeNames = [...]string{
	"unknown",
	"idle",
	"master",
	"replica",
	"rdonly",
	"spare",
	"experimental",
	"schema_upgrade",
	"backup",
	"restore",
	"worker",
	"scrap",
}

// NumTabletTypes is the number of known tablet type codes. Valid codes
// are 0 through NumTabletTypes-1.
const NumTabletTypes = len(tabletTypeNames)

// ErrUnknownRoleCode matches any UnknownRoleCodeError.
var ErrUnknownRoleCode = errors.New("unknown tablet type code")

// ErrMalformedRecord is returned when a record field has the wrong shape.
var ErrMalformedRecord = errors.New("malformed srv keyspace record")

// UnknownRoleCodeError reports a tablet type code with no known name.
type UnknownRoleCodeError struct {
	Field string
	Code  int64
}

func (e *UnknownRoleCodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %d", ErrUnknownRoleCode, e.Code)
	}
	return fmt.Sprintf("%s: %s: %d", e.Field, ErrUnknownRoleCode, e.Code)
}

func (e *UnknownRoleCodeError) Is(target error) bool {
	return target == ErrUnknownRoleCode
}

// TabletTypeName maps a proto3 tablet type code to its lower case name.
func TabletTypeName(code int64) (string, error) {
	if code < 0 || code >= int64(NumTabletTypes) {
		return "", &UnknownRoleCodeError{Code: code}
	}
	return tabletTypeNames[code], nil
}

// TabletTypeCode is the inverse of TabletTypeName.
func TabletTypeCode(name string) (int64, bool) {
	for i, n := range tabletTypeNames {
		if n == name {
			return int64(i), true
		}
	}
	return 0, false
}
