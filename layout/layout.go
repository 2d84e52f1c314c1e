package layout

import (
	"encoding/json"
	"math/big"
)

// TypeInfo describes the storage shape of a state variable's type.
type TypeInfo struct {
	// CanonicalName is the type's canonical source-level name, e.g.
	// "mapping(address => uint256)" or "MyContract.MyStruct".
	CanonicalName string
	// StorageSize is the number of storage slots the type occupies.
	StorageSize *big.Int
	// StorageBytes is the byte width within a slot. Meaningful only for
	// types packed into a single slot.
	StorageBytes uint
	// Members holds the flattened members of a struct type; nil for
	// non-struct types.
	Members []MemberInfo
}

// MemberInfo describes one member of a struct-typed state variable.
type MemberInfo struct {
	Name   string
	Slot   *big.Int
	Offset uint
	Type   TypeInfo
}

// StateVariable describes one declared state variable of a compiled
// contract, with the slot/offset assigned by the storage allocator.
type StateVariable struct {
	Name     string
	Contract string
	Slot     *big.Int
	Offset   uint
	Type     TypeInfo
}

// Entry is one variable's row in the report. All numeric fields are
// decimal strings; slot and size are unbounded integers.
type Entry struct {
	Name     string        `json:"name"`
	Slot     string        `json:"slot"`
	Offset   string        `json:"offset"`
	Type     string        `json:"type"`
	Size     string        `json:"size"`
	Bytes    string        `json:"bytes,omitempty"`
	Contract string        `json:"contract,omitempty"`
	Storage  []MemberEntry `json:"storage,omitempty"`
}

// MemberEntry is one struct member's row within an Entry.
type MemberEntry struct {
	Name   string `json:"name"`
	Slot   string `json:"slot"`
	Offset string `json:"offset"`
	Type   string `json:"type"`
	Size   string `json:"size"`
	Bytes  string `json:"bytes,omitempty"`
}

// Generate builds the report rows for the given state variables, in
// declaration order. A nil or empty input yields an empty, non-nil slice.
func Generate(variables []StateVariable) []Entry {
	entries := make([]Entry, 0, len(variables))
	for _, variable := range variables {
		entry := Entry{
			Name:     variable.Name,
			Slot:     decimal(variable.Slot),
			Offset:   decimalUint(variable.Offset),
			Type:     variable.Type.CanonicalName,
			Size:     decimal(variable.Type.StorageSize),
			Bytes:    packedBytes(variable.Type),
			Contract: variable.Contract,
		}
		for _, member := range variable.Type.Members {
			entry.Storage = append(entry.Storage, MemberEntry{
				Name:   member.Name,
				Slot:   decimal(member.Slot),
				Offset: decimalUint(member.Offset),
				Type:   member.Type.CanonicalName,
				Size:   decimal(member.Type.StorageSize),
				Bytes:  packedBytes(member.Type),
			})
		}
		entries = append(entries, entry)
	}
	return entries
}

// GenerateJSON renders the report as a JSON array.
func GenerateJSON(variables []StateVariable) ([]byte, error) {
	return json.Marshal(Generate(variables))
}

// packedBytes reports the byte width only for single-slot types; for
// larger types the width is always a full slot and carries no information.
func packedBytes(t TypeInfo) string {
	if t.StorageSize != nil && t.StorageSize.Cmp(big.NewInt(1)) == 0 {
		return decimalUint(t.StorageBytes)
	}
	return ""
}

func decimal(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func decimalUint(v uint) string {
	return new(big.Int).SetUint64(uint64(v)).String()
}
