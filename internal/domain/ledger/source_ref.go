package ledger

import (
	"strconv"
	"strings"
)

// SourceKind identifies which kind of document an entry settles
type SourceKind string

const (
	SourceRentInvoice        SourceKind = "rent_invoice"
	SourceFinancialRecord    SourceKind = "financial_record"
	SourceMaintenanceInvoice SourceKind = "maintenance_invoice"
)

// IsValid checks if the source kind is valid
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceRentInvoice, SourceFinancialRecord, SourceMaintenanceInvoice:
		return true
	}
	return false
}

// SourceRef is a resolved pointer to the document a payment settles.
// It replaces the loose "type:id" string encoding used by older clients
// with an explicit tagged pair validated at the boundary.
type SourceRef struct {
	Kind SourceKind `json:"kind"`
	ID   int64      `json:"id"`
}

// ResolveSourceRef turns loosely-typed (kind, id) inputs into a SourceRef.
// The id may arrive as a number, a numeric string, or a composite
// "kind:id" string whose numeric suffix wins. Empty strings, "null",
// non-numeric and non-positive values resolve to no reference at all:
// linkage is advisory, so a bad pointer is dropped rather than rejected.
func ResolveSourceRef(kindRaw, idRaw any) *SourceRef {
	kind := SourceKind(strings.TrimSpace(stringify(kindRaw)))

	idStr := strings.TrimSpace(stringify(idRaw))
	if idStr == "" || strings.EqualFold(idStr, "null") {
		return nil
	}
	if at := strings.Index(idStr, ":"); at >= 0 {
		if !kind.IsValid() {
			kind = SourceKind(idStr[:at])
		}
		idStr = idStr[at+1:]
	}

	id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	if !kind.IsValid() {
		return nil
	}
	return &SourceRef{Kind: kind, ID: id}
}

// stringify renders the loose payload value as a string. JSON numbers
// arrive as float64; ids are small enough that the conversion is exact.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatInt(int64(t), 10)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}
