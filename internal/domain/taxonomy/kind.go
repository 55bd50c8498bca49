package taxonomy

import (
	"fmt"

	"github.com/worksuite/backend/internal/domain/shared"
)

// Kind identifies one of the three task classification families.
// All three share the same record shape and resolution rules; Status
// additionally carries a persisted column order and a collapsed flag.
type Kind string

const (
	KindStatus   Kind = "status"
	KindPriority Kind = "priority"
	KindSize     Kind = "size"
)

// Kinds lists every supported classification kind
func Kinds() []Kind {
	return []Kind{KindStatus, KindPriority, KindSize}
}

// ParseKind converts an external identifier into a Kind
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindStatus, KindPriority, KindSize:
		return Kind(s), nil
	default:
		return "", shared.NewDomainError("INVALID_KIND", fmt.Sprintf("Unknown taxonomy kind: %s", s))
	}
}

// TableName returns the storage table backing the kind
func (k Kind) TableName() string {
	switch k {
	case KindStatus:
		return "task_statuses"
	case KindPriority:
		return "task_priorities"
	default:
		return "task_sizes"
	}
}

// HasOrdering reports whether items of this kind carry a persisted
// column order. Only statuses are rendered as ordered workflow columns.
func (k Kind) HasOrdering() bool {
	return k == KindStatus
}

// String returns the kind identifier
func (k Kind) String() string {
	return string(k)
}
