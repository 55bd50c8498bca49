package taxonomy

import (
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/worksuite/backend/internal/domain/shared"
)

// Item is a single classification record in one of the three taxonomy
// families. One shape serves all kinds; SortOrder and IsCollapsed are
// only meaningful for statuses. The four scope pointers are nullable:
// a record with all of them null and IsSystem set is a seeded global
// default, anything else belongs to the scope its pointers name.
type Item struct {
	shared.BaseAggregateRoot
	Name           string     `gorm:"type:varchar(100);not null"`
	Value          string     `gorm:"type:varchar(100);not null"`
	Description    string     `gorm:"type:text"`
	Icon           string     `gorm:"type:varchar(255)"`
	Color          string     `gorm:"type:varchar(24)"`
	SortOrder      int        `gorm:"column:sort_order;not null;default:0"`
	IsCollapsed    bool       `gorm:"not null;default:false"`
	IsSystem       bool       `gorm:"not null;default:false;index"`
	TenantID       *uuid.UUID `gorm:"type:uuid;index"`
	OrganizationID *uuid.UUID `gorm:"type:uuid;index"`
	ProjectID      *uuid.UUID `gorm:"type:uuid;index"`
	TeamID         *uuid.UUID `gorm:"type:uuid;column:organization_team_id;index"`
}

// NewItem creates a scoped, user-defined item. The value slug is
// derived from the name once and never changes afterwards; a missing
// color is filled from the generated palette.
func NewItem(kind Kind, scope Scope, name, description, icon, color string) (*Item, error) {
	if err := validateItemName(name); err != nil {
		return nil, err
	}
	if scope.IsGlobal() {
		return nil, shared.NewDomainError("SCOPE_REQUIRED", "User-defined items require at least a tenant scope")
	}

	value := Slugify(name)
	if color == "" {
		color = GenerateColor(value)
	}

	item := &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Value:             value,
		Description:       description,
		Icon:              icon,
		Color:             color,
		TenantID:          scope.TenantID,
		OrganizationID:    scope.OrganizationID,
		ProjectID:         scope.ProjectID,
		TeamID:            scope.TeamID,
	}

	item.AddDomainEvent(NewItemCreatedEvent(kind, item))

	return item, nil
}

// NewSystemItem creates a global default from a seed definition.
// System items carry no scope pointers and are protected from deletion.
func NewSystemItem(kind Kind, seed SeedItem) *Item {
	color := seed.Color
	if color == "" {
		color = GenerateColor(seed.Value)
	}
	return &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              seed.Name,
		Value:             seed.Value,
		Description:       seed.Description,
		Icon:              seed.Icon,
		Color:             color,
		SortOrder:         seed.Order,
		IsCollapsed:       seed.IsCollapsed,
		IsSystem:          true,
	}
}

// CloneInto builds a copy of the item for a narrower scope. The clone
// gets a fresh identity, keeps all display fields and the column
// order, and is never a system record.
func (i *Item) CloneInto(scope Scope) *Item {
	return &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              i.Name,
		Value:             i.Value,
		Description:       i.Description,
		Icon:              i.Icon,
		Color:             i.Color,
		SortOrder:         i.SortOrder,
		IsCollapsed:       i.IsCollapsed,
		IsSystem:          false,
		TenantID:          scope.TenantID,
		OrganizationID:    scope.OrganizationID,
		ProjectID:         scope.ProjectID,
		TeamID:            scope.TeamID,
	}
}

// Scope returns the scope tuple stored on the item
func (i *Item) Scope() Scope {
	return Scope{
		TenantID:       i.TenantID,
		OrganizationID: i.OrganizationID,
		ProjectID:      i.ProjectID,
		TeamID:         i.TeamID,
	}
}

// CanDelete reports whether the item may be removed
func (i *Item) CanDelete() bool {
	return !i.IsSystem
}

// Rename changes the display name. The value slug stays as derived at
// creation time so task rows referencing it keep resolving.
func (i *Item) Rename(name string) error {
	if err := validateItemName(name); err != nil {
		return err
	}
	i.Name = name
	i.Touch()
	i.IncrementVersion()
	return nil
}

// SetSortOrder moves the item to a new column position
func (i *Item) SetSortOrder(order int) {
	i.SortOrder = order
	i.Touch()
	i.IncrementVersion()
}

// SetCollapsed toggles the rendering hint for status columns
func (i *Item) SetCollapsed(collapsed bool) {
	i.IsCollapsed = collapsed
	i.Touch()
	i.IncrementVersion()
}

// Slugify derives the immutable value slug from a display name:
// lower case, runs of non-alphanumeric characters collapsed to a
// single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		} else {
			pendingDash = true
		}
	}
	return b.String()
}

// colorPalette holds the fallback colors assigned to items created
// without an explicit color.
var colorPalette = []string{
	"#D6E4F0", "#F5B8B5", "#F3D8B0", "#B8D1F5",
	"#C7E2A7", "#E0C9F0", "#F5F1B8", "#BFE3E0",
}

// GenerateColor picks a deterministic palette color for a value slug
func GenerateColor(value string) string {
	h := fnv.New32a()
	h.Write([]byte(value))
	return colorPalette[h.Sum32()%uint32(len(colorPalette))]
}

func validateItemName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if len(trimmed) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot exceed 100 characters")
	}
	if Slugify(trimmed) == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name must contain at least one letter or digit")
	}
	return nil
}
