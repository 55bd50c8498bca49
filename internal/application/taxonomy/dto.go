package taxonomy

import (
	"time"

	"github.com/google/uuid"
	"github.com/worksuite/backend/internal/domain/taxonomy"
)

// CreateItemInput contains input for creating a scoped item
type CreateItemInput struct {
	Name           string
	Description    string
	Icon           string
	Color          string
	TenantID       *uuid.UUID
	OrganizationID *uuid.UUID
	ProjectID      *uuid.UUID
	TeamID         *uuid.UUID
}

// Scope builds the scope tuple from the input pointers
func (in CreateItemInput) Scope() taxonomy.Scope {
	return taxonomy.Scope{
		TenantID:       in.TenantID,
		OrganizationID: in.OrganizationID,
		ProjectID:      in.ProjectID,
		TeamID:         in.TeamID,
	}
}

// ItemDTO represents a classification item for external callers
type ItemDTO struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Value          string     `json:"value"`
	Description    string     `json:"description,omitempty"`
	Icon           string     `json:"icon,omitempty"`
	Color          string     `json:"color,omitempty"`
	Order          int        `json:"order"`
	IsCollapsed    bool       `json:"is_collapsed"`
	IsSystem       bool       `json:"is_system"`
	TenantID       *uuid.UUID `json:"tenant_id,omitempty"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	ProjectID      *uuid.UUID `json:"project_id,omitempty"`
	TeamID         *uuid.UUID `json:"team_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// toItemDTO converts a domain item to its DTO
func toItemDTO(item *taxonomy.Item) ItemDTO {
	return ItemDTO{
		ID:             item.ID,
		Name:           item.Name,
		Value:          item.Value,
		Description:    item.Description,
		Icon:           item.Icon,
		Color:          item.Color,
		Order:          item.SortOrder,
		IsCollapsed:    item.IsCollapsed,
		IsSystem:       item.IsSystem,
		TenantID:       item.TenantID,
		OrganizationID: item.OrganizationID,
		ProjectID:      item.ProjectID,
		TeamID:         item.TeamID,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

func toItemDTOs(items []taxonomy.Item) []ItemDTO {
	dtos := make([]ItemDTO, len(items))
	for i := range items {
		dtos[i] = toItemDTO(&items[i])
	}
	return dtos
}

// DeleteOutcome distinguishes the three results of a delete request
type DeleteOutcome string

const (
	DeleteOutcomeDeleted     DeleteOutcome = "deleted"
	DeleteOutcomeNotFound    DeleteOutcome = "not_found"
	DeleteOutcomeNotEligible DeleteOutcome = "not_eligible"
)

// DeleteResult is the outcome of a delete request. Protected system
// records come back as NotEligible rather than as an error so callers
// can tell refusal apart from absence.
type DeleteResult struct {
	Outcome DeleteOutcome `json:"outcome"`
}

// ReorderEntry is one (id, order) pair of a reorder batch
type ReorderEntry struct {
	ID    uuid.UUID `json:"id"`
	Order int       `json:"order"`
}

// ReorderResult reports how much of a reorder batch was applied.
// Entries naming missing or system records are skipped and counted,
// not errored.
type ReorderResult struct {
	Success      bool `json:"success"`
	AppliedCount int  `json:"applied_count"`
	SkippedCount int  `json:"skipped_count"`
}

// PropagationFailure identifies one item that could not be cloned
type PropagationFailure struct {
	Kind  taxonomy.Kind `json:"kind"`
	Value string        `json:"value"`
	Error string        `json:"error"`
}

// PropagationReport aggregates the outcome of one propagation call
// across all kinds. Individual insert failures are collected here
// instead of aborting the batch.
type PropagationReport struct {
	Created int                  `json:"created"`
	Skipped int                  `json:"skipped"`
	Failed  []PropagationFailure `json:"failed,omitempty"`
}

// Merge folds another report into this one
func (r *PropagationReport) Merge(other PropagationReport) {
	r.Created += other.Created
	r.Skipped += other.Skipped
	r.Failed = append(r.Failed, other.Failed...)
}
