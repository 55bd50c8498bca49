package taxonomy

import (
	"context"
	"fmt"

	"github.com/worksuite/backend/internal/domain/identity"
	"github.com/worksuite/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProvisioningHandler reacts to tenant and organization creation by
// cloning the applicable classification sets into the new scope.
// Propagation runs inline with event delivery; partial failures are
// logged from the report, not raised, so onboarding never breaks on a
// single item.
type ProvisioningHandler struct {
	propagator *Propagator
	logger     *zap.Logger
}

// NewProvisioningHandler creates a new provisioning handler
func NewProvisioningHandler(propagator *Propagator, logger *zap.Logger) *ProvisioningHandler {
	return &ProvisioningHandler{
		propagator: propagator,
		logger:     logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ProvisioningHandler) EventTypes() []string {
	return []string{
		identity.EventTypeTenantCreated,
		identity.EventTypeOrganizationCreated,
	}
}

// Handle processes a lifecycle event
func (h *ProvisioningHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *identity.TenantCreatedEvent:
		report, err := h.propagator.PropagateToTenant(ctx, e.AggregateID())
		return h.finish("tenant", e.AggregateID().String(), report, err)

	case *identity.OrganizationCreatedEvent:
		report, err := h.propagator.PropagateToOrganization(ctx, e.TenantID(), e.OrganizationID)
		return h.finish("organization", e.OrganizationID.String(), report, err)

	default:
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
}

func (h *ProvisioningHandler) finish(tier, targetID string, report PropagationReport, err error) error {
	if err != nil {
		h.logger.Error("Taxonomy propagation failed",
			zap.String("tier", tier),
			zap.String("target_id", targetID),
			zap.Error(err))
		return err
	}

	h.logger.Info("Taxonomy propagated",
		zap.String("tier", tier),
		zap.String("target_id", targetID),
		zap.Int("created", report.Created),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", len(report.Failed)))

	for _, failure := range report.Failed {
		h.logger.Warn("Item failed to propagate",
			zap.String("kind", failure.Kind.String()),
			zap.String("value", failure.Value),
			zap.String("error", failure.Error))
	}

	return nil
}

// Ensure ProvisioningHandler implements shared.EventHandler
var _ shared.EventHandler = (*ProvisioningHandler)(nil)
