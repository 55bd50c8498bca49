package taxonomy

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/worksuite/backend/internal/domain/shared"
	"github.com/worksuite/backend/internal/domain/taxonomy"
	"go.uber.org/zap"
)

// Propagator clones classification sets downward when a new scope is
// provisioned: global defaults into a tenant, the tenant tier into an
// organization, the organization tier into a project or team. Calls
// are idempotent; items whose value already exists in the target
// scope are skipped rather than duplicated.
type Propagator struct {
	repo     taxonomy.Repository
	registry *taxonomy.Registry
	cache    ResolutionCache
	events   shared.EventPublisher
	logger   *zap.Logger
}

// NewPropagator creates a new propagator
func NewPropagator(
	repo taxonomy.Repository,
	registry *taxonomy.Registry,
	cache ResolutionCache,
	events shared.EventPublisher,
	logger *zap.Logger,
) *Propagator {
	if cache == nil {
		cache = NoopResolutionCache{}
	}
	return &Propagator{
		repo:     repo,
		registry: registry,
		cache:    cache,
		events:   events,
		logger:   logger,
	}
}

// SeedGlobalDefaults inserts the registry's global defaults for every
// kind, skipping values that already exist. Safe to run on every
// process start.
func (p *Propagator) SeedGlobalDefaults(ctx context.Context) (PropagationReport, error) {
	report := PropagationReport{}
	global := taxonomy.GlobalScope()

	for _, kind := range taxonomy.Kinds() {
		created := 0
		for _, seed := range p.registry.Defaults(kind) {
			exists, err := p.repo.ExistsByValue(ctx, kind, global, seed.Value)
			if err != nil {
				return report, err
			}
			if exists {
				report.Skipped++
				continue
			}

			item := taxonomy.NewSystemItem(kind, seed)
			if err := p.repo.Create(ctx, kind, item); err != nil {
				if errors.Is(err, taxonomy.ErrDuplicateValue) {
					report.Skipped++
					continue
				}
				return report, err
			}
			created++
		}
		if created > 0 {
			p.cache.InvalidateKind(ctx, kind)
		}
		report.Created += created
	}

	p.logger.Info("Global taxonomy defaults seeded",
		zap.Int("created", report.Created),
		zap.Int("skipped", report.Skipped))

	return report, nil
}

// PropagateToTenant clones the global defaults of every kind into a
// freshly provisioned tenant
func (p *Propagator) PropagateToTenant(ctx context.Context, tenantID uuid.UUID) (PropagationReport, error) {
	return p.propagateAll(ctx, taxonomy.GlobalScope(), taxonomy.TenantScope(tenantID))
}

// PropagateToOrganization clones the tenant tier into a new
// organization. A tenant without customizations falls back to the
// global defaults through the normal resolution walk.
func (p *Propagator) PropagateToOrganization(ctx context.Context, tenantID, organizationID uuid.UUID) (PropagationReport, error) {
	return p.propagateAll(ctx, taxonomy.TenantScope(tenantID), taxonomy.OrganizationScope(tenantID, organizationID))
}

// PropagateToProject clones the organization tier into a project
func (p *Propagator) PropagateToProject(ctx context.Context, tenantID, organizationID, projectID uuid.UUID) (PropagationReport, error) {
	return p.propagateAll(ctx, taxonomy.OrganizationScope(tenantID, organizationID), taxonomy.ProjectScope(tenantID, organizationID, projectID))
}

// PropagateToTeam clones the organization tier into a team
func (p *Propagator) PropagateToTeam(ctx context.Context, tenantID, organizationID, teamID uuid.UUID) (PropagationReport, error) {
	return p.propagateAll(ctx, taxonomy.OrganizationScope(tenantID, organizationID), taxonomy.TeamScope(tenantID, organizationID, teamID))
}

// propagateAll runs one propagation per kind and folds the reports
func (p *Propagator) propagateAll(ctx context.Context, source, target taxonomy.Scope) (PropagationReport, error) {
	report := PropagationReport{}
	for _, kind := range taxonomy.Kinds() {
		kindReport, err := p.propagateKind(ctx, kind, source, target)
		if err != nil {
			return report, err
		}
		report.Merge(kindReport)
	}

	if len(report.Failed) > 0 {
		p.logger.Warn("Propagation finished with failures",
			zap.Int("created", report.Created),
			zap.Int("skipped", report.Skipped),
			zap.Int("failed", len(report.Failed)))
	}

	return report, nil
}

// propagateKind clones one kind's source tier into the target scope.
// Reading the source is fatal on error; individual insert failures
// are collected in the report and do not abort the batch.
func (p *Propagator) propagateKind(ctx context.Context, kind taxonomy.Kind, source, target taxonomy.Scope) (PropagationReport, error) {
	report := PropagationReport{}

	effective, err := resolveEffectiveScope(ctx, p.repo, kind, source)
	if err != nil {
		return report, err
	}
	items, err := p.repo.FindForScope(ctx, kind, effective)
	if err != nil {
		return report, err
	}
	if effective.IsGlobal() && len(items) == 0 {
		return report, taxonomy.ErrNotSeeded
	}

	for position, item := range items {
		exists, err := p.repo.ExistsByValue(ctx, kind, target, item.Value)
		if err != nil {
			report.Failed = append(report.Failed, PropagationFailure{Kind: kind, Value: item.Value, Error: err.Error()})
			continue
		}
		if exists {
			report.Skipped++
			continue
		}

		clone := item.CloneInto(target)
		if kind.HasOrdering() && clone.SortOrder == 0 && position > 0 {
			clone.SortOrder = position
		}

		if err := p.repo.Create(ctx, kind, clone); err != nil {
			if errors.Is(err, taxonomy.ErrDuplicateValue) {
				report.Skipped++
				continue
			}
			report.Failed = append(report.Failed, PropagationFailure{Kind: kind, Value: item.Value, Error: err.Error()})
			continue
		}
		report.Created++
	}

	// New rows change what resolves under the target scope, so cached
	// entries of this kind are stale from here on.
	if report.Created > 0 {
		p.cache.InvalidateKind(ctx, kind)
	}

	p.publishProvisioned(ctx, kind, target, report)

	return report, nil
}

func (p *Propagator) publishProvisioned(ctx context.Context, kind taxonomy.Kind, target taxonomy.Scope, report PropagationReport) {
	if p.events == nil || report.Created == 0 {
		return
	}
	event := taxonomy.NewScopeProvisionedEvent(kind, target, report.Created, report.Skipped)
	if err := p.events.Publish(ctx, event); err != nil {
		p.logger.Error("Failed to publish provisioning event",
			zap.String("kind", kind.String()),
			zap.Error(err))
	}
}
