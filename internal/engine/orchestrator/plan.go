package orchestrator

import (
	"context"

	"go.trai.ch/rockbuild/internal/core/domain"
)

// Plan computes what Run would do without invoking the toolchain or the binding generator.
func (o *Orchestrator) Plan(ctx context.Context, req *domain.BuildRequest) (*domain.BuildPlan, error) {
	facts := domain.Classify(req.Target)

	ctx, span := o.tracer.Start(ctx, "plan")
	defer span.End()

	plan := &domain.BuildPlan{
		Facts: facts,
		Links: domain.SystemLibraries(facts.Platform),
	}

	var planned []string
	for _, c := range domain.Components() {
		enabled := req.Features.Enabled(c)
		res := domain.Resolve(c, req.Env)
		plan.Components = append(plan.Components, domain.PlannedComponent{
			Component: c.ID,
			Enabled:   enabled,
			Kind:      res.Kind,
			Dir:       res.Dir,
			Mode:      res.Mode,
		})
		if !enabled {
			continue
		}
		planned = append(planned, string(c.ID))

		if d, ok := res.Directive(); ok {
			plan.Links = append(plan.Links, d)
			continue
		}
		plan.Links = append(plan.Links, domain.LinkDirective{Name: c.Archive, SearchPath: req.OutDir, Mode: domain.LinkStatic})

		if c.ID == domain.ComponentRocksDB {
			set, err := resolveSources(manifestPath(req), facts)
			if err != nil {
				span.RecordError(err)
				return nil, err
			}
			plan.Sources = set
		}
	}

	o.tracer.EmitPlan(ctx, planned)
	return plan, nil
}
