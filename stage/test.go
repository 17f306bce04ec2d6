package stage

import (
	"context"

	"github.com/juju/errors"

	"github.com/phytec-labs/elements/catalog"
	"github.com/phytec-labs/elements/failure"
)

func (p *Pipeline) test(ctx context.Context, t catalog.Target, o Options) (Result, error) {
	if o.Case == "" {
		return Result{}, failure.Validationf("No test case given for %s", t)
	}
	if err := p.requireNetlist(t); err != nil {
		return Result{}, errors.Trace(err)
	}
	if err := p.sbt(ctx, p.targetEnv(t), t.Package()+"."+t.BoardName()+"Board", "generated", o.Case); err != nil {
		return Result{}, errors.Trace(err)
	}
	return Result{}, errors.Trace(p.removeMemoryImages(t))
}
