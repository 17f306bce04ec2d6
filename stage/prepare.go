package stage

import (
	"context"

	"github.com/juju/errors"

	"github.com/phytec-labs/elements/catalog"
	"github.com/phytec-labs/elements/workspace"
)

func (p *Pipeline) prepare(ctx context.Context, t catalog.Target, o Options) (Result, error) {
	if err := p.sbt(ctx, p.targetEnv(t), t.Package()+"."+t.Top(), "prepare"); err != nil {
		return Result{}, errors.Trace(err)
	}
	return Result{Artifacts: p.artifacts(t, workspace.HardwareDir, workspace.FirmwareBoardsDir)}, nil
}
