package stage

import (
	"context"

	"github.com/juju/errors"

	"github.com/phytec-labs/elements/catalog"
	"github.com/phytec-labs/elements/failure"
	"github.com/phytec-labs/elements/util"
	"github.com/phytec-labs/elements/workspace"
)

func (p *Pipeline) generate(ctx context.Context, t catalog.Target, o Options) (Result, error) {
	if err := p.sbt(ctx, p.targetEnv(t), t.Package()+"."+t.Top(), "generate"); err != nil {
		return Result{}, errors.Trace(err)
	}
	return Result{Artifacts: p.artifacts(t, workspace.Netlist, workspace.HardwareDescription)}, nil
}

func (p *Pipeline) requireNetlist(t catalog.Target) error {
	if !util.FileExists(p.Workspace.PathFor(t, workspace.Netlist)) {
		return failure.Preconditionf("generate", "No SOC design found.")
	}
	return nil
}

// removeMemoryImages deletes the memory images the simulation leaves next to the generator.
func (p *Pipeline) removeMemoryImages(t catalog.Target) error {
	_, err := util.RemoveGlob(p.path("zibal", t.Top()+".v*bin"))
	return errors.Annotatef(err, "failed to remove memory images")
}
