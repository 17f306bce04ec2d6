package stage

import (
	"context"

	"github.com/juju/errors"

	"github.com/phytec-labs/elements/catalog"
	"github.com/phytec-labs/elements/failure"
	"github.com/phytec-labs/elements/util"
	"github.com/phytec-labs/elements/workspace"
)

// Only the ASIC flow maps and places; FPGA toolchains do it during synthesis.
var mappers = map[Backend]backendFunc{
	Cadence: (*Pipeline).mapGenus,
}

var placers = map[Backend]backendFunc{
	Cadence: (*Pipeline).placeInnovus,
}

// SupportsPhysical reports whether backend has separate map and place stages.
func SupportsPhysical(backend Backend) bool {
	_, mapper := mappers[backend]
	_, placer := placers[backend]
	return mapper && placer
}

func (p *Pipeline) physical(ctx context.Context, stage string, handlers map[Backend]backendFunc, t catalog.Target, o Options) (Result, error) {
	handler, ok := handlers[o.Backend]
	if !ok {
		return Result{}, unsupported(stage, o.Backend)
	}
	if !util.FileExists(p.Workspace.PathFor(t, workspace.SynthesizedNetlist)) {
		return Result{}, failure.Preconditionf("synthesize", "No synthesized design found.")
	}
	board, err := p.loadBoard(t)
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	if !board.HasCadence() {
		return Result{}, missingBlock("cadence", board)
	}
	return handler(p, ctx, t, board, o)
}

func (p *Pipeline) mapDesign(ctx context.Context, t catalog.Target, o Options) (Result, error) {
	return p.physical(ctx, "map", mappers, t, o)
}

func (p *Pipeline) place(ctx context.Context, t catalog.Target, o Options) (Result, error) {
	return p.physical(ctx, "place", placers, t, o)
}

func (p *Pipeline) mapGenus(ctx context.Context, t catalog.Target, board *catalog.Board, o Options) (Result, error) {
	stamp := p.Now().Format(workspace.StampFormat)
	e := p.cadenceEnv(t, board, o, stamp)
	if err := p.runCadence(ctx, t, workspace.CadenceMapDir, e, stamp, "genus", "-f", "tcl/map.tcl"); err != nil {
		return Result{}, errors.Trace(err)
	}
	return Result{Artifacts: p.artifacts(t, workspace.CadenceMapDir)}, nil
}

func (p *Pipeline) placeInnovus(ctx context.Context, t catalog.Target, board *catalog.Board, o Options) (Result, error) {
	stamp := p.Now().Format(workspace.StampFormat)
	e := p.cadenceEnv(t, board, o, stamp).With("STAGE", string(o.PlaceStage))
	if err := p.runCadence(ctx, t, workspace.CadencePlaceDir, e, stamp, "innovus", "-files", "tcl/place.tcl"); err != nil {
		return Result{}, errors.Trace(err)
	}
	return Result{Artifacts: p.artifacts(t, workspace.CadencePlaceDir)}, nil
}
