package stage

import (
	"context"

	"github.com/juju/errors"

	"github.com/phytec-labs/elements/catalog"
)

type step struct {
	stage   string
	options Options
}

// plan lists the stages build runs, in order.
func (p *Pipeline) plan(board *catalog.Board, o Options) ([]step, error) {
	if _, ok := synthesizers[o.Backend]; !ok {
		return nil, unsupported("synthesize", o.Backend)
	}
	switch {
	case o.Backend == Cadence && !board.HasCadence():
		return nil, missingBlock("cadence", board)
	case o.Backend != Cadence && !board.HasXilinx():
		return nil, missingBlock("xilinx", board)
	}

	steps := []step{{"prepare", o}}
	for _, firmware := range board.Firmwares {
		kind, err := ParseFirmwareKind(firmware)
		if err != nil {
			return nil, errors.Annotatef(err, "board %s", board.Name)
		}
		firmwareOptions := o
		firmwareOptions.Firmware = kind
		steps = append(steps, step{"compile", firmwareOptions})
	}
	steps = append(steps, step{"generate", o}, step{"synthesize", o})
	if SupportsPhysical(o.Backend) {
		steps = append(steps, step{"map", o}, step{"place", o})
	}
	return steps, nil
}

func (p *Pipeline) build(ctx context.Context, t catalog.Target, o Options) (Result, error) {
	board, err := p.loadBoard(t)
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	steps, err := p.plan(board, o)
	if err != nil {
		return Result{}, errors.Trace(err)
	}

	artifacts := []string{}
	for _, s := range steps {
		result, err := p.Run(ctx, s.stage, t, s.options)
		if err != nil {
			return Result{}, errors.Trace(err)
		}
		artifacts = append(artifacts, result.Artifacts...)
	}
	return Result{Artifacts: artifacts}, nil
}
