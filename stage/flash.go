package stage

import (
	"context"

	"github.com/juju/errors"

	"github.com/phytec-labs/elements/catalog"
	"github.com/phytec-labs/elements/failure"
	"github.com/phytec-labs/elements/util"
	"github.com/phytec-labs/elements/workspace"
)

// bitstream returns the bitstream to flash and the toolchain that built it.
// Symbiflow wins when both exist.
func (p *Pipeline) bitstream(t catalog.Target) (string, string, error) {
	if path := p.Workspace.PathFor(t, workspace.SymbiflowBitstream); util.FileExists(path) {
		return path, "symbiflow", nil
	}
	if path := p.Workspace.PathFor(t, workspace.VivadoBitstream); util.FileExists(path) {
		return path, "vivado", nil
	}
	return "", "", failure.Preconditionf("synthesize", "No bitstream found.")
}

func (p *Pipeline) flash(ctx context.Context, t catalog.Target, o Options) (Result, error) {
	if o.Destination == DestinationMemory {
		return p.flashMemory(ctx, t)
	}

	board, err := p.loadBoard(t)
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	bridge, ok := board.Destination(string(o.Destination))
	if !ok {
		return Result{}, failure.Validationf("Unsupported destination %s for board %s", o.Destination, t.Board)
	}
	path, origin, err := p.bitstream(t)
	if err != nil {
		return Result{}, errors.Trace(err)
	}

	e := p.targetEnv(t).
		With("TOP", t.Top()).
		With("TRANSPORT", board.Transport()).
		With("BITSTREAM_ORIGIN", origin)
	err = p.run(ctx, e, p.path(p.OpenocdDir),
		"src/openocd",
		"-c", "set SOC "+t.Soc(),
		"-c", "set BOARD "+t.BoardName(),
		"-c", "set TOP "+t.Top(),
		"-c", "set BASE_PATH "+p.Base,
		"-c", "set TRANSPORT "+board.Transport(),
		"-c", "set BITSTREAM_ORIGIN "+origin,
		"-f", p.path("zibal/openocd", "flash_"+bridge+".cfg"),
	)
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	return Result{Artifacts: []string{path}}, nil
}
