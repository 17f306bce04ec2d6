package stage

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/juju/errors"

	"github.com/phytec-labs/elements/catalog"
	"github.com/phytec-labs/elements/env"
	"github.com/phytec-labs/elements/failure"
	"github.com/phytec-labs/elements/workspace"
)

var synthesizers = map[Backend]backendFunc{
	Xilinx:  (*Pipeline).synthesizeVivado,
	OSS:     (*Pipeline).synthesizeSymbiflow,
	Cadence: (*Pipeline).synthesizeGenus,
}

func missingBlock(block string, board *catalog.Board) error {
	return failure.Validationf("No %s definitions in board %s", block, board.Name)
}

func (p *Pipeline) synthesize(ctx context.Context, t catalog.Target, o Options) (Result, error) {
	synthesizer, ok := synthesizers[o.Backend]
	if !ok {
		return Result{}, unsupported("synthesize", o.Backend)
	}
	if err := p.requireNetlist(t); err != nil {
		return Result{}, errors.Trace(err)
	}
	board, err := p.loadBoard(t)
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	return synthesizer(p, ctx, t, board, o)
}

func (p *Pipeline) synthesizeVivado(ctx context.Context, t catalog.Target, board *catalog.Board, o Options) (Result, error) {
	if !board.HasXilinx() {
		return Result{}, missingBlock("xilinx", board)
	}
	tclPath := p.path("zibal/eda/Xilinx/vivado/syn")
	e := p.targetEnv(t).
		With("PART", board.Xilinx.Part).
		With("TCL_PATH", tclPath)

	err := p.run(ctx, e, p.Workspace.PathFor(t, workspace.VivadoSynDir),
		"vivado", "-mode", "batch", "-source", filepath.Join(tclPath, "syn.tcl"),
		"-log", "./logs/vivado.log", "-journal", "./logs/vivado.jou")
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	return Result{Artifacts: p.artifacts(t, workspace.VivadoBitstream)}, nil
}

func (p *Pipeline) synthesizeSymbiflow(ctx context.Context, t catalog.Target, board *catalog.Board, o Options) (Result, error) {
	if !board.HasXilinx() {
		return Result{}, missingBlock("xilinx", board)
	}
	e := p.targetEnv(t).
		With("PART", strings.ToLower(board.Xilinx.Part)).
		With("DEVICE", board.Xilinx.Device+"_test")

	symbiflowDir := p.path("zibal/eda/Xilinx/symbiflow")
	if err := p.run(ctx, e, symbiflowDir, "make", "clean"); err != nil {
		return Result{}, errors.Trace(err)
	}
	if err := p.run(ctx, e, symbiflowDir, "./syn.sh"); err != nil {
		return Result{}, errors.Trace(err)
	}
	return Result{Artifacts: p.artifacts(t, workspace.SymbiflowBitstream)}, nil
}

// cadenceEnv returns the environment of a timestamped cadence run.
func (p *Pipeline) cadenceEnv(t catalog.Target, board *catalog.Board, o Options, stamp string) env.Environment {
	return p.targetEnv(t).
		With("TOP", t.Top()).
		With("EFFORT", string(o.Effort)).
		With("DATETIME", stamp).
		With("PROCESS", board.Cadence.Process).
		With("PDK", board.Cadence.Pdk)
}

// runCadence runs a cadence tool with its log in a fresh run directory of
// stageDir and marks the run as the latest one when it succeeds.
func (p *Pipeline) runCadence(ctx context.Context, t catalog.Target, stageDir workspace.Artifact, e env.Environment, stamp string, args ...string) error {
	logs, err := p.Workspace.RunDir(t, stageDir, stamp)
	if err != nil {
		return errors.Trace(err)
	}
	args = append(args, "-log", logs)
	if err := p.run(ctx, e, p.path("zibal/eda/Cadence"), args...); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(p.Workspace.MarkLatest(t, stageDir, stamp))
}

func (p *Pipeline) synthesizeGenus(ctx context.Context, t catalog.Target, board *catalog.Board, o Options) (Result, error) {
	if !board.HasCadence() {
		return Result{}, missingBlock("cadence", board)
	}
	stamp := p.Now().Format(workspace.StampFormat)
	e := p.cadenceEnv(t, board, o, stamp)
	if err := p.runCadence(ctx, t, workspace.CadenceSynthesizeDir, e, stamp, "genus", "-f", "tcl/synthesize.tcl"); err != nil {
		return Result{}, errors.Trace(err)
	}
	return Result{Artifacts: p.artifacts(t, workspace.SynthesizedNetlist)}, nil
}
