package stage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/errors"

	"github.com/phytec-labs/elements/catalog"
	"github.com/phytec-labs/elements/failure"
	"github.com/phytec-labs/elements/log"
	"github.com/phytec-labs/elements/tool"
	"github.com/phytec-labs/elements/util"
	"github.com/phytec-labs/elements/workspace"
)

type backendFunc func(p *Pipeline, ctx context.Context, t catalog.Target, board *catalog.Board, o Options) (Result, error)

var simulators = map[Backend]backendFunc{
	OSS:     (*Pipeline).simulateSpinal,
	Xilinx:  (*Pipeline).simulateVivado,
	Cadence: (*Pipeline).simulateGateLevel,
}

func unsupported(stage string, backend Backend) error {
	return failure.Validationf("Toolchain '%s' does not support %s", backend, stage)
}

func (p *Pipeline) simulate(ctx context.Context, t catalog.Target, o Options) (Result, error) {
	simulator, ok := simulators[o.Backend]
	if !ok {
		return Result{}, unsupported("simulate", o.Backend)
	}
	if err := p.requireNetlist(t); err != nil {
		return Result{}, errors.Trace(err)
	}
	if o.Source == SourceSynthesized && !util.FileExists(p.Workspace.PathFor(t, workspace.SynthesizedNetlist)) {
		return Result{}, failure.Preconditionf("synthesize", "No synthesized design found.")
	}
	board, err := p.loadBoard(t)
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	return simulator(p, ctx, t, board, o)
}

func (p *Pipeline) simulateSpinal(ctx context.Context, t catalog.Target, board *catalog.Board, o Options) (Result, error) {
	e := p.targetEnv(t).With("SOURCE", string(o.Source))
	if err := p.sbt(ctx, e, t.Package()+"."+t.BoardName()+"Board", string(o.Source), "boot"); err != nil {
		return Result{}, errors.Trace(err)
	}
	if err := p.removeMemoryImages(t); err != nil {
		return Result{}, errors.Trace(err)
	}

	err := p.Invoker.Run(ctx, tool.Command{
		Args:  []string{"gtkwave", "boot.vcd"},
		Env:   e,
		Dir:   p.Workspace.PathFor(t, workspace.SimulationDir),
		Stdin: strings.NewReader(""),
	})
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	return Result{Artifacts: p.artifacts(t, workspace.Waveform)}, nil
}

func (p *Pipeline) simulateVivado(ctx context.Context, t catalog.Target, board *catalog.Board, o Options) (Result, error) {
	if !board.HasXilinx() {
		return Result{}, missingBlock("xilinx", board)
	}
	tclPath := p.path("zibal/eda/Xilinx/vivado/sim")
	e := p.targetEnv(t).
		With("TOP", t.Top()).
		With("PART", board.Xilinx.Part).
		With("TCL_PATH", tclPath).
		With("SOURCE", string(o.Source))

	err := p.run(ctx, e, p.Workspace.PathFor(t, workspace.VivadoSimDir),
		"vivado", "-mode", "batch", "-source", filepath.Join(tclPath, "sim.tcl"),
		"-log", "./logs/vivado.log", "-journal", "./logs/vivado.jou")
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	return Result{Artifacts: p.artifacts(t, workspace.VivadoSimDir)}, nil
}

func (p *Pipeline) simulateGateLevel(ctx context.Context, t catalog.Target, board *catalog.Board, o Options) (Result, error) {
	if !board.HasCadence() {
		return Result{}, missingBlock("cadence", board)
	}
	tclPath := p.path("zibal/eda/Cadence/tcl") + "/"
	e := p.targetEnv(t).
		With("TOP", t.Top()).
		With("PDK", board.Cadence.Pdk).
		With("TCL_PATH", tclPath).
		With("SOURCE", string(o.Source))

	simDir := p.Workspace.PathFor(t, workspace.CadenceSimDir)
	images, err := filepath.Glob(filepath.Join(p.Workspace.PathFor(t, workspace.BootromDir), "*.rom"))
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	for _, image := range images {
		link := filepath.Join(simDir, filepath.Base(image))
		log.Debug("Linking '%s' to '%s'.\n", link, image)
		if err := os.RemoveAll(link); err != nil {
			return Result{}, errors.Trace(err)
		}
		if err := os.Symlink(image, link); err != nil {
			return Result{}, errors.Annotatef(err, "failed to link memory image")
		}
	}

	if err := p.run(ctx, e, tclPath, "./sim.sh"); err != nil {
		return Result{}, errors.Trace(err)
	}
	return Result{Artifacts: []string{simDir}}, nil
}
