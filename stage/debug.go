package stage

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/juju/errors"
	"gopkg.in/yaml.v2"

	"github.com/phytec-labs/elements/catalog"
	"github.com/phytec-labs/elements/env"
	"github.com/phytec-labs/elements/failure"
	"github.com/phytec-labs/elements/tool"
	"github.com/phytec-labs/elements/util"
	"github.com/phytec-labs/elements/workspace"
)

// DefaultFlashHold is how long gdb gets to load a firmware into memory.
const DefaultFlashHold = 15 * time.Second

const gdbPath = "riscv64-zephyr-elf/bin/riscv64-zephyr-elf-gdb"

// hardwareDescription is the part of the generated hardware description
// the benchmark needs.
type hardwareDescription struct {
	Frequency uint64 `yaml:"frequency"`
}

func (p *Pipeline) requireFirmware(t catalog.Target) error {
	if !util.FileExists(p.Workspace.PathFor(t, workspace.FirmwareELF)) {
		return failure.Preconditionf("compile", "No Zephyr elf found.")
	}
	return nil
}

// session runs gdb with script against the target while the openocd debug
// bridge is up. A positive hold stops gdb after that long.
func (p *Pipeline) session(ctx context.Context, t catalog.Target, e env.Environment, script string, hold time.Duration) error {
	if err := e.Require("ZEPHYR_SDK_INSTALL_DIR"); err != nil {
		return errors.Trace(err)
	}

	bridge := tool.Command{
		Args: []string{
			"./src/openocd",
			"-c", "set HYDROGEN_CPU0_YAML " + p.Workspace.PathFor(t, workspace.CPUDescription),
			"-f", "tcl/interface/jlink.cfg",
			"-f", p.path("zibal/gdb/hydrogen.cfg"),
		},
		Env: e,
		Dir: p.path(p.OpenocdDir),
	}
	gdb := tool.Command{
		Args: []string{
			filepath.Join(e.Get("ZEPHYR_SDK_INSTALL_DIR"), gdbPath),
			"-x", filepath.Join("zibal/gdb", script+".cmd"),
			p.Workspace.PathFor(t, workspace.FirmwareELF),
		},
		Env: e,
		Dir: p.Base,
	}

	return p.Invoker.RunPaired(ctx, bridge, func(ctx context.Context) error {
		if hold > 0 {
			return p.Invoker.RunFor(ctx, gdb, hold)
		}
		return p.Invoker.Run(ctx, gdb)
	})
}

func (p *Pipeline) debug(ctx context.Context, t catalog.Target, o Options) (Result, error) {
	if err := p.requireFirmware(t); err != nil {
		return Result{}, errors.Trace(err)
	}
	return Result{}, errors.Trace(p.session(ctx, t, p.targetEnv(t), "debug", 0))
}

func (p *Pipeline) flashMemory(ctx context.Context, t catalog.Target) (Result, error) {
	if err := p.requireFirmware(t); err != nil {
		return Result{}, errors.Trace(err)
	}
	hold := p.FlashHold
	if hold <= 0 {
		hold = DefaultFlashHold
	}
	return Result{}, errors.Trace(p.session(ctx, t, p.targetEnv(t), "flash", hold))
}

func (p *Pipeline) readFrequency(t catalog.Target) (uint64, error) {
	path := p.Workspace.PathFor(t, workspace.HardwareDescription)
	if !util.FileExists(path) {
		return 0, failure.Preconditionf("generate", "No hardware description found.")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Annotatef(err, "failed to read '%s'", path)
	}
	var description hardwareDescription
	if err := yaml.Unmarshal(data, &description); err != nil {
		return 0, failure.Validationf("Failed to parse '%s': %s", path, err)
	}
	if description.Frequency == 0 {
		return 0, failure.Preconditionf("generate", "No frequency defined in the hardware description.")
	}
	return description.Frequency, nil
}

func (p *Pipeline) benchmark(ctx context.Context, t catalog.Target, o Options) (Result, error) {
	if err := p.requireFirmware(t); err != nil {
		return Result{}, errors.Trace(err)
	}
	frequency, err := p.readFrequency(t)
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	e := p.targetEnv(t).With("FREQUENCY", strconv.FormatUint(frequency, 10))
	return Result{}, errors.Trace(p.session(ctx, t, e, "benchmark", 0))
}
