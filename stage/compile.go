package stage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/errors"

	"github.com/phytec-labs/elements/catalog"
	"github.com/phytec-labs/elements/failure"
	"github.com/phytec-labs/elements/tool"
	"github.com/phytec-labs/elements/util"
	"github.com/phytec-labs/elements/workspace"
)

const ninjaFileName = "build.ninja"

type compileFunc func(p *Pipeline, ctx context.Context, t catalog.Target, o Options) (Result, error)

var compilers = map[FirmwareKind]compileFunc{
	Bootrom:    (*Pipeline).compileBootrom,
	Zephyr:     (*Pipeline).compileZephyr,
	Menuconfig: (*Pipeline).menuconfig,
}

func (p *Pipeline) compile(ctx context.Context, t catalog.Target, o Options) (Result, error) {
	compiler, ok := compilers[o.Firmware]
	if !ok {
		_, err := ParseFirmwareKind(string(o.Firmware))
		return Result{}, errors.Trace(err)
	}
	return compiler(p, ctx, t, o)
}

func (p *Pipeline) compileBootrom(ctx context.Context, t catalog.Target, o Options) (Result, error) {
	e := p.targetEnv(t)
	fplDir := p.path("zibal-fpl")
	if err := p.run(ctx, e, filepath.Join(fplDir, t.Platform()), "make"); err != nil {
		return Result{}, errors.Trace(err)
	}

	image := p.Workspace.PathFor(t, workspace.BootromImage)
	romFile, err := os.CreateTemp(filepath.Dir(image), filepath.Base(image)+".*")
	if err != nil {
		return Result{}, errors.Annotatef(err, "failed to create '%s'", image)
	}
	defer os.Remove(romFile.Name())
	defer romFile.Close()

	err = p.Invoker.Run(ctx, tool.Command{
		Args:   []string{"python", filepath.Join(fplDir, "scripts", "gen_rom.py")},
		Env:    e,
		Dir:    p.Workspace.PathFor(t, workspace.BootromDir),
		Stdout: romFile,
	})
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	if err := romFile.Close(); err != nil {
		return Result{}, errors.Annotatef(err, "failed to write '%s'", romFile.Name())
	}
	if err := os.Rename(romFile.Name(), image); err != nil {
		return Result{}, errors.Annotatef(err, "failed to move '%s' into place", romFile.Name())
	}
	return Result{Artifacts: []string{image}}, nil
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func (p *Pipeline) compileZephyr(ctx context.Context, t catalog.Target, o Options) (Result, error) {
	if o.Application == "" {
		return Result{}, failure.Preconditionf("", "Firmware type 'zephyr' requires an application. Please define one.")
	}
	pristine := "auto"
	if o.Force {
		pristine = "always"
	}

	line := fmt.Sprintf(`venv/bin/west build -p %s -b %s -d %s %s -- -DDTC_INCLUDE_FLAG_FOR_DTS="-isystem;%s/" -DBOARD_ROOT=%s`,
		pristine,
		t.Kit(),
		quote(p.Workspace.PathFor(t, workspace.FirmwareDir)+"/"),
		quote(o.Application),
		p.Workspace.TargetDir(t),
		quote(p.Workspace.PathFor(t, workspace.FirmwareBoardsDir)+"/"),
	)
	args, err := tool.Parse(line)
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	if err := p.run(ctx, p.targetEnv(t), p.Base, args...); err != nil {
		return Result{}, errors.Trace(err)
	}
	return Result{Artifacts: p.artifacts(t, workspace.FirmwareELF)}, nil
}

func (p *Pipeline) menuconfig(ctx context.Context, t catalog.Target, o Options) (Result, error) {
	firmwareDir := p.Workspace.PathFor(t, workspace.FirmwareDir)
	if !util.FileExists(filepath.Join(firmwareDir, ninjaFileName)) {
		return Result{}, failure.Preconditionf("compile", "No Zephyr build found.")
	}
	if err := p.run(ctx, p.targetEnv(t), firmwareDir, "ninja", "menuconfig"); err != nil {
		return Result{}, errors.Trace(err)
	}
	return Result{}, nil
}
