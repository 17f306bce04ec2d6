package stage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phytec-labs/elements/catalog"
	"github.com/phytec-labs/elements/config"
	"github.com/phytec-labs/elements/env"
	"github.com/phytec-labs/elements/failure"
	"github.com/phytec-labs/elements/tool"
	"github.com/phytec-labs/elements/util"
	"github.com/phytec-labs/elements/workspace"
)

const sdkInstallDir = "/opt/zephyr-sdk-0.11.4"

type spyInvoker struct {
	calls       []tool.Command
	backgrounds []tool.Command
	holds       []time.Duration
	fail        map[string]error
	hook        func(c tool.Command)
}

func (s *spyInvoker) record(c tool.Command) error {
	s.calls = append(s.calls, c)
	if s.hook != nil {
		s.hook(c)
	}
	if err, ok := s.fail[c.Args[0]]; ok {
		return err
	}
	return nil
}

func (s *spyInvoker) Run(ctx context.Context, c tool.Command) error {
	return s.record(c)
}

func (s *spyInvoker) RunPaired(ctx context.Context, background tool.Command, foreground func(context.Context) error) error {
	s.backgrounds = append(s.backgrounds, background)
	return foreground(ctx)
}

func (s *spyInvoker) RunFor(ctx context.Context, c tool.Command, hold time.Duration) error {
	s.holds = append(s.holds, hold)
	return s.record(c)
}

func (s *spyInvoker) programs() []string {
	return util.MappedSlice(s.calls, func(c tool.Command) string { return c.Args[0] })
}

func (s *spyInvoker) last() tool.Command {
	return s.calls[len(s.calls)-1]
}

const artyA7 = `
xilinx:
  part: XC7A35TICSG324-1L
  device: xc7a35t
flash_bridge:
  fpga: arty
  transport: jtag
firmwares:
  - bootrom
  - zephyr
`

const nexys4DDR = `
xilinx:
  part: XC7A100TCSG324-1
  device: xc7a100t
`

const sg13s = `
cadence:
  process: 130
  pdk: SG13S
firmwares:
  - bootrom
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), util.DirMode))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestPipeline(t *testing.T) (*Pipeline, *spyInvoker) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, util.SocsDir, "Hydrogen1.yaml"), "boards:\n  - ArtyA7\n  - Nexys4DDR\n")
	writeFile(t, filepath.Join(base, util.SocsDir, "Carbon1.yaml"), "boards:\n  - SG13S\n")
	writeFile(t, filepath.Join(base, util.BoardsDir, "ArtyA7.yaml"), artyA7)
	writeFile(t, filepath.Join(base, util.BoardsDir, "Nexys4DDR.yaml"), nexys4DDR)
	writeFile(t, filepath.Join(base, util.BoardsDir, "SG13S.yaml"), sg13s)

	spy := &spyInvoker{fail: map[string]error{}}
	environment := env.New().
		With("ZEPHYR_SDK_INSTALL_DIR", sdkInstallDir).
		With("ZEPHYR_SDK_VERSION", "0.11.4")
	p := New(base, environment, spy, config.Settings{
		FlashHold:       2 * time.Second,
		OpenocdDir:      "openocd",
		ManifestURL:     "https://github.com/phytec-labs/elements-manifest.git",
		RepoLauncherURL: "https://storage.googleapis.com/git-repo-downloads/repo-1",
	})
	p.Now = func() time.Time { return time.Date(2021, 3, 1, 10, 30, 0, 0, time.UTC) }
	return p, spy
}

func target(t *testing.T, p *Pipeline, chipFamily, board string) catalog.Target {
	t.Helper()
	tgt, err := p.Target(chipFamily, board)
	require.NoError(t, err)
	return tgt
}

func options(modify func(o *Options)) Options {
	o := DefaultOptions()
	if modify != nil {
		modify(&o)
	}
	return o
}

func touch(t *testing.T, p *Pipeline, tgt catalog.Target, a workspace.Artifact) {
	writeFile(t, p.Workspace.PathFor(tgt, a), "")
}

func TestTargetValidatesAndEnsuresWorkspace(t *testing.T) {
	p, _ := newTestPipeline(t)

	_, err := p.Target("Hydrogen1", "SG13S")
	assert.True(t, failure.IsValidation(err))
	assert.NoDirExists(t, p.Workspace.Root())

	tgt := target(t, p, "Hydrogen1", "ArtyA7")
	assert.DirExists(t, p.Workspace.PathFor(tgt, workspace.VivadoSynDir))
}

func TestUnknownStage(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "ArtyA7")

	_, err := p.Run(context.Background(), "pack", tgt, DefaultOptions())
	assert.True(t, failure.IsValidation(err))
	assert.Empty(t, spy.calls)
}

func TestPrepareAndGenerate(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "ArtyA7")

	_, err := p.Run(context.Background(), "prepare", tgt, DefaultOptions())
	require.NoError(t, err)
	result, err := p.Run(context.Background(), "generate", tgt, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, spy.calls, 2)
	assert.Equal(t, []string{"sbt", "runMain zibal.soc.hydrogen1.ArtyA7Top prepare"}, spy.calls[0].Args)
	assert.Equal(t, []string{"sbt", "runMain zibal.soc.hydrogen1.ArtyA7Top generate"}, spy.calls[1].Args)
	assert.Equal(t, filepath.Join(p.Base, "zibal"), spy.calls[1].Dir)
	assert.Equal(t, "Hydrogen1", spy.calls[1].Env.Get("SOC"))
	assert.Equal(t, "ArtyA7", spy.calls[1].Env.Get("BOARD"))
	assert.Equal(t, sdkInstallDir, spy.calls[1].Env.Get("ZEPHYR_SDK_INSTALL_DIR"))
	assert.Equal(t, "generate", result.Stage)
	assert.Contains(t, result.Artifacts, p.Workspace.PathFor(tgt, workspace.Netlist))
}

func TestStageDoesNotChangePipelineEnvironment(t *testing.T) {
	p, _ := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "ArtyA7")
	keys := p.Env.Keys()

	_, err := p.Run(context.Background(), "prepare", tgt, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, keys, p.Env.Keys())
}

func TestSynthesizeRequiresGeneratedNetlist(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "ArtyA7")

	_, err := p.Run(context.Background(), "synthesize", tgt, DefaultOptions())
	require.Error(t, err)
	assert.True(t, failure.IsPrecondition(err))
	assert.Equal(t, `No SOC design found. Run "generate" before.`, failure.Message(err))
	assert.Empty(t, spy.calls)

	spy.hook = func(c tool.Command) {
		if c.Args[0] == "sbt" {
			touch(t, p, tgt, workspace.Netlist)
		}
	}
	_, err = p.Run(context.Background(), "generate", tgt, DefaultOptions())
	require.NoError(t, err)

	result, err := p.Run(context.Background(), "synthesize", tgt, DefaultOptions())
	require.NoError(t, err)
	vivado := spy.last()
	assert.Equal(t, []string{
		"vivado", "-mode", "batch",
		"-source", filepath.Join(p.Base, "zibal/eda/Xilinx/vivado/syn/syn.tcl"),
		"-log", "./logs/vivado.log", "-journal", "./logs/vivado.jou",
	}, vivado.Args)
	assert.Equal(t, p.Workspace.PathFor(tgt, workspace.VivadoSynDir), vivado.Dir)
	assert.Equal(t, "XC7A35TICSG324-1L", vivado.Env.Get("PART"))
	assert.Equal(t, filepath.Join(p.Base, "zibal/eda/Xilinx/vivado/syn"), vivado.Env.Get("TCL_PATH"))
	assert.Equal(t, []string{p.Workspace.PathFor(tgt, workspace.VivadoBitstream)}, result.Artifacts)
}

func TestSynthesizeWithoutXilinxBlock(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Carbon1", "SG13S")
	touch(t, p, tgt, workspace.Netlist)

	for _, backend := range []Backend{Xilinx, OSS} {
		_, err := p.Run(context.Background(), "synthesize", tgt, options(func(o *Options) { o.Backend = backend }))
		require.Error(t, err)
		assert.True(t, failure.IsValidation(err))
		assert.Equal(t, "No xilinx definitions in board SG13S", failure.Message(err))
	}
	assert.Empty(t, spy.calls)
}

func TestSynthesizeSymbiflow(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "ArtyA7")
	touch(t, p, tgt, workspace.Netlist)

	_, err := p.Run(context.Background(), "synthesize", tgt, options(func(o *Options) { o.Backend = OSS }))
	require.NoError(t, err)

	require.Len(t, spy.calls, 2)
	assert.Equal(t, []string{"make", "clean"}, spy.calls[0].Args)
	assert.Equal(t, []string{"./syn.sh"}, spy.calls[1].Args)
	assert.Equal(t, filepath.Join(p.Base, "zibal/eda/Xilinx/symbiflow"), spy.calls[1].Dir)
	assert.Equal(t, "xc7a35ticsg324-1l", spy.calls[1].Env.Get("PART"))
	assert.Equal(t, "xc7a35t_test", spy.calls[1].Env.Get("DEVICE"))
}

func TestSynthesizeCadence(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Carbon1", "SG13S")
	touch(t, p, tgt, workspace.Netlist)

	_, err := p.Run(context.Background(), "synthesize", tgt, options(func(o *Options) {
		o.Backend = Cadence
		o.Effort = EffortMedium
	}))
	require.NoError(t, err)

	genus := spy.last()
	stampDir := filepath.Join(p.Workspace.PathFor(tgt, workspace.CadenceSynthesizeDir), "2021-03-01_10-30-00")
	assert.Equal(t, []string{"genus", "-f", "tcl/synthesize.tcl", "-log", filepath.Join(stampDir, "logs")}, genus.Args)
	assert.Equal(t, filepath.Join(p.Base, "zibal/eda/Cadence"), genus.Dir)
	assert.Equal(t, "2021-03-01_10-30-00", genus.Env.Get("DATETIME"))
	assert.Equal(t, "130", genus.Env.Get("PROCESS"))
	assert.Equal(t, "SG13S", genus.Env.Get("PDK"))
	assert.Equal(t, "medium", genus.Env.Get("EFFORT"))

	link, err := os.Readlink(filepath.Join(p.Workspace.PathFor(tgt, workspace.CadenceSynthesizeDir), workspace.LatestLink))
	require.NoError(t, err)
	assert.Equal(t, "2021-03-01_10-30-00", link)
}

func TestSynthesizeFailureKeepsLatest(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Carbon1", "SG13S")
	touch(t, p, tgt, workspace.Netlist)
	spy.fail["genus"] = &failure.ToolExecutionError{Command: []string{"genus"}, ExitCode: 1}

	_, err := p.Run(context.Background(), "synthesize", tgt, options(func(o *Options) { o.Backend = Cadence }))
	assert.True(t, failure.IsToolExecution(err))
	_, err = os.Lstat(filepath.Join(p.Workspace.PathFor(tgt, workspace.CadenceSynthesizeDir), workspace.LatestLink))
	assert.True(t, os.IsNotExist(err))
}

func TestMapAndPlaceOnlyForCadence(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "ArtyA7")

	for _, stage := range []string{"map", "place"} {
		for _, backend := range []Backend{Xilinx, OSS} {
			_, err := p.Run(context.Background(), stage, tgt, options(func(o *Options) { o.Backend = backend }))
			require.Error(t, err)
			assert.True(t, failure.IsValidation(err), "%s with %s", stage, backend)
		}
	}
	assert.Empty(t, spy.calls)
	assert.True(t, SupportsPhysical(Cadence))
	assert.False(t, SupportsPhysical(Xilinx))
}

func TestPlaceRequiresSynthesis(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Carbon1", "SG13S")
	cadence := options(func(o *Options) { o.Backend = Cadence })

	_, err := p.Run(context.Background(), "place", tgt, cadence)
	assert.True(t, failure.IsPrecondition(err))
	assert.Equal(t, `No synthesized design found. Run "synthesize" before.`, failure.Message(err))
	assert.Empty(t, spy.calls)
}

func TestPlace(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Carbon1", "SG13S")
	touch(t, p, tgt, workspace.SynthesizedNetlist)

	_, err := p.Run(context.Background(), "place", tgt, options(func(o *Options) {
		o.Backend = Cadence
		o.PlaceStage = "cts"
	}))
	require.NoError(t, err)

	innovus := spy.last()
	assert.Equal(t, []string{"innovus", "-files", "tcl/place.tcl", "-log",
		filepath.Join(p.Workspace.PathFor(tgt, workspace.CadencePlaceDir), "2021-03-01_10-30-00", "logs")}, innovus.Args)
	assert.Equal(t, "cts", innovus.Env.Get("STAGE"))
	assert.Equal(t, "high", innovus.Env.Get("EFFORT"))
}

func TestFlashWithoutFlashBridge(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "Nexys4DDR")
	touch(t, p, tgt, workspace.VivadoBitstream)

	_, err := p.Run(context.Background(), "flash", tgt, DefaultOptions())
	require.Error(t, err)
	assert.True(t, failure.IsValidation(err))
	assert.Equal(t, "Unsupported destination fpga for board Nexys4DDR", failure.Message(err))
	assert.Empty(t, spy.calls)
	assert.Empty(t, spy.backgrounds)
}

func TestFlashUnsupportedDestination(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "ArtyA7")

	_, err := p.Run(context.Background(), "flash", tgt, options(func(o *Options) { o.Destination = DestinationSPI }))
	require.Error(t, err)
	assert.Equal(t, "Unsupported destination spi for board ArtyA7", failure.Message(err))
	assert.Empty(t, spy.calls)
}

func TestFlashRequiresBitstream(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "ArtyA7")

	_, err := p.Run(context.Background(), "flash", tgt, DefaultOptions())
	assert.True(t, failure.IsPrecondition(err))
	assert.Equal(t, `No bitstream found. Run "synthesize" before.`, failure.Message(err))
	assert.Empty(t, spy.calls)
}

func TestFlashFpga(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "ArtyA7")
	touch(t, p, tgt, workspace.VivadoBitstream)

	_, err := p.Run(context.Background(), "flash", tgt, DefaultOptions())
	require.NoError(t, err)
	openocd := spy.last()
	assert.Equal(t, []string{
		"src/openocd",
		"-c", "set SOC Hydrogen1",
		"-c", "set BOARD ArtyA7",
		"-c", "set TOP ArtyA7Top",
		"-c", "set BASE_PATH " + p.Base,
		"-c", "set TRANSPORT jtag",
		"-c", "set BITSTREAM_ORIGIN vivado",
		"-f", filepath.Join(p.Base, "zibal/openocd/flash_arty.cfg"),
	}, openocd.Args)
	assert.Equal(t, filepath.Join(p.Base, "openocd"), openocd.Dir)

	touch(t, p, tgt, workspace.SymbiflowBitstream)
	_, err = p.Run(context.Background(), "flash", tgt, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "symbiflow", spy.last().Env.Get("BITSTREAM_ORIGIN"))
}

func TestFlashMemoryHoldsGdb(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "Nexys4DDR")
	touch(t, p, tgt, workspace.FirmwareELF)

	_, err := p.Run(context.Background(), "flash", tgt, options(func(o *Options) { o.Destination = DestinationMemory }))
	require.NoError(t, err)

	require.Len(t, spy.backgrounds, 1)
	assert.Equal(t, []time.Duration{2 * time.Second}, spy.holds)
	gdb := spy.last()
	assert.Equal(t, []string{
		filepath.Join(sdkInstallDir, "riscv64-zephyr-elf/bin/riscv64-zephyr-elf-gdb"),
		"-x", "zibal/gdb/flash.cmd",
		p.Workspace.PathFor(tgt, workspace.FirmwareELF),
	}, gdb.Args)
}

func TestDebug(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "ArtyA7")

	_, err := p.Run(context.Background(), "debug", tgt, DefaultOptions())
	assert.True(t, failure.IsPrecondition(err))
	assert.Equal(t, `No Zephyr elf found. Run "compile" before.`, failure.Message(err))
	assert.Empty(t, spy.backgrounds)

	touch(t, p, tgt, workspace.FirmwareELF)
	_, err = p.Run(context.Background(), "debug", tgt, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, spy.backgrounds, 1)
	openocd := spy.backgrounds[0]
	assert.Equal(t, []string{
		"./src/openocd",
		"-c", "set HYDROGEN_CPU0_YAML " + p.Workspace.PathFor(tgt, workspace.CPUDescription),
		"-f", "tcl/interface/jlink.cfg",
		"-f", filepath.Join(p.Base, "zibal/gdb/hydrogen.cfg"),
	}, openocd.Args)
	assert.Empty(t, spy.holds)
	assert.Equal(t, "zibal/gdb/debug.cmd", spy.last().Args[2])
	assert.Equal(t, p.Base, spy.last().Dir)
}

func TestBenchmark(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "ArtyA7")
	touch(t, p, tgt, workspace.FirmwareELF)

	_, err := p.Run(context.Background(), "benchmark", tgt, DefaultOptions())
	assert.True(t, failure.IsPrecondition(err))

	writeFile(t, p.Workspace.PathFor(tgt, workspace.HardwareDescription), "name: ArtyA7Top\n")
	_, err = p.Run(context.Background(), "benchmark", tgt, DefaultOptions())
	assert.True(t, failure.IsPrecondition(err))
	assert.Contains(t, failure.Message(err), "frequency")
	assert.Empty(t, spy.calls)

	writeFile(t, p.Workspace.PathFor(tgt, workspace.HardwareDescription), "frequency: 50000000\n")
	_, err = p.Run(context.Background(), "benchmark", tgt, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "50000000", spy.last().Env.Get("FREQUENCY"))
	assert.Equal(t, "zibal/gdb/benchmark.cmd", spy.last().Args[2])
	assert.Len(t, spy.backgrounds, 1)
}

func TestSimulateSpinal(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "ArtyA7")
	oss := options(func(o *Options) { o.Backend = OSS })

	_, err := p.Run(context.Background(), "simulate", tgt, oss)
	assert.True(t, failure.IsPrecondition(err))

	touch(t, p, tgt, workspace.Netlist)
	leftover := filepath.Join(p.Base, "zibal", "ArtyA7Top.v_toplevel_ram_symbol0.bin")
	writeFile(t, leftover, "")

	result, err := p.Run(context.Background(), "simulate", tgt, oss)
	require.NoError(t, err)
	assert.Equal(t, []string{"sbt", "gtkwave"}, spy.programs())
	assert.Equal(t, "runMain zibal.soc.hydrogen1.ArtyA7Board generated boot", spy.calls[0].Args[1])
	assert.Equal(t, p.Workspace.PathFor(tgt, workspace.SimulationDir), spy.calls[1].Dir)
	assert.NotNil(t, spy.calls[1].Stdin)
	assert.NoFileExists(t, leftover)
	assert.Equal(t, []string{p.Workspace.PathFor(tgt, workspace.Waveform)}, result.Artifacts)
}

func TestSimulateSynthesizedRequiresSynthesis(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Carbon1", "SG13S")
	touch(t, p, tgt, workspace.Netlist)

	_, err := p.Run(context.Background(), "simulate", tgt, options(func(o *Options) {
		o.Backend = Cadence
		o.Source = SourceSynthesized
	}))
	assert.True(t, failure.IsPrecondition(err))
	assert.Empty(t, spy.calls)
}

func TestSimulateGateLevel(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Carbon1", "SG13S")
	touch(t, p, tgt, workspace.Netlist)
	touch(t, p, tgt, workspace.SynthesizedNetlist)
	touch(t, p, tgt, workspace.BootromImage)

	_, err := p.Run(context.Background(), "simulate", tgt, options(func(o *Options) {
		o.Backend = Cadence
		o.Source = SourceSynthesized
	}))
	require.NoError(t, err)

	sim := spy.last()
	assert.Equal(t, []string{"./sim.sh"}, sim.Args)
	assert.Equal(t, "SG13S", sim.Env.Get("PDK"))
	assert.Equal(t, "synthesized", sim.Env.Get("SOURCE"))
	link, err := os.Readlink(filepath.Join(p.Workspace.PathFor(tgt, workspace.CadenceSimDir), "kernel.rom"))
	require.NoError(t, err)
	assert.Equal(t, p.Workspace.PathFor(tgt, workspace.BootromImage), link)
}

func TestCompileBootrom(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "ArtyA7")
	spy.hook = func(c tool.Command) {
		if c.Stdout != nil {
			_, err := c.Stdout.Write([]byte("00000013\n"))
			require.NoError(t, err)
		}
	}

	_, err := p.Run(context.Background(), "compile", tgt, options(func(o *Options) { o.Firmware = Bootrom }))
	require.NoError(t, err)

	require.Len(t, spy.calls, 2)
	assert.Equal(t, []string{"make"}, spy.calls[0].Args)
	assert.Equal(t, filepath.Join(p.Base, "zibal-fpl", "hydrogen"), spy.calls[0].Dir)
	assert.Equal(t, []string{"python", filepath.Join(p.Base, "zibal-fpl/scripts/gen_rom.py")}, spy.calls[1].Args)
	assert.Equal(t, p.Workspace.PathFor(tgt, workspace.BootromDir), spy.calls[1].Dir)

	rom, err := os.ReadFile(p.Workspace.PathFor(tgt, workspace.BootromImage))
	require.NoError(t, err)
	assert.Equal(t, "00000013\n", string(rom))
}

func TestCompileBootromKeepsImageOnFailure(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "ArtyA7")
	image := p.Workspace.PathFor(tgt, workspace.BootromImage)
	writeFile(t, image, "00000013\n")
	spy.hook = func(c tool.Command) {
		if c.Stdout != nil {
			_, err := c.Stdout.Write([]byte("partial"))
			require.NoError(t, err)
		}
	}
	spy.fail["python"] = &failure.ToolExecutionError{Command: []string{"python"}, ExitCode: 1}

	_, err := p.Run(context.Background(), "compile", tgt, options(func(o *Options) { o.Firmware = Bootrom }))
	require.Error(t, err)
	assert.True(t, failure.IsToolExecution(err))

	rom, err := os.ReadFile(image)
	require.NoError(t, err)
	assert.Equal(t, "00000013\n", string(rom))
	leftovers, err := filepath.Glob(image + ".*")
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestCompileZephyr(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "ArtyA7")

	_, err := p.Run(context.Background(), "compile", tgt, options(func(o *Options) { o.Firmware = Zephyr }))
	assert.True(t, failure.IsPrecondition(err))
	assert.Empty(t, spy.calls)

	_, err = p.Run(context.Background(), "compile", tgt, options(func(o *Options) {
		o.Firmware = Zephyr
		o.Application = "zephyr-samples/demo/leds"
		o.Force = true
	}))
	require.NoError(t, err)

	want := []string{
		"venv/bin/west", "build", "-p", "always", "-b", "hydrogen1-artya7",
		"-d", p.Workspace.PathFor(tgt, workspace.FirmwareDir) + "/",
		"zephyr-samples/demo/leds", "--",
		"-DDTC_INCLUDE_FLAG_FOR_DTS=-isystem;" + p.Workspace.TargetDir(tgt) + "/",
		"-DBOARD_ROOT=" + p.Workspace.PathFor(tgt, workspace.FirmwareBoardsDir) + "/",
	}
	if diff := cmp.Diff(want, spy.last().Args); diff != "" {
		t.Errorf("west command mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, p.Base, spy.last().Dir)
}

func TestMenuconfigRequiresZephyrBuild(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "ArtyA7")
	menuconfig := options(func(o *Options) { o.Firmware = Menuconfig })

	_, err := p.Run(context.Background(), "compile", tgt, menuconfig)
	assert.True(t, failure.IsPrecondition(err))

	writeFile(t, filepath.Join(p.Workspace.PathFor(tgt, workspace.FirmwareDir), "build.ninja"), "")
	_, err = p.Run(context.Background(), "compile", tgt, menuconfig)
	require.NoError(t, err)
	assert.Equal(t, []string{"ninja", "menuconfig"}, spy.last().Args)
}

func TestCompileUnknownKind(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "ArtyA7")

	_, err := p.Run(context.Background(), "compile", tgt, options(func(o *Options) { o.Firmware = "linux" }))
	assert.True(t, failure.IsValidation(err))
	assert.Empty(t, spy.calls)
}

func TestTestStage(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "ArtyA7")
	withCase := options(func(o *Options) { o.Case = "leds" })

	_, err := p.Run(context.Background(), "test", tgt, withCase)
	assert.True(t, failure.IsPrecondition(err))

	touch(t, p, tgt, workspace.Netlist)
	_, err = p.Run(context.Background(), "test", tgt, withCase)
	require.NoError(t, err)
	assert.Equal(t, []string{"sbt", "runMain zibal.soc.hydrogen1.ArtyA7Board generated leds"}, spy.last().Args)
}

func TestBuildStopsAfterFailingCompile(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "ArtyA7")
	spy.fail["make"] = &failure.ToolExecutionError{Command: []string{"make"}, ExitCode: 2}

	_, err := p.Run(context.Background(), "build", tgt, options(func(o *Options) { o.Application = "app" }))
	require.Error(t, err)
	assert.True(t, failure.IsToolExecution(err))
	assert.Equal(t, []string{"sbt", "make"}, spy.programs())
}

func TestBuildRejectsBackendBeforeRunning(t *testing.T) {
	p, spy := newTestPipeline(t)

	arty := target(t, p, "Hydrogen1", "ArtyA7")
	_, err := p.Run(context.Background(), "build", arty, options(func(o *Options) { o.Backend = Cadence }))
	require.Error(t, err)
	assert.True(t, failure.IsValidation(err))
	assert.Contains(t, failure.Message(err), "No cadence definitions in board ArtyA7")

	sg13s := target(t, p, "Carbon1", "SG13S")
	_, err = p.Run(context.Background(), "build", sg13s, options(func(o *Options) { o.Backend = OSS }))
	assert.True(t, failure.IsValidation(err))
	assert.Contains(t, failure.Message(err), "No xilinx definitions in board SG13S")

	assert.Empty(t, spy.calls)
}

func TestBuildFpga(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Hydrogen1", "ArtyA7")
	spy.hook = func(c tool.Command) {
		if len(c.Args) > 1 && c.Args[1] == "runMain zibal.soc.hydrogen1.ArtyA7Top generate" {
			touch(t, p, tgt, workspace.Netlist)
		}
	}

	result, err := p.Run(context.Background(), "build", tgt, options(func(o *Options) { o.Application = "app" }))
	require.NoError(t, err)
	assert.Equal(t, []string{"sbt", "make", "python", "venv/bin/west", "sbt", "vivado"}, spy.programs())
	assert.Contains(t, result.Artifacts, p.Workspace.PathFor(tgt, workspace.VivadoBitstream))
}

func TestBuildAsic(t *testing.T) {
	p, spy := newTestPipeline(t)
	tgt := target(t, p, "Carbon1", "SG13S")
	spy.hook = func(c tool.Command) {
		switch c.Args[0] {
		case "sbt":
			touch(t, p, tgt, workspace.Netlist)
		case "genus":
			logs := c.Args[len(c.Args)-1]
			writeFile(t, filepath.Join(filepath.Dir(logs), tgt.Top()+".v"), "")
		}
	}

	_, err := p.Run(context.Background(), "build", tgt, options(func(o *Options) { o.Backend = Cadence }))
	require.NoError(t, err)
	assert.Equal(t, []string{"sbt", "make", "python", "sbt", "genus", "genus", "innovus"}, spy.programs())
	assert.Equal(t, []string{"genus", "-f", "tcl/map.tcl"}, spy.calls[5].Args[:3])
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{
		"benchmark", "build", "compile", "debug", "flash", "generate",
		"map", "place", "prepare", "simulate", "synthesize", "test",
	}, Names())
}
