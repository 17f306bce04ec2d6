// Package workspace lays out the per-target build tree and is the only
// place artifact paths are formed.
package workspace

import (
	"os"
	"path/filepath"

	"github.com/juju/errors"

	"github.com/phytec-labs/elements/catalog"
	"github.com/phytec-labs/elements/log"
	"github.com/phytec-labs/elements/util"
)

// StampFormat is the layout of the run directories of timestamped stages.
const StampFormat = "2006-01-02_15-04-05"

// LatestLink points at the most recent run of a timestamped stage.
const LatestLink = "latest"

const logsDirName = "logs"

// Workspace is the build/ tree of an SDK checkout.
type Workspace struct {
	Base string
}

func New(base string) *Workspace {
	return &Workspace{Base: base}
}

// Root is the directory holding all target workspaces.
func (w *Workspace) Root() string {
	return filepath.Join(w.Base, util.BuildDirName)
}

// TargetDir is the workspace of a single target.
func (w *Workspace) TargetDir(t catalog.Target) string {
	return filepath.Join(w.Root(), t.Soc(), t.BoardName())
}

// Layout lists the directories, relative to TargetDir, every target workspace has.
func Layout(t catalog.Target) []string {
	return []string{
		"zibal",
		"fpl",
		"vivado/sim/logs",
		"vivado/syn/logs",
		"cadence/map",
		"cadence/place",
		"cadence/sim",
		"symbiflow/logs",
		filepath.Join("zephyr-boards/boards/riscv", t.Soc()),
	}
}

// Ensure creates the workspace of t if needed and returns its directory.
func (w *Workspace) Ensure(t catalog.Target) (string, error) {
	targetDir := w.TargetDir(t)
	for _, dir := range Layout(t) {
		path := filepath.Join(targetDir, dir)
		if util.DirExists(path) {
			continue
		}
		log.Debug("Creating directory '%s'.\n", path)
		if err := os.MkdirAll(path, util.DirMode); err != nil {
			return "", errors.Annotatef(err, "failed to create workspace of %s", t)
		}
	}
	return targetDir, nil
}

// PathFor returns the location of an artifact of t. It does not touch the filesystem.
func (w *Workspace) PathFor(t catalog.Target, a Artifact) string {
	dir := w.TargetDir(t)
	board := t.BoardName()
	switch a {
	case HardwareDir:
		return filepath.Join(dir, "zibal")
	case Netlist:
		return filepath.Join(dir, "zibal", t.Top()+".v")
	case HardwareDescription:
		return filepath.Join(dir, "zibal", t.Top()+".yaml")
	case CPUDescription:
		return filepath.Join(dir, "zibal", "VexRiscv.yaml")
	case SimulationDir:
		return filepath.Join(dir, "zibal", board+"Board")
	case Waveform:
		return filepath.Join(dir, "zibal", board+"Board", "boot.vcd")
	case BootromDir:
		return filepath.Join(dir, "fpl")
	case BootromImage:
		return filepath.Join(dir, "fpl", "kernel.rom")
	case FirmwareDir:
		return filepath.Join(dir, "zephyr")
	case FirmwareELF:
		return filepath.Join(dir, "zephyr", "zephyr", "zephyr.elf")
	case FirmwareBoardsDir:
		return filepath.Join(dir, "zephyr-boards")
	case VivadoSimDir:
		return filepath.Join(dir, "vivado", "sim")
	case VivadoSynDir:
		return filepath.Join(dir, "vivado", "syn")
	case VivadoBitstream:
		return filepath.Join(dir, "vivado", "syn", t.Top()+".bit")
	case SymbiflowDir:
		return filepath.Join(dir, "symbiflow")
	case SymbiflowBitstream:
		return filepath.Join(dir, "symbiflow", t.Top()+".bit")
	case CadenceSynthesizeDir:
		return filepath.Join(dir, "cadence", "synthesize")
	case CadenceMapDir:
		return filepath.Join(dir, "cadence", "map")
	case CadencePlaceDir:
		return filepath.Join(dir, "cadence", "place")
	case CadenceSimDir:
		return filepath.Join(dir, "cadence", "sim")
	case SynthesizedNetlist:
		return filepath.Join(dir, "cadence", "synthesize", LatestLink, t.Top()+".v")
	}
	log.Fatal("Unknown artifact %d.\n", int(a))
	return ""
}

// RunDir creates the log directory of a timestamped run of stageDir and returns it.
func (w *Workspace) RunDir(t catalog.Target, stageDir Artifact, stamp string) (string, error) {
	logs := filepath.Join(w.PathFor(t, stageDir), stamp, logsDirName)
	if err := os.MkdirAll(logs, util.DirMode); err != nil {
		return "", errors.Annotatef(err, "failed to create run directory for %s", stageDir)
	}
	return logs, nil
}

// MarkLatest points the latest link of stageDir at the run stamp.
func (w *Workspace) MarkLatest(t catalog.Target, stageDir Artifact, stamp string) error {
	latest := filepath.Join(w.PathFor(t, stageDir), LatestLink)
	if err := os.RemoveAll(latest); err != nil {
		return errors.Annotatef(err, "failed to remove '%s'", latest)
	}
	log.Debug("Linking '%s' to '%s'.\n", latest, stamp)
	if err := os.Symlink(stamp, latest); err != nil {
		return errors.Annotatef(err, "failed to link '%s'", latest)
	}
	return nil
}

// Clean removes all target workspaces. It reports whether there was anything to remove.
func (w *Workspace) Clean() (bool, error) {
	root := w.Root()
	if !util.DirExists(root) {
		return false, nil
	}
	log.Debug("Removing '%s'.\n", root)
	if err := os.RemoveAll(root); err != nil {
		return false, errors.Annotatef(err, "failed to remove '%s'", root)
	}
	return true, nil
}
