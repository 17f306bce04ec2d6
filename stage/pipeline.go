// Package stage implements the build stages of a target. Every stage checks
// its preconditions, derives its environment and delegates the actual work to
// an external tool.
package stage

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/juju/errors"

	"github.com/phytec-labs/elements/catalog"
	"github.com/phytec-labs/elements/config"
	"github.com/phytec-labs/elements/env"
	"github.com/phytec-labs/elements/failure"
	"github.com/phytec-labs/elements/log"
	"github.com/phytec-labs/elements/tool"
	"github.com/phytec-labs/elements/workspace"
)

// Options carries the command line choices of a stage. Stages ignore the
// options that do not concern them.
type Options struct {
	Backend     Backend
	Effort      Effort
	PlaceStage  PlaceStage
	Destination Destination
	Source      Source
	Firmware    FirmwareKind
	Application string
	Force       bool
	Case        string
}

// DefaultOptions are the command line defaults.
func DefaultOptions() Options {
	return Options{
		Backend:     Xilinx,
		Effort:      EffortHigh,
		PlaceStage:  "save",
		Destination: DestinationFPGA,
		Source:      SourceGenerated,
	}
}

// Result reports what a stage produced.
type Result struct {
	Stage     string
	Artifacts []string
}

type handlerFunc func(p *Pipeline, ctx context.Context, t catalog.Target, o Options) (Result, error)

// Pipeline runs stages against the targets of one SDK checkout.
type Pipeline struct {
	Base      string
	Catalog   *catalog.Catalog
	Workspace *workspace.Workspace
	Invoker   tool.Invoker
	Env       env.Environment
	Now       func() time.Time

	FlashHold       time.Duration
	OpenocdDir      string
	ManifestURL     string
	RepoLauncherURL string
}

// New returns a Pipeline for the SDK in base.
func New(base string, environment env.Environment, invoker tool.Invoker, settings config.Settings) *Pipeline {
	return &Pipeline{
		Base:            base,
		Catalog:         catalog.New(base),
		Workspace:       workspace.New(base),
		Invoker:         invoker,
		Env:             environment,
		Now:             time.Now,
		FlashHold:       settings.FlashHold,
		OpenocdDir:      settings.OpenocdDir,
		ManifestURL:     settings.ManifestURL,
		RepoLauncherURL: settings.RepoLauncherURL,
	}
}

var stages map[string]handlerFunc

func init() {
	stages = map[string]handlerFunc{
		"prepare":    (*Pipeline).prepare,
		"compile":    (*Pipeline).compile,
		"generate":   (*Pipeline).generate,
		"simulate":   (*Pipeline).simulate,
		"synthesize": (*Pipeline).synthesize,
		"map":        (*Pipeline).mapDesign,
		"place":      (*Pipeline).place,
		"flash":      (*Pipeline).flash,
		"debug":      (*Pipeline).debug,
		"benchmark":  (*Pipeline).benchmark,
		"test":       (*Pipeline).test,
		"build":      (*Pipeline).build,
	}
}

// Names lists all stages.
func Names() []string {
	names := make([]string, 0, len(stages))
	for name := range stages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Target validates a chip family and board and makes sure its workspace exists.
func (p *Pipeline) Target(chipFamily, board string) (catalog.Target, error) {
	t, err := p.Catalog.Resolve(chipFamily, board)
	if err != nil {
		return catalog.Target{}, errors.Trace(err)
	}
	if _, err := p.Workspace.Ensure(t); err != nil {
		return catalog.Target{}, errors.Trace(err)
	}
	return t, nil
}

// Run executes a single stage.
func (p *Pipeline) Run(ctx context.Context, stage string, t catalog.Target, o Options) (Result, error) {
	handler, ok := stages[stage]
	if !ok {
		return Result{}, failure.Validationf("Unknown stage '%s'", stage)
	}
	log.Debug("Running stage '%s' for %s.\n", stage, t)
	log.IndentationLevel++
	result, err := handler(p, ctx, t, o)
	log.IndentationLevel--
	if err != nil {
		return Result{}, errors.Annotatef(err, "%s %s", stage, t)
	}
	result.Stage = stage
	return result, nil
}

func (p *Pipeline) targetEnv(t catalog.Target) env.Environment {
	return p.Env.With("SOC", t.Soc()).With("BOARD", t.BoardName())
}

func (p *Pipeline) path(parts ...string) string {
	return filepath.Join(append([]string{p.Base}, parts...)...)
}

func (p *Pipeline) run(ctx context.Context, e env.Environment, dir string, args ...string) error {
	return errors.Trace(p.Invoker.Run(ctx, tool.Command{Args: args, Env: e, Dir: dir}))
}

// sbt runs a main class of the hardware generator.
func (p *Pipeline) sbt(ctx context.Context, e env.Environment, main string, args ...string) error {
	runMain := strings.Join(append([]string{"runMain", main}, args...), " ")
	return p.run(ctx, e, p.path("zibal"), "sbt", runMain)
}

func (p *Pipeline) loadBoard(t catalog.Target) (*catalog.Board, error) {
	board, err := p.Catalog.LoadBoard(t.Board)
	return board, errors.Trace(err)
}

func (p *Pipeline) artifacts(t catalog.Target, kinds ...workspace.Artifact) []string {
	paths := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		paths = append(paths, p.Workspace.PathFor(t, kind))
	}
	return paths
}
