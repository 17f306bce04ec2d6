package stage

import (
	"context"
	"os"

	"github.com/juju/errors"

	"github.com/phytec-labs/elements/failure"
	"github.com/phytec-labs/elements/log"
	"github.com/phytec-labs/elements/tool"
	"github.com/phytec-labs/elements/util"
)

const (
	repoDirName      = ".repo"
	repoLauncherName = "repo"
)

func (p *Pipeline) downloadRepoLauncher(ctx context.Context) error {
	launcher := p.path(repoLauncherName)
	if util.FileExists(launcher) {
		return nil
	}
	file, err := os.Create(launcher)
	if err != nil {
		return errors.Annotatef(err, "failed to create '%s'", launcher)
	}
	err = p.Invoker.Run(ctx, tool.Command{
		Args:   []string{"curl", "-fsSL", p.RepoLauncherURL},
		Env:    p.Env,
		Dir:    p.Base,
		Stdout: file,
	})
	file.Close()
	if err != nil {
		os.Remove(launcher)
		return errors.Trace(err)
	}
	return errors.Trace(os.Chmod(launcher, 0755))
}

// Init checks out the SDK sources with repo. With force an existing
// checkout is discarded first.
func (p *Pipeline) Init(ctx context.Context, manifest string, force bool) error {
	if err := p.Env.Require("ZEPHYR_SDK_VERSION"); err != nil {
		return errors.Trace(err)
	}
	repoDir := p.path(repoDirName)
	if force {
		log.Debug("Removing '%s'.\n", repoDir)
		if err := os.RemoveAll(repoDir); err != nil {
			return errors.Trace(err)
		}
	}
	if util.DirExists(repoDir) {
		return failure.Preconditionf("", "Repo exists! Either the SDK is already initialized or force init.")
	}

	if err := p.downloadRepoLauncher(ctx); err != nil {
		return errors.Trace(err)
	}

	repoInit := []string{"python3", "./" + repoLauncherName, "init", "-u", p.ManifestURL}
	if manifest != "" {
		repoInit = append(repoInit, "-m", manifest)
	}
	if err := p.run(ctx, p.Env, p.Base, repoInit...); err != nil {
		return errors.Trace(err)
	}
	if err := p.run(ctx, p.Env, p.Base, "python3", "./"+repoLauncherName, "sync"); err != nil {
		return errors.Trace(err)
	}
	return p.run(ctx, p.Env, p.Base, "./.init.sh", p.Env.Get("ZEPHYR_SDK_VERSION"))
}
