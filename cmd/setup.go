package cmd

import (
	"fmt"
	"strings"

	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/phytec-labs/elements/catalog"
	"github.com/phytec-labs/elements/config"
	"github.com/phytec-labs/elements/env"
	"github.com/phytec-labs/elements/failure"
	"github.com/phytec-labs/elements/log"
	"github.com/phytec-labs/elements/stage"
	"github.com/phytec-labs/elements/tool"
	"github.com/phytec-labs/elements/util"
)

const targetUse = "<chip-family> <board>"

// check ends the command with the message of err.
func check(err error) {
	if err == nil {
		return
	}
	log.Debug("%s\n", errors.ErrorStack(err))
	if class := failure.Class(err); class != "" {
		log.Debug("Failed with a %s error.\n", class)
	}
	log.Fatal("%s\n", failure.Message(err))
}

func sdkBase() string {
	base, err := util.GetSdkBase()
	check(err)
	log.Debug("Using SDK in '%s'.\n", base)
	return base
}

func resolveEnvironment(base string) env.Environment {
	environment, err := config.NewResolver(base).Resolve()
	check(err)
	return environment
}

func newPipeline() *stage.Pipeline {
	return pipelineFor(sdkBase())
}

func pipelineFor(base string) *stage.Pipeline {
	return stage.New(base, resolveEnvironment(base), tool.NewExec(), config.GetSettings())
}

// runStage runs stageName against the target named by the first two arguments.
func runStage(cmd *cobra.Command, stageName string, args []string, o stage.Options) {
	p := newPipeline()
	t, err := p.Target(args[0], args[1])
	check(err)

	result, err := p.Run(cmd.Context(), stageName, t, o)
	check(err)
	for _, artifact := range result.Artifacts {
		log.Debug("Artifact: '%s'.\n", artifact)
	}
	log.Success("Finished %s for %s.\n", stageName, t)
}

// completeTarget completes the chip family and then the board argument.
func completeTarget(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	base, err := util.GetSdkBase()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	c := catalog.New(base)
	var candidates []string
	switch len(args) {
	case 0:
		candidates, err = c.ChipFamilies()
	case 1:
		candidates, err = c.Boards(args[0])
	}
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return candidates, cobra.ShellCompDirectiveNoFileComp
}

func choices[T ~string](values []T) []string {
	return util.MappedSlice(values, func(v T) string { return string(v) })
}

// addChoiceFlag registers an enumerated flag together with its shell completion.
func addChoiceFlag[T ~string](cmd *cobra.Command, value pflag.Value, name, usage string, allowed []T) {
	names := choices(allowed)
	cmd.Flags().Var(value, name, fmt.Sprintf("%s (%s)", usage, strings.Join(names, ", ")))
	cmd.RegisterFlagCompletionFunc(name, func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}
