// Command submissions-cli validates, renders and prompts the demo forms from
// the terminal.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-submissions/internal/config"
	"github.com/goliatone/go-submissions/internal/logger"
)

// errInvalid is returned when a submission fails validation. The response
// has already been printed.
var errInvalid = errors.New("submission is invalid")

func main() {
	if err := newRootCmd(nil).Execute(); err != nil {
		if errors.Is(err, errInvalid) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd(deps *dependencies) *cobra.Command {
	if deps == nil {
		deps = &dependencies{}
	}

	root := &cobra.Command{
		Use:          "submissions-cli",
		Short:        "Validate, render and prompt go-submissions demo forms",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "path to a YAML config file")
	root.PersistentFlags().BoolP("verbose", "v", false, "log validation passes to stderr")

	root.AddCommand(
		newValidateCmd(deps),
		newRenderCmd(deps),
		newPromptCmd(deps),
	)
	return root
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func cliLogger(cmd *cobra.Command) *zap.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zap.NewNop()
	}
	log, err := logger.NewTo(config.LogConfig{Level: "debug", Format: "console"}, zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr())))
	if err != nil {
		return zap.NewNop()
	}
	return log
}
