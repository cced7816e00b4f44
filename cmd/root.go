package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/agentic-research/cherry/internal/cherrypick"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// newRunner is swapped out in tests.
var newRunner = func(dir string) cherrypick.Runner {
	return &cherrypick.ExecRunner{Dir: dir}
}

type replayConfig struct {
	dryRun        bool
	configPath    string
	alwaysSucceed bool
	logLevel      string
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "cherry",
		Short: "Replay the commits listed in cherry-picks.json onto the current branch",
		Long: `cherry reads an ordered list of commits from cherry-picks.json in the
current directory and applies each one with git cherry-pick. A failed
cherry-pick is reported and the next one is still attempted.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, readReplayConfig(v))
		},
	}

	configFlags := pflag.NewFlagSet("", pflag.ContinueOnError)
	configFlags.Bool("dry-run", false, "print the git commands without running them")
	configFlags.String("config", cherrypick.DefaultConfigFile, "the cherry-pick list to replay (.json or .hcl)")
	configFlags.Bool("always-succeed", false, "exit 0 even if some cherry-picks failed")
	configFlags.String("log-level", "info", "the log level to run at")
	rootCmd.PersistentFlags().AddFlagSet(configFlags)

	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix("cherry")
	v.AutomaticEnv()

	cobra.CheckErr(v.BindPFlags(configFlags))

	rootCmd.AddCommand(newTranslateCmd(v))

	return rootCmd
}

func readReplayConfig(v *viper.Viper) replayConfig {
	return replayConfig{
		dryRun:        v.GetBool("dry-run"),
		configPath:    v.GetString("config"),
		alwaysSucceed: v.GetBool("always-succeed"),
		logLevel:      v.GetString("log-level"),
	}
}

func runReplay(cmd *cobra.Command, cfg replayConfig) error {
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working dir: %w", err)
	}

	configPath := cfg.configPath
	if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(cwd, configPath)
	}
	configDir, configName := filepath.Split(configPath)

	descs, err := cherrypick.LoadConfig(osfs.New(configDir), configName)
	if err != nil {
		return err
	}

	logger.Debug("loaded cherry-picks",
		zap.String("config", cfg.configPath),
		zap.Int("count", len(descs)),
		zap.Bool("dryRun", cfg.dryRun))

	runner := newRunner(cwd)
	if !cfg.dryRun {
		if branch, err := cherrypick.CurrentBranch(cmd.Context(), runner); err == nil {
			logger.Info("replaying onto branch", zap.String("branch", branch))
		} else {
			logger.Debug("could not determine current branch", zap.Error(err))
		}
	}

	report := cherrypick.NewReplayer(runner, logger).Run(cmd.Context(), descs, cfg.dryRun)

	if err := report.Err(); err != nil {
		if cfg.alwaysSucceed {
			logger.Warn("ignoring cherry-pick failures", zap.Error(err))
			return nil
		}
		return err
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
