package cherrypick

import (
	"context"

	"go.uber.org/zap"
)

// Replayer applies descriptors one at a time, in order. A failed
// cherry-pick is logged and recorded, and never stops the items after it.
type Replayer struct {
	runner Runner
	logger *zap.Logger
}

// NewReplayer returns a Replayer executing commands with runner. A nil
// logger discards output.
func NewReplayer(runner Runner, logger *zap.Logger) *Replayer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Replayer{runner: runner, logger: logger}
}

// Run replays descs. In dry-run mode commands are only logged and the
// runner is never called. Run stops early only if ctx is done.
func (r *Replayer) Run(ctx context.Context, descs []Descriptor, dryRun bool) *Report {
	report := newReport(len(descs))

	for i, d := range descs {
		if err := ctx.Err(); err != nil {
			report.Canceled = err
			r.logger.Warn("replay interrupted",
				zap.Int("remaining", len(descs)-i),
				zap.Error(err))
			break
		}
		r.apply(ctx, i, d, dryRun, report)
	}

	r.logger.Debug("replay finished",
		zap.Int("total", report.Total),
		zap.Uint64("applied", report.Applied.GetCardinality()),
		zap.Uint64("failed", report.Failed.GetCardinality()),
		zap.Uint64("skipped", report.Skipped.GetCardinality()))

	return report
}

func (r *Replayer) apply(ctx context.Context, idx int, d Descriptor, dryRun bool, report *Report) {
	argv := BuildCommand(d)
	command := CommandString(argv)

	r.logger.Info("cherry-pick", zap.String("command", command))

	if dryRun {
		r.logger.Info("dry run", zap.String("sha", d.SHA))
		report.Skipped.Add(uint32(idx))
		return
	}

	out, err := r.runner.Run(ctx, argv)
	if err != nil {
		f := Failure{
			Index:    idx,
			SHA:      d.SHA,
			Command:  command,
			ExitCode: ExitCode(err),
			Output:   out,
			Err:      err,
		}
		r.logger.Error("error cherry-picking",
			zap.String("sha", f.SHA),
			zap.String("command", f.Command),
			zap.Int("returnCode", f.ExitCode),
			zap.ByteString("stdout", out.Stdout),
			zap.ByteString("stderr", out.Stderr),
			zap.Error(err))
		report.addFailure(f)
		return
	}

	r.logger.Info("cherry-pick applied",
		zap.String("sha", d.SHA),
		zap.ByteString("output", out.Stdout))
	report.Applied.Add(uint32(idx))
}
