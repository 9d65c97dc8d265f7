package cli

import (
	"context"
	"fmt"

	"github.com/fulcrumagent/reverter/cmd/fulcrum/cli/logging"
	"github.com/fulcrumagent/reverter/cmd/fulcrum/cli/settings"
	"github.com/fulcrumagent/reverter/internal/reverter"
)

// newReverter constructs a reverter.Reverter from settings' directory
// overrides (falling back to the default state-dir layout), logging
// through the package-level logging.* functions under ctx.
func newReverter(ctx context.Context, s *settings.FulcrumSettings) (*reverter.Reverter, error) {
	backup, temp, progress, err := s.ReverterConfig()
	if err != nil {
		return nil, fmt.Errorf("resolving reverter directories: %w", err)
	}
	cfg := reverter.Config{Backup: backup, Temp: temp, Progress: progress}
	return reverter.New(cfg, &ctxLogger{ctx: ctx}), nil
}

// ctxLogger adapts the logging package's context-aware functions to the
// minimal reverter.Logger interface.
type ctxLogger struct {
	ctx context.Context
}

func (l *ctxLogger) Info(msg string, args ...any) {
	logging.Info(l.ctx, msg, toAttrs(args)...)
}

func (l *ctxLogger) Warning(msg string, args ...any) {
	logging.Warn(l.ctx, msg, toAttrs(args)...)
}

func (l *ctxLogger) Error(msg string, args ...any) {
	logging.Error(l.ctx, msg, toAttrs(args)...)
}

// toAttrs passes args through unchanged; reverter callers pass slog.Attr
// or key/value pairs, both of which slog.Logger.Log accepts directly.
func toAttrs(args []any) []any {
	return args
}
