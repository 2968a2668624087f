package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/automat-io/automat/internal/models"
)

// Service applies the operator-facing rules around a model Client: input
// checks, credential checks and fallback text.
type Service struct {
	client Client // nil when no credential is configured
	logger *slog.Logger
}

// NewService wraps client. A nil client behaves as if no API key were set.
func NewService(client Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, logger: logger}
}

// NewServiceFromSettings builds a Service backed by the OpenAI-compatible
// client described by cfg.
func NewServiceFromSettings(cfg models.AIConfig, logger *slog.Logger) *Service {
	c, err := NewOpenAIClient(cfg)
	if err != nil {
		return NewService(nil, logger)
	}
	return NewService(c, logger)
}

// HasCredential reports whether requests can be made at all.
func (s *Service) HasCredential() bool {
	return s.client != nil
}

// GenerateScript returns a PowerShell detection script for description.
// Blank descriptions are rejected before any request is made.
func (s *Service) GenerateScript(ctx context.Context, description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", ErrEmptyDescription
	}
	if s.client == nil {
		return "", ErrMissingCredential
	}

	script, err := s.client.GenerateScript(ctx, description)
	if err != nil {
		s.logger.Error("script generation failed", "error", err)
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	script = StripFences(script)
	if script == "" {
		return EmptyScript, nil
	}
	return script, nil
}

// Analyze returns a short diagnosis of message. It never fails: problems
// are reported through fallback text.
func (s *Service) Analyze(ctx context.Context, message string) string {
	if s.client == nil {
		return MsgMissingKey
	}

	out, err := s.client.Analyze(ctx, message)
	if err != nil {
		s.logger.Warn("log analysis failed", "error", err)
		return MsgUnreachable
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return MsgAnalysisFailed
	}
	return out
}

// AnalyzeJob diagnoses a failed job using the most recent ERROR entry in
// feed. Nothing is requested when the job has not failed or the feed has no
// error.
func (s *Service) AnalyzeJob(ctx context.Context, job models.Job, feed []models.LogEntry) (string, error) {
	if job.Status != models.JobStatusError {
		return "", ErrNotFailed
	}

	entry, ok := lastError(feed)
	if !ok {
		return "", ErrNoErrorLog
	}
	return s.Analyze(ctx, entry.Message), nil
}

func lastError(feed []models.LogEntry) (models.LogEntry, bool) {
	for i := len(feed) - 1; i >= 0; i-- {
		if feed[i].Level == models.LogLevelError {
			return feed[i], true
		}
	}
	return models.LogEntry{}, false
}

// StripFences removes a surrounding markdown code fence, if any.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// drop the opening fence line, including any language tag
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
