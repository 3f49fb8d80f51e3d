package verify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/merylgrace/alumni-coordinator/internal/models"
	"github.com/merylgrace/alumni-coordinator/internal/roster"
)

// ProfileStore is the slice of the backing store the bulk verifier needs.
type ProfileStore interface {
	FetchProfiles(ctx context.Context) ([]models.Profile, error)
	BulkSetVerified(ctx context.Context, ids []uuid.UUID, verifiedBy string, verifiedAt time.Time) error
}

// AuditRecorder receives fire-and-forget audit entries.
type AuditRecorder interface {
	RecordAudit(ctx context.Context, actor, action, detail string)
}

// Outcome summarizes one roster verification run for the caller/UI.
type Outcome struct {
	FileName        string       `json:"file_name"`
	Verified        int          `json:"verified"`
	AlreadyVerified int          `json:"already_verified"`
	Unmatched       int          `json:"unmatched"`
	Ambiguous       int          `json:"ambiguous"`
	SkippedRows     int          `json:"skipped_rows"`
	Unusable        bool         `json:"unusable"`
	Message         string       `json:"message"`
	Suggestions     []Suggestion `json:"suggestions,omitempty"`
}

type Service struct {
	store ProfileStore
	audit AuditRecorder
	log   *zap.Logger
	now   func() time.Time
}

func NewService(store ProfileStore, audit AuditRecorder, log *zap.Logger) *Service {
	return &Service{store: store, audit: audit, log: log, now: time.Now}
}

// VerifyRoster parses csvText, matches it against a fresh profile snapshot,
// and applies at most one bulk update. The audit entry is written only after
// the store confirms the write; on store failure nothing is recorded and the
// error propagates. Re-running the same roster is a no-op because matched
// profiles are already verified on the second pass.
func (s *Service) VerifyRoster(ctx context.Context, actor, fileName, csvText string) (Outcome, error) {
	out := Outcome{FileName: fileName}

	records, skipped := roster.Parse(csvText)
	out.SkippedRows = skipped
	if len(records) == 0 {
		out.Unusable = true
		out.Message = "CSV is empty or missing required columns"
		return out, nil
	}

	profiles, err := s.store.FetchProfiles(ctx)
	if err != nil {
		return out, fmt.Errorf("fetch profiles: %w", err)
	}

	res := Match(profiles, records)
	out.AlreadyVerified = res.AlreadyVerified
	out.Unmatched = res.UnmatchedCount
	out.Ambiguous = res.AmbiguousCount
	out.Suggestions = res.Suggestions

	if len(res.ToVerify) == 0 {
		out.Message = fmt.Sprintf("no profiles to verify (%d already verified)", res.AlreadyVerified)
		return out, nil
	}

	ids := make([]uuid.UUID, len(res.ToVerify))
	for i, p := range res.ToVerify {
		ids[i] = p.ID
	}
	if err := s.store.BulkSetVerified(ctx, ids, actor, s.now()); err != nil {
		return out, fmt.Errorf("bulk set verified: %w", err)
	}

	out.Verified = len(ids)
	out.Message = fmt.Sprintf("verified %d profiles (%d already verified)", out.Verified, out.AlreadyVerified)
	s.audit.RecordAudit(ctx, actor, "bulk_verify",
		fmt.Sprintf("verified=%d already_verified=%d file=%s", out.Verified, out.AlreadyVerified, fileName))
	s.log.Info("bulk verification applied",
		zap.String("actor", actor),
		zap.String("file", fileName),
		zap.Int("verified", out.Verified),
		zap.Int("already_verified", out.AlreadyVerified),
		zap.Int("unmatched", out.Unmatched))
	return out, nil
}
