package verify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/merylgrace/alumni-coordinator/internal/models"
)

type fakeStore struct {
	profiles  []models.Profile
	bulkCalls int
	bulkErr   error
}

func (f *fakeStore) FetchProfiles(ctx context.Context) ([]models.Profile, error) {
	out := make([]models.Profile, len(f.profiles))
	copy(out, f.profiles)
	return out, nil
}

func (f *fakeStore) BulkSetVerified(ctx context.Context, ids []uuid.UUID, verifiedBy string, verifiedAt time.Time) error {
	f.bulkCalls++
	if f.bulkErr != nil {
		return f.bulkErr
	}
	for _, id := range ids {
		for i := range f.profiles {
			if f.profiles[i].ID == id {
				v := true
				f.profiles[i].Verified = &v
				f.profiles[i].VerifiedAt = &verifiedAt
				f.profiles[i].VerifiedBy = verifiedBy
			}
		}
	}
	return nil
}

type fakeAudit struct {
	entries []string
}

func (f *fakeAudit) RecordAudit(ctx context.Context, actor, action, detail string) {
	f.entries = append(f.entries, action+": "+detail)
}

const janeRoster = "Full Name,Year Graduated\njane   doe,2020\n"

func newTestService(st *fakeStore, audit *fakeAudit) *Service {
	return NewService(st, audit, zap.NewNop())
}

func TestVerifyRoster_VerifiesPendingProfile(t *testing.T) {
	st := &fakeStore{profiles: []models.Profile{profile("Jane", "Doe", 2020, false)}}
	audit := &fakeAudit{}
	svc := newTestService(st, audit)

	out, err := svc.VerifyRoster(context.Background(), "admin@school.edu", "batch2020.csv", janeRoster)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Verified)
	assert.Equal(t, 0, out.AlreadyVerified)
	assert.Equal(t, 0, out.Unmatched)
	assert.Equal(t, 1, st.bulkCalls)
	require.Len(t, audit.entries, 1)
	assert.Contains(t, audit.entries[0], "batch2020.csv")
	assert.Equal(t, "admin@school.edu", st.profiles[0].VerifiedBy)
}

func TestVerifyRoster_Idempotent(t *testing.T) {
	st := &fakeStore{profiles: []models.Profile{profile("Jane", "Doe", 2020, false)}}
	svc := newTestService(st, &fakeAudit{})

	first, err := svc.VerifyRoster(context.Background(), "admin", "roster.csv", janeRoster)
	require.NoError(t, err)
	require.Equal(t, 1, first.Verified)

	second, err := svc.VerifyRoster(context.Background(), "admin", "roster.csv", janeRoster)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Verified)
	assert.Equal(t, first.Verified, second.AlreadyVerified)
	assert.Equal(t, 1, st.bulkCalls, "second run must not write")
}

func TestVerifyRoster_NoMatchesAvoidsWrite(t *testing.T) {
	st := &fakeStore{profiles: []models.Profile{profile("John", "Smith", 2019, false)}}
	svc := newTestService(st, &fakeAudit{})

	out, err := svc.VerifyRoster(context.Background(), "admin", "roster.csv", janeRoster)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Verified)
	assert.Equal(t, 1, out.Unmatched)
	assert.Equal(t, 0, st.bulkCalls)
	assert.NotEmpty(t, out.Message)
}

func TestVerifyRoster_UnusableFile(t *testing.T) {
	st := &fakeStore{}
	svc := newTestService(st, &fakeAudit{})

	out, err := svc.VerifyRoster(context.Background(), "admin", "bad.csv", "Full Name,Degree\nJane Doe,BSc\n")
	require.NoError(t, err)
	assert.True(t, out.Unusable)
	assert.Equal(t, "CSV is empty or missing required columns", out.Message)
	assert.Equal(t, 0, st.bulkCalls)
}

func TestVerifyRoster_SkippedRowsReported(t *testing.T) {
	st := &fakeStore{profiles: []models.Profile{profile("Jane", "Doe", 2020, false)}}
	svc := newTestService(st, &fakeAudit{})

	out, err := svc.VerifyRoster(context.Background(), "admin", "roster.csv",
		"Full Name,Year Graduated\njane doe,2020\nbroken row,N/A\n")
	require.NoError(t, err)
	assert.Equal(t, 1, out.Verified)
	assert.Equal(t, 1, out.SkippedRows)
}

func TestVerifyRoster_BackendFailureLeavesStateAlone(t *testing.T) {
	st := &fakeStore{
		profiles: []models.Profile{profile("Jane", "Doe", 2020, false)},
		bulkErr:  errors.New("connection reset"),
	}
	audit := &fakeAudit{}
	svc := newTestService(st, audit)

	_, err := svc.VerifyRoster(context.Background(), "admin", "roster.csv", janeRoster)
	require.Error(t, err)
	assert.Empty(t, audit.entries, "no audit entry until the write is confirmed")
	assert.False(t, st.profiles[0].IsVerified())
}
