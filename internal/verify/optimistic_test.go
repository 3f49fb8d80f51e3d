package verify

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merylgrace/alumni-coordinator/internal/models"
)

func TestApply_CommitSuccessKeepsMutation(t *testing.T) {
	p := profile("Jane", "Doe", 2020, false)

	err := Apply(&p,
		func(p *models.Profile) {
			v := true
			now := time.Now()
			p.Verified = &v
			p.VerifiedAt = &now
		},
		func(models.Profile) error { return nil })

	require.NoError(t, err)
	assert.True(t, p.IsVerified())
	assert.NotNil(t, p.VerifiedAt)
}

func TestApply_CommitFailureRestoresSnapshot(t *testing.T) {
	p := profile("Jane", "Doe", 2020, false)
	original := p

	err := Apply(&p,
		func(p *models.Profile) {
			v := true
			p.Verified = &v
			p.VerifiedBy = "admin"
		},
		func(models.Profile) error { return errors.New("backend down") })

	require.Error(t, err)
	assert.Equal(t, original, p, "failed commit must leave the pre-transition state")
}

func TestApply_CommitSeesMutatedValue(t *testing.T) {
	p := profile("Jane", "Doe", 2020, false)
	var committed models.Profile

	err := Apply(&p,
		func(p *models.Profile) { p.VerifiedBy = "admin@school.edu" },
		func(v models.Profile) error {
			committed = v
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, "admin@school.edu", committed.VerifiedBy)
}
