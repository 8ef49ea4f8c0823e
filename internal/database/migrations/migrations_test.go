package migrations

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_VersionsAreSequential(t *testing.T) {
	src, err := Source()
	require.NoError(t, err)
	defer src.Close()

	version, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	var versions []uint

	for {
		versions = append(versions, version)

		up, _, err := src.ReadUp(version)
		require.NoError(t, err)
		up.Close()

		down, _, err := src.ReadDown(version)
		require.NoError(t, err, "version %d has no down migration", version)
		down.Close()

		version, err = src.Next(version)
		if err != nil {
			require.ErrorIs(t, err, os.ErrNotExist)
			break
		}
	}

	assert.Equal(t, []uint{1, 2}, versions)
}

func TestSource_TransfersGuardOnePaymentPerJob(t *testing.T) {
	src, err := Source()
	require.NoError(t, err)
	defer src.Close()

	r, _, err := src.ReadUp(2)
	require.NoError(t, err)
	defer r.Close()

	body, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "CREATE UNIQUE INDEX uq_transfers_job_id"))
}
