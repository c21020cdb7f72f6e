package archive

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndRecent(t *testing.T) {
	a, err := Open(filepath.Join(t.TempDir(), "posts.db"), "")
	require.NoError(t, err)
	defer a.Close()

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	require.NoError(t, a.Record("id-1", "single", "hello hive", []string{"ext-1"}, now))
	require.NoError(t, a.Record("id-2", "thread", "digest intro", []string{"ext-2", "ext-3"}, now.Add(time.Hour)))

	records, err := a.Recent(10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "id-2", records[0].ID, "newest first")
	assert.Equal(t, []string{"ext-2", "ext-3"}, records[0].ExternalIDs)
	assert.Equal(t, "single", records[1].Kind)
	assert.Equal(t, now, records[1].PostedAt)
}

func TestRemoteURLDetection(t *testing.T) {
	assert.True(t, isRemote("libsql://promoter.turso.io"))
	assert.True(t, isRemote("wss://promoter.turso.io"))
	assert.False(t, isRemote("posts.db"))
	assert.False(t, isRemote("/var/lib/promoter/posts.db"))
}
