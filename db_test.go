package spritepack

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDB(t *testing.T) {
	file := filepath.Join(t.TempDir(), "build.db")

	db, err := NewBuildDB(file)
	require.NoError(t, err)

	sha, err := db.Lookup("out.atlas")
	require.NoError(t, err)
	assert.Empty(t, sha)

	require.NoError(t, db.Record("/p/a.spritepack", "out.atlas", "AAAA"))
	require.NoError(t, db.Record("/p/a.spritepack", "more.atlas", "BBBB"))
	require.NoError(t, db.Record("/p/b.spritepack", "other.atlas", "CCCC"))
	require.NoError(t, db.Record("/p/a.spritepack", "out.atlas", "DDDD"))

	sha, err = db.Lookup("out.atlas")
	require.NoError(t, err)
	assert.Equal(t, "DDDD", sha)

	outputs, err := db.Outputs("/p/a.spritepack")
	require.NoError(t, err)
	assert.Equal(t, []string{"more.atlas", "out.atlas"}, outputs)

	require.NoError(t, db.Close())

	// Reopening keeps what was recorded.
	db, err = NewBuildDB(file)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Forget("/p/a.spritepack"))

	outputs, err = db.Outputs("/p/a.spritepack")
	require.NoError(t, err)
	assert.Empty(t, outputs)

	sha, err = db.Lookup("other.atlas")
	require.NoError(t, err)
	assert.Equal(t, "CCCC", sha)
}
