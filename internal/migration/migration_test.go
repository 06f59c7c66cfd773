package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSourceListsDocumentsMigration(t *testing.T) {
	source, err := Source()
	require.NoError(t, err)
	defer source.Close()

	first, err := source.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	up, name, err := source.ReadUp(first)
	require.NoError(t, err)
	defer up.Close()
	assert.Equal(t, "documents", name)
}

func TestRunMigrationsRequiresHandle(t *testing.T) {
	_, err := RunMigrations(nil)
	assert.Error(t, err)
}
