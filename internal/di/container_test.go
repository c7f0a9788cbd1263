package di

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/stacks/internal/adapter"
	"github.com/mmcdole/stacks/internal/di/providers"
	"github.com/mmcdole/stacks/internal/state"
)

func testOptions(t *testing.T, storage string) providers.Options {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	body := "logging:\n  file: " + filepath.Join(dir, "stacks.log") + "\n" + storage
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0644))
	return providers.Options{ConfigFile: cfgPath}
}

func TestContainer_Ephemeral(t *testing.T) {
	opts := testOptions(t, "")
	opts.Ephemeral = true
	injector := NewContainer(opts)

	cfg := do.MustInvoke[*adapter.Config](injector)
	assert.Equal(t, "memory", cfg.Storage.Backend)

	st := do.MustInvoke[*providers.StateHandle](injector)
	assert.Equal(t, state.SeedCatalog(), st.CatalogEbooks())

	watcher := do.MustInvoke[*providers.WatcherHandle](injector)
	assert.False(t, watcher.Active(), "memory stores are not watched")

	report := injector.Shutdown()
	require.True(t, report.Succeed, report.Error())
	assert.Empty(t, report.Errors)
}

func TestContainer_SQLitePersists(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "state.db")
	opts := testOptions(t, "storage:\n  watch: false\n")
	opts.StorePath = storePath

	injector := NewContainer(opts)
	st := do.MustInvoke[*providers.StateHandle](injector)
	_, err := st.Login("Emma Parker")
	require.NoError(t, err)
	report := injector.Shutdown()
	require.True(t, report.Succeed, report.Error())

	injector = NewContainer(opts)
	defer injector.Shutdown()
	st = do.MustInvoke[*providers.StateHandle](injector)
	assert.Equal(t, "Emma Parker", st.Session().CurrentUserName)
}

func TestContainer_InvalidBackend(t *testing.T) {
	opts := testOptions(t, "")
	opts.Backend = "redis"
	injector := NewContainer(opts)
	defer injector.Shutdown()

	_, err := do.Invoke[*providers.StateHandle](injector)
	assert.Error(t, err)
}
