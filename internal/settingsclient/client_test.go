package settingsclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automat-io/automat/internal/apperror"
	"github.com/automat-io/automat/internal/config"
	"github.com/automat-io/automat/internal/daemon/server"
	"github.com/automat-io/automat/internal/daemon/store"
	"github.com/automat-io/automat/internal/logger"
	"github.com/automat-io/automat/internal/models"
)

func newDaemon(t *testing.T) *httptest.Server {
	t.Helper()
	st := store.NewFileStore(filepath.Join(t.TempDir(), "config.yaml"), logger.Discard())
	srv := httptest.NewServer(server.NewHandler(st, logger.Discard()))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadAndSave(t *testing.T) {
	c := New(newDaemon(t).URL + "/")
	ctx := context.Background()

	cfg, err := c.LoadConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, *models.NewConfig(), cfg)

	cfg.TenantID = "contoso"
	cfg.ClientSecret = "hunter2"
	saved, err := c.SaveConfig(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg, saved)

	again, err := c.LoadConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "contoso", again.TenantID)
	assert.Equal(t, "hunter2", again.ClientSecret)
}

func TestErrorStatusIsMapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"malformed config body"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).SaveConfig(context.Background(), models.Config{})
	require.Error(t, err)

	status, msg := apperror.Status(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "malformed config body", msg)
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).LoadConfig(context.Background())
	status, _ := apperror.Status(err)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestFromDaemon(t *testing.T) {
	t.Setenv(config.HomeEnv, t.TempDir())

	_, err := FromDaemon()
	assert.ErrorIs(t, err, ErrDaemonNotRunning)

	require.NoError(t, config.SaveDaemonInfo(models.NewDaemonInfo("127.0.0.1", 4312, 1)))
	c, err := FromDaemon()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:4312", c.BaseURL())
}

func TestHealth(t *testing.T) {
	h, err := New(newDaemon(t).URL).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", h.Status)
	assert.NotEmpty(t, h.Version)
}
