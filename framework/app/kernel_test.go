package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/km-arc/go-passform/framework/app"
	"github.com/km-arc/go-passform/framework/config"
	"github.com/km-arc/go-passform/framework/container"
)

func testConfig() *config.Config {
	return &config.Config{
		App:  config.AppConfig{Name: "kernel-test", Env: "testing", Port: "0"},
		Log:  config.LogConfig{Level: "info", Format: "json"},
		Form: config.FormConfig{TTL: time.Minute},
	}
}

func TestNew_BindsCoreServices(t *testing.T) {
	a := app.New(app.WithConfig(testConfig()), app.WithLogger(zap.NewNop()))
	a.Boot()

	for _, key := range []string{container.Config, container.Logger, container.Metrics, container.Forms, container.Router} {
		assert.True(t, a.Bound(key), key)
	}
	assert.Equal(t, "kernel-test", a.Config().App.Name)
	assert.True(t, a.IsTesting())
	assert.False(t, a.IsProduction())
	assert.NotNil(t, a.Forms())
	assert.NotNil(t, a.Metrics())
}

func TestNew_LoadsEnvFiles(t *testing.T) {
	t.Setenv("APP_NAME", "from-env")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	a := app.New(app.WithEnvFiles("testdata/none.env"))

	assert.Equal(t, "from-env", a.Config().App.Name)
	assert.NotNil(t, a.Logger())
}

func TestRun_StopsOnCancel(t *testing.T) {
	a := app.New(app.WithConfig(testConfig()), app.WithLogger(zap.NewNop()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_ListenError(t *testing.T) {
	cfg := testConfig()
	cfg.App.Port = "not-a-port"
	a := app.New(app.WithConfig(cfg), app.WithLogger(zap.NewNop()))

	err := a.Run(context.Background())
	assert.Error(t, err)
}
