package config

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/cozy/cozy-barcode/pkg/cache"
	"github.com/cozy/cozy-barcode/pkg/ean13"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseViperDefaults(t *testing.T) {
	v := viper.New()
	applyDefaults(v)
	require.NoError(t, UseViper(v))

	cfg := GetConfig()
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "localhost:8080", ServerAddr())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Syslog)
	assert.Equal(t, ean13.DefaultParams(), cfg.Render)
	assert.Equal(t, 2.0, cfg.Raster.Scale)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, cache.DefaultSize, cfg.Cache.Size)

	assert.IsType(t, &cache.InMemory{}, cfg.CacheStorage)
	assert.NotNil(t, Barcodes())
}

func TestUseViperFromYAML(t *testing.T) {
	v := viper.New()
	applyDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.MergeConfig(bytes.NewBufferString(`
host: 0.0.0.0
port: 9090
render:
  bar_width: 3
  bar_height: 50
  bar_color: "#336699"
raster:
  scale: 4
cache:
  ttl: 1h
  size: 16
`)))
	require.NoError(t, UseViper(v))

	cfg := GetConfig()
	assert.Equal(t, "0.0.0.0:9090", ServerAddr())
	assert.Equal(t, ean13.Params{BarWidth: 3, BarHeight: 50, BarColor: "#336699"}, cfg.Render)
	assert.Equal(t, 4.0, cfg.Raster.Scale)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 16, cfg.Cache.Size)
}

func TestUseViperErrors(t *testing.T) {
	for _, test := range []struct {
		key   string
		value interface{}
	}{
		{"render.bar_width", -2},
		{"render.bar_color", `red" onload="x`},
		{"raster.scale", -1},
		{"redis.url", "not a redis url"},
		{"log.level", "loud"},
		{"raster.scale", "NaN"},
		{"render.bar_height", "Inf"},
	} {
		t.Run(test.key, func(t *testing.T) {
			v := viper.New()
			applyDefaults(v)
			v.Set(test.key, test.value)
			assert.Error(t, UseViper(v))
		})
	}
}

func TestGetRedis(t *testing.T) {
	v := viper.New()
	client, err := GetRedis(v, "redis.url")
	assert.NoError(t, err)
	assert.Nil(t, client)

	v.Set("redis.url", "redis://localhost:6379/2")
	client, err = GetRedis(v, "redis.url")
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.NoError(t, client.Close())
}

func TestUseTestFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	UseTestFile(t)
	assert.NotNil(t, GetConfig())
	assert.NotNil(t, Barcodes())
}

func TestSetupWithTemplate(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "barcode.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(`
port: {{ .Env.BARCODE_TEST_PORT }}
cache:
  size: {{ .NumCPU }}
render:
  bar_color: {{ .Env.BARCODE_TEST_COLOR }}
`), 0o600))
	require.NoError(t, os.WriteFile(filename+".local", []byte(`
render:
  bar_height: 42
`), 0o600))

	t.Setenv("BARCODE_TEST_PORT", "8042")
	t.Setenv("BARCODE_TEST_COLOR", "navy")

	paths := Paths
	Paths = []string{dir}
	t.Cleanup(func() {
		Paths = paths
		viper.Reset()
	})

	files, err := findConfigFiles(Filename)
	require.NoError(t, err)
	assert.Equal(t, []string{filename, filename + ".local"}, files)

	require.NoError(t, Setup(""))
	cfg := GetConfig()
	assert.Equal(t, 8042, cfg.Port)
	assert.Equal(t, runtime.NumCPU(), cfg.Cache.Size)
	assert.Equal(t, "navy", cfg.Render.BarColor)
	assert.Equal(t, 42.0, cfg.Render.BarHeight)
	assert.Equal(t, float64(ean13.DefaultBarWidth), cfg.Render.BarWidth)
}

func TestFindConfigFile(t *testing.T) {
	paths := Paths
	Paths = []string{t.TempDir()}
	t.Cleanup(func() { Paths = paths })

	_, err := FindConfigFile("barcode.yaml")
	assert.EqualError(t, err, `Could not find config file "barcode.yaml"`)

	files, err := findConfigFiles(Filename)
	assert.NoError(t, err)
	assert.Empty(t, files)
}
