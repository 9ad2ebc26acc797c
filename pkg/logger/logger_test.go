package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("InvalidLevel", func(t *testing.T) {
		err := Init(Options{Level: "verbose"})
		assert.Error(t, err)
	})

	t.Run("NamespaceAndCode", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Init(Options{Level: "info", Output: &buf}))

		WithNamespace("barcode").WithCode("4006381333931").Infof("generated in %dms", 3)
		out := buf.String()
		assert.Contains(t, out, "nspace=barcode")
		assert.Contains(t, out, "code=4006381333931")
		assert.Contains(t, out, `msg="generated in 3ms"`)
	})

	t.Run("Level", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Init(Options{Level: "warning", Output: &buf}))

		log := WithNamespace("http").WithFields(Fields{"method": "GET"})
		log.Infof("hidden")
		log.Warnf("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
		assert.Contains(t, buf.String(), "method=GET")

		buf.Reset()
		require.NoError(t, Init(Options{Output: &buf}))
		log.Debugf("still hidden")
		log.Infof("info is the default")
		assert.NotContains(t, buf.String(), "still hidden")
		assert.Contains(t, buf.String(), "info is the default")
	})

	t.Run("TruncateLongLines", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Init(Options{Level: "info", Output: &buf}))

		WithNamespace("test").Infof("%s", strings.Repeat("a", 3000))
		assert.Contains(t, buf.String(), "[TRUNCATED]")
		assert.NotContains(t, buf.String(), strings.Repeat("a", maxLineWidth))
	})

	t.Run("Hooks", func(t *testing.T) {
		hook := &countHook{}
		require.NoError(t, Init(Options{Level: "info", Output: &bytes.Buffer{}, Hooks: []logrus.Hook{hook}}))
		WithNamespace("test").Errorf("boom")
		WithNamespace("test").Debugf("ignored")
		assert.Equal(t, 1, hook.count)

		// Hooks don't accumulate between two calls
		require.NoError(t, Init(Options{Level: "info", Output: &bytes.Buffer{}}))
		WithNamespace("test").Errorf("boom")
		assert.Equal(t, 1, hook.count)
	})
}

type countHook struct {
	count int
}

func (h *countHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *countHook) Fire(*logrus.Entry) error {
	h.count++
	return nil
}
