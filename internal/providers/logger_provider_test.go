package providers

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/naka-gawa/github-profile-stats/internal/structures"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogTypeByRequestType_POST(t *testing.T) {
	assert.Equal(t, TypePost, GetLogTypeByRequestType("POST"))
}

func TestGetLogTypeByRequestType_GET(t *testing.T) {
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("GET"))
}

func TestGetLogTypeByRequestType_Other(t *testing.T) {
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("PUT"))
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("DELETE"))
}

func TestNewLogProvider_CreatesLogFiles(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)

	logger.Infof(TypeApp, "test message")
	logger.Warnf(TypeUpstream, "upstream %s", "warning")
	logger.Debugf(TypeGet, "filtered by level")
	logger.Close()

	for _, name := range []string{"app", "get", "post", "upstream", "store"} {
		_, err := os.Stat(filepath.Join(dir, name+".log"))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "upstream.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "upstream warning")
	assert.Contains(t, string(data), `"channel":"upstream"`)

	data, err = os.ReadFile(filepath.Join(dir, "get.log"))
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/nonexistent/directory/path",
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "loud", Mode: 0644, Dir: t.TempDir()},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewConsoleLogger_WritesChannel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, zerolog.InfoLevel)

	logger.Infof(TypeStore, "saved %d", 1)
	logger.Debugf(TypeStore, "hidden")

	assert.Contains(t, buf.String(), "saved 1")
	assert.Contains(t, buf.String(), "store")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestTypeEnum_String(t *testing.T) {
	assert.Equal(t, "upstream", TypeUpstream.String())
	assert.Equal(t, "app", TypeEnum(99).String())
}

func TestNewCliLogProvider(t *testing.T) {
	logger, err := NewCliLogProvider(&structures.Config{Logger: structures.LoggerConfig{Level: "warn"}})
	require.NoError(t, err)
	require.NotNil(t, logger)

	_, err = NewCliLogProvider(&structures.Config{Logger: structures.LoggerConfig{Level: "loud"}})
	assert.Error(t, err)
}
