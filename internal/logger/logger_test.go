package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Setup("debug", "json", &buf))
	t.Cleanup(func() { _ = Setup("info", "text", nil) })

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	For(ContextWithID(context.Background(), "req-1")).Info("hello")
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestSetup_InvalidLevel(t *testing.T) {
	assert.Error(t, Setup("loud", "text", nil))
}

func TestFor_WithoutRequestID(t *testing.T) {
	entry := For(context.Background())
	_, ok := entry.Data["request_id"]
	assert.False(t, ok)
	assert.Equal(t, "", IDFrom(context.Background()))
}
