package utils

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopwatchKeepsSectionOrder(t *testing.T) {
	watch := MakeStopwatch("playground::Update()")

	watch.Start("spawners")
	watch.Stop("spawners")
	watch.Start("physics")
	watch.Stop("physics")
	watch.Start("spawners")
	watch.Stop("spawners")

	assert.Equal(t, []string{"spawners", "physics"}, watch.Sections())
	assert.True(t, strings.HasPrefix(watch.String(), "playground::Update() spawners: "))
	assert.Equal(t, int64(0), int64(watch.Stop("unknown")))
}

func TestDebugWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	SetDebugOutput(&buf)
	defer SetDebugOutput(os.Stdout)

	SetDebug(true)
	DebugWithContext("playground", "agent added", Context{"agent": "agent_1"})

	SetDebug(false)
	Debug("playground", "muted")
	SetDebug(true)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var msg Message
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &msg))
	assert.Equal(t, "playground", msg.Service)
	assert.Equal(t, "agent added", msg.Message)
	assert.Equal(t, "agent_1", msg.Context["agent"])
}
