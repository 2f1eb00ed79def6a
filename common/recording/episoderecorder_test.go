package recording

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpisodeRecorderRoundTrip(t *testing.T) {
	recorder := MakeEpisodeRecorder(t.TempDir())

	require.NoError(t, recorder.RecordMetadata("ep1", &RecordMetadata{
		Playground: "single-room",
		Size:       [2]float64{200, 200},
		Agents:     []string{"agent_1"},
	}))
	require.NoError(t, recorder.Record("ep1", `{"tick":0}`))
	require.NoError(t, recorder.Record("ep1", `{"tick":1}`))

	assert.Error(t, recorder.RecordMetadata("ep1", &RecordMetadata{}))

	recorder.Close("ep1")

	metadata, frames, err := ReadEpisode(recorder.EpisodePath("ep1"))
	require.NoError(t, err)
	assert.Equal(t, "single-room", metadata.Playground)
	assert.NotEmpty(t, metadata.Date)
	assert.Equal(t, []string{`{"tick":0}`, `{"tick":1}`}, frames)
}

func TestEpisodeRecorderWithoutMetadata(t *testing.T) {
	recorder := MakeEpisodeRecorder(t.TempDir())

	require.NoError(t, recorder.Record("ep2", `{"tick":0}`))
	recorder.Close("ep2")

	metadata, frames, err := ReadEpisode(recorder.EpisodePath("ep2"))
	require.NoError(t, err)
	assert.Equal(t, "", metadata.Playground)
	assert.Len(t, frames, 1)
}

func TestEmptyRecorder(t *testing.T) {
	var recorder Recorder = MakeEmptyRecorder()

	assert.NoError(t, recorder.Record("ep", "{}"))
	assert.Equal(t, "", recorder.GetDirectory())
	recorder.Close("ep")
}
