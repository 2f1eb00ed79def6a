package recording

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gaorkl/simple-playgrounds-sub000/common/utils"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

const episodeExtension = ".jsonl.zst"

type episodeFile struct {
	file    *os.File
	encoder *zstd.Encoder
	header  bool
	frames  int
}

// EpisodeRecorder writes one zstd-compressed JSON-lines file per episode.
// The first line holds the metadata, every following line is a frame.
type EpisodeRecorder struct {
	directory string
	handles   map[string]*episodeFile
}

func MakeEpisodeRecorder(directory string) *EpisodeRecorder {
	return &EpisodeRecorder{
		directory: directory,
		handles:   make(map[string]*episodeFile),
	}
}

func (r *EpisodeRecorder) EpisodePath(episodeID string) string {
	return filepath.Join(r.directory, episodeID+episodeExtension)
}

func (r *EpisodeRecorder) open(episodeID string) (*episodeFile, error) {
	if handle, ok := r.handles[episodeID]; ok {
		return handle, nil
	}

	filename := r.EpisodePath(episodeID)
	createFileIfNotExists(filename)

	file, err := os.OpenFile(filename, os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open record file %s", filename)
	}

	encoder, err := zstd.NewWriter(file, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		file.Close()
		return nil, errors.Wrap(err, "could not create zstd encoder")
	}

	handle := &episodeFile{file: file, encoder: encoder}
	r.handles[episodeID] = handle

	return handle, nil
}

func (r *EpisodeRecorder) RecordMetadata(episodeID string, metadata *RecordMetadata) error {
	handle, err := r.open(episodeID)
	if err != nil {
		return err
	}

	if handle.header {
		return errors.Errorf("metadata of episode %s written after its first frame", episodeID)
	}

	if metadata.Date == "" {
		metadata.Date = time.Now().Format(time.RFC3339)
	}

	data, err := json.Marshal(metadata)
	if err != nil {
		return errors.Wrap(err, "could not marshal RecordMetadata")
	}

	if _, err := handle.encoder.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "could not write RecordMetadata")
	}
	handle.header = true

	utils.Debug("EpisodeRecorder", "wrote record metadata for episode "+episodeID)

	return nil
}

func (r *EpisodeRecorder) Record(episodeID string, msg string) error {
	handle, err := r.open(episodeID)
	if err != nil {
		return err
	}

	if !handle.header {
		// the first line is reserved for metadata
		if _, err := handle.encoder.Write([]byte("{}\n")); err != nil {
			return errors.Wrap(err, "could not write record entry")
		}
		handle.header = true
	}

	if _, err := handle.encoder.Write([]byte(msg + "\n")); err != nil {
		return errors.Wrap(err, "could not write record entry")
	}

	handle.frames++

	return nil
}

func (r *EpisodeRecorder) GetDirectory() string {
	return r.directory
}

func (r *EpisodeRecorder) Close(episodeID string) {
	handle, ok := r.handles[episodeID]
	if !ok {
		utils.Debug("EpisodeRecorder", "no running recording for episode "+episodeID)
		return
	}

	err := handle.encoder.Close()
	utils.Check(err, "could not flush record to disk")

	err = handle.file.Close()
	utils.Check(err, "could not close record file")

	delete(r.handles, episodeID)

	utils.Debug("EpisodeRecorder", "stopped recording for episode "+episodeID)
}

// ReadEpisode decodes a file written by EpisodeRecorder
func ReadEpisode(path string) (*RecordMetadata, []string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not open record %s", path)
	}
	defer file.Close()

	decoder, err := zstd.NewReader(file)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not create zstd decoder")
	}
	defer decoder.Close()

	return readLines(decoder)
}

func readLines(r io.Reader) (*RecordMetadata, []string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, nil, errors.Wrap(err, "could not read record")
		}
		return nil, nil, errors.New("empty record")
	}

	metadata := &RecordMetadata{}
	if err := json.Unmarshal(scanner.Bytes(), metadata); err != nil {
		return nil, nil, errors.Wrap(err, "could not decode RecordMetadata")
	}

	frames := make([]string, 0)
	for scanner.Scan() {
		frames = append(frames, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "could not read record")
	}

	return metadata, frames, nil
}
