package replay

import (
	"bufio"
	"encoding/json"
	"os"
	"sync"

	"github.com/gaorkl/simple-playgrounds-sub000/common/recording"
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

type ReplayMessage struct {
	Line    string
	Episode string
	Index   int
}

// Replayer streams the frames of an episode record, one message per line
type Replayer struct {
	episode  string
	file     *os.File
	decoder  *zstd.Decoder
	scanner  *bufio.Scanner
	metadata *recording.RecordMetadata

	stopChannel      chan struct{}
	stopOnce         sync.Once
	streamingChannel chan *ReplayMessage
}

func NewReplayer(filename string, episode string) (*Replayer, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open record %s", filename)
	}

	decoder, err := zstd.NewReader(file)
	if err != nil {
		file.Close()
		return nil, errors.Wrap(err, "could not create zstd decoder")
	}

	scanner := bufio.NewScanner(decoder)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	r := &Replayer{
		episode:          episode,
		file:             file,
		decoder:          decoder,
		scanner:          scanner,
		stopChannel:      make(chan struct{}),
		streamingChannel: make(chan *ReplayMessage),
	}

	if !scanner.Scan() {
		r.close()
		return nil, errors.Errorf("record %s has no metadata", filename)
	}

	r.metadata = &recording.RecordMetadata{}
	if err := json.Unmarshal(scanner.Bytes(), r.metadata); err != nil {
		r.close()
		return nil, errors.Wrap(err, "could not decode RecordMetadata")
	}

	return r, nil
}

func (r *Replayer) Metadata() *recording.RecordMetadata {
	return r.metadata
}

// Read starts streaming; the channel is closed after the last frame or on Stop
func (r *Replayer) Read() <-chan *ReplayMessage {
	go func() {
		defer close(r.streamingChannel)
		defer r.close()

		index := 0
		for r.scanner.Scan() {
			line := r.scanner.Text()
			if len(line) == 0 {
				continue
			}

			select {
			case <-r.stopChannel:
				return
			default:
			}

			select {
			case r.streamingChannel <- &ReplayMessage{Line: line, Episode: r.episode, Index: index}:
				index++
			case <-r.stopChannel:
				return
			}
		}

		if err := r.scanner.Err(); err != nil {
			utils.Debug("replayer", "read error: "+err.Error())
		}
	}()

	return r.streamingChannel
}

func (r *Replayer) Stop() {
	utils.Debug("replayer", "stop replayer")
	r.stopOnce.Do(func() {
		close(r.stopChannel)
	})
}

func (r *Replayer) close() {
	r.decoder.Close()
	r.file.Close()
}
