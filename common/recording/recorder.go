package recording

import (
	"os"

	"github.com/gaorkl/simple-playgrounds-sub000/common/utils"
)

type Recorder interface {
	Record(episodeID string, msg string) error
	RecordMetadata(episodeID string, metadata *RecordMetadata) error
	Close(episodeID string)
	GetDirectory() string
}

type RecordMetadata struct {
	Playground string     `json:"playground"`
	Date       string     `json:"date"`
	Size       [2]float64 `json:"size"`
	Seed       uint64     `json:"seed"`
	Agents     []string   `json:"agents"`
}

func createFileIfNotExists(path string) {
	var _, err = os.Stat(path)

	// create file if not exists
	if os.IsNotExist(err) {
		var file, err = os.Create(path)
		utils.Check(err, "Could not create file")

		defer file.Close()
	}
}
