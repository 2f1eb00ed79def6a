package recording

type EmptyRecorder struct{}

func MakeEmptyRecorder() EmptyRecorder {
	return EmptyRecorder{}
}

func (r EmptyRecorder) Record(episodeID string, msg string) error {
	return nil
}

func (r EmptyRecorder) RecordMetadata(episodeID string, metadata *RecordMetadata) error {
	return nil
}

func (r EmptyRecorder) Close(episodeID string) {}

func (r EmptyRecorder) GetDirectory() string {
	return ""
}
