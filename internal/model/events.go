package model

// EventType identifies a host event stream
type EventType string

// Event types
const (
	EventTorrentConverted EventType = "send_torrent"
	EventConversionFailed EventType = "ConversionFailed"
	EventBatchCompleted   EventType = "BatchCompleted"
)

// Event is the interface for all events published by the host
type Event interface {
	Type() EventType
}

// TorrentConvertedEvent is emitted once per successfully converted file.
// Any of Name, Path and Link may be empty.
type TorrentConvertedEvent struct {
	Batch string `json:"batch,omitempty"`
	Name  string `json:"name"`
	Path  string `json:"path"`
	Link  string `json:"link"`
}

func (e TorrentConvertedEvent) Type() EventType { return EventTorrentConverted }

// Record builds a record without an ID from the event payload.
func (e TorrentConvertedEvent) Record() Record {
	return Record{Name: e.Name, Path: e.Path, Link: e.Link}
}

// ConversionFailedEvent is emitted when a file of a batch could not be converted
type ConversionFailedEvent struct {
	Batch string
	Path  string
	Err   error
}

func (e ConversionFailedEvent) Type() EventType { return EventConversionFailed }

// BatchCompletedEvent is emitted after the last file of a batch was processed
type BatchCompletedEvent struct {
	Batch     string
	Converted int
	Failed    int
}

func (e BatchCompletedEvent) Type() EventType { return EventBatchCompleted }
