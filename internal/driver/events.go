package driver

import "time"

// Stage is the step a file is in.
type Stage string

const (
	StageRead    Stage = "read"
	StageCache   Stage = "cache"
	StageAnalyze Stage = "analyze"
)

// Status of a file within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event describes progress of one file. File is empty for run-level events.
type Event struct {
	File     string
	Stage    Stage
	Status   Status
	Errors   int
	Warnings int
	Err      error
	Elapsed  time.Duration
}

// ProgressSink consumes progress events. It is called from worker
// goroutines and must be safe for concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(ev Event) { f(ev) }

// ChannelSink forwards events to a channel, e.g. for the progress UI.
type ChannelSink chan<- Event

func (c ChannelSink) OnEvent(ev Event) { c <- ev }

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
