package driver

// Stage is one step of the per-file expansion pipeline.
type Stage uint8

const (
	StageLoad Stage = iota
	StageParse
	StageExpand
	StageWrite
)

// Status reports how far a file has progressed.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
	// StatusClean means the file carried no annotations and needed no
	// rewriting.
	StatusClean
	// StatusCached means the rewrite output came from the disk cache.
	StatusCached
)

// Event is a progress notification emitted while expanding a directory.
// An empty File names no file and updates the overall stage label.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}

// Observer receives events from ExpandDir. Implementations must be
// safe for concurrent calls; the UI feeds them into a channel.
type Observer func(Event)

func notify(obs Observer, ev Event) {
	if obs != nil {
		obs(ev)
	}
}
