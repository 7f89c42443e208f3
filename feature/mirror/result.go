package mirror

import "sync"

// Recorder is the shared accumulator for a single run. Workers report
// conflicts and errors here; the final status can only escalate, never
// drop back down. All methods are safe for concurrent use.
type Recorder struct {
	mu        sync.Mutex
	status    Status
	conflicts []ConflictRecord
	errs      []string
	copied    int
	skipped   int
}

// NewRecorder returns an empty recorder in the OK state.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Escalate raises the run status. Lower values are ignored.
func (r *Recorder) Escalate(s Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s > r.status {
		r.status = s
	}
}

// Conflict appends a conflict record and escalates to at least Warn.
func (r *Recorder) Conflict(rec ConflictRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflicts = append(r.conflicts, rec)
	if r.status < StatusWarn {
		r.status = StatusWarn
	}
}

// Warn records a per-file error that degrades the run to at least Warn.
func (r *Recorder) Warn(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err.Error())
	if r.status < StatusWarn {
		r.status = StatusWarn
	}
}

// Fail records an error that makes the run fatal.
func (r *Recorder) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err.Error())
	r.status = StatusFail
}

// MarkCopied counts one completed destination write.
func (r *Recorder) MarkCopied() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.copied++
}

// MarkSkipped counts one already-synced destination file.
func (r *Recorder) MarkSkipped() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped++
}

// Status returns the current run status.
func (r *Recorder) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Conflicts returns a copy of the recorded conflicts.
func (r *Recorder) Conflicts() []ConflictRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ConflictRecord, len(r.conflicts))
	copy(out, r.conflicts)
	return out
}

// Errors returns a copy of the recorded error messages.
func (r *Recorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.errs))
	copy(out, r.errs)
	return out
}

func (r *Recorder) counts() (copied, skipped int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.copied, r.skipped
}
