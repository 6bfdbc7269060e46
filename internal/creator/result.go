package creator

// Step names one stage of creation.
type Step string

const (
	StepRecord  Step = "record"
	StepScript  Step = "script"
	StepArtwork Step = "artwork"
)

type Status int

const (
	Skipped Status = iota
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Succeeded:
		return "ok"
	case Failed:
		return "failed"
	default:
		return "skipped"
	}
}

// StepResult is the outcome of a single step. Path is the file written (or
// removed) on success.
type StepResult struct {
	Step   Step
	Status Status
	Path   string
	Err    error
}

func (r *StepResult) succeed(path string) {
	r.Status = Succeeded
	r.Path = path
	r.Err = nil
}

func (r *StepResult) fail(err error) {
	r.Status = Failed
	r.Err = err
}

// Result collects the step outcomes for one card.
type Result struct {
	ID      int64
	Record  StepResult
	Script  StepResult
	Artwork StepResult
}

// OK reports whether the card record exists, which is all creation
// requires.
func (r Result) OK() bool {
	return r.Record.Status == Succeeded
}

func (r Result) Steps() []StepResult {
	return []StepResult{r.Record, r.Script, r.Artwork}
}

// Warnings returns the failed non-record steps.
func (r Result) Warnings() []StepResult {
	var out []StepResult
	for _, s := range []StepResult{r.Script, r.Artwork} {
		if s.Status == Failed {
			out = append(out, s)
		}
	}
	return out
}
