package stylist

// State names the accumulation engine's position in its run lifecycle.
type State string

const (
	StateLoading       State = "LOADING"
	StateIterating     State = "ITERATING"
	StateCompacting    State = "COMPACTING"
	StateCheckpointing State = "CHECKPOINTING"
	StateDone          State = "DONE"
	StateInterrupted   State = "INTERRUPTED"
	StateFailed        State = "FAILED"
)

// Terminal reports whether the state ends a run.
func (s State) Terminal() bool {
	switch s {
	case StateDone, StateInterrupted, StateFailed:
		return true
	}
	return false
}

// Summary describes a finished run for CLI reporting.
type Summary struct {
	Status      State `json:"status"`
	Batches     int   `json:"batches"`
	Records     int   `json:"records"`
	FinalLines  int   `json:"final_lines"`
	Compactions int   `json:"compactions"`
}
