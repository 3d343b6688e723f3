package workflow

// ClampProgress keeps a completion percentage within 0..100.
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Work is the shared status set of projects and schedule steps.
type Work string

const (
	WorkPending    Work = "Pendente"
	WorkInProgress Work = "Em Andamento"
	WorkDelayed    Work = "Atrasada"
	WorkDone       Work = "Concluída"
)

// WorkMachine governs project and step statuses.
var WorkMachine = New(WorkInProgress, map[Work][]Work{
	WorkPending:    {WorkInProgress, WorkDelayed},
	WorkInProgress: {WorkDelayed, WorkDone, WorkPending},
	WorkDelayed:    {WorkInProgress, WorkDone},
	WorkDone:       {WorkInProgress},
})

// AdvanceWork derives status and progress for a progress update. Auto-advance
// walks only edges the machine allows; a delayed record stays delayed until it
// completes.
func AdvanceWork(current Work, progress int) (Work, int) {
	progress = ClampProgress(progress)
	next := current
	if progress > 0 && next == WorkPending {
		next = WorkInProgress
	}
	if progress < 100 && next == WorkDone {
		next = WorkInProgress
	}
	if progress == 100 && WorkMachine.CanMove(next, WorkDone) {
		next = WorkDone
	}
	return next, progress
}

// SetWorkStatus validates a manual status change and returns the progress the
// record must carry afterwards.
func SetWorkStatus(current Work, to Work, progress int) (Work, int, error) {
	next, err := WorkMachine.Move(current, to)
	if err != nil {
		return current, progress, err
	}
	if next == WorkDone {
		return next, 100, nil
	}
	return next, ClampProgress(progress), nil
}
