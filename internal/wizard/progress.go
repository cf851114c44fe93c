package wizard

// Progress maps step keys ("1".."5") to completion, as derived server-side
// from persisted data. Unknown steps default to incomplete.
type Progress map[string]bool

func (p Progress) IsStepComplete(id StepID) bool {
	return p[id.Key()]
}

type Summary struct {
	Steps     Progress `json:"steps"`
	Completed int      `json:"completed"`
	Total     int      `json:"total"`
	Percent   float64  `json:"percent"`
}

// Summarize counts required-step completion for display. The validation step
// is excluded from the denominator since it has no completion of its own.
func (p Progress) Summarize() Summary {
	total := 0
	completed := 0
	steps := Progress{}
	for _, s := range Steps {
		if !s.Required {
			continue
		}
		total++
		done := p.IsStepComplete(s.ID)
		steps[s.ID.Key()] = done
		if done {
			completed++
		}
	}
	percent := 0.0
	if total > 0 {
		percent = float64(completed) / float64(total) * 100
	}
	return Summary{Steps: steps, Completed: completed, Total: total, Percent: percent}
}

// AllRequiredComplete reports whether every required step is complete, the
// submission precondition.
func (p Progress) AllRequiredComplete() bool {
	for _, s := range Steps {
		if s.Required && !p.IsStepComplete(s.ID) {
			return false
		}
	}
	return true
}
