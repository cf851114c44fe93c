package wizard

// Decision is the outcome of a navigation attempt. When navigation is
// denied, MissingSteps lists the labels of the incomplete required steps in
// wizard order so the caller can surface an actionable message.
type Decision struct {
	Allowed      bool     `json:"allowed"`
	MissingSteps []string `json:"missing_steps,omitempty"`
}

// CanNavigate gate-keeps movement across the wizard. Backward navigation
// (target <= current) is always allowed. Forward navigation requires every
// required step strictly before the target to be complete in progress. The
// decision never mutates state and must be re-evaluated against the latest
// known progress on every attempt.
func CanNavigate(target, current StepID, progress Progress) Decision {
	if target <= current {
		return Decision{Allowed: true}
	}

	var missing []string
	for _, s := range Steps {
		if s.ID >= target {
			break
		}
		if s.Required && !progress.IsStepComplete(s.ID) {
			missing = append(missing, s.Label)
		}
	}
	if len(missing) > 0 {
		return Decision{Allowed: false, MissingSteps: missing}
	}
	return Decision{Allowed: true}
}
