package plan

import "fmt"

// Transition records the result of an explicit stage status change.
type Transition struct {
	StageID string      `json:"stage_id"`
	From    StageStatus `json:"from"`
	To      StageStatus `json:"to"`

	// Backward is set when the change moves against the normal
	// not-started → in-progress → complete progression. Backward
	// transitions are applied, but never silently.
	Backward bool `json:"backward"`
}

// SetStageStatus applies an explicit status change to the named stage.
// Forward transitions and no-ops succeed quietly; backward transitions are
// applied but flagged on the returned Transition. The plan document on disk
// and version-control state are never touched here.
func SetStageStatus(p *Plan, stageID string, to StageStatus) (*Transition, error) {
	if !to.Valid() {
		return nil, &SchemaError{Field: "status", Reason: fmt.Sprintf("unknown stage status %q", to)}
	}

	st := p.Stage(stageID)
	if st == nil {
		return nil, fmt.Errorf("%w: %q", ErrStageNotFound, stageID)
	}

	tr := &Transition{
		StageID:  stageID,
		From:     st.Status,
		To:       to,
		Backward: to.rank() < st.Status.rank(),
	}
	st.Status = to
	return tr, nil
}
