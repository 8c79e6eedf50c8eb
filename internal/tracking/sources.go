package tracking

import (
	"context"

	"github.com/jmorrow/interntrack/internal/types"
)

// Proposal is one signal source's proposed status for an application. The
// reconciler validates the status against the enumeration before applying it.
type Proposal struct {
	Status    types.Status
	Rationale string
}

// SignalSource checks one external signal for one tracked application. A nil
// proposal means the source has nothing to say; proposing the current status
// is equivalent. Sources are consulted in fixed priority order and the first
// differing proposal wins.
type SignalSource interface {
	Name() types.UpdateSource
	Check(ctx context.Context, app *types.Application, posting *types.Posting) (*Proposal, error)
}
