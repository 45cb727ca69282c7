package allocation

// SpotUpdate is one (truck, target spot) pair of a batch assignment.  A nil
// SpotToken unparks the truck.
type SpotUpdate struct {
	TruckID   uint64
	SpotToken *string
}

// ParkedTruck is a minimal occupancy fact read from the store: which truck
// currently holds which token.
type ParkedTruck struct {
	TruckID   uint64
	SpotToken string
}

// TargetTokens collects the distinct non-nil target tokens of a batch, in
// first-seen order.
func TargetTokens(updates []SpotUpdate) []string {
	seen := make(map[string]struct{}, len(updates))
	tokens := make([]string, 0, len(updates))
	for _, u := range updates {
		if u.SpotToken == nil || *u.SpotToken == "" {
			continue
		}
		if _, ok := seen[*u.SpotToken]; ok {
			continue
		}
		seen[*u.SpotToken] = struct{}{}
		tokens = append(tokens, *u.SpotToken)
	}
	return tokens
}

// PlanEvictions returns the trucks that must have their spot token cleared
// with a system-cause audit record before any assignment of the batch is
// applied: every truck outside the batch that currently occupies one of the
// batch's target tokens.  The step is deliberately unconditional: a non-batch
// occupant of a target spot is evicted regardless of why it was there.
// Re-running the same batch yields no evictions the second time, so the final
// occupancy state is idempotent.
func PlanEvictions(current []ParkedTruck, updates []SpotUpdate) []ParkedTruck {
	inBatch := make(map[uint64]struct{}, len(updates))
	for _, u := range updates {
		inBatch[u.TruckID] = struct{}{}
	}
	targets := make(map[string]struct{})
	for _, t := range TargetTokens(updates) {
		targets[t] = struct{}{}
	}
	var evict []ParkedTruck
	for _, pt := range current {
		if _, ok := inBatch[pt.TruckID]; ok {
			continue
		}
		if _, ok := targets[pt.SpotToken]; ok {
			evict = append(evict, pt)
		}
	}
	return evict
}

// PlanReleases returns the batch trucks whose current token must be nulled
// before any assignment of the batch is applied: every batch member whose
// token will change.  Without this step an unpark or an intra-batch swap can
// leave a member's old token in place while another member is assigned to it,
// so two trucks would reference one token inside the transaction.  Releases
// carry no audit record of their own; the member's old-to-new change is
// audited when its own assignment is applied.
func PlanReleases(current []ParkedTruck, updates []SpotUpdate) []ParkedTruck {
	target := make(map[uint64]*string, len(updates))
	for _, u := range updates {
		target[u.TruckID] = u.SpotToken
	}
	var release []ParkedTruck
	for _, pt := range current {
		tok, ok := target[pt.TruckID]
		if !ok {
			continue
		}
		if tok == nil || *tok != pt.SpotToken {
			release = append(release, pt)
		}
	}
	return release
}
