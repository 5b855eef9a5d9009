package timeline

// Build corre el pipeline completo sobre un snapshot. Es pura: mismo snapshot
// y mismo Options.Now producen el mismo Result.
//
// Alertas y progreso salen del timeline completo; Limit solo afecta Days.
func Build(src Sources, opts Options) Result {
	now := opts.Now

	events, issues := Normalize(src, now)
	all := Bucket(events, now)

	shown := all
	if !opts.ShowFull {
		shown = Limit(all, opts.Limit)
	}

	return Result{
		Now:         now,
		Days:        shown,
		AllDays:     all,
		Alerts:      DeriveAlerts(events, now),
		Progress:    ComputeProgress(all),
		TotalEvents: len(events),
		ShownEvents: CountEvents(shown),
		Issues:      issues,
	}
}
