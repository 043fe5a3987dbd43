package synca

// Portal teleports the current journey to dest, capturing the scheduler that
// was current on entry as "source". It returns a leave closure that
// teleports back to source; callers use it via defer so the return trip
// happens on both normal and panicking exits:
//
//	defer synca.Portal(dest)()
func Portal(dest Scheduler) func() {
	j := Current()
	source := j.Scheduler()
	j.Teleport(dest)
	return func() {
		j.Teleport(source)
	}
}

// InPortal teleports to Tag's registered home scheduler, runs fn there, and
// teleports back. The return trip is deferred, so it still runs if fn
// panics.
func InPortal[Tag any](fn func()) {
	leave := PortalTag[Tag]().Enter()
	defer leave()
	fn()
}
