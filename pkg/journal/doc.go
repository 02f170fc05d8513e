// Package journal persists engine events in a bbolt database, grouped into
// sessions, so lifecycle traces can be inspected after a run.
//
// A Journal is a view.Observer: register it with an engine and every
// mount, remount, unmount and reconcile event is appended to the current
// session.
//
//	j, err := journal.Open(".viewtree/journal.db")
//	if err != nil {
//		return err
//	}
//	defer j.Close()
//	if _, err := j.Begin("reorder"); err != nil {
//		return err
//	}
//	engine := view.New(view.WithObserver(j))
package journal
