// Package lifecycle enforces the stream state machine:
//
//	created --start--> running --stop--> stopped
//	running --health degradation--> error --stop--> stopped
//	stopped --start--> running (restart, fresh started_at)
//
// All transitions persist through the store's single mutation path. The
// health-triggered escalation to error is not public; the health recorder
// receives it as a narrow Degrade capability so state-machine authority stays
// in one place.
package lifecycle
