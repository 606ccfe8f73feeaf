// Package health records transport quality samples and derives the rolling
// verdict that can escalate a running stream to the error state.
//
// Each sample gets a point-in-time verdict (healthy, degraded, critical) from
// its own measurements. The state transition is driven separately by a
// deterministic check over the trailing window of samples; it only fires once
// the window is full, and thresholds come from configuration rather than
// constants.
package health
