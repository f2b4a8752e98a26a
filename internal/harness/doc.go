// Package harness runs timing scenarios that compare the sequential and the
// parallel tangent map over the same generated input. It decouples the
// measurement loop from presentation via the Reporter interface and from
// metrics via the Recorder interface.
package harness
