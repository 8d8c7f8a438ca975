package vap

import "github.com/sirupsen/logrus"

// Publication is the outcome of offering a multiplier to the host.
type Publication struct {
	Old     int
	New     int
	Changed bool
}

// Publish writes next to sink when it differs from the active value.
func Publish(sink MultiplierSink, next int) Publication {
	p := Publication{Old: sink.Multiplier(), New: next}
	if p.Old == next {
		return p
	}
	sink.SetMultiplier(next)
	p.Changed = true
	return p
}

// publish finishes a recompute: the multiplier goes to the host, then the
// viewport it was computed for is persisted. A recompute that never gets
// here leaves the old viewport in place and runs again next tick.
func (s *Study) publish(h Host, next int, current Viewport, persisted *Viewport) Publication {
	p := Publish(h, next)
	if p.Changed && s.settings.Debug {
		s.log.WithFields(logrus.Fields{
			"symbol": s.symbol,
			"old":    p.Old,
			"new":    p.New,
		}).Info("updating multiplier")
	}
	*persisted = current
	return p
}
