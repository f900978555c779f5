package game

import (
	"time"

	"github.com/sirupsen/logrus"
)

const (
	perfLowFpsThreshold = 30.0
	perfLogInterval     = 3 * time.Second
)

// maybeLogStats emits frame statistics every StatsInterval frames and warns
// when the frame rate stays under the threshold, at most once per interval.
func (g *Game) maybeLogStats() {
	interval := g.cfg.Debug.StatsInterval
	if interval <= 0 || g.frames%interval != 0 {
		return
	}

	stats := g.renderer.Threading().GetDetailedPerformanceStats()
	g.log.WithFields(logrus.Fields(stats)).Debug("Frame stats")

	alerts := g.renderer.Threading().CheckPerformanceAlerts(perfLowFpsThreshold)
	if len(alerts) == 0 {
		return
	}
	now := time.Now()
	if !g.lastAlert.IsZero() && now.Sub(g.lastAlert) < perfLogInterval {
		return
	}
	g.lastAlert = now
	for _, alert := range alerts {
		g.log.WithFields(logrus.Fields{
			"type":      alert.Type,
			"value":     alert.Value,
			"threshold": alert.Threshold,
		}).Warn(alert.Message)
	}
}
