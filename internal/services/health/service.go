package health

import "time"

// Service encapsulates health-related checks.
type Service struct {
	started time.Time
}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{started: time.Now().UTC()}
}

// Status reports liveness and how long the process has been up. Sessions
// live in memory only, so there is no dependency to probe.
func (s *Service) Status() map[string]any {
	return map[string]any{
		"ok":             true,
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
	}
}
