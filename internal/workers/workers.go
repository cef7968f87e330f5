package workers

import (
	"github.com/robfig/cron/v3"
)

// Registrar is implemented by every background worker.
type Registrar interface {
	Register(c *cron.Cron) error
}

// Start registers the workers on a fresh scheduler and starts it. The
// returned cron can be stopped on shutdown.
func Start(list ...Registrar) (*cron.Cron, error) {
	c := cron.New()
	for _, w := range list {
		if err := w.Register(c); err != nil {
			return nil, err
		}
	}
	c.Start()
	return c, nil
}
