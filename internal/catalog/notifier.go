package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/ridloal/lux-storefront/internal/platform/events"
	"github.com/ridloal/lux-storefront/internal/platform/logger"
	"github.com/ridloal/lux-storefront/internal/product/domain"
	"github.com/robfig/cron/v3"
)

type FingerprintSource interface {
	Fingerprint(ctx context.Context) (domain.Fingerprint, error)
}

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Notifier polls the product table and publishes catalog:changed whenever its
// fingerprint moves. Writes made by another process are picked up this way.
type Notifier struct {
	source    FingerprintSource
	publisher events.Publisher
	sched     *cron.Cron
	timeout   time.Duration

	mu     sync.Mutex
	last   domain.Fingerprint
	primed bool
}

func NewNotifier(source FingerprintSource, publisher events.Publisher, schedule string) (*Notifier, error) {
	n := &Notifier{
		source:    source,
		publisher: publisher,
		sched:     cron.New(cron.WithParser(cronParser)),
		timeout:   5 * time.Second,
	}
	if _, err := n.sched.AddFunc(schedule, n.tick); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Notifier) Start() {
	n.sched.Start()
}

// Stop halts the schedule and waits for a running check to finish.
func (n *Notifier) Stop() {
	<-n.sched.Stop().Done()
}

func (n *Notifier) tick() {
	defer func() {
		if err := recover(); err != nil {
			logger.Warn("Notifier: recovered from panic: %v", err)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()
	if _, err := n.Check(ctx); err != nil {
		logger.Error("Notifier: fingerprint check failed", err)
	}
}

// Check reads the fingerprint and publishes when it differs from the previous
// one. The first successful read only records the baseline.
func (n *Notifier) Check(ctx context.Context) (bool, error) {
	fp, err := n.source.Fingerprint(ctx)
	if err != nil {
		return false, err
	}

	n.mu.Lock()
	changed := n.primed && (fp.Count != n.last.Count || !fp.LastUpdated.Equal(n.last.LastUpdated))
	n.last = fp
	n.primed = true
	n.mu.Unlock()

	if changed {
		n.publisher.Publish(events.TopicCatalogChanged, "")
	}
	return changed, nil
}
