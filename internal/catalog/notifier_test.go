package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ridloal/lux-storefront/internal/product/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFingerprints struct {
	mu  sync.Mutex
	fp  domain.Fingerprint
	err error
}

func (s *stubFingerprints) Fingerprint(context.Context) (domain.Fingerprint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fp, s.err
}

func (s *stubFingerprints) set(fp domain.Fingerprint, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fp, s.err = fp, err
}

type countingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *countingPublisher) Publish(topic, _ string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
}

func (p *countingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.topics)
}

func TestNotifier_Check(t *testing.T) {
	ctx := context.TODO()
	t0 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	src := &stubFingerprints{fp: domain.Fingerprint{Count: 3, LastUpdated: t0}}
	pub := &countingPublisher{}
	n, err := NewNotifier(src, pub, "@every 1h")
	require.NoError(t, err)

	changed, err := n.Check(ctx)
	require.NoError(t, err)
	assert.False(t, changed, "first read only primes the baseline")

	changed, _ = n.Check(ctx)
	assert.False(t, changed)

	src.set(domain.Fingerprint{Count: 3, LastUpdated: t0.Add(time.Second)}, nil)
	changed, _ = n.Check(ctx)
	assert.True(t, changed)

	src.set(domain.Fingerprint{Count: 2, LastUpdated: t0.Add(time.Second)}, nil)
	changed, _ = n.Check(ctx)
	assert.True(t, changed, "deletes change the count")

	src.set(domain.Fingerprint{}, errors.New("db down"))
	_, err = n.Check(ctx)
	assert.Error(t, err)

	assert.Equal(t, 2, pub.count())
	assert.Equal(t, "catalog:changed", pub.topics[0])
}

func TestNotifier_InvalidSchedule(t *testing.T) {
	_, err := NewNotifier(&stubFingerprints{}, &countingPublisher{}, "every now and then")
	assert.Error(t, err)
}

func TestNotifier_Scheduled(t *testing.T) {
	src := &stubFingerprints{fp: domain.Fingerprint{Count: 1}}
	pub := &countingPublisher{}
	n, err := NewNotifier(src, pub, "@every 1s")
	require.NoError(t, err)
	n.Start()
	defer n.Stop()

	// Let the first tick prime the baseline, then change the table.
	time.Sleep(1200 * time.Millisecond)
	src.set(domain.Fingerprint{Count: 2}, nil)
	assert.Eventually(t, func() bool { return pub.count() == 1 }, 3*time.Second, 50*time.Millisecond)
}
