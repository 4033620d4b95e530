package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/config"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/logger"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/notify"
)

const testChannel = "superPriceAds"

type fakeRecorder struct {
	mu     sync.Mutex
	err    error
	stored []domain.Notification
}

func (r *fakeRecorder) Create(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	n.ID = int64(len(r.stored) + 1)
	r.stored = append(r.stored, *n)
	return nil
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, domain.Notification) error {
	return errors.New("redis down")
}

func newRedis(t *testing.T) *redis.Client {
	t.Helper()

	server := miniredis.RunT(t)
	client, err := notify.NewRedisClient(context.Background(), config.RedisConfig{Address: server.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func subscribe(t *testing.T, client *redis.Client) *redis.PubSub {
	t.Helper()

	sub := client.Subscribe(context.Background(), testChannel)
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(context.Background())
	require.NoError(t, err)
	return sub
}

func receive(t *testing.T, sub *redis.PubSub) domain.Notification {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)

	var n domain.Notification
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &n))
	return n
}

func storedAd() *domain.StoredAd {
	return &domain.StoredAd{
		ID:       7,
		Title:    "RTX 3090 Founders",
		Price:    1700,
		URL:      "https://www.olx.com.br/ad-7",
		ImageURL: "https://img/7.jpg",
		Category: domain.CategoryStandard,
	}
}

func TestDispatcher_NewDeal_RecordsThenPublishes(t *testing.T) {
	t.Parallel()

	client := newRedis(t)
	sub := subscribe(t, client)
	recorder := &fakeRecorder{}
	d := notify.NewDispatcher(recorder, notify.NewRedisPublisher(client, testChannel), logger.NewNop(), nil)

	d.NewDeal(context.Background(), storedAd())

	got := receive(t, sub)
	assert.Equal(t, domain.NotificationNewDeal, got.Kind)
	assert.Equal(t, int64(7), got.AdID)
	assert.Equal(t, "https://img/7.jpg", got.ImageURL)
	assert.Nil(t, got.PreviousPrice)
	assert.Equal(t, int64(1), got.ID, "published payload carries the stored id")
	require.Len(t, recorder.stored, 1)
}

func TestDispatcher_PriceDrop_CarriesPreviousPrice(t *testing.T) {
	t.Parallel()

	client := newRedis(t)
	sub := subscribe(t, client)
	d := notify.NewDispatcher(&fakeRecorder{}, notify.NewRedisPublisher(client, testChannel), logger.NewNop(), nil)

	d.PriceDrop(context.Background(), storedAd(), 1900)

	got := receive(t, sub)
	assert.Equal(t, domain.NotificationPriceDrop, got.Kind)
	assert.InDelta(t, 1700, got.Price, 1e-9)
	require.NotNil(t, got.PreviousPrice)
	assert.InDelta(t, 1900, *got.PreviousPrice, 1e-9)
}

func TestDispatcher_RecordFailureStillPublishes(t *testing.T) {
	t.Parallel()

	client := newRedis(t)
	sub := subscribe(t, client)
	d := notify.NewDispatcher(&fakeRecorder{err: errors.New("db down")},
		notify.NewRedisPublisher(client, testChannel), logger.NewNop(), nil)

	assert.NotPanics(t, func() { d.NewDeal(context.Background(), storedAd()) })

	got := receive(t, sub)
	assert.Equal(t, "RTX 3090 Founders", got.Title)
}

func TestDispatcher_Test_ReportsFailures(t *testing.T) {
	t.Parallel()

	recorder := &fakeRecorder{}
	d := notify.NewDispatcher(recorder, failingPublisher{}, logger.NewNop(), nil)

	n, err := d.Test(context.Background(), notify.TestRequest{AdID: 1, Title: "GPU", Price: 10, URL: "u"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis down")
	assert.Equal(t, domain.NotificationTest, n.Kind)
	assert.Len(t, recorder.stored, 1)
}

func TestDispatcher_WithoutPublisher(t *testing.T) {
	t.Parallel()

	recorder := &fakeRecorder{}
	d := notify.NewDispatcher(recorder, nil, logger.NewNop(), nil)

	n, err := d.Test(context.Background(), notify.TestRequest{AdID: 1, Title: "GPU", Price: 10, URL: "u"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), n.ID)
}

func TestNewRedisClient_RequiresAddress(t *testing.T) {
	t.Parallel()

	_, err := notify.NewRedisClient(context.Background(), config.RedisConfig{})
	require.ErrorIs(t, err, notify.ErrEmptyAddress)
}
