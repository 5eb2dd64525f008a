package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/gobuf/internal/testutil"
	"github.com/vnykmshr/gobuf/pkg/streambuf"
	"github.com/vnykmshr/gobuf/pkg/streambuf/redisbuf"
	"github.com/vnykmshr/gobuf/pkg/streams"
)

// redisClient connects to a local Redis or skips the test.
func redisClient(t *testing.T) *redis.Client {
	t.Helper()

	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 1})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		t.Skip("redis not available")
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

// TestRedisRoundTripAcrossInstances produces into a key through one buffer
// instance and replays it through another, driving the remote buffer with
// the same stream facades the in-memory tests use.
func TestRedisRoundTripAcrossInstances(t *testing.T) {
	rdb := redisClient(t)
	key := fmt.Sprintf("gobuf:integration:%s:%d", t.Name(), time.Now().UnixNano())
	t.Cleanup(func() { _ = rdb.Del(context.Background(), key).Err() })

	producer, err := redisbuf.New(redisbuf.Config{
		Redis: rdb,
		Key:   key,
		Mode:  streambuf.ModeWrite,
	})
	testutil.AssertNoError(t, err)

	w := streams.NewOwnedWriter[byte](producer)
	for i := 1; i <= 3; i++ {
		_, err := w.Write([]byte(fmt.Sprintf("msg-%d;", i)))
		testutil.AssertNoError(t, err)
	}
	testutil.AssertNoError(t, w.Flush(context.Background()))
	testutil.AssertNoError(t, w.Close())

	consumer, err := redisbuf.New(redisbuf.Config{
		Redis: rdb,
		Key:   key,
		Mode:  streambuf.ModeRead,
	})
	testutil.AssertNoError(t, err)

	r := streams.NewOwnedReader[byte](consumer)
	defer r.Close()

	out, err := r.ReadToEnd(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, out, []byte("msg-1;msg-2;msg-3;"))

	t.Logf("Replayed %d bytes across buffer instances", len(out))
}

// TestRedisConsumerSeesLateWrites verifies that a reader instance picks up
// bytes a producer appends after the reader was opened, using Refresh to
// update the advisory size.
func TestRedisConsumerSeesLateWrites(t *testing.T) {
	rdb := redisClient(t)
	key := fmt.Sprintf("gobuf:integration:%s:%d", t.Name(), time.Now().UnixNano())
	t.Cleanup(func() { _ = rdb.Del(context.Background(), key).Err() })

	producer, err := redisbuf.New(redisbuf.Config{
		Redis: rdb,
		Key:   key,
		Mode:  streambuf.ModeWrite,
	})
	testutil.AssertNoError(t, err)
	defer producer.Close()

	_, err = producer.Write([]byte("early")).Get()
	testutil.AssertNoError(t, err)

	consumer, err := redisbuf.New(redisbuf.Config{
		Redis: rdb,
		Key:   key,
		Mode:  streambuf.ModeRead,
	})
	testutil.AssertNoError(t, err)
	defer consumer.Close()

	testutil.AssertEqual(t, consumer.Available(), 5)

	// The producer keeps going after the consumer opened.
	_, err = producer.Write([]byte(" late")).Get()
	testutil.AssertNoError(t, err)

	avail, err := consumer.Refresh(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, avail, 10)

	r := streams.NewReader[byte](consumer)
	out, err := r.ReadToEnd(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, out, []byte("early late"))
}
