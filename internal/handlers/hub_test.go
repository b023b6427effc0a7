package handlers

import (
	"errors"
	"sync"
	"testing"

	"memories-backend/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu   sync.Mutex
	sent []interface{}
	err  error
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, v)
	return nil
}

func (f *fakeConn) events() []models.FeedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.FeedEvent, 0, len(f.sent))
	for _, v := range f.sent {
		out = append(out, v.(models.FeedEvent))
	}
	return out
}

func TestHubPublishByTopic(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	notes := &fakeConn{}
	all := &fakeConn{}

	hub.Subscribe("a", notes, []string{models.TopicNotes})
	hub.Subscribe("b", all, models.AllTopics)

	hub.Publish(models.TopicNotes, "n1")
	hub.Publish(models.TopicPhotos, "p1")

	require.Len(t, notes.events(), 1)
	assert.Equal(t, models.FeedEvent{Event: "created", Topic: models.TopicNotes, Data: "n1"}, notes.events()[0])

	got := all.events()
	require.Len(t, got, 2)
	assert.Equal(t, models.TopicNotes, got[0].Topic)
	assert.Equal(t, models.TopicPhotos, got[1].Topic)
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	conn := &fakeConn{}

	hub.Subscribe("a", conn, models.AllTopics)
	assert.Equal(t, 1, hub.subscribers(models.TopicTimeline))

	hub.Unsubscribe("a")
	assert.Equal(t, 0, hub.subscribers(models.TopicTimeline))

	hub.Publish(models.TopicTimeline, "t1")
	assert.Empty(t, conn.events())
}

// releasedConn fails the test if it is written after its handler returned.
type releasedConn struct {
	t        *testing.T
	mu       sync.Mutex
	released bool
	writes   int
}

func (r *releasedConn) WriteJSON(interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		r.t.Error("write to a connection after Unsubscribe returned")
	}
	r.writes++
	return nil
}

func (r *releasedConn) release() {
	r.mu.Lock()
	r.released = true
	r.mu.Unlock()
}

// disconnectingConn unsubscribes another connection while it is being
// written to, the way a client that drops mid-broadcast does.
type disconnectingConn struct {
	hub    *Hub
	target string
	conn   *releasedConn
}

func (d *disconnectingConn) WriteJSON(interface{}) error {
	d.hub.Unsubscribe(d.target)
	d.conn.release()
	return nil
}

func TestHubNoWriteAfterUnsubscribe(t *testing.T) {
	// Map order decides whether b is sent before or after a runs.
	for i := 0; i < 50; i++ {
		hub := NewHub(zerolog.Nop())
		b := &releasedConn{t: t}
		hub.Subscribe("a", &disconnectingConn{hub: hub, target: "b", conn: b}, []string{models.TopicNotes})
		hub.Subscribe("b", b, []string{models.TopicNotes})

		hub.Publish(models.TopicNotes, "n")
		hub.Publish(models.TopicNotes, "n")

		assert.LessOrEqual(t, b.writes, 1)
		assert.Equal(t, 1, hub.subscribers(models.TopicNotes))
	}
}

func TestHubPublishSurvivesWriteError(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	broken := &fakeConn{err: errors.New("closed")}
	ok := &fakeConn{}

	hub.Subscribe("broken", broken, []string{models.TopicPhotos})
	hub.Subscribe("ok", ok, []string{models.TopicPhotos})

	hub.Publish(models.TopicPhotos, "p1")
	assert.Len(t, ok.events(), 1)
}

func TestHubConcurrentPublish(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	conn := &fakeConn{}
	hub.Subscribe("a", conn, []string{models.TopicNotes})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Publish(models.TopicNotes, "n")
		}()
	}
	wg.Wait()
	assert.Len(t, conn.events(), 20)
}

func TestParseTopics(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"", models.AllTopics},
		{"notes", []string{models.TopicNotes}},
		{" Photos , notes,photos", []string{models.TopicPhotos, models.TopicNotes}},
		{"bogus", models.AllTopics},
		{"bogus,timeline", []string{models.TopicTimeline}},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseTopics(tc.raw))
		})
	}
}
