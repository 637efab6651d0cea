package handlers

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBroker(t *testing.T) {
	t.Parallel()

	t.Run("newBroker", func(t *testing.T) {
		broker := newBroker[string]()
		require.NotNil(t, broker)
		require.NotNil(t, broker.lock)
		require.NotNil(t, broker.listeners)
		require.Empty(t, broker.listeners)
	})

	t.Run("newListener", func(t *testing.T) {
		topics := []string{"transfer", "optin", "FREEZE"}
		listener := newListener[string]("test-id", topics)

		require.NotNil(t, listener)
		require.Equal(t, "test-id", listener.id)
		require.NotNil(t, listener.ch)
		require.NotNil(t, listener.done)
		require.Len(t, listener.topics, 3)

		require.Contains(t, listener.topics, "transfer")
		require.Contains(t, listener.topics, "optin")
		require.Contains(t, listener.topics, "freeze") // should be lowercase
	})

	t.Run("includesAny", func(t *testing.T) {
		listener := newListener[string]("test-id", []string{"transfer", "optin"})

		require.True(t, listener.includesAny([]string{"transfer"}))
		require.True(t, listener.includesAny([]string{"modify", "optin"}))
		require.True(t, listener.includesAny([]string{"TRANSFER"})) // case insensitive

		require.False(t, listener.includesAny([]string{"freeze"}))
		require.False(t, listener.includesAny([]string{}))

		// a listener without topics wants everything
		all := newListener[string]("all", nil)
		require.True(t, all.includesAny([]string{"freeze"}))
		require.True(t, all.includesAny(nil))
	})

	t.Run("pushListener", func(t *testing.T) {
		broker := newBroker[string]()
		listener := newListener[string]("test-id", []string{"transfer"})

		broker.pushListener(listener)

		listeners := broker.getListenersCopy()
		require.Len(t, listeners, 1)
		require.Equal(t, listener, listeners["test-id"])
	})

	t.Run("removeListener", func(t *testing.T) {
		broker := newBroker[string]()
		listener := newListener[string]("test-id", []string{"transfer"})
		broker.pushListener(listener)

		broker.removeListener("test-id")

		listeners := broker.getListenersCopy()
		require.Empty(t, listeners)

		require.NotPanics(t, func() {
			broker.removeListener("non-existent")
		})
	})

	t.Run("removeListener closes done channel", func(t *testing.T) {
		broker := newBroker[string]()
		l := newListener[string]("test-id", []string{"transfer"})
		broker.pushListener(l)

		select {
		case <-l.done:
			require.Fail(t, "done closed before removeListener")
		default:
		}

		broker.removeListener("test-id")

		select {
		case <-l.done:
		default:
			require.Fail(t, "done not closed after removeListener")
		}
	})

	t.Run("closeDone is idempotent", func(t *testing.T) {
		l := newListener[string]("test-id", []string{"transfer"})
		require.NotPanics(t, func() {
			l.closeDone()
			l.closeDone()
			l.closeDone()
		})
	})

	t.Run("send", func(t *testing.T) {
		t.Run("delivers message", func(t *testing.T) {
			l := newListener[string]("test-id", nil)
			require.True(t, l.send("msg"))

			select {
			case msg := <-l.ch:
				require.Equal(t, "msg", msg)
			case <-time.After(100 * time.Millisecond):
				require.Fail(t, "timeout waiting for message")
			}
		})

		t.Run("drops message when channel is full", func(t *testing.T) {
			l := newListener[string]("test-id", nil)
			for range cap(l.ch) {
				l.ch <- "fill"
			}
			require.False(t, l.send("overflow"))
		})

		t.Run("drops message after remove", func(t *testing.T) {
			broker := newBroker[string]()
			l := newListener[string]("test-id", nil)
			broker.pushListener(l)

			ref := broker.getListenersCopy()["test-id"]
			broker.removeListener("test-id")

			done := make(chan bool)
			go func() {
				done <- ref.send("msg")
			}()
			select {
			case sent := <-done:
				require.False(t, sent)
			case <-time.After(time.Second):
				require.Fail(t, "send blocked after removal")
			}
		})
	})

	t.Run("getListenersCopy", func(t *testing.T) {
		broker := newBroker[string]()

		copy := broker.getListenersCopy()
		require.Empty(t, copy)

		listener1 := newListener[string]("id1", []string{"transfer"})
		listener2 := newListener[string]("id2", []string{"optin"})

		broker.pushListener(listener1)
		broker.pushListener(listener2)

		copy = broker.getListenersCopy()
		require.Len(t, copy, 2)

		// Modifying copy should not affect original
		delete(copy, "id1")
		listeners := broker.getListenersCopy()
		require.Len(t, listeners, 2)
		require.Equal(t, listener1, listeners["id1"])
		require.Equal(t, listener2, listeners["id2"])
	})

	t.Run("hasListeners", func(t *testing.T) {
		broker := newBroker[string]()
		require.False(t, broker.hasListeners())
		listener := newListener[string]("test-id", []string{"transfer"})
		broker.pushListener(listener)
		require.True(t, broker.hasListeners())
	})

	t.Run("formatTopic", func(t *testing.T) {
		require.Equal(t, "topic", formatTopic("TOPIC"))
		require.Equal(t, "topic", formatTopic(" Topic "))
		require.Equal(t, "my topic", formatTopic("  My Topic  "))
		require.Equal(t, "", formatTopic("   "))
	})

	t.Run("concurrent operations", func(t *testing.T) {
		const nbListeners = 20
		broker := newBroker[string]()
		var wg sync.WaitGroup
		wg.Add(nbListeners * 2)

		ch := make(chan string, nbListeners)

		go func() {
			for i := range nbListeners {
				go func(id int) {
					defer wg.Done()
					listenerId := fmt.Sprintf("id-%d", id)
					broker.pushListener(newListener[string](listenerId, []string{"transfer"}))
					ch <- listenerId
				}(i)
			}
		}()

		go func() {
			for range nbListeners {
				go func() {
					defer wg.Done()
					broker.removeListener(<-ch)
				}()
			}
		}()

		wg.Wait()
		require.Empty(t, broker.getListenersCopy())
	})
}
