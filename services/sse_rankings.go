package services

import (
	"bufio"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// StreamRankingChanges pushes payload-less invalidation events over SSE.
// Clients re-fetch /rankings when an event arrives; the server never pushes
// computed scores. The replacement for the original socket.io
// "rankingsUpdate" broadcast.
func (s *RankingService) StreamRankingChanges(notifier *RankingsNotifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Content-Type", "text/event-stream")
		c.Set("Cache-Control", "no-cache")
		c.Set("Connection", "keep-alive")
		c.Set("X-Accel-Buffering", "no") // nginx

		id, events := notifier.Subscribe()
		log.Printf("SSE subscriber %s connected (%d total)", id, notifier.SubscriberCount())

		ctx := c.Context()
		ctx.SetBodyStreamWriter(func(w *bufio.Writer) {
			defer notifier.Unsubscribe(id)

			keepalive := time.NewTicker(15 * time.Second)
			defer keepalive.Stop()

			// Initial comment so proxies start forwarding the stream.
			w.WriteString(":\n\n")
			if err := w.Flush(); err != nil {
				return
			}

			for {
				select {
				case <-events:
					w.WriteString("event: rankings\ndata: {}\n\n")
					if err := w.Flush(); err != nil {
						// Client disconnected
						return
					}
				case <-keepalive.C:
					w.WriteString(":\n\n")
					if err := w.Flush(); err != nil {
						return
					}
				case <-ctx.Done():
					return
				}
			}
		})
		return nil
	}
}
