package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// DigestSubscriber delivers published transit digests for one profile.
type DigestSubscriber interface {
	Subscribe(ctx context.Context, profileID string) (<-chan string, error)
}

// WithDigestStream enables the digest SSE route.
func (h *Handler) WithDigestStream(sub DigestSubscriber) *Handler {
	h.digests = sub
	return h
}

// StreamDigests streams transit digests for a profile using Server-Sent Events (SSE)
func (h *Handler) StreamDigests(c *gin.Context) {
	profileID := c.Param("id")

	// Verify the profile exists
	if _, err := h.profiles.Get(c.Request.Context(), profileID); err != nil {
		h.fail(c, err, "Profile not found")
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	ctx := c.Request.Context()
	digests, err := h.digests.Subscribe(ctx, profileID)
	if err != nil {
		h.fail(c, err, "Failed to subscribe to digests")
		return
	}

	// Set SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering
	c.Status(http.StatusOK)

	fmt.Fprintf(c.Writer, "event: initial\ndata: {\"profile_id\":%q}\n\n", profileID)
	flusher.Flush()

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Client disconnected
			return

		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()

		case payload, ok := <-digests:
			if !ok {
				return
			}
			fmt.Fprintf(c.Writer, "event: digest\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
