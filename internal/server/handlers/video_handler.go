package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/services"
)

const frameBoundary = "frame"

// VideoHandler streams the looping video feed.
type VideoHandler struct {
	frames   services.FrameSource
	interval time.Duration
}

// NewVideoHandler creates a video handler over a frame source.
func NewVideoHandler(frames services.FrameSource, interval time.Duration) *VideoHandler {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &VideoHandler{
		frames:   frames,
		interval: interval,
	}
}

// Feed serves an MJPEG stream (multipart/x-mixed-replace). The response
// lives until the client goes away; the frame source loops, so the stream
// never ends on its own.
func (h *VideoHandler) Feed(c *gin.Context) {
	if h.frames == nil {
		c.String(http.StatusServiceUnavailable, "video feed not configured")
		return
	}

	c.Header("Content-Type", "multipart/x-mixed-replace; boundary="+frameBoundary)
	c.Header("Cache-Control", "no-cache")

	ctx := c.Request.Context()
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	w := c.Writer
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		frame, err := h.frames.Next()
		if err != nil {
			log.Printf("video feed: %v", err)
			return
		}

		if _, err := fmt.Fprintf(w, "--%s\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", frameBoundary, len(frame)); err != nil {
			return
		}
		if _, err := w.Write(frame); err != nil {
			return
		}
		if _, err := fmt.Fprint(w, "\r\n"); err != nil {
			return
		}
		w.Flush()
	}
}
