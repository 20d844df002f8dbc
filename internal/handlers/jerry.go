package handlers

import (
	"embed"
	"encoding/json"
	"fmt"
	"maps"
	"time"

	"github.com/dimitrije/portal-api/internal/document"
	"github.com/dimitrije/portal-api/internal/middleware"
	"github.com/m1z23r/drift/pkg/drift"
)

//go:embed jerry/*.json
var jerryFiles embed.FS

// JerryFeed is the static status feed of the Jerry assistant.
type JerryFeed struct {
	status         map[string]any
	infrastructure map[string]any
	metrics        json.RawMessage
	roadmap        json.RawMessage
}

func LoadJerryFeed() (*JerryFeed, error) {
	feed := &JerryFeed{}
	if err := readJerryFile("status.json", &feed.status); err != nil {
		return nil, err
	}
	if err := readJerryFile("infrastructure.json", &feed.infrastructure); err != nil {
		return nil, err
	}
	if err := readJerryFile("metrics.json", &feed.metrics); err != nil {
		return nil, err
	}
	if err := readJerryFile("roadmap.json", &feed.roadmap); err != nil {
		return nil, err
	}
	return feed, nil
}

func readJerryFile(name string, v any) error {
	data, err := jerryFiles.ReadFile("jerry/" + name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

type JerryHandler struct {
	feed *JerryFeed
	now  func() time.Time
}

func NewJerryHandler(feed *JerryFeed) *JerryHandler {
	return &JerryHandler{feed: feed, now: time.Now}
}

// Status answers everyone; the infrastructure block is only included for
// authenticated callers.
func (h *JerryHandler) Status(c *drift.Context) {
	resp := maps.Clone(h.feed.status)
	resp["lastUpdated"] = document.FormatTimestamp(h.now())
	if middleware.GetClaims(c) != nil {
		resp["infrastructure"] = h.feed.infrastructure
	}

	c.JSON(200, resp)
}

func (h *JerryHandler) Metrics(c *drift.Context) {
	c.JSON(200, h.feed.metrics)
}

func (h *JerryHandler) Roadmap(c *drift.Context) {
	c.JSON(200, h.feed.roadmap)
}
