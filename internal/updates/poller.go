// Package updates polls the Mojang version manifest and reports when a
// new game release appears.
package updates

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

const (
	// DefaultManifestURL is Mojang's public version manifest.
	DefaultManifestURL = "https://launchermeta.mojang.com/mc/game/version_manifest.json"
	defaultInterval    = 10 * time.Minute
)

// Poller periodically fetches the manifest. The first successful fetch
// primes the baseline silently; later changes to latest.release invoke
// the notify callback.
type Poller struct {
	url      string
	interval time.Duration
	client   *http.Client
	notify   func(version string)
	logger   *slog.Logger

	last string
}

type Config struct {
	ManifestURL string
	Interval    time.Duration
}

func New(cfg Config, notify func(version string), logger *slog.Logger) *Poller {
	if cfg.ManifestURL == "" {
		cfg.ManifestURL = DefaultManifestURL
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		url:      cfg.ManifestURL,
		interval: cfg.Interval,
		client:   &http.Client{Timeout: 30 * time.Second},
		notify:   notify,
		logger:   logger,
	}
}

// Run polls until the context is cancelled.
func (p *Poller) Run(ctx context.Context) {
	p.check(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("version poller stopped")
			return
		case <-ticker.C:
			p.check(ctx)
		}
	}
}

func (p *Poller) check(ctx context.Context) {
	version, err := p.fetch(ctx)
	if err != nil {
		p.logger.Warn("version check failed", "err", err)
		return
	}
	if version == "" || version == p.last {
		return
	}
	if p.last != "" && p.notify != nil {
		p.notify(version)
	}
	p.last = version
}

func (p *Poller) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return "", err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("manifest returned %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", err
	}
	return gjson.GetBytes(body, "latest.release").String(), nil
}
