package dispatcher

import (
	"context"
	"errors"
	"fmt"

	"voice-assistant/config"
	"voice-assistant/internal/model"
	"voice-assistant/pkg/llmprovider"
	"voice-assistant/pkg/log"
)

// ErrNoLocalTier is returned when the always-available tier is missing.
var ErrNoLocalTier = errors.New("local tier is required")

// Dispatcher picks a tier from a complexity assessment and calls it,
// falling back to the local tier exactly once.
type Dispatcher struct {
	local Endpoint
	mid   *Endpoint
	high  *Endpoint
	l     log.Logger
}

// New creates a Dispatcher. mid and high may be nil when not configured.
func New(l log.Logger, local Endpoint, mid, high *Endpoint) (*Dispatcher, error) {
	if local.Provider == nil {
		return nil, ErrNoLocalTier
	}
	return &Dispatcher{local: local, mid: mid, high: high, l: l}, nil
}

// NewFromConfig builds providers for every tier whose credentials are present.
// A remote tier that cannot be built is logged and left out.
func NewFromConfig(ctx context.Context, cfg config.TiersConfig, l log.Logger) (*Dispatcher, error) {
	local, err := endpointFromTier(cfg.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoLocalTier, err)
	}

	build := func(tier model.Tier, tc config.TierConfig) *Endpoint {
		if !tc.Enabled() {
			l.Infof(ctx, "%s: tier %s disabled (no credentials)", LogPrefixNew, tier)
			return nil
		}
		ep, err := endpointFromTier(tc)
		if err != nil {
			l.Warnf(ctx, "%s: tier %s unavailable: %v", LogPrefixNew, tier, err)
			return nil
		}
		l.Infof(ctx, "%s: tier %s -> %s/%s", LogPrefixNew, tier, ep.Provider.Name(), ep.Provider.Model())
		return ep
	}

	return New(l, *local, build(model.TierMid, cfg.Mid), build(model.TierHigh, cfg.High))
}

func endpointFromTier(tc config.TierConfig) (*Endpoint, error) {
	p, err := llmprovider.NewFromTier(tc)
	if err != nil {
		return nil, err
	}
	return &Endpoint{
		Provider:    p,
		Timeout:     tc.Timeout,
		Temperature: tc.Temperature,
		MaxTokens:   tc.MaxTokens,
	}, nil
}
