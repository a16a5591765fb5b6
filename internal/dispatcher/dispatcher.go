package dispatcher

import (
	"context"
	"fmt"
	"time"

	"voice-assistant/internal/model"
	"voice-assistant/pkg/llmprovider"
)

// Select maps an assessment to a tier: level >= 4 uses high, level 3 uses mid,
// everything else uses local. Unconfigured tiers resolve to local.
func (d *Dispatcher) Select(a model.ComplexityAssessment) model.Tier {
	switch {
	case a.Level >= 4 && d.high != nil:
		return model.TierHigh
	case a.Level == 3 && d.mid != nil:
		return model.TierMid
	default:
		return model.TierLocal
	}
}

// Available lists the configured tiers.
func (d *Dispatcher) Available() []model.Tier {
	tiers := []model.Tier{model.TierLocal}
	if d.mid != nil {
		tiers = append(tiers, model.TierMid)
	}
	if d.high != nil {
		tiers = append(tiers, model.TierHigh)
	}
	return tiers
}

// Dispatch calls the selected tier. A mid or high failure triggers exactly one
// local call; there are no retries.
func (d *Dispatcher) Dispatch(ctx context.Context, in Input) Output {
	tier := d.Select(in.Assessment)
	req := &llmprovider.Request{
		SystemInstruction: in.SystemPrompt + ContextMemoriesHeader + in.Context,
		Prompt:            in.Prompt,
	}

	out := Output{Tier: tier, Attempts: []model.Tier{tier}}

	if tier != model.TierLocal {
		text, err := d.call(ctx, tier, d.endpoint(tier), req)
		if err == nil {
			out.Text = text
			return out
		}
		d.l.Warnf(ctx, "%s: tier %s failed, falling back to local: %v", LogPrefixDispatch, tier, err)
		out.Tier = model.TierLocal
		out.Attempts = append(out.Attempts, model.TierLocal)
	}

	text, err := d.call(ctx, model.TierLocal, &d.local, req)
	if err != nil {
		d.l.Errorf(ctx, "%s: local tier failed: %v", LogPrefixDispatch, err)
		out.Text = fmt.Sprintf(ErrMsgLocalFailure, err)
		out.Err = err
		return out
	}
	out.Text = text
	return out
}

func (d *Dispatcher) endpoint(tier model.Tier) *Endpoint {
	switch tier {
	case model.TierHigh:
		return d.high
	case model.TierMid:
		return d.mid
	default:
		return &d.local
	}
}

// call runs one provider request under the tier timeout.
func (d *Dispatcher) call(ctx context.Context, tier model.Tier, ep *Endpoint, req *llmprovider.Request) (string, error) {
	if ep.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ep.Timeout)
		defer cancel()
	}

	r := *req
	r.Temperature = ep.Temperature
	r.MaxTokens = ep.MaxTokens

	start := time.Now()
	resp, err := ep.Provider.GenerateContent(ctx, &r)
	if err != nil {
		return "", err
	}
	d.l.Infof(ctx, "%s: tier %s answered via %s/%s in %s", LogPrefixDispatch, tier, resp.ProviderName, resp.ModelName, time.Since(start).Round(time.Millisecond))
	return resp.Text, nil
}
