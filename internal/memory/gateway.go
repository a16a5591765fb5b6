package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"voice-assistant/pkg/qdrant"
)

func newPointID() string {
	return uuid.NewString()
}

// RetrieveRelevant embeds query and returns the texts of the closest memories
// scoring at least the threshold, best first.
func (g *VectorGateway) RetrieveRelevant(ctx context.Context, query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	vec, err := g.embedder.Embed(ctx, query)
	if err != nil {
		g.l.Warnf(ctx, "%s: embedding failed: %v", LogPrefixRetrieve, err)
		return nil
	}

	threshold := g.cfg.ScoreThreshold
	resp, err := g.store.SearchPoints(ctx, g.cfg.Collection, qdrant.SearchRequest{
		Vector:         vec,
		Limit:          g.cfg.Limit,
		WithPayload:    true,
		ScoreThreshold: &threshold,
	})
	if err != nil {
		g.l.Warnf(ctx, "%s: search failed: %v", LogPrefixRetrieve, err)
		return nil
	}

	memories := make([]string, 0, len(resp.Result))
	for _, p := range resp.Result {
		if p.Score < threshold {
			continue
		}
		text, ok := p.Payload[PayloadText].(string)
		if !ok || text == "" {
			g.l.Debugf(ctx, "%s: point %v has no text payload", LogPrefixRetrieve, p.ID)
			continue
		}
		memories = append(memories, text)
		if len(memories) == g.cfg.Limit {
			break
		}
	}

	if len(memories) > 0 {
		g.l.Infof(ctx, "%s: found %d relevant facts", LogPrefixRetrieve, len(memories))
	}
	return memories
}

// AddMemory stores text as a user fact under a fresh uuid point id.
func (g *VectorGateway) AddMemory(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	vec, err := g.embedder.Embed(ctx, text)
	if err != nil {
		g.l.Warnf(ctx, "%s: embedding failed: %v", LogPrefixAdd, err)
		return false
	}

	now := g.now()
	point := qdrant.Point{
		ID:     g.newPoint(),
		Vector: vec,
		Payload: map[string]any{
			PayloadText:      text,
			PayloadSource:    SourceUser,
			PayloadType:      TypeFact,
			PayloadTimestamp: now.Unix(),
			PayloadDate:      now.Format("2006-01-02 15:04:05"),
		},
	}

	if err := g.store.UpsertPoints(ctx, g.cfg.Collection, qdrant.UpsertPointsRequest{Points: []qdrant.Point{point}}); err != nil {
		g.l.Warnf(ctx, "%s: failed to add memory: %v", LogPrefixAdd, err)
		return false
	}

	g.l.Infof(ctx, "%s: stored %q", LogPrefixAdd, text)
	return true
}
