package assistant

import (
	"context"

	"voice-assistant/internal/localtools"
	"voice-assistant/internal/model"
	"voice-assistant/pkg/log"
)

// LocalSkills runs the skills backed by the built-in tool server.
// Desktop and OS skills are left to the client.
type LocalSkills struct {
	tools *localtools.Tools
	l     log.Logger
}

var _ SkillExecutor = (*LocalSkills)(nil)

// NewLocalSkills creates a LocalSkills.
func NewLocalSkills(tools *localtools.Tools, l log.Logger) *LocalSkills {
	return &LocalSkills{tools: tools, l: l}
}

// Execute implements SkillExecutor.
func (s *LocalSkills) Execute(ctx context.Context, intent model.Intent) (string, bool) {
	switch intent.Name {
	case model.IntentWeather:
		return s.tools.CurrentWeather(ctx, intent.Args), true
	case model.IntentWeatherRain:
		return s.tools.IsItRaining(ctx, intent.Args), true
	case model.IntentWeatherForecast:
		days, _ := intent.Param(model.ParamDays).(int)
		return s.tools.Forecast(ctx, intent.Args, days), true
	case model.IntentTakeNote:
		text, err := s.tools.TakeNote(ctx, intent.Args)
		if err != nil {
			s.l.Warnf(ctx, "%s: take note: %v", LogPrefixSkills, err)
		}
		return text, true
	case model.IntentReadNotes:
		return s.tools.ReadNotes(ctx, localtools.DefaultNotesLimit), true
	case model.IntentCurrentTime:
		return s.tools.CurrentTime(), true
	case model.IntentSystemStatus:
		return s.tools.Status(ctx), true
	case model.IntentSystemStats:
		return s.tools.Stats(ctx), true
	case model.IntentUptime:
		return s.tools.Uptime(ctx), true
	case model.IntentMorningProtocol:
		return s.tools.MorningBriefing(ctx, ""), true
	default:
		return "", false
	}
}
