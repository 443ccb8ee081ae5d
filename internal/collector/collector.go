// Package collector is the session-scoped telemetry accumulator. It owns a
// single live session at a time (one player's game); hosts serving multiple
// concurrent players run one collector per player. Recording calls are
// synchronous and bounded; persistence is the storage collaborator's job.
package collector

import (
	"time"

	"github.com/danielpatrickdp/stagecraft/internal/bus"
	"github.com/danielpatrickdp/stagecraft/internal/generator"
	"github.com/danielpatrickdp/stagecraft/internal/insight"
	"github.com/danielpatrickdp/stagecraft/internal/profile"
	"github.com/google/uuid"
)

// #region collector

// Collector implements the Idle → SessionActive → Idle state machine.
type Collector struct {
	config        Config
	insightConfig insight.Config
	bus           *bus.Bus // optional; nil publishes nothing

	profiles map[string]profile.Profile
	history  []Session // bounded ring, oldest first
	session  *Session  // nil while Idle
}

// New returns an Idle collector. events may be nil.
func New(config Config, insightConfig insight.Config, events *bus.Bus) *Collector {
	return &Collector{
		config:        config,
		insightConfig: insightConfig,
		bus:           events,
		profiles:      make(map[string]profile.Profile),
	}
}

// Active reports whether a session is currently recording.
func (c *Collector) Active() bool {
	return c.session != nil
}

// #endregion collector

// #region profiles

// SeedProfiles installs profiles loaded from storage. Call once at init.
func (c *Collector) SeedProfiles(profiles map[string]profile.Profile) {
	for id, p := range profiles {
		c.profiles[id] = p.Clone()
	}
}

// Profile returns a copy of the stored profile for the player.
func (c *Collector) Profile(playerID string) (profile.Profile, bool) {
	p, ok := c.profiles[playerID]
	if !ok {
		return profile.Profile{}, false
	}
	return p.Clone(), true
}

// Profiles returns a copy of every stored profile, for persistence.
func (c *Collector) Profiles() map[string]profile.Profile {
	out := make(map[string]profile.Profile, len(c.profiles))
	for id, p := range c.profiles {
		out[id] = p.Clone()
	}
	return out
}

// History returns the finalized session ring, oldest first.
func (c *Collector) History() []Session {
	return append([]Session(nil), c.history...)
}

// #endregion profiles

// #region start-session

// StartSession opens a fresh recording window. Starting while a session is
// active is a usage error; the existing session is not implicitly closed.
func (c *Collector) StartSession(playerID string) (string, error) {
	if c.session != nil {
		return "", ErrSessionActive
	}
	c.session = &Session{
		ID:        uuid.New().String(),
		PlayerID:  playerID,
		StartedAt: time.Now().UTC(),
	}
	return c.session.ID, nil
}

// #endregion start-session

// #region record

// RecordPlayerAction appends one raw game-loop event to the active session.
func (c *Collector) RecordPlayerAction(actionType string, data map[string]string, context string) error {
	if c.session == nil {
		return ErrNoActiveSession
	}
	action := PlayerAction{
		Type:    actionType,
		Data:    data,
		Context: context,
		At:      time.Now().UTC(),
	}
	c.session.Actions = append(c.session.Actions, action)
	c.bus.Publish(bus.TopicActionRecorded, action)
	return nil
}

// RecordPatternPerformance logs the outcome of one applied pattern: one row
// per primitive, with the derived scalars computed now against the durable
// profile (which itself only changes at session end).
func (c *Collector) RecordPatternPerformance(pattern generator.StagePattern, success bool, m OutcomeMetrics) error {
	if c.session == nil {
		return ErrNoActiveSession
	}

	p := c.profiles[c.session.PlayerID]
	now := time.Now().UTC()
	for _, prim := range pattern.Primitives {
		rec := PerformanceRecord{
			PatternID:         pattern.ID,
			PrimitiveID:       prim.ID,
			Tags:              prim.Tags,
			PatternComplexity: pattern.CombinationComplexity,
			Success:           success,
			CompletionTime:    m.CompletionTime,
			Attempts:          m.Attempts,
			HintsUsed:         m.HintsUsed,
			Mistakes:          m.Mistakes,
			LearningCurve:     learningCurve(p.Experience[prim.ID], success, m.CompletionTime),
			AdaptationRate:    adaptationRate(p, prim.Tags, m.HintsUsed, m.Mistakes, c.config),
			ConfidenceLevel:   confidenceLevel(m, c.config),
			At:                now,
		}
		c.session.Performance = append(c.session.Performance, rec)
	}
	c.bus.Publish(bus.TopicPatternApplied, pattern.ID)
	return nil
}

// RecordStageCompletion logs one finished stage attempt.
func (c *Collector) RecordStageCompletion(stage int, success bool, score int, playTime float64) error {
	if c.session == nil {
		return ErrNoActiveSession
	}
	c.session.Stages = append(c.session.Stages, StageResult{
		StageNumber: stage,
		Success:     success,
		Score:       score,
		PlayTime:    playTime,
		At:          time.Now().UTC(),
	})
	c.session.TotalScore += score
	c.session.TotalTime += playTime
	return nil
}

// #endregion record

// #region end-session

// EndSession finalizes the active session: aggregate metrics, history ring
// append, pure profile update, insight generation once enough history
// exists, and the transition back to Idle. Returns the completed session.
func (c *Collector) EndSession() (Session, []insight.Insight, error) {
	if c.session == nil {
		return Session{}, nil, ErrNoActiveSession
	}

	s := *c.session
	s.EndedAt = time.Now().UTC()
	s.Metrics = computeSessionMetrics(s)

	c.history = append(c.history, s)
	if len(c.history) > c.config.HistoryLimit {
		c.history = c.history[len(c.history)-c.config.HistoryLimit:]
	}

	old, ok := c.profiles[s.PlayerID]
	if !ok {
		old = profile.New(s.PlayerID)
	}
	updated := ApplySession(old, s, c.config)
	c.profiles[s.PlayerID] = updated

	var insights []insight.Insight
	if c.sessionCount(s.PlayerID) >= c.config.MinSessionsForInsights {
		insights = insight.Generate(updated, c.insightConfig)
	}

	c.session = nil

	c.bus.Publish(bus.TopicSessionCompleted, s)
	for _, in := range insights {
		c.bus.Publish(bus.TopicInsightGenerated, in)
	}
	return s, insights, nil
}

// sessionCount counts finalized sessions for a player still in the ring.
func (c *Collector) sessionCount(playerID string) int {
	n := 0
	for _, s := range c.history {
		if s.PlayerID == playerID {
			n++
		}
	}
	return n
}

// #endregion end-session
