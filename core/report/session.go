package report

import (
	"github.com/kilianp07/crashlens/core/analysis"
	"github.com/kilianp07/crashlens/core/features"
	"github.com/kilianp07/crashlens/core/logger"
	"github.com/kilianp07/crashlens/core/model"
	"github.com/kilianp07/crashlens/core/scene"
)

// Session is the in-memory state of one operator: the map captures and the
// last generated report. Nothing is persisted.
type Session struct {
	analyzer   *analysis.Analyzer
	builder    *Builder
	directions features.DirectionTable
	scene      *scene.Scene
	last       *model.Report
	log        logger.Logger
}

// NewSession returns an empty session. dirs is the direction table exposed
// by the form and is used to snap map headings.
func NewSession(an *analysis.Analyzer, b *Builder, dirs features.DirectionTable, log logger.Logger) *Session {
	if log == nil {
		log = logger.Nop{}
	}
	return &Session{analyzer: an, builder: b, directions: dirs, scene: scene.New(), log: log}
}

// Scene returns the session's map captures.
func (s *Session) Scene() *scene.Scene { return s.scene }

// LoadScene replaces the map captures with in. Paths are indexed by party.
func (s *Session) LoadScene(in *SceneInput) error {
	s.scene.Reset()
	if in == nil {
		return nil
	}
	if in.Location != nil {
		if err := s.scene.SetLocation(in.Location.Lat, in.Location.Lng); err != nil {
			return err
		}
	}
	if in.Collision != nil {
		if err := s.scene.SetCollision(in.Collision.Lat, in.Collision.Lng); err != nil {
			return err
		}
	}
	for i, path := range in.Paths {
		for _, p := range path {
			if err := s.scene.AddPathPoint(i, p.Lat, p.Lng); err != nil {
				return err
			}
		}
	}
	return nil
}

// Analyze scores the first two parties of form and stores the resulting
// report as the session's last report. Parties without a direction get the
// heading of their captured path.
func (s *Session) Analyze(form Form) (model.Report, error) {
	if err := form.Validate(); err != nil {
		return model.Report{}, err
	}
	for _, field := range form.Coerced {
		s.log.Debugf("%s unreadable, scored as %v", field, features.DefaultNumeric)
	}
	parties := make([]model.Party, len(form.Parties))
	copy(parties, form.Parties)
	for i := range parties {
		if parties[i].Observation.Direction != "" {
			continue
		}
		if d, ok := s.scene.Direction(i, s.directions); ok {
			parties[i].Observation.Direction = d.String()
			s.log.Debugf("party %d direction %s taken from map path", i+1, d)
		}
	}

	out, err := s.analyzer.Analyze(form.Accident, parties[0], parties[1])
	if err != nil {
		return model.Report{}, err
	}
	an := NewAnalysis(form.Accident, parties[0], parties[1], out.Result, out.Backend)
	rep, err := s.builder.Build(form.Accident, parties, an)
	if err != nil {
		return model.Report{}, err
	}
	s.last = &rep
	s.log.Infof("analysis completed: %s via %s", out.Result.Label(), out.Backend)
	return rep, nil
}

// Last returns the last stored report.
func (s *Session) Last() (model.Report, bool) {
	if s.last == nil {
		return model.Report{}, false
	}
	return *s.last, true
}

// Current returns the last report, or builds and stores one carrying the
// placeholder analysis when nothing was analyzed yet.
func (s *Session) Current(form Form) (model.Report, error) {
	if s.last != nil {
		return *s.last, nil
	}
	if err := form.Validate(); err != nil {
		return model.Report{}, err
	}
	rep, err := s.builder.Build(form.Accident, form.Parties, PlaceholderAnalysis(form.Accident, form.Parties[0], form.Parties[1]))
	if err != nil {
		return model.Report{}, err
	}
	s.last = &rep
	return rep, nil
}
