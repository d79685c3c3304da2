package flow

import (
	"sync"

	"github.com/rs/zerolog"

	"vizu/internal/domain"
)

// Session is the cooperative state container behind one device's consulting
// flow. All mutations go through it, one at a time; at most one asynchronous
// operation (analysis, generation or edit) may be in flight per slot, and a
// completion is applied only when the session has not moved on since the
// operation started (epoch check). Stale completions are discarded.
type Session struct {
	mu         sync.Mutex
	log        zerolog.Logger
	view       View
	plan       domain.PlanTier
	profile    domain.UserProfile
	look       *domain.GeneratedLook
	analyzing  bool
	generating bool
	editing    bool
	epoch      uint64
}

// State is a point-in-time copy of the session for presentation.
type State struct {
	View       View
	Plan       domain.PlanTier
	Profile    domain.UserProfile
	Look       *domain.GeneratedLook
	Analyzing  bool
	Generating bool
	Editing    bool
}

// NewSession starts an anonymous free-tier session on the upload screen.
func NewSession(log zerolog.Logger) *Session {
	return &Session{
		log:     log.With().Str("component", "session").Logger(),
		view:    ViewUpload,
		plan:    domain.PlanFree,
		profile: domain.NewProfile(),
	}
}

// Restore seeds the session from a persisted snapshot. An analyzed profile
// boots straight to the dashboard, mirroring the startup load behavior.
func (s *Session) Restore(profile domain.UserProfile, plan domain.PlanTier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
	if plan != "" {
		s.plan = plan
	}
	if profile.Analyzed {
		s.view = ViewDashboard
	}
}

// State returns a copy of the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	st := State{
		View:       s.view,
		Plan:       s.plan,
		Profile:    s.profile,
		Analyzing:  s.analyzing,
		Generating: s.generating,
		Editing:    s.editing,
	}
	if s.look != nil {
		look := *s.look
		st.Look = &look
	}
	return st
}

// BeginAnalysis stores the captured photo, clears any previous analysis and
// moves to the analyzing screen. Returns the epoch the completion must carry.
func (s *Session) BeginAnalysis(image []byte) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analyzing {
		return 0, domain.ErrBusy
	}
	next, err := Next(s.view, EventPhotoReceived)
	if err != nil {
		return 0, err
	}
	s.profile.SetImage(image)
	s.view = next
	s.analyzing = true
	return s.epoch, nil
}

// CompleteAnalysis applies a successful analysis result. It reports whether
// the result was applied (false when stale) and whether the free-tier paywall
// gate was taken instead of the dashboard.
func (s *Session) CompleteAnalysis(epoch uint64, res domain.AnalysisResult) (applied, gated bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch || !s.analyzing {
		s.log.Warn().Msg("discarding stale analysis completion")
		return false, false
	}
	s.analyzing = false
	s.profile.ApplyAnalysis(res)
	event := EventAnalysisSucceeded
	if s.plan.IsFree() {
		event = EventAnalysisGated
	}
	next, err := Next(s.view, event)
	if err != nil {
		s.log.Error().Err(err).Msg("analysis completion transition rejected")
		return false, false
	}
	s.view = next
	return true, event == EventAnalysisGated
}

// FailAnalysis returns the flow to the upload screen. The profile keeps the
// captured image but must never be left marked analyzed.
func (s *Session) FailAnalysis(epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch || !s.analyzing {
		return false
	}
	s.analyzing = false
	next, err := Next(s.view, EventAnalysisFailed)
	if err != nil {
		return false
	}
	s.view = next
	return true
}

// BeginGeneration runs the entitlement gate and marks a generation in flight.
// A second trigger while one is pending is a no-op returning ErrBusy; the
// quota counter is untouched here and only moves in CompleteGeneration.
func (s *Session) BeginGeneration(objective domain.LookObjective) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generating {
		return 0, domain.ErrBusy
	}
	if s.view != ViewLookGenerator {
		return 0, domain.ErrInvalidTransition
	}
	if !s.profile.Analyzed {
		return 0, domain.ErrNotAnalyzed
	}
	if err := domain.CanGenerate(s.plan, objective, s.profile.LooksGenerated).Err(); err != nil {
		return 0, err
	}
	s.generating = true
	return s.epoch, nil
}

// CompleteGeneration installs the new look, counts the successful generation
// and moves to the result screen. Stale completions are discarded without
// consuming quota.
func (s *Session) CompleteGeneration(epoch uint64, look domain.GeneratedLook) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch || !s.generating {
		s.log.Warn().Str("look_id", look.ID).Msg("discarding stale generation completion")
		return false
	}
	s.generating = false
	next, err := Next(s.view, EventGenerationSucceeded)
	if err != nil {
		return false
	}
	s.profile.RecordLook()
	s.look = &look
	s.view = next
	return true
}

// FailGeneration clears the in-flight flag so a retry is possible; the view
// stays on the generator screen.
func (s *Session) FailGeneration(epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch || !s.generating {
		return false
	}
	s.generating = false
	return true
}

// BeginEdit marks an image edit in flight and hands back the current image.
func (s *Session) BeginEdit() (uint64, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing {
		return 0, nil, domain.ErrBusy
	}
	if s.view != ViewLookResult || s.look == nil {
		return 0, nil, domain.ErrNoLook
	}
	s.editing = true
	return s.epoch, s.look.Image, nil
}

// CompleteEdit swaps the look's image in place, keeping its identity.
func (s *Session) CompleteEdit(epoch uint64, image []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch || !s.editing || s.look == nil {
		s.log.Warn().Msg("discarding stale edit completion")
		return false
	}
	s.editing = false
	s.look.Image = image
	return true
}

// FailEdit clears the editing flag; the look keeps its previous image.
func (s *Session) FailEdit(epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch || !s.editing {
		return false
	}
	s.editing = false
	return true
}

// Navigate performs one of the free user navigations. Leaving a screen
// invalidates any in-flight completion by bumping the epoch.
func (s *Session) Navigate(to View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var event Event
	switch to {
	case ViewDashboard:
		event = EventBackToDashboard
	case ViewLookGenerator:
		event = EventOpenGenerator
	case ViewAssistant:
		event = EventOpenAssistant
	case ViewPricing:
		event = EventOpenPricing
	default:
		return domain.ErrInvalidTransition
	}
	next, err := Next(s.view, event)
	if err != nil {
		return err
	}
	s.view = next
	s.epoch++
	return nil
}

// DismissLook leaves the result screen. The look itself stays available for
// the remainder of the session.
func (s *Session) DismissLook() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := Next(s.view, EventBackToDashboard)
	if err != nil {
		return err
	}
	s.view = next
	s.epoch++
	return nil
}

// SelectPlan updates the tier from the pricing screen and returns to the
// dashboard. Upgrading never resets the generation counter.
func (s *Session) SelectPlan(tier domain.PlanTier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := Next(s.view, EventPlanSelected)
	if err != nil {
		return err
	}
	s.plan = tier
	s.view = next
	s.epoch++
	return nil
}

// Rotate applies a quarter turn to the stored photo (view-only transform).
func (s *Session) Rotate() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.Rotate()
	return s.stateLocked()
}

// Reset abandons the current profile and restarts on the upload screen. The
// selected plan survives; any in-flight completion becomes stale.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = domain.NewProfile()
	s.look = nil
	s.analyzing = false
	s.generating = false
	s.editing = false
	s.view = ViewUpload
	s.epoch++
}
