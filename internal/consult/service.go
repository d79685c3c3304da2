package consult

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"vizu/internal/domain"
	"vizu/internal/flow"
	"vizu/internal/gateway"
	"vizu/internal/profile"
	"vizu/internal/storage"
)

// Service orchestrates the consulting flow: it drives the session state
// machine, calls the AI gateway and persists the profile snapshot after
// every mutation of an analyzed profile.
type Service struct {
	session *flow.Session
	ai      gateway.Client
	repo    profile.Repository
	archive *storage.Archive
	log     zerolog.Logger
}

// NewService wires the orchestrator. The archive is optional; a nil archive
// disables look image archiving.
func NewService(session *flow.Session, ai gateway.Client, repo profile.Repository, archive *storage.Archive, log zerolog.Logger) *Service {
	return &Service{
		session: session,
		ai:      ai,
		repo:    repo,
		archive: archive,
		log:     log.With().Str("component", "consult").Logger(),
	}
}

// Boot loads the persisted snapshot and seeds the session from it. Malformed
// or missing data comes back as the default anonymous snapshot, so Boot only
// fails on genuine I/O problems.
func (s *Service) Boot(ctx context.Context) error {
	snap, found, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("consult: load snapshot: %w", err)
	}
	if found {
		s.session.Restore(snap.Profile, snap.Plan)
		s.log.Info().
			Bool("analyzed", snap.Profile.Analyzed).
			Str("plan", string(snap.Plan)).
			Msg("restored persisted profile")
	}
	return nil
}

// State returns a copy of the current session state.
func (s *Service) State() flow.State {
	return s.session.State()
}

// Analyze runs the photo analysis round-trip. The image is stored on the
// profile before the provider call so a failure keeps the photo for retry.
// A successful analysis is persisted; the free tier routes to the paywall.
func (s *Service) Analyze(ctx context.Context, image []byte) (flow.State, error) {
	epoch, err := s.session.BeginAnalysis(image)
	if err != nil {
		return s.session.State(), err
	}

	res, err := s.ai.AnalyzeImage(ctx, image)
	if err != nil {
		s.session.FailAnalysis(epoch)
		s.log.Warn().Err(err).Msg("analysis failed")
		return s.session.State(), fmt.Errorf("consult: analyze: %w", err)
	}

	applied, gated := s.session.CompleteAnalysis(epoch, res)
	if applied {
		s.persist(ctx)
		s.log.Info().Str("season", res.Season).Bool("gated", gated).Msg("analysis applied")
	}
	return s.session.State(), nil
}

// LookOptions are the tunables of one generation request.
type LookOptions struct {
	ObjectiveID     string
	Aspect          domain.AspectRatio
	Resolution      domain.Resolution
	WithEnvironment bool
	// UseReference conditions the render on the stored photo so the
	// generated look preserves facial identity.
	UseReference bool
}

// GenerateLook runs the entitlement gate and, when allowed, synthesizes the
// look image and its consultative explanation concurrently. The explanation
// can never fail the operation; an image failure aborts it without consuming
// quota.
func (s *Service) GenerateLook(ctx context.Context, opts LookOptions) (flow.State, error) {
	objective, ok := domain.ObjectiveByID(opts.ObjectiveID)
	if !ok {
		return s.session.State(), fmt.Errorf("%w: %q", domain.ErrUnknownObjective, opts.ObjectiveID)
	}

	epoch, err := s.session.BeginGeneration(objective)
	if err != nil {
		return s.session.State(), err
	}

	state := s.session.State()
	req := gateway.LookRequest{
		Prompt:     gateway.BuildLookPrompt(state.Profile, objective, opts.WithEnvironment),
		Aspect:     opts.Aspect,
		Resolution: opts.Resolution,
	}
	if opts.UseReference {
		req.Reference = state.Profile.Image
	}

	// Fan out: the image render and the explanation are independent
	// round-trips. The explanation branch absorbs its own failure into a
	// canned sentence inside the gateway, so only the image result carries
	// an error.
	type renderResult struct {
		image []byte
		err   error
	}
	renderCh := make(chan renderResult, 1)
	explainCh := make(chan string, 1)
	go func() {
		image, err := s.ai.GenerateLook(ctx, req)
		renderCh <- renderResult{image: image, err: err}
	}()
	go func() {
		explainCh <- s.ai.ExplainLook(ctx, state.Profile, objective)
	}()
	render := <-renderCh
	explanation := <-explainCh

	if render.err != nil {
		s.session.FailGeneration(epoch)
		s.log.Warn().Err(render.err).Str("objective", objective.ID).Msg("look generation failed")
		return s.session.State(), fmt.Errorf("consult: generate look: %w", render.err)
	}

	look := domain.GeneratedLook{
		ID:                     uuid.NewString(),
		Objective:              objective.ID,
		Title:                  objective.Label,
		Details:                explanation,
		Tips:                   fmt.Sprintf("Ideal para seu rosto %s.", state.Profile.FaceShape),
		CreatedWithEnvironment: opts.WithEnvironment,
		Image:                  render.image,
	}
	if opts.WithEnvironment {
		look.Environment = objective.EnvironmentContext
		look.EnvironmentDesc = "Ambiente realista."
	} else {
		look.EnvironmentDesc = "Fundo neutro."
	}

	if s.session.CompleteGeneration(epoch, look) {
		s.persist(ctx)
		s.archiveLook(ctx, look)
		s.log.Info().Str("look_id", look.ID).Str("objective", objective.ID).Msg("look generated")
	}
	return s.session.State(), nil
}

// EditLook rewrites the current look's image in place from a free-form
// instruction. The look keeps its identity; only the image changes.
func (s *Service) EditLook(ctx context.Context, instruction string) (flow.State, error) {
	epoch, image, err := s.session.BeginEdit()
	if err != nil {
		return s.session.State(), err
	}

	edited, err := s.ai.EditImage(ctx, image, instruction)
	if err != nil {
		s.session.FailEdit(epoch)
		s.log.Warn().Err(err).Msg("look edit failed")
		return s.session.State(), fmt.Errorf("consult: edit look: %w", err)
	}

	if s.session.CompleteEdit(epoch, edited) {
		s.log.Info().Msg("look image edited")
	}
	return s.session.State(), nil
}

// Advice forwards a grounded assistant query. The caller resolves the
// request locale and a default location for maps mode before delegating here.
func (s *Service) Advice(ctx context.Context, req gateway.AdviceRequest) (gateway.Advice, error) {
	return s.ai.GetAdvice(ctx, req)
}

// SelectPlan updates the tier from the pricing screen and persists the
// snapshot when the profile has an analysis worth keeping.
func (s *Service) SelectPlan(ctx context.Context, tier domain.PlanTier) (flow.State, error) {
	if err := s.session.SelectPlan(tier); err != nil {
		return s.session.State(), err
	}
	if s.session.State().Profile.Analyzed {
		s.persist(ctx)
	}
	s.log.Info().Str("plan", string(tier)).Msg("plan selected")
	return s.session.State(), nil
}

// Navigate moves between screens.
func (s *Service) Navigate(to flow.View) (flow.State, error) {
	if err := s.session.Navigate(to); err != nil {
		return s.session.State(), err
	}
	return s.session.State(), nil
}

// DismissLook leaves the result screen back to the dashboard.
func (s *Service) DismissLook() (flow.State, error) {
	if err := s.session.DismissLook(); err != nil {
		return s.session.State(), err
	}
	return s.session.State(), nil
}

// Rotate applies a quarter turn to the stored photo and persists it when the
// profile is analyzed, so the preferred orientation survives restarts.
func (s *Service) Rotate(ctx context.Context) flow.State {
	state := s.session.Rotate()
	if state.Profile.Analyzed {
		s.persist(ctx)
	}
	return state
}

// Reset abandons the profile and clears the persisted snapshot, keeping the
// selected plan for the next consultation.
func (s *Service) Reset(ctx context.Context) flow.State {
	s.session.Reset()
	s.persist(ctx)
	return s.session.State()
}

// persist writes the current snapshot. Persistence failures are logged and
// swallowed: the in-memory session stays authoritative for this run.
func (s *Service) persist(ctx context.Context) {
	state := s.session.State()
	snap := profile.Snapshot{Profile: state.Profile, Plan: state.Plan}
	if err := s.repo.Save(ctx, snap); err != nil {
		s.log.Error().Err(err).Msg("persist snapshot failed")
	}
}

// archiveLook stores a copy of the rendered image. Best-effort.
func (s *Service) archiveLook(ctx context.Context, look domain.GeneratedLook) {
	if s.archive == nil {
		return
	}
	key, err := s.archive.SaveLook(ctx, look.ID, look.Image)
	if err != nil {
		s.log.Warn().Err(err).Str("look_id", look.ID).Msg("archive look failed")
		return
	}
	s.log.Debug().Str("key", key).Msg("look archived")
}
