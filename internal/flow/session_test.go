package flow

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"vizu/internal/domain"
)

func testSession() *Session {
	return NewSession(zerolog.Nop())
}

func analyzedSession(t *testing.T, plan domain.PlanTier) *Session {
	t.Helper()
	s := testSession()
	profile := domain.NewProfile()
	profile.SetImage([]byte("selfie"))
	profile.ApplyAnalysis(domain.DefaultAnalysis())
	s.Restore(profile, plan)
	return s
}

func mustObjective(t *testing.T, id string) domain.LookObjective {
	t.Helper()
	obj, ok := domain.ObjectiveByID(id)
	if !ok {
		t.Fatalf("missing objective %q", id)
	}
	return obj
}

func TestAnalysisHappyPathGatesFreeTier(t *testing.T) {
	s := testSession()
	epoch, err := s.BeginAnalysis([]byte("selfie"))
	if err != nil {
		t.Fatalf("BeginAnalysis: %v", err)
	}
	if st := s.State(); st.View != ViewAnalyzing || !st.Analyzing || st.Profile.Analyzed {
		t.Fatalf("unexpected state during analysis: %+v", st)
	}

	applied, gated := s.CompleteAnalysis(epoch, domain.DefaultAnalysis())
	if !applied || !gated {
		t.Fatalf("applied=%v gated=%v, want true/true on free tier", applied, gated)
	}
	st := s.State()
	if st.View != ViewPaywall {
		t.Fatalf("free tier should land on paywall, got %s", st.View)
	}
	if !st.Profile.Analyzed || st.Profile.Season == "" || len(st.Profile.Palette) == 0 {
		t.Fatalf("analysis fields missing after completion: %+v", st.Profile)
	}
}

func TestAnalysisPaidTierSkipsPaywall(t *testing.T) {
	s := testSession()
	s.Restore(domain.NewProfile(), domain.PlanProMonthly)
	epoch, err := s.BeginAnalysis([]byte("selfie"))
	if err != nil {
		t.Fatalf("BeginAnalysis: %v", err)
	}
	if _, gated := s.CompleteAnalysis(epoch, domain.DefaultAnalysis()); gated {
		t.Fatal("paid tier must not be gated")
	}
	if st := s.State(); st.View != ViewDashboard {
		t.Fatalf("view = %s, want dashboard", st.View)
	}
}

func TestAnalysisFailureReturnsToUpload(t *testing.T) {
	s := testSession()
	epoch, _ := s.BeginAnalysis([]byte("selfie"))
	if !s.FailAnalysis(epoch) {
		t.Fatal("FailAnalysis should apply")
	}
	st := s.State()
	if st.View != ViewUpload || st.Profile.Analyzed || st.Analyzing {
		t.Fatalf("failure state wrong: %+v", st)
	}
	if st.Profile.Image == nil {
		t.Fatal("captured image may remain set after failure")
	}
}

func TestAnalysisBusyIsNoOp(t *testing.T) {
	s := testSession()
	if _, err := s.BeginAnalysis([]byte("one")); err != nil {
		t.Fatalf("BeginAnalysis: %v", err)
	}
	if _, err := s.BeginAnalysis([]byte("two")); !errors.Is(err, domain.ErrBusy) {
		t.Fatalf("second trigger err = %v, want ErrBusy", err)
	}
}

func TestGenerationQuotaOrdering(t *testing.T) {
	s := analyzedSession(t, domain.PlanFree)
	if err := s.Navigate(ViewLookGenerator); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	work := mustObjective(t, "work")

	// A failed generation must not consume quota.
	epoch, err := s.BeginGeneration(work)
	if err != nil {
		t.Fatalf("BeginGeneration: %v", err)
	}
	if !s.FailGeneration(epoch) {
		t.Fatal("FailGeneration should apply")
	}
	if got := s.State().Profile.LooksGenerated; got != 0 {
		t.Fatalf("LooksGenerated after failure = %d, want 0", got)
	}
	if s.State().View != ViewLookGenerator {
		t.Fatal("failure must keep the generator screen")
	}

	// Success counts exactly once and moves to the result screen.
	epoch, err = s.BeginGeneration(work)
	if err != nil {
		t.Fatalf("retry BeginGeneration: %v", err)
	}
	if !s.CompleteGeneration(epoch, domain.GeneratedLook{ID: "l1", Objective: "work", Image: []byte("png")}) {
		t.Fatal("CompleteGeneration should apply")
	}
	st := s.State()
	if st.Profile.LooksGenerated != 1 || st.View != ViewLookResult || st.Look == nil {
		t.Fatalf("post-generation state wrong: %+v", st)
	}

	// Quota exhausted afterwards on the free tier.
	if err := s.DismissLook(); err != nil {
		t.Fatalf("DismissLook: %v", err)
	}
	if err := s.Navigate(ViewLookGenerator); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if _, err := s.BeginGeneration(work); !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("err = %v, want ErrQuotaExceeded", err)
	}
	if got := s.State().Profile.LooksGenerated; got != 1 {
		t.Fatalf("denied attempt changed quota: %d", got)
	}
}

func TestGenerationPremiumObjectiveDenied(t *testing.T) {
	s := analyzedSession(t, domain.PlanFree)
	if err := s.Navigate(ViewLookGenerator); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if _, err := s.BeginGeneration(mustObjective(t, "formal")); !errors.Is(err, domain.ErrPremiumRequired) {
		t.Fatalf("err = %v, want ErrPremiumRequired", err)
	}
	if got := s.State().Profile.LooksGenerated; got != 0 {
		t.Fatalf("denied attempt changed quota: %d", got)
	}
}

func TestGenerationBusyIsNoOp(t *testing.T) {
	s := analyzedSession(t, domain.PlanProMonthly)
	if err := s.Navigate(ViewLookGenerator); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if _, err := s.BeginGeneration(mustObjective(t, "work")); err != nil {
		t.Fatalf("BeginGeneration: %v", err)
	}
	if _, err := s.BeginGeneration(mustObjective(t, "casual")); !errors.Is(err, domain.ErrBusy) {
		t.Fatalf("second trigger err = %v, want ErrBusy", err)
	}
}

func TestStaleGenerationCompletionDiscarded(t *testing.T) {
	s := analyzedSession(t, domain.PlanProMonthly)
	if err := s.Navigate(ViewLookGenerator); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	epoch, err := s.BeginGeneration(mustObjective(t, "work"))
	if err != nil {
		t.Fatalf("BeginGeneration: %v", err)
	}

	// The user abandons the flow while the call is in flight.
	s.Reset()

	if s.CompleteGeneration(epoch, domain.GeneratedLook{ID: "stale"}) {
		t.Fatal("stale completion must be discarded")
	}
	st := s.State()
	if st.Look != nil || st.Profile.LooksGenerated != 0 || st.View != ViewUpload {
		t.Fatalf("stale completion leaked into state: %+v", st)
	}
}

func TestEditReplacesImageInPlace(t *testing.T) {
	s := analyzedSession(t, domain.PlanProMonthly)
	if err := s.Navigate(ViewLookGenerator); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	epoch, _ := s.BeginGeneration(mustObjective(t, "party"))
	s.CompleteGeneration(epoch, domain.GeneratedLook{ID: "l1", Image: []byte("v1")})

	editEpoch, img, err := s.BeginEdit()
	if err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if string(img) != "v1" {
		t.Fatalf("BeginEdit image = %q", img)
	}
	if _, _, err := s.BeginEdit(); !errors.Is(err, domain.ErrBusy) {
		t.Fatalf("re-entrant edit err = %v, want ErrBusy", err)
	}
	if !s.CompleteEdit(editEpoch, []byte("v2")) {
		t.Fatal("CompleteEdit should apply")
	}
	st := s.State()
	if st.Look.ID != "l1" || string(st.Look.Image) != "v2" {
		t.Fatalf("edit did not swap image in place: %+v", st.Look)
	}
}

func TestEditWithoutLook(t *testing.T) {
	s := analyzedSession(t, domain.PlanProMonthly)
	if _, _, err := s.BeginEdit(); !errors.Is(err, domain.ErrNoLook) {
		t.Fatalf("err = %v, want ErrNoLook", err)
	}
}

func TestSelectPlanKeepsQuotaCounter(t *testing.T) {
	s := analyzedSession(t, domain.PlanFree)
	if err := s.Navigate(ViewLookGenerator); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	epoch, _ := s.BeginGeneration(mustObjective(t, "work"))
	s.CompleteGeneration(epoch, domain.GeneratedLook{ID: "l1"})
	if err := s.DismissLook(); err != nil {
		t.Fatalf("DismissLook: %v", err)
	}

	if err := s.Navigate(ViewPricing); err != nil {
		t.Fatalf("Navigate pricing: %v", err)
	}
	if err := s.SelectPlan(domain.PlanProMonthly); err != nil {
		t.Fatalf("SelectPlan: %v", err)
	}
	st := s.State()
	if st.Plan != domain.PlanProMonthly || st.View != ViewDashboard {
		t.Fatalf("plan selection state wrong: %+v", st)
	}
	if st.Profile.LooksGenerated != 1 {
		t.Fatalf("upgrade must not reset the counter, got %d", st.Profile.LooksGenerated)
	}
}

func TestRestoreAnalyzedProfileBootsToDashboard(t *testing.T) {
	s := testSession()
	profile := domain.NewProfile()
	profile.ApplyAnalysis(domain.DefaultAnalysis())
	s.Restore(profile, domain.PlanProAnnual)
	st := s.State()
	if st.View != ViewDashboard || st.Plan != domain.PlanProAnnual {
		t.Fatalf("restore state wrong: view=%s plan=%s", st.View, st.Plan)
	}
}
