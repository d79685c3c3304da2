package flow

import (
	"fmt"
	"strings"

	"vizu/internal/domain"
)

// View enumerates the screens of the consulting flow. Exactly one is active
// per session.
type View string

const (
	ViewUpload        View = "upload"
	ViewAnalyzing     View = "analyzing"
	ViewPaywall       View = "paywall"
	ViewPricing       View = "pricing"
	ViewDashboard     View = "dashboard"
	ViewLookGenerator View = "look-generator"
	ViewLookResult    View = "look-result"
	ViewAssistant     View = "assistant"
)

// ParseView validates free-form input against the closed view set.
func ParseView(raw string) (View, bool) {
	v := View(strings.ToLower(strings.TrimSpace(raw)))
	switch v {
	case ViewUpload, ViewAnalyzing, ViewPaywall, ViewPricing, ViewDashboard,
		ViewLookGenerator, ViewLookResult, ViewAssistant:
		return v, true
	}
	return "", false
}

// Event enumerates everything that can move the flow forward: user actions
// and completions or failures of the single outstanding async operation.
type Event int

const (
	EventPhotoReceived Event = iota
	EventAnalysisSucceeded
	EventAnalysisGated // free tier finishing its first analysis lands on the paywall
	EventAnalysisFailed
	EventOpenGenerator
	EventOpenAssistant
	EventOpenPricing
	EventGenerationSucceeded
	EventGenerationFailed
	EventBackToDashboard
	EventPlanSelected
	EventReset
)

var eventNames = map[Event]string{
	EventPhotoReceived:       "photo_received",
	EventAnalysisSucceeded:   "analysis_succeeded",
	EventAnalysisGated:       "analysis_gated",
	EventAnalysisFailed:      "analysis_failed",
	EventOpenGenerator:       "open_generator",
	EventOpenAssistant:       "open_assistant",
	EventOpenPricing:         "open_pricing",
	EventGenerationSucceeded: "generation_succeeded",
	EventGenerationFailed:    "generation_failed",
	EventBackToDashboard:     "back_to_dashboard",
	EventPlanSelected:        "plan_selected",
	EventReset:               "reset",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// Next is the single transition function for the whole flow. Every legal
// (view, event) pair is listed here; anything else is rejected so call sites
// can never invent transitions ad hoc.
func Next(v View, e Event) (View, error) {
	switch e {
	case EventReset:
		return ViewUpload, nil
	case EventPhotoReceived:
		if v == ViewUpload {
			return ViewAnalyzing, nil
		}
	case EventAnalysisSucceeded:
		if v == ViewAnalyzing {
			return ViewDashboard, nil
		}
	case EventAnalysisGated:
		if v == ViewAnalyzing {
			return ViewPaywall, nil
		}
	case EventAnalysisFailed:
		if v == ViewAnalyzing {
			return ViewUpload, nil
		}
	case EventOpenGenerator:
		if v == ViewDashboard {
			return ViewLookGenerator, nil
		}
	case EventOpenAssistant:
		if v == ViewDashboard {
			return ViewAssistant, nil
		}
	case EventOpenPricing:
		if v == ViewDashboard || v == ViewPaywall {
			return ViewPricing, nil
		}
	case EventGenerationSucceeded:
		if v == ViewLookGenerator {
			return ViewLookResult, nil
		}
	case EventGenerationFailed:
		// Failure keeps the generator screen so the user can retry.
		if v == ViewLookGenerator {
			return ViewLookGenerator, nil
		}
	case EventBackToDashboard:
		if v == ViewLookGenerator || v == ViewAssistant || v == ViewLookResult || v == ViewPricing {
			return ViewDashboard, nil
		}
	case EventPlanSelected:
		if v == ViewPricing {
			return ViewDashboard, nil
		}
	}
	return v, fmt.Errorf("%w: %s on %s", domain.ErrInvalidTransition, e, v)
}
