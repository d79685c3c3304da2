package domain

import "testing"

func TestCanGenerateTable(t *testing.T) {
	standard := LookObjective{ID: "work", Premium: false}
	premium := LookObjective{ID: "formal", Premium: true}

	tests := []struct {
		name       string
		tier       PlanTier
		objective  LookObjective
		generated  int
		allowed    bool
		wantReason DenyReason
	}{
		{name: "free standard fresh", tier: PlanFree, objective: standard, generated: 0, allowed: true},
		{name: "free standard quota hit", tier: PlanFree, objective: standard, generated: 1, wantReason: DenyQuotaExhausted},
		{name: "free standard over quota", tier: PlanFree, objective: standard, generated: 2, wantReason: DenyQuotaExhausted},
		{name: "free premium fresh", tier: PlanFree, objective: premium, generated: 0, wantReason: DenyPremiumRequired},
		{name: "free premium quota hit wins on quota", tier: PlanFree, objective: premium, generated: 1, wantReason: DenyQuotaExhausted},
		{name: "free premium over quota", tier: PlanFree, objective: premium, generated: 2, wantReason: DenyQuotaExhausted},
		{name: "pro standard fresh", tier: PlanProMonthly, objective: standard, generated: 0, allowed: true},
		{name: "pro standard heavy usage", tier: PlanProMonthly, objective: standard, generated: 2, allowed: true},
		{name: "pro premium fresh", tier: PlanProMonthly, objective: premium, generated: 0, allowed: true},
		{name: "pro premium heavy usage", tier: PlanProMonthly, objective: premium, generated: 2, allowed: true},
		{name: "annual premium", tier: PlanProAnnual, objective: premium, generated: 1, allowed: true},
		{name: "studio premium", tier: PlanStudioPro, objective: premium, generated: 5, allowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanGenerate(tt.tier, tt.objective, tt.generated)
			if got.Allowed != tt.allowed {
				t.Fatalf("Allowed = %v, want %v", got.Allowed, tt.allowed)
			}
			if got.Reason != tt.wantReason {
				t.Fatalf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestDecisionErr(t *testing.T) {
	if err := (Decision{Allowed: true}).Err(); err != nil {
		t.Fatalf("allowed decision should map to nil error, got %v", err)
	}
	if err := (Decision{Reason: DenyQuotaExhausted}).Err(); err != ErrQuotaExceeded {
		t.Fatalf("quota denial error = %v, want ErrQuotaExceeded", err)
	}
	if err := (Decision{Reason: DenyPremiumRequired}).Err(); err != ErrPremiumRequired {
		t.Fatalf("premium denial error = %v, want ErrPremiumRequired", err)
	}
}

func TestParsePlanTier(t *testing.T) {
	if tier, ok := ParsePlanTier("  Pro_Monthly "); !ok || tier != PlanProMonthly {
		t.Fatalf("ParsePlanTier = %q, %v", tier, ok)
	}
	if _, ok := ParsePlanTier("platinum"); ok {
		t.Fatal("unknown tier should not parse")
	}
}

func TestPlanCatalogCopies(t *testing.T) {
	first := PlanCatalog()
	first[0].Features[0] = "mutated"
	if PlanCatalog()[0].Features[0] == "mutated" {
		t.Fatal("catalog must not share feature slices with callers")
	}
}
