package domain

import "strings"

// PlanTier enumerates billing tiers.
type PlanTier string

const (
	PlanFree        PlanTier = "free"
	PlanProMonthly  PlanTier = "pro_monthly"
	PlanProAnnual   PlanTier = "pro_annual"
	PlanStudioBasic PlanTier = "studio_basic"
	PlanStudioPro   PlanTier = "studio_pro"
	PlanStudioElite PlanTier = "studio_elite"
)

// IsFree reports whether the tier is the free plan.
func (t PlanTier) IsFree() bool {
	return t == PlanFree
}

// ParsePlanTier validates free-form input against the closed tier set.
func ParsePlanTier(raw string) (PlanTier, bool) {
	tier := PlanTier(strings.ToLower(strings.TrimSpace(raw)))
	switch tier {
	case PlanFree, PlanProMonthly, PlanProAnnual, PlanStudioBasic, PlanStudioPro, PlanStudioElite:
		return tier, true
	}
	return "", false
}

// Plan carries the display metadata served by the pricing endpoint.
type Plan struct {
	Tier      PlanTier `json:"tier"`
	Audience  string   `json:"audience"`
	Name      string   `json:"name"`
	Price     string   `json:"price"`
	Period    string   `json:"period"`
	Subtext   string   `json:"subtext,omitempty"`
	Features  []string `json:"features"`
	CTA       string   `json:"cta"`
	Highlight bool     `json:"highlight"`
}

var planCatalog = []Plan{
	{
		Tier: PlanFree, Audience: "personal", Name: "Free", Price: "R$ 0", Period: "/mês",
		Features: []string{"Análise de Rosto Básica", "1 Look gerado por mês", "Paleta simplificada"},
		CTA:      "Plano Atual",
	},
	{
		Tier: PlanProMonthly, Audience: "personal", Name: "Pro Pessoal", Price: "R$ 29,90", Period: "/mês",
		Features:  []string{"Análise Gemini 3 Pro", "Geração 4K (Nano Banana)", "Consultor IA (Search/Maps)", "Edição Mágica"},
		CTA:       "Começar 7 dias grátis",
		Highlight: true,
	},
	{
		Tier: PlanProAnnual, Audience: "personal", Name: "Anual Pessoal", Price: "R$ 19,90", Period: "/mês*",
		Subtext:  "*Cobrado anualmente (R$ 238,80)",
		Features: []string{"Tudo do Pro Pessoal", "Economia de 33%", "Acesso antecipado a features"},
		CTA:      "Assinar com Desconto",
	},
	{
		Tier: PlanStudioBasic, Audience: "professional", Name: "Studio Básico", Price: "R$ 89,90", Period: "/mês",
		Features: []string{"Até 10 clientes/mês", "Ficha técnica básica", "Painel de Gestão"},
		CTA:      "Assinar Básico",
	},
	{
		Tier: PlanStudioPro, Audience: "professional", Name: "Studio Pro", Price: "R$ 149,90", Period: "/mês",
		Features:  []string{"Clientes Ilimitados", "Dossiê em PDF (White-label)", "Comparador de Tecidos", "Suporte Prioritário"},
		CTA:       "Assinar Pro",
		Highlight: true,
	},
	{
		Tier: PlanStudioElite, Audience: "professional", Name: "Studio Elite", Price: "R$ 299,90", Period: "/mês",
		Features: []string{"Tudo do Studio Pro", "API de Integração", "Treinamento de Equipe", "Multi-usuários (3 seats)"},
		CTA:      "Falar com Vendas",
	},
}

// PlanCatalog returns a copy of the pricing catalog.
func PlanCatalog() []Plan {
	out := make([]Plan, len(planCatalog))
	for i, p := range planCatalog {
		p.Features = append([]string(nil), p.Features...)
		out[i] = p
	}
	return out
}

// FreeLookQuota is the lifetime generation allowance on the free tier.
const FreeLookQuota = 1

// DenyReason explains why a generation request was refused.
type DenyReason string

const (
	DenyNone            DenyReason = ""
	DenyQuotaExhausted  DenyReason = "quota_exhausted"
	DenyPremiumRequired DenyReason = "premium_required"
)

// Decision is the outcome of an entitlement check.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Err maps a denial onto its sentinel error, nil when allowed.
func (d Decision) Err() error {
	switch d.Reason {
	case DenyQuotaExhausted:
		return ErrQuotaExceeded
	case DenyPremiumRequired:
		return ErrPremiumRequired
	}
	return nil
}

// CanGenerate decides whether a look generation is permitted under the given
// plan and usage. Rules are evaluated in order; the first denial wins. The
// caller increments the usage counter only after the generation itself
// succeeds, so denied or failed attempts never consume quota.
func CanGenerate(tier PlanTier, objective LookObjective, looksGenerated int) Decision {
	if tier.IsFree() && looksGenerated >= FreeLookQuota {
		return Decision{Reason: DenyQuotaExhausted}
	}
	if tier.IsFree() && objective.Premium {
		return Decision{Reason: DenyPremiumRequired}
	}
	return Decision{Allowed: true}
}
