package taxonomy

// DefaultImportance is used when an event type is not in the taxonomy.
const DefaultImportance = 0.5

// Factor describes one driver category in the gold factor framework.
type Factor struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// EventType describes a class of market-moving events and its default
// importance weight used by the impact scorer.
type EventType struct {
	Code              string  `json:"code"`
	Name              string  `json:"name,omitempty"`
	DefaultImportance float64 `json:"default_importance"`
}

// Taxonomy is the static reference data for scoring and display: factor
// codes mapped to readable names/domains, and event types mapped to their
// default importance. It is built once at startup and never mutated, so it
// is safe to share by pointer across the pipeline.
type Taxonomy struct {
	factors    map[string]Factor
	eventTypes map[string]EventType
}

// New builds a taxonomy from explicit factor and event-type lists.
func New(factors []Factor, eventTypes []EventType) *Taxonomy {
	t := &Taxonomy{
		factors:    make(map[string]Factor, len(factors)),
		eventTypes: make(map[string]EventType, len(eventTypes)),
	}
	for _, f := range factors {
		t.factors[f.Code] = f
	}
	for _, et := range eventTypes {
		t.eventTypes[et.Code] = et
	}
	return t
}

// TypeImportance returns the default importance for an event type.
// Unknown codes fall back to DefaultImportance rather than erroring.
func (t *Taxonomy) TypeImportance(code string) float64 {
	if et, ok := t.eventTypes[code]; ok {
		return et.DefaultImportance
	}
	return DefaultImportance
}

// FactorName returns the display name for a factor code, or the code itself
// when the factor is not part of the taxonomy.
func (t *Taxonomy) FactorName(code string) string {
	if f, ok := t.factors[code]; ok {
		return f.Name
	}
	return code
}

// FactorDomain returns the domain a factor belongs to, or "" if unknown.
func (t *Taxonomy) FactorDomain(code string) string {
	return t.factors[code].Domain
}

// Factors returns all factors, order unspecified.
func (t *Taxonomy) Factors() []Factor {
	out := make([]Factor, 0, len(t.factors))
	for _, f := range t.factors {
		out = append(out, f)
	}
	return out
}

// Default returns the built-in gold factor framework. It mirrors the shipped
// factor config so the service can run without an external taxonomy file.
func Default() *Taxonomy {
	return New(
		[]Factor{
			{Code: "A1_REAL_YIELD", Name: "Real Yield Expectations", Domain: "monetary"},
			{Code: "A2_POLICY_PATH", Name: "Fed Policy Path", Domain: "monetary"},
			{Code: "A3_INFLATION_EXP", Name: "Inflation Expectations", Domain: "monetary"},
			{Code: "B1_USD_STRENGTH", Name: "US Dollar Strength", Domain: "currency"},
			{Code: "C1_GEOPOLITICAL_RISK", Name: "Geopolitical Risk", Domain: "risk"},
			{Code: "C2_FINANCIAL_STRESS", Name: "Financial System Stress", Domain: "risk"},
			{Code: "D1_ETF_FLOWS", Name: "Gold ETF Flows", Domain: "flows"},
			{Code: "D2_CB_BUYING", Name: "Central Bank Gold Buying", Domain: "flows"},
			{Code: "E1_MINE_SUPPLY", Name: "Mine Supply", Domain: "supply"},
		},
		[]EventType{
			{Code: "MACRO_DATA_RELEASE", Name: "Macro Data Release", DefaultImportance: 0.8},
			{Code: "CENTRAL_BANK_SPEECH", Name: "Central Bank Speech", DefaultImportance: 0.7},
			{Code: "CENTRAL_BANK_DECISION", Name: "Central Bank Decision", DefaultImportance: 0.9},
			{Code: "GEOPOLITICAL_ESCALATION", Name: "Geopolitical Escalation", DefaultImportance: 0.85},
			{Code: "SANCTIONS", Name: "Sanctions", DefaultImportance: 0.75},
			{Code: "ETF_FLOW", Name: "ETF Flow", DefaultImportance: 0.6},
			{Code: "MINING_DISRUPTION", Name: "Mining Disruption", DefaultImportance: 0.55},
			{Code: "POLICY_ANNOUNCEMENT", Name: "Policy Announcement", DefaultImportance: 0.65},
		},
	)
}
