package intent

// SubIntent groups the keywords for a finer-grained classification inside an
// intent (e.g. "balance" inside "leave").
type SubIntent struct {
	Tag      string
	Keywords []string
}

// Definition is one row of the scoring table: an intent tag, its keyword
// list, a weight applied to every keyword hit, and its sub-intents.
type Definition struct {
	Tag        string
	Weight     float64
	Keywords   []string
	SubIntents []SubIntent
}

// DefaultTable returns the built-in HR intent vocabulary. The table is an
// ordered slice: when two intents score equally, the earlier row wins.
//
// Keywords deliberately overlap across intents ("leave" appears under both
// leave and policy) — both rows accumulate score and only the max matters.
func DefaultTable() []Definition {
	return []Definition{
		{
			Tag:      "payslip",
			Weight:   1.0,
			Keywords: []string{"payslip", "salary", "pay slip", "payment", "wage", "ctc", "earnings"},
			SubIntents: []SubIntent{
				{Tag: "download", Keywords: []string{"download", "pdf", "copy"}},
				{Tag: "month", Keywords: []string{"this month", "last month", "latest", "current month"}},
				{Tag: "breakdown", Keywords: []string{"breakdown", "deduction", "tax", "basic", "hra", "allowance"}},
			},
		},
		{
			Tag:      "leave",
			Weight:   1.0,
			Keywords: []string{"leave", "leaves", "vacation", "time off", "absence", "sick day"},
			SubIntents: []SubIntent{
				{Tag: "balance", Keywords: []string{"balance", "remaining", "left", "how many"}},
				{Tag: "apply", Keywords: []string{"apply", "request", "take", "book"}},
				{Tag: "status", Keywords: []string{"status", "approved", "pending", "rejected"}},
				{Tag: "policy", Keywords: []string{"policy", "rule", "entitlement"}},
			},
		},
		{
			Tag:      "attendance",
			Weight:   0.9,
			Keywords: []string{"attendance", "check in", "check out", "checkin", "checkout", "present", "absent", "working hours"},
			SubIntents: []SubIntent{
				{Tag: "today", Keywords: []string{"today", "now"}},
				{Tag: "summary", Keywords: []string{"summary", "report", "monthly", "this month"}},
				{Tag: "regularize", Keywords: []string{"regularize", "correction", "missed", "forgot"}},
			},
		},
		{
			Tag:      "holiday",
			Weight:   0.9,
			Keywords: []string{"holiday", "holidays", "festival", "long weekend", "public holiday"},
			SubIntents: []SubIntent{
				{Tag: "list", Keywords: []string{"list", "calendar", "all"}},
				{Tag: "next", Keywords: []string{"next", "upcoming", "when"}},
			},
		},
		{
			Tag:      "contact",
			Weight:   0.8,
			Keywords: []string{"contact", "email", "phone", "reach", "helpdesk", "hr team"},
			SubIntents: []SubIntent{
				{Tag: "hr", Keywords: []string{"hr", "human resource"}},
				{Tag: "manager", Keywords: []string{"manager", "supervisor", "reporting"}},
			},
		},
		{
			Tag:      "policy",
			Weight:   0.8,
			Keywords: []string{"policy", "policies", "rule", "guideline", "handbook", "leave policy", "company policy"},
			SubIntents: []SubIntent{
				{Tag: "company", Keywords: []string{"company", "organization"}},
				{Tag: "leave", Keywords: []string{"leave"}},
				{Tag: "wfh", Keywords: []string{"work from home", "remote", "wfh"}},
			},
		},
		{
			Tag:      "profile",
			Weight:   0.6,
			Keywords: []string{"profile", "my details", "personal information", "designation", "address", "update details"},
			SubIntents: []SubIntent{
				{Tag: "view", Keywords: []string{"view", "show", "see"}},
				{Tag: "update", Keywords: []string{"update", "change", "edit"}},
			},
		},
	}
}

// NonHRTerms is the denylist of off-topic terms. Any question containing one
// of these is classified non_hr before scoring runs.
func NonHRTerms() []string {
	return []string{
		"weather", "sports", "cooking", "movies", "music",
		"games", "programming", "math", "science", "history", "geography",
	}
}
