package domain

// VaccineEntry is one row of the vaccination schedule table. Exactly one of
// DueWeeks and DueMonths is set.
type VaccineEntry struct {
	Name      string `yaml:"name" json:"name"`
	DueWeeks  *int   `yaml:"due_weeks,omitempty" json:"due_weeks,omitempty"`
	DueMonths *int   `yaml:"due_months,omitempty" json:"due_months,omitempty"`
	DueLabel  string `yaml:"due_label" json:"due_label"`
}

// OutbreakAlert is a district-level disease alert.
type OutbreakAlert struct {
	District       string `yaml:"district" json:"district"`
	Disease        string `yaml:"disease" json:"disease"`
	Severity       string `yaml:"severity" json:"severity"`
	Recommendation string `yaml:"recommendation" json:"recommendation"`
}
