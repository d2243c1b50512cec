package budget

// PanelSize is how many budgets the analysis panel lists.
const PanelSize = 4

// Overview condenses an evaluated budget list for alerting.
type Overview struct {
	Budgeted      int            `json:"budgeted" yaml:"budgeted"`
	AnyOverBudget bool           `json:"anyOverBudget" yaml:"anyOverBudget"`
	ByStatus      map[Status]int `json:"byStatus" yaml:"byStatus"`
}

// Summarize counts progress entries per status.
func Summarize(progress []Progress) Overview {
	overview := Overview{
		Budgeted: len(progress),
		ByStatus: map[Status]int{
			StatusWithinLimits: 0,
			StatusNearLimit:    0,
			StatusOverBudget:   0,
		},
	}
	for _, p := range progress {
		overview.ByStatus[p.Status]++
		if p.Status == StatusOverBudget {
			overview.AnyOverBudget = true
		}
	}
	return overview
}

// AllWithinLimits is true when at least one budget is set and none is exceeded.
func (o Overview) AllWithinLimits() bool {
	return o.Budgeted > 0 && !o.AnyOverBudget
}

// Top returns the first n entries of an already ranked list.
func Top(progress []Progress, n int) []Progress {
	if n < 0 {
		n = 0
	}
	if len(progress) <= n {
		return progress
	}
	return progress[:n]
}
