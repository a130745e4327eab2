// Package recurrence describes how often a recurring income or expense repeats.
package recurrence

type Frequency string

const (
	Weekly    Frequency = "weekly"
	Biweekly  Frequency = "biweekly"
	Monthly   Frequency = "monthly"
	Bimonthly Frequency = "bimonthly"
	Quarterly Frequency = "quarterly"
	Yearly    Frequency = "yearly"
)

func (f Frequency) Valid() bool {
	switch f {
	case Weekly, Biweekly, Monthly, Bimonthly, Quarterly, Yearly:
		return true
	}

	return false
}

// Label is the Portuguese name shown in listings.
func (f Frequency) Label() string {
	switch f {
	case Weekly:
		return "semanal"
	case Biweekly:
		return "quinzenal"
	case Monthly:
		return "mensal"
	case Bimonthly:
		return "bimestral"
	case Quarterly:
		return "trimestral"
	case Yearly:
		return "anual"
	}

	return string(f)
}
