package ledger

import (
	"github.com/google/uuid"

	"grana/internal/core"
)

// incomeModel owns the base salary and dated additional-income entries.
//
// Salary is a pointer because "never configured" and "explicitly zero"
// are different states: the first sends the UI into its setup flow.
type incomeModel struct {
	salary     *core.Money
	additional []core.AdditionalIncome
	// extra is the cumulative sum over all additional entries, kept only
	// because old clients display it. Month-scoped figures come from
	// monthlyIncome.
	extra core.Money
}

func (m *incomeModel) setSalary(amount core.Money) {
	m.salary = &amount
}

func (m *incomeModel) addAdditional(a core.AdditionalIncome) core.AdditionalIncome {
	a.ID = uuid.NewString()
	m.additional = append(m.additional, a)
	m.recompute()
	return a
}

func (m *incomeModel) removeAdditional(id string) (core.AdditionalIncome, bool) {
	for i, a := range m.additional {
		if a.ID == id {
			m.additional = append(m.additional[:i], m.additional[i+1:]...)
			m.recompute()
			return a, true
		}
	}
	return core.AdditionalIncome{}, false
}

func (m *incomeModel) recompute() {
	var sum int64
	for _, a := range m.additional {
		sum += a.Amount.Cents
	}
	m.extra = core.Money{Cents: sum}
}

// monthlyIncome is salary plus the additional entries belonging to the
// month. An unset salary counts as zero here; the distinction only
// matters for the setup flow, not for arithmetic.
func (m *incomeModel) monthlyIncome(month core.MonthKey) int64 {
	var total int64
	if m.salary != nil {
		total = m.salary.Cents
	}
	for _, a := range m.additional {
		if month.Matches(a.Month) {
			total += a.Amount.Cents
		}
	}
	return total
}

func (m *incomeModel) listAdditional() []core.AdditionalIncome {
	return append([]core.AdditionalIncome(nil), m.additional...)
}

// IncomeSnapshot is the read view handed to callers.
type IncomeSnapshot struct {
	Salary            *core.Money             `json:"salary"`
	AdditionalIncomes []core.AdditionalIncome `json:"additionalIncomes"`
	ExtraIncome       core.Money              `json:"extraIncome"`
}

func (m *incomeModel) snapshot() IncomeSnapshot {
	var salary *core.Money
	if m.salary != nil {
		v := *m.salary
		salary = &v
	}
	return IncomeSnapshot{
		Salary:            salary,
		AdditionalIncomes: m.listAdditional(),
		ExtraIncome:       m.extra,
	}
}
