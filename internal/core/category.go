package core

// ExpenseCategory is the closed set of spending categories.
type ExpenseCategory string

const (
	CategoryFood      ExpenseCategory = "food"
	CategoryTransport ExpenseCategory = "transport"
	CategoryLeisure   ExpenseCategory = "leisure"
	CategoryBills     ExpenseCategory = "bills"
	CategoryOther     ExpenseCategory = "other"
)

// ExpenseCategories lists all categories in display order.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{CategoryFood, CategoryTransport, CategoryLeisure, CategoryBills, CategoryOther}
}

func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryLeisure, CategoryBills, CategoryOther:
		return true
	}
	return false
}

// Label returns the display name. The switch is exhaustive over the valid
// set; an unknown value falls through to its raw string.
func (c ExpenseCategory) Label() string {
	switch c {
	case CategoryFood:
		return "Food"
	case CategoryTransport:
		return "Transport"
	case CategoryLeisure:
		return "Leisure"
	case CategoryBills:
		return "Bills"
	case CategoryOther:
		return "Other"
	}
	return string(c)
}

// Color returns the chart color associated with the category.
func (c ExpenseCategory) Color() string {
	switch c {
	case CategoryFood:
		return "#FF6384"
	case CategoryTransport:
		return "#36A2EB"
	case CategoryLeisure:
		return "#FFCE56"
	case CategoryBills:
		return "#4BC0C0"
	case CategoryOther:
		return "#9966FF"
	}
	return "#C9CBCF"
}

// PaymentMethod is how an expense was paid. Credit purchases feed the
// referenced card's bill; everything else leaves cards untouched.
type PaymentMethod string

const (
	MethodCredit PaymentMethod = "credit"
	MethodDebit  PaymentMethod = "debit"
	MethodCash   PaymentMethod = "cash"
	MethodPix    PaymentMethod = "pix"
)

// PaymentMethods lists all methods in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{MethodCredit, MethodDebit, MethodCash, MethodPix}
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCredit, MethodDebit, MethodCash, MethodPix:
		return true
	}
	return false
}

func (m PaymentMethod) Label() string {
	switch m {
	case MethodCredit:
		return "Credit"
	case MethodDebit:
		return "Debit"
	case MethodCash:
		return "Cash"
	case MethodPix:
		return "Pix"
	}
	return string(m)
}

// TaskCategory is the closed set of task categories.
type TaskCategory string

const (
	TaskWork     TaskCategory = "work"
	TaskTraining TaskCategory = "training"
	TaskStudy    TaskCategory = "study"
	TaskOther    TaskCategory = "other"
)

func TaskCategories() []TaskCategory {
	return []TaskCategory{TaskWork, TaskTraining, TaskStudy, TaskOther}
}

func (c TaskCategory) Valid() bool {
	switch c {
	case TaskWork, TaskTraining, TaskStudy, TaskOther:
		return true
	}
	return false
}

func (c TaskCategory) Label() string {
	switch c {
	case TaskWork:
		return "Work"
	case TaskTraining:
		return "Training"
	case TaskStudy:
		return "Study"
	case TaskOther:
		return "Other"
	}
	return string(c)
}
