package compat

// Status is the safety level of a verdict. Statuses only ever escalate.
type Status string

const (
	StatusSafe    Status = "safe"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
)

// Rank orders statuses: safe < warning < danger.
func (s Status) Rank() int {
	switch s {
	case StatusDanger:
		return 2
	case StatusWarning:
		return 1
	default:
		return 0
	}
}

// Escalate returns the more severe of the two statuses.
func Escalate(current, floor Status) Status {
	if floor.Rank() > current.Rank() {
		return floor
	}
	return current
}

// Label is the short display badge for a status.
func (s Status) Label() string {
	switch s {
	case StatusSafe:
		return "✅ Suitable"
	case StatusDanger:
		return "⛔ Not Suitable"
	default:
		return "⚠️ Not Ideal"
	}
}

// Unknown fills the ideal range fields when the species cannot be resolved.
const Unknown = "Unknown"

// Verdict is the classifier's judgment for one species/reading pair.
type Verdict struct {
	Species       string `json:"species"`
	IdealSalinity string `json:"idealSalinity"`
	IdealTemp     string `json:"idealTemp"`
	Status        Status `json:"status"`
	Suitable      bool   `json:"suitable"`
	Message       string `json:"message"`
	Label         string `json:"label"`
}
