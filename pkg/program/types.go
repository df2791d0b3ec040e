package program

import (
	"strings"
	"time"
)

// Status represents which board column a program belongs to.
type Status string

const (
	StatusActive  Status = "Active"
	StatusPending Status = "Pending"
	StatusEnded   Status = "Ended"
)

// Statuses lists every status in board column order.
var Statuses = []Status{StatusActive, StatusPending, StatusEnded}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusEnded:
		return true
	}
	return false
}

// ParseStatus matches a status name case-insensitively.
func ParseStatus(name string) (Status, bool) {
	for _, s := range Statuses {
		if strings.EqualFold(string(s), strings.TrimSpace(name)) {
			return s, true
		}
	}
	return "", false
}

// PaymentStatus represents how much of a program's reward has been paid out.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentUnpaid  PaymentStatus = "Unpaid"
	PaymentPartial PaymentStatus = "Partial"
)

// PaymentStatuses lists every payment status in selector order.
var PaymentStatuses = []PaymentStatus{PaymentPaid, PaymentUnpaid, PaymentPartial}

// Valid reports whether p is one of the known payment statuses.
func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPaid, PaymentUnpaid, PaymentPartial:
		return true
	}
	return false
}

// ParsePaymentStatus matches a payment status name case-insensitively.
func ParsePaymentStatus(name string) (PaymentStatus, bool) {
	for _, p := range PaymentStatuses {
		if strings.EqualFold(string(p), strings.TrimSpace(name)) {
			return p, true
		}
	}
	return "", false
}

// Program is a tracked brand partnership: a target to hit within a date
// window, the achievement so far, and the reward and payment state.
type Program struct {
	ID               string        `yaml:"id" json:"id"`
	ProgramType      string        `yaml:"program_type" json:"program_type"`
	Brand            string        `yaml:"brand" json:"brand"`
	Description      string        `yaml:"description" json:"description"`
	StartDate        time.Time     `yaml:"start_date" json:"start_date"`
	EndDate          time.Time     `yaml:"end_date" json:"end_date"`
	Target           float64       `yaml:"target" json:"target"`
	Achievement      float64       `yaml:"achievement" json:"achievement"`
	RewardPercentage float64       `yaml:"reward_percentage" json:"reward_percentage"`
	Status           Status        `yaml:"status" json:"status"`
	PaymentStatus    PaymentStatus `yaml:"payment_status" json:"payment_status"`
}
