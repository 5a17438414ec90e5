// internal/domain/checkout/entity.go
package checkout

import (
	"strings"
	"time"

	"github.com/your-org/smartshop-backend/internal/domain/payment"
)

// Step identifies the wizard stage a checkout session is on
type Step string

const (
	StepAddress Step = "address"
	StepPayment Step = "payment"
)

// Payment method identifiers
const (
	MethodCard = "CARD"
	MethodUPI  = "UPI"
	MethodCOD  = "COD"
)

// UPIApps are the selectable UPI applications
var UPIApps = []string{"gpay", "phonepe", "paytm", "bhim"}

// Address is the shipping address collected in step one.
// Country is filled by geolocation but never validated.
type Address struct {
	FullName string `json:"full_name"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code"`
	Country  string `json:"country"`
	Phone    string `json:"phone"`
}

// PaymentSelection is the method chosen in step two
type PaymentSelection struct {
	Method string `json:"method"`
	UPIApp string `json:"upi_app,omitempty"`
}

// Session is the per-session checkout wizard state
type Session struct {
	SessionID string           `json:"session_id"`
	Step      Step             `json:"step"`
	Address   Address          `json:"address"`
	Payment   PaymentSelection `json:"payment"`
	Errors    []string         `json:"errors"`
	StartedAt time.Time        `json:"started_at"`
}

// Completion is the outcome of a confirmed order
type Completion struct {
	OrderID     string           `json:"order_id"`
	Receipt     *payment.Receipt `json:"receipt"`
	Amount      float64          `json:"amount"`
	CompletedAt time.Time        `json:"completed_at"`
}

// Validate checks the required address fields and returns one message
// per missing field, in display order
func (a *Address) Validate() []string {
	var errs []string
	if strings.TrimSpace(a.FullName) == "" {
		errs = append(errs, "Full Name is required")
	}
	if strings.TrimSpace(a.Street) == "" {
		errs = append(errs, "Street Address is required")
	}
	if strings.TrimSpace(a.City) == "" {
		errs = append(errs, "City is required")
	}
	if strings.TrimSpace(a.State) == "" {
		errs = append(errs, "State is required")
	}
	if strings.TrimSpace(a.ZipCode) == "" {
		errs = append(errs, "ZIP Code is required")
	}
	if strings.TrimSpace(a.Phone) == "" {
		errs = append(errs, "Phone Number is required")
	}
	return errs
}

func validMethod(method string) bool {
	switch method {
	case MethodCard, MethodUPI, MethodCOD:
		return true
	}
	return false
}

func validUPIApp(app string) bool {
	for _, a := range UPIApps {
		if a == app {
			return true
		}
	}
	return false
}
