package employee

// AccessLevel gates what an operator may do.
type AccessLevel string

const (
	AccessManager AccessLevel = "manager"
	AccessClerk   AccessLevel = "clerk"
)

func (a AccessLevel) Valid() bool { return a == AccessManager || a == AccessClerk }

// Status is an employee's employment state. Terminated rows are retained.
type Status string

const (
	StatusActive     Status = "active"
	StatusTerminated Status = "terminated"
)

// Employee is a store operator who signs in to ring up orders.
type Employee struct {
	ID           int64       `json:"employee_id"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	Phone        string      `json:"phone_number"`
	AccessLevel  AccessLevel `json:"access_level"`
	Status       Status      `json:"status"`
	PasscodeHash string      `json:"-"`
}

func (e *Employee) Active() bool { return e.Status == StatusActive }

func (e *Employee) Name() string { return e.FirstName + " " + e.LastName }

// HireRequest is the payload for adding an employee.
type HireRequest struct {
	FirstName   string      `json:"first_name" validate:"required,max=100"`
	LastName    string      `json:"last_name" validate:"required,max=100"`
	Phone       string      `json:"phone_number" validate:"required,max=20"`
	AccessLevel AccessLevel `json:"access_level" validate:"required,oneof=manager clerk"`
	Passcode    string      `json:"passcode" validate:"required,min=4,max=72"`
}
