package prescription

import "github.com/sehatsetu/sehatsetu-api/internal/httperr"

type Status string

const (
	StatusPending        Status = "pending"
	StatusReadyForPickup Status = "ready_for_pickup"
	StatusDispensed      Status = "dispensed"
)

// next holds the single forward step allowed from each status.
var next = map[Status]Status{
	StatusPending:        StatusReadyForPickup,
	StatusReadyForPickup: StatusDispensed,
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusReadyForPickup, StatusDispensed:
		return st, nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

func CanAdvance(from, to Status) error {
	if from == StatusDispensed {
		return httperr.ErrBusiness("prescription_dispensed")
	}
	if n, ok := next[from]; !ok || n != to {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
