package prescription

import "errors"

var ErrPrescriptionNotFound = errors.New("no prescription exists for this appointment")
