package doctor

import "errors"

var (
	ErrDoctorNotFound   = errors.New("doctor not found")
	ErrDuplicateLicense = errors.New("a doctor with this license number is already registered")
)
