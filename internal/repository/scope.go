package repository

import (
	"github.com/carebridge/hms/internal/domain"
	"gorm.io/gorm"
)

// scopedAppointments narrows a query over clinical.appointments to the rows
// the caller may see. The column prefix lets the same filter apply through a
// join. An empty scope matches nothing rather than everything.
func scopedAppointments(tx *gorm.DB, scope domain.Scope, prefix string) *gorm.DB {
	if scope.All() {
		return tx
	}
	if scope.Empty() {
		return tx.Where("1 = 0")
	}
	if id := scope.DoctorID(); id != nil {
		return tx.Where(prefix+"doctor_id = ?", *id)
	}
	if id := scope.PatientID(); id != nil {
		return tx.Where(prefix+"patient_id = ?", *id)
	}
	return tx.Where("1 = 0")
}
