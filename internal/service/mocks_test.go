package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/carebridge/hms/internal/domain"
	"github.com/carebridge/hms/internal/domain/appointment"
	"github.com/carebridge/hms/internal/domain/billing"
	"github.com/carebridge/hms/internal/domain/contact"
	"github.com/carebridge/hms/internal/domain/doctor"
	"github.com/carebridge/hms/internal/domain/patient"
	"github.com/carebridge/hms/internal/domain/prescription"
	"github.com/carebridge/hms/internal/repository"
	"github.com/google/uuid"
)

type fakeUserRepo struct {
	users           map[uuid.UUID]*domain.User
	doctorProfiles  map[uuid.UUID]*doctor.Doctor
	patientProfiles map[uuid.UUID]*patient.Patient
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:           make(map[uuid.UUID]*domain.User),
		doctorProfiles:  make(map[uuid.UUID]*doctor.Doctor),
		patientProfiles: make(map[uuid.UUID]*patient.Patient),
	}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = strings.ToLower(u.Email)
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) CreateDoctorAccount(ctx context.Context, u *domain.User, d *doctor.Doctor) error {
	if err := r.Create(ctx, u); err != nil {
		return err
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.UserID = u.ID
	u.DoctorID = &d.ID
	r.doctorProfiles[d.ID] = d
	return nil
}

func (r *fakeUserRepo) CreatePatientAccount(ctx context.Context, u *domain.User, p *patient.Patient) error {
	if err := r.Create(ctx, u); err != nil {
		return err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.UserID = u.ID
	u.PatientID = &p.ID
	r.patientProfiles[p.ID] = p
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(email)
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]*doctor.Doctor
	active  map[uuid.UUID]bool
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{
		doctors: make(map[uuid.UUID]*doctor.Doctor),
		active:  make(map[uuid.UUID]bool),
	}
}

func (r *fakeDoctorRepo) add(d *doctor.Doctor, isActive bool) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.doctors[d.ID] = d
	r.active[d.ID] = isActive
}

func (r *fakeDoctorRepo) Create(_ context.Context, d *doctor.Doctor) error {
	r.add(d, false)
	return nil
}

func (r *fakeDoctorRepo) GetByID(_ context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, doctor.ErrDoctorNotFound
	}
	return d, nil
}

func (r *fakeDoctorRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*doctor.Doctor, error) {
	for _, d := range r.doctors {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, doctor.ErrDoctorNotFound
}

func (r *fakeDoctorRepo) Update(_ context.Context, id uuid.UUID, cmd *doctor.UpdateDoctorCommand) (*doctor.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, doctor.ErrDoctorNotFound
	}
	if cmd.Specialization != nil {
		d.Specialization = *cmd.Specialization
	}
	if cmd.LicenseNumber != nil {
		d.LicenseNumber = *cmd.LicenseNumber
	}
	return d, nil
}

func (r *fakeDoctorRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.doctors, id)
	delete(r.active, id)
	return nil
}

func (r *fakeDoctorRepo) List(_ context.Context, q *doctor.ListDoctorsQuery) ([]*doctor.DirectoryEntry, error) {
	var out []*doctor.DirectoryEntry
	for _, d := range r.doctors {
		if q.ActiveOnly && !r.active[d.ID] {
			continue
		}
		if q.Specialization != "" && !strings.Contains(strings.ToLower(d.Specialization), strings.ToLower(q.Specialization)) {
			continue
		}
		out = append(out, &doctor.DirectoryEntry{Doctor: *d, IsActive: r.active[d.ID]})
	}
	return out, nil
}

func (r *fakeDoctorRepo) Specializations(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	for _, d := range r.doctors {
		if r.active[d.ID] {
			seen[d.Specialization] = true
		}
	}
	var out []string
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeDoctorRepo) ExistsByLicense(_ context.Context, license string) (bool, error) {
	for _, d := range r.doctors {
		if d.LicenseNumber == license {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDoctorRepo) ExistsActive(_ context.Context, id uuid.UUID) (bool, error) {
	return r.active[id], nil
}

func (r *fakeDoctorRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.doctors)), nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*patient.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]*patient.Patient)}
}

func (r *fakePatientRepo) Create(_ context.Context, p *patient.Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.patients[p.ID] = p
	return nil
}

func (r *fakePatientRepo) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	return p, nil
}

func (r *fakePatientRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*patient.Patient, error) {
	for _, p := range r.patients {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, patient.ErrPatientNotFound
}

func (r *fakePatientRepo) Update(_ context.Context, id uuid.UUID, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	if cmd.Gender != nil {
		p.Gender = *cmd.Gender
	}
	if cmd.ContactNumber != nil {
		p.ContactNumber = *cmd.ContactNumber
	}
	return p, nil
}

func (r *fakePatientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.patients, id)
	return nil
}

func (r *fakePatientRepo) List(_ context.Context) ([]*patient.DirectoryEntry, error) {
	var out []*patient.DirectoryEntry
	for _, p := range r.patients {
		out = append(out, &patient.DirectoryEntry{Patient: *p})
	}
	return out, nil
}

func (r *fakePatientRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.patients)), nil
}

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*appointment.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*appointment.Appointment)}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *appointment.Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.appointments[a.ID] = a
	return nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAppointmentRepo) visible(scope domain.Scope, a *appointment.Appointment) bool {
	return scope.Covers(a.DoctorID, a.PatientID)
}

func (r *fakeAppointmentRepo) List(_ context.Context, scope domain.Scope) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	for _, a := range r.appointments {
		if r.visible(scope, a) {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to appointment.Status) error {
	a, ok := r.appointments[id]
	if !ok || a.Status != from {
		return appointment.ErrInvalidStatusTransition
	}
	a.Status = to
	return nil
}

func (r *fakeAppointmentRepo) CountByStatus(_ context.Context, scope domain.Scope) (*appointment.StatusCounts, error) {
	counts := &appointment.StatusCounts{}
	for _, a := range r.appointments {
		if !r.visible(scope, a) {
			continue
		}
		switch a.Status {
		case appointment.StatusScheduled:
			counts.Scheduled++
		case appointment.StatusCompleted:
			counts.Completed++
		case appointment.StatusCancelled:
			counts.Cancelled++
		}
	}
	return counts, nil
}

type fakeInvoiceRepo struct {
	byAppointment map[uuid.UUID]*billing.Invoice
	appointments  *fakeAppointmentRepo
}

func newFakeInvoiceRepo(appointments *fakeAppointmentRepo) *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		byAppointment: make(map[uuid.UUID]*billing.Invoice),
		appointments:  appointments,
	}
}

func (r *fakeInvoiceRepo) Upsert(_ context.Context, appointmentID uuid.UUID, amount float64) (*billing.Invoice, error) {
	inv, ok := r.byAppointment[appointmentID]
	if !ok {
		inv = &billing.Invoice{ID: uuid.New(), AppointmentID: appointmentID}
		r.byAppointment[appointmentID] = inv
	}
	inv.Amount = amount
	inv.Paid = false
	copied := *inv
	return &copied, nil
}

func (r *fakeInvoiceRepo) GetByAppointment(_ context.Context, appointmentID uuid.UUID) (*billing.Invoice, error) {
	inv, ok := r.byAppointment[appointmentID]
	if !ok {
		return nil, billing.ErrInvoiceNotFound
	}
	copied := *inv
	return &copied, nil
}

func (r *fakeInvoiceRepo) MarkPaid(_ context.Context, invoiceID uuid.UUID) error {
	for _, inv := range r.byAppointment {
		if inv.ID == invoiceID {
			if inv.Paid {
				return billing.ErrAlreadyPaid
			}
			inv.Paid = true
			return nil
		}
	}
	return billing.ErrAlreadyPaid
}

func (r *fakeInvoiceRepo) List(_ context.Context, scope domain.Scope) ([]*billing.Invoice, error) {
	var out []*billing.Invoice
	for appointmentID, inv := range r.byAppointment {
		a, ok := r.appointments.appointments[appointmentID]
		if !ok || !scope.Covers(a.DoctorID, a.PatientID) {
			continue
		}
		copied := *inv
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Summarize(_ context.Context) (*billing.RevenueSummary, error) {
	summary := &billing.RevenueSummary{}
	for _, inv := range r.byAppointment {
		if inv.Paid {
			summary.TotalRevenue += inv.Amount
			summary.PaidCount++
		} else {
			summary.PendingAmount += inv.Amount
			summary.UnpaidCount++
		}
	}
	return summary, nil
}

type fakePrescriptionRepo struct {
	byAppointment map[uuid.UUID]*prescription.Prescription
	appointments  *fakeAppointmentRepo
}

func newFakePrescriptionRepo(appointments *fakeAppointmentRepo) *fakePrescriptionRepo {
	return &fakePrescriptionRepo{
		byAppointment: make(map[uuid.UUID]*prescription.Prescription),
		appointments:  appointments,
	}
}

func (r *fakePrescriptionRepo) Upsert(_ context.Context, appointmentID uuid.UUID, cmd *prescription.UpsertPrescriptionCommand) (*prescription.Prescription, error) {
	p, ok := r.byAppointment[appointmentID]
	if !ok {
		p = &prescription.Prescription{ID: uuid.New(), AppointmentID: appointmentID}
		r.byAppointment[appointmentID] = p
	}
	p.Diagnosis = cmd.Diagnosis
	p.Medicines = cmd.Medicines
	p.Notes = cmd.Notes
	copied := *p
	return &copied, nil
}

func (r *fakePrescriptionRepo) GetByAppointment(_ context.Context, appointmentID uuid.UUID) (*prescription.Prescription, error) {
	p, ok := r.byAppointment[appointmentID]
	if !ok {
		return nil, prescription.ErrPrescriptionNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePrescriptionRepo) List(_ context.Context, scope domain.Scope) ([]*prescription.Prescription, error) {
	var out []*prescription.Prescription
	for appointmentID, p := range r.byAppointment {
		a, ok := r.appointments.appointments[appointmentID]
		if !ok || !scope.Covers(a.DoctorID, a.PatientID) {
			continue
		}
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

type fakeContactRepo struct {
	queries map[uuid.UUID]*contact.Query
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{queries: make(map[uuid.UUID]*contact.Query)}
}

func (r *fakeContactRepo) Create(_ context.Context, q *contact.Query) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	r.queries[q.ID] = q
	return nil
}

func (r *fakeContactRepo) GetByID(_ context.Context, id uuid.UUID) (*contact.Query, error) {
	q, ok := r.queries[id]
	if !ok {
		return nil, contact.ErrQueryNotFound
	}
	copied := *q
	return &copied, nil
}

func (r *fakeContactRepo) UpdateReply(_ context.Context, q *contact.Query) error {
	stored, ok := r.queries[q.ID]
	if !ok {
		return contact.ErrQueryNotFound
	}
	stored.AdminReply = q.AdminReply
	stored.RepliedAt = q.RepliedAt
	return nil
}

func (r *fakeContactRepo) List(_ context.Context) ([]*contact.Query, error) {
	var out []*contact.Query
	for _, q := range r.queries {
		copied := *q
		out = append(out, &copied)
	}
	return out, nil
}

type fakeStatsCache struct {
	entries map[string][]byte
	sets    int
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{entries: make(map[string][]byte)}
}

func (c *fakeStatsCache) GetJSON(_ context.Context, key string, dest any) bool {
	raw, ok := c.entries[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *fakeStatsCache) SetJSON(_ context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	c.sets++
	return nil
}
