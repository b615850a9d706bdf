package service

import (
	"context"
	"errors"
	"testing"

	"github.com/carebridge/hms/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type directoryFixture struct {
	svc     *DirectoryService
	users   *fakeUserRepo
	doctors *fakeDoctorRepo
}

func newDirectoryFixture() *directoryFixture {
	users := newFakeUserRepo()
	doctors := newFakeDoctorRepo()
	patients := newFakePatientRepo()
	return &directoryFixture{
		svc:     NewDirectoryService(users, doctors, patients, zap.NewNop()),
		users:   users,
		doctors: doctors,
	}
}

func registerPendingDoctor(t *testing.T, f *directoryFixture, email, license string) *domain.User {
	t.Helper()
	reg := NewRegistrationService(f.users, f.doctors, zap.NewNop())
	cmd := validDoctorCommand()
	cmd.Email = email
	cmd.LicenseNumber = license
	user, err := reg.Register(context.Background(), cmd)
	if err != nil {
		t.Fatalf("registering doctor: %v", err)
	}
	// Mirror the created profile into the doctor repo fake.
	f.doctors.add(f.users.doctorProfiles[*user.DoctorID], false)
	return user
}

func TestApproveDoctor(t *testing.T) {
	f := newDirectoryFixture()
	user := registerPendingDoctor(t, f, "doc@example.com", "LIC-1")

	if err := f.svc.ApproveDoctor(context.Background(), adminClaims(), *user.DoctorID); err != nil {
		t.Fatalf("ApproveDoctor() error: %v", err)
	}

	stored, err := f.users.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !stored.IsActive {
		t.Error("approved doctor should be active")
	}
}

func TestRejectDoctorDeletesAccount(t *testing.T) {
	f := newDirectoryFixture()
	user := registerPendingDoctor(t, f, "doc@example.com", "LIC-1")

	if err := f.svc.RejectDoctor(context.Background(), adminClaims(), *user.DoctorID); err != nil {
		t.Fatalf("RejectDoctor() error: %v", err)
	}

	if _, err := f.users.GetByID(context.Background(), user.ID); err == nil {
		t.Error("rejected doctor's user account should be gone")
	}

	// The email is free for re-registration.
	taken, err := f.users.ExistsByEmail(context.Background(), "doc@example.com")
	if err != nil {
		t.Fatalf("ExistsByEmail: %v", err)
	}
	if taken {
		t.Error("email should be reusable after rejection")
	}
}

func TestApprovalQueueIsAdminOnly(t *testing.T) {
	f := newDirectoryFixture()
	user := registerPendingDoctor(t, f, "doc@example.com", "LIC-1")

	claims := doctorClaims(*user.DoctorID)
	if err := f.svc.ApproveDoctor(context.Background(), claims, *user.DoctorID); !errors.Is(err, ErrForbidden) {
		t.Errorf("ApproveDoctor() as doctor: error = %v, want ErrForbidden", err)
	}
	if err := f.svc.RejectDoctor(context.Background(), claims, *user.DoctorID); !errors.Is(err, ErrForbidden) {
		t.Errorf("RejectDoctor() as doctor: error = %v, want ErrForbidden", err)
	}
	if _, err := f.svc.ListPatients(context.Background(), claims); !errors.Is(err, ErrForbidden) {
		t.Errorf("ListPatients() as doctor: error = %v, want ErrForbidden", err)
	}
}

func TestListDoctorsHidesPendingFromNonAdmins(t *testing.T) {
	f := newDirectoryFixture()

	approved := registerPendingDoctor(t, f, "approved@example.com", "LIC-1")
	registerPendingDoctor(t, f, "pending@example.com", "LIC-2")
	if err := f.svc.ApproveDoctor(context.Background(), adminClaims(), *approved.DoctorID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	f.doctors.active[*approved.DoctorID] = true

	patientView, err := f.svc.ListDoctors(context.Background(), patientClaims(uuid.New()), "")
	if err != nil {
		t.Fatalf("ListDoctors() error: %v", err)
	}
	if len(patientView) != 1 {
		t.Errorf("patient sees %d doctors, want 1 approved", len(patientView))
	}

	adminView, err := f.svc.ListDoctors(context.Background(), adminClaims(), "")
	if err != nil {
		t.Fatalf("ListDoctors() error: %v", err)
	}
	if len(adminView) != 2 {
		t.Errorf("admin sees %d doctors, want 2 including pending", len(adminView))
	}
}
