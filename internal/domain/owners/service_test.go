package owners

import (
	"context"
	"errors"
	"testing"
	"time"

	"woofpoint-backend/internal/domain/users"
)

// -------------------------
// Test repos (in-memory)
// -------------------------

type testUsersRepo struct {
	byID map[string]users.User
}

func newTestUsersRepo() *testUsersRepo {
	return &testUsersRepo{byID: map[string]users.User{}}
}

func (r *testUsersRepo) Create(ctx context.Context, u users.User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *testUsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *testUsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}

func (r *testUsersRepo) Update(ctx context.Context, u users.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return users.ErrNotFound
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testUsersRepo) ListByRole(ctx context.Context, role users.Role) ([]users.User, error) {
	out := make([]users.User, 0)
	for _, u := range r.byID {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type testRepo struct {
	byUserID map[string]Profile
}

func newTestRepo() *testRepo {
	return &testRepo{byUserID: map[string]Profile{}}
}

func (r *testRepo) Create(ctx context.Context, p Profile) error {
	if _, ok := r.byUserID[p.UserID]; ok {
		return errors.New("repo: already exists")
	}
	r.byUserID[p.UserID] = p
	return nil
}

func (r *testRepo) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	p, ok := r.byUserID[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) Upsert(ctx context.Context, p Profile) error {
	r.byUserID[p.UserID] = p
	return nil
}

type fakeObjects struct {
	failSign bool
}

func (f *fakeObjects) Put(ctx context.Context, key, contentType string, data []byte) error {
	return nil
}

func (f *fakeObjects) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if f.failSign {
		return "", errors.New("sign failed")
	}
	return "https://signed.test/" + key, nil
}

func newTestService() (*Service, *testUsersRepo, *testRepo) {
	usersRepo := newTestUsersRepo()
	repo := newTestRepo()
	svc := NewService(usersRepo, repo, &fakeObjects{})
	return svc, usersRepo, repo
}

func seedOwner(t *testing.T, usersRepo *testUsersRepo, id string) users.User {
	t.Helper()
	u := users.User{
		ID:        id,
		Email:     id + "@example.com",
		Role:      users.RoleOwner,
		FirstName: "Ana",
		LastName:  "García",
		Phone:     "5551234567",
		ZipCode:   "12345",
	}
	if err := usersRepo.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// -------------------------
// Tests
// -------------------------

func TestService_Provision_Idempotent(t *testing.T) {
	svc, _, repo := newTestService()

	if err := svc.Provision(context.Background(), "owner-1"); err != nil {
		t.Fatalf("Provision #1 error: %v", err)
	}
	if err := svc.Provision(context.Background(), "owner-1"); err != nil {
		t.Fatalf("Provision #2 (idempotent) error: %v", err)
	}

	p, err := repo.GetByUserID(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("expected profile created: %v", err)
	}
	if p.Dogs == nil || len(p.Dogs) != 0 {
		t.Fatalf("expected empty dogs list, got %#v", p.Dogs)
	}
}

func TestService_GetProfile_BackfillsDefaults(t *testing.T) {
	svc, usersRepo, _ := newTestService()
	seedOwner(t, usersRepo, "owner-1")

	// sin perfil provisionado: sale con defaults, no 404
	v, err := svc.GetProfile(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if v.FirstName != "Ana" || v.Email != "owner-1@example.com" {
		t.Fatalf("expected user fields in view, got %#v", v)
	}
	if v.Dogs == nil || len(v.Dogs) != 0 {
		t.Fatalf("expected empty dogs list, got %#v", v.Dogs)
	}
	if v.Location != (Location{}) {
		t.Fatalf("expected empty location, got %#v", v.Location)
	}
}

func TestService_GetProfile_UnknownUser(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.GetProfile(context.Background(), "ghost"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_GetProfile_RejectsTrainerRole(t *testing.T) {
	svc, usersRepo, _ := newTestService()
	_ = usersRepo.Create(context.Background(), users.User{ID: "trainer-1", Role: users.RoleTrainer})

	if _, err := svc.GetProfile(context.Background(), "trainer-1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for trainer user, got %v", err)
	}
}

func TestService_UpdateProfile_MergesUserFieldsAndLocation(t *testing.T) {
	svc, usersRepo, repo := newTestService()
	seedOwner(t, usersRepo, "owner-1")
	if err := svc.Provision(context.Background(), "owner-1"); err != nil {
		t.Fatalf("Provision error: %v", err)
	}

	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	v, err := svc.UpdateProfile(context.Background(), "owner-1", UpdateInput{
		FirstName: "Marta",
		Phone:     "5559876543",
		Location: &LocationInput{
			Address: "Calle Falsa 123",
			City:    "Springfield",
			State:   "SP",
			ZipCode: "54321",
		},
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}

	// campos enviados se actualizan, los vacíos se conservan
	if v.FirstName != "Marta" || v.LastName != "García" {
		t.Fatalf("expected merged user fields, got %#v", v)
	}
	if v.Phone != "5559876543" {
		t.Fatalf("expected updated phone, got %q", v.Phone)
	}
	if v.Location.City != "Springfield" {
		t.Fatalf("expected updated location, got %#v", v.Location)
	}

	// persistió en ambos lados
	u, _ := usersRepo.GetByID(context.Background(), "owner-1")
	if u.FirstName != "Marta" || u.UpdatedAt != now {
		t.Fatalf("expected user persisted, got %#v", u)
	}
	p, _ := repo.GetByUserID(context.Background(), "owner-1")
	if p.Location.Address != "Calle Falsa 123" {
		t.Fatalf("expected profile persisted, got %#v", p)
	}
}

func TestService_UpdateProfile_NilLocationKeepsExisting(t *testing.T) {
	svc, usersRepo, repo := newTestService()
	seedOwner(t, usersRepo, "owner-1")
	_ = repo.Upsert(context.Background(), Profile{
		UserID:   "owner-1",
		Location: Location{City: "Springfield"},
		Dogs:     []Dog{},
	})

	v, err := svc.UpdateProfile(context.Background(), "owner-1", UpdateInput{FirstName: "Marta"})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if v.Location.City != "Springfield" {
		t.Fatalf("expected location untouched, got %#v", v.Location)
	}
}

func TestService_UpdateProfile_RejectsBadPhone(t *testing.T) {
	svc, usersRepo, _ := newTestService()
	seedOwner(t, usersRepo, "owner-1")

	if _, err := svc.UpdateProfile(context.Background(), "owner-1", UpdateInput{Phone: "123"}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_GetProfile_SignedPhotoURL(t *testing.T) {
	svc, usersRepo, _ := newTestService()
	u := seedOwner(t, usersRepo, "owner-1")
	u.ProfilePhoto = "profile-photos/owner-1-1-x.jpg"
	_ = usersRepo.Update(context.Background(), u)

	v, err := svc.GetProfile(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if v.ProfilePhoto != "https://signed.test/profile-photos/owner-1-1-x.jpg" {
		t.Fatalf("expected signed url, got %q", v.ProfilePhoto)
	}
}

func TestService_GetProfile_SignFailureLeavesPhotoEmpty(t *testing.T) {
	usersRepo := newTestUsersRepo()
	svc := NewService(usersRepo, newTestRepo(), &fakeObjects{failSign: true})

	u := seedOwner(t, usersRepo, "owner-1")
	u.ProfilePhoto = "profile-photos/owner-1-1-x.jpg"
	_ = usersRepo.Update(context.Background(), u)

	v, err := svc.GetProfile(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if v.ProfilePhoto != "" {
		t.Fatalf("expected empty photo url on sign failure, got %q", v.ProfilePhoto)
	}
}
