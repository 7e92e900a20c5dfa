package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dcode-github/dormdash/gateway"
	"github.com/dcode-github/dormdash/models"
)

func amina() *models.Identity {
	return &models.Identity{
		ID:    "u1",
		Name:  "Amina Yusuf",
		Email: "amina@example.com",
		Phone: "08012345678",
		Role:  models.Landlord,
	}
}

func TestSetIdentitySyncsScratch(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.SetIdentity(amina())

	got := s.Scratch()
	want := Scratch{Fullname: "Amina Yusuf", Email: "amina@example.com", Number: "08012345678", Mode: "landlord"}
	if got != want {
		t.Fatalf("scratch got=%+v want=%+v", got, want)
	}
	if DashboardFor(s.Identity().Role) != models.LandlordDashboard {
		t.Fatalf("landing page=%s", DashboardFor(s.Identity().Role))
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.SetIdentity(amina())
	s.UpdateScratch(func(sc *Scratch) { sc.Level = "new" })

	s.SetIdentity(nil)
	if s.Identity() != nil {
		t.Fatalf("identity survived logout")
	}
	if got := s.Scratch(); got != (Scratch{}) {
		t.Fatalf("scratch survived logout: %+v", got)
	}
	if _, ok := Guard(s, models.Landlord); ok {
		t.Fatalf("guard admitted a logged out session")
	}
}

func TestIdentityReturnsCopy(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.SetIdentity(amina())
	id := s.Identity()
	id.Role = models.Admin
	if s.Identity().Role != models.Landlord {
		t.Fatalf("caller mutated stored identity")
	}
}

func TestLevelOnlyChangesThroughScratch(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.UpdateScratch(func(sc *Scratch) { sc.Level = "new" })
	s.SetIdentity(amina())
	if got := s.Scratch().Level; got != "new" {
		t.Fatalf("level=%q want=new", got)
	}
}

func TestDashboardFor(t *testing.T) {
	t.Parallel()

	cases := map[models.Role]models.Page{
		models.Landlord: models.LandlordDashboard,
		models.Agent:    models.AgentDashboard,
		models.Admin:    models.AdminDashboard,
		models.Student:  models.HomePage,
		"":              models.HomePage,
	}
	for role, want := range cases {
		if got := DashboardFor(role); got != want {
			t.Fatalf("DashboardFor(%q)=%s want=%s", role, got, want)
		}
	}
}

func TestGuard(t *testing.T) {
	t.Parallel()

	s := NewStore()
	if _, ok := Guard(s, ""); ok {
		t.Fatalf("guard admitted anonymous session")
	}

	s.SetIdentity(amina())
	if id, ok := Guard(s, models.Landlord); !ok || id.Email != "amina@example.com" {
		t.Fatalf("guard rejected matching role")
	}
	if _, ok := Guard(s, models.Admin); ok {
		t.Fatalf("guard admitted landlord to admin dashboard")
	}
	if _, ok := Guard(s, ""); !ok {
		t.Fatalf("guard rejected authenticated session with no role requirement")
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetIdentity(amina())
		}()
		go func() {
			defer wg.Done()
			_ = s.Identity()
			_ = s.Scratch()
		}()
	}
	wg.Wait()
}

func TestRegistryResolveAnonymous(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewRegistry(nil, 0)

	for _, id := range []string{"", "not-a-uuid", "0b7f3c9e-3c1a-4a4e-9a44-1f0d2b6c8e11"} {
		s, known, err := r.Resolve(ctx, id)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", id, err)
		}
		if known || !s.Anonymous() || s.Store == nil || s.Tokens == nil {
			t.Fatalf("Resolve(%q) = %+v known=%v, want anonymous", id, s, known)
		}
	}
	for i := 0; i < 10000; i++ {
		if _, _, err := r.Resolve(ctx, ""); err != nil {
			t.Fatal(err)
		}
	}
	if r.Len() != 0 {
		t.Fatalf("len=%d want=0", r.Len())
	}
}

func TestRegistryEstablishRotates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewRegistry(nil, 0)

	anon, _, _ := r.Resolve(ctx, "")
	if err := anon.Tokens.SetToken(ctx, "tok"); err != nil {
		t.Fatal(err)
	}
	anon.Store.SetIdentity(amina())

	first, err := r.Establish(ctx, anon)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == "" || first.Store != anon.Store {
		t.Fatalf("established session=%+v", first)
	}
	if tok, ok, _ := first.Tokens.Token(ctx); !ok || tok != "tok" {
		t.Fatalf("token not moved: %q %v", tok, ok)
	}
	if _, ok, _ := anon.Tokens.Token(ctx); ok {
		t.Fatalf("old token not cleared")
	}
	if got, known, _ := r.Resolve(ctx, first.ID); !known || got != first {
		t.Fatalf("established session not registered")
	}

	second, err := r.Establish(ctx, first)
	if err != nil {
		t.Fatal(err)
	}
	if second.ID == first.ID {
		t.Fatalf("id not rotated")
	}
	if _, known, _ := r.Resolve(ctx, first.ID); known {
		t.Fatalf("previous id still registered")
	}
	if r.Len() != 1 {
		t.Fatalf("len=%d want=1", r.Len())
	}

	r.Drop(second.ID)
	if r.Len() != 0 {
		t.Fatalf("dropped session still present")
	}
}

func TestRegistryAdoptsPersistedToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var mu sync.Mutex
	stores := map[string]*gateway.MemoryTokenStore{}
	factory := func(id string) gateway.TokenStore {
		mu.Lock()
		defer mu.Unlock()
		s, ok := stores[id]
		if !ok {
			s = gateway.NewMemoryTokenStore()
			stores[id] = s
		}
		return s
	}

	id := "0b7f3c9e-3c1a-4a4e-9a44-1f0d2b6c8e11"
	if err := factory(id).SetToken(ctx, "persisted"); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry(factory, 0)
	s, known, err := r.Resolve(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if !known || s.ID != id {
		t.Fatalf("persisted session not adopted: %+v known=%v", s, known)
	}
	if again, _, _ := r.Resolve(ctx, id); again != s {
		t.Fatalf("second lookup built a new session")
	}
}

func TestRegistryIdleExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewRegistry(nil, time.Hour)
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now := start
	r.now = func() time.Time { return now }

	anon, _, _ := r.Resolve(ctx, "")
	if err := anon.Tokens.SetToken(ctx, "tok"); err != nil {
		t.Fatal(err)
	}
	idle, err := r.Establish(ctx, anon)
	if err != nil {
		t.Fatal(err)
	}
	anon2, _, _ := r.Resolve(ctx, "")
	active, err := r.Establish(ctx, anon2)
	if err != nil {
		t.Fatal(err)
	}

	now = start.Add(50 * time.Minute)
	if _, known, _ := r.Resolve(ctx, active.ID); !known {
		t.Fatalf("active session lost")
	}

	now = start.Add(90 * time.Minute)
	n, err := r.Sweep(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || r.Len() != 1 {
		t.Fatalf("swept=%d len=%d, want 1 and 1", n, r.Len())
	}
	if _, ok, _ := idle.Tokens.Token(ctx); ok {
		t.Fatalf("swept session kept its token")
	}

	now = start.Add(3 * time.Hour)
	if _, known, _ := r.Resolve(ctx, active.ID); known {
		t.Fatalf("idle session resolved")
	}
	if r.Len() != 0 {
		t.Fatalf("len=%d want=0", r.Len())
	}
}

func TestCredentialsClearedOnLogout(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.SetIdentity(amina())
	s.SetCredentials(gateway.Credentials{Email: "amina@example.com", Password: "secret"})
	if c := s.Credentials(); c == nil || c.Password != "secret" {
		t.Fatalf("credentials=%+v", c)
	}
	s.SetIdentity(nil)
	if c := s.Credentials(); c != nil {
		t.Fatalf("credentials survived logout: %+v", c)
	}
}
