package identity

import (
	"testing"

	"socialdb/pkg/store"
	"socialdb/pkg/utils"
)

// newEmptyStore builds a store over a blob that already holds an empty
// user set, so first-run seeding does not kick in.
func newEmptyStore(t *testing.T) (*Store, *store.Memory) {
	t.Helper()
	blob := store.NewMemory()
	if err := blob.Set(StorageKey, []byte(`{"users":[],"currentUserId":""}`)); err != nil {
		t.Fatalf("preload blob: %v", err)
	}
	s, err := NewStore(blob)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s, blob
}

func TestSeedOnFirstRun(t *testing.T) {
	blob := store.NewMemory()
	s, err := NewStore(blob)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	users := s.Users()
	if len(users) != 3 {
		t.Fatalf("expected 3 seeded users; got %d", len(users))
	}
	admin, ok := s.GetUserByID("1")
	if !ok || admin.Username != "admin" {
		t.Fatalf("seeded admin not found: %+v ok=%v", admin, ok)
	}
	if s.Authenticated() {
		t.Fatalf("fresh store must not have a session")
	}
	// the seed write must have gone through to the blob
	if _, ok, _ := blob.Get(StorageKey); !ok {
		t.Fatalf("seed state was not persisted")
	}
}

func TestRegisterAndLookup(t *testing.T) {
	s, _ := newEmptyStore(t)
	ok, err := s.Register("alice", "Alice", "pw1234")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !ok {
		t.Fatalf("Register returned false on a free username")
	}
	cur, ok := s.CurrentUser()
	if !ok {
		t.Fatalf("register must set the session")
	}
	got, ok := s.GetUserByID(cur.ID)
	if !ok {
		t.Fatalf("GetUserByID after register: not found")
	}
	if got != cur {
		t.Fatalf("users record and session diverge: %+v vs %+v", got, cur)
	}
	if got.Bio != "" {
		t.Fatalf("new user bio must be empty; got %q", got.Bio)
	}
	if got.Avatar != utils.AvatarURL("alice") {
		t.Fatalf("avatar not derived from username: %s", got.Avatar)
	}
}

func TestRegisterCaseInsensitiveDuplicate(t *testing.T) {
	s, _ := newEmptyStore(t)
	if ok, _ := s.Register("Alice", "Alice", "pw1234"); !ok {
		t.Fatalf("first registration failed")
	}
	if ok, _ := s.Register("alice", "Other", "pw1234"); ok {
		t.Fatalf("usernames differing only by case must not both register")
	}
	if ok, _ := s.Register("ALICE", "Other", "pw1234"); ok {
		t.Fatalf("usernames differing only by case must not both register")
	}
	if got := len(s.Users()); got != 1 {
		t.Fatalf("expected 1 user; got %d", got)
	}
}

func TestLoginIgnoresPassword(t *testing.T) {
	s, _ := newEmptyStore(t)
	if ok, _ := s.Register("alice", "Alice", "secret"); !ok {
		t.Fatalf("register failed")
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	// any password logs in an existing user; lookup is case-insensitive
	ok, err := s.Login("ALICE", "completely-wrong")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !ok {
		t.Fatalf("login must succeed for an existing username")
	}
	if !s.Authenticated() {
		t.Fatalf("login did not set the session")
	}
}

func TestLoginUnknownUserLeavesSession(t *testing.T) {
	s, _ := newEmptyStore(t)
	if ok, _ := s.Register("alice", "Alice", "pw1234"); !ok {
		t.Fatalf("register failed")
	}
	ok, err := s.Login("bob", "pw1234")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if ok {
		t.Fatalf("login must fail for an unknown username")
	}
	cur, _ := s.CurrentUser()
	if cur.Username != "alice" {
		t.Fatalf("failed login must leave the session unchanged; got %+v", cur)
	}
}

func TestLogout(t *testing.T) {
	s, _ := newEmptyStore(t)
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout on empty session: %v", err)
	}
	if ok, _ := s.Register("alice", "Alice", "pw1234"); !ok {
		t.Fatalf("register failed")
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if s.Authenticated() {
		t.Fatalf("session must be cleared after logout")
	}
}

func TestUpdateProfileKeepsRecordsConsistent(t *testing.T) {
	s, _ := newEmptyStore(t)
	if ok, _ := s.Register("alice", "Alice", "pw1234"); !ok {
		t.Fatalf("register failed")
	}
	name := "Alice A."
	bio := "hello there"
	if err := s.UpdateProfile(ProfileUpdate{DisplayName: &name, Bio: &bio}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	cur, _ := s.CurrentUser()
	if cur.DisplayName != name || cur.Bio != bio {
		t.Fatalf("session user not updated: %+v", cur)
	}
	rec, _ := s.GetUserByID(cur.ID)
	if rec != cur {
		t.Fatalf("users record diverges from session: %+v vs %+v", rec, cur)
	}
	if cur.Username != "alice" {
		t.Fatalf("update must not touch the username; got %q", cur.Username)
	}
}

func TestUpdateProfileWithoutSessionIsNoop(t *testing.T) {
	s, _ := newEmptyStore(t)
	if ok, _ := s.Register("alice", "Alice", "pw1234"); !ok {
		t.Fatalf("register failed")
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	name := "Changed"
	if err := s.UpdateProfile(ProfileUpdate{DisplayName: &name}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	u, _ := s.GetUserByID(s.Users()[0].ID)
	if u.DisplayName != "Alice" {
		t.Fatalf("logged-out update must be a no-op; got %q", u.DisplayName)
	}
}

func TestSessionSurvivesReload(t *testing.T) {
	s, blob := newEmptyStore(t)
	if ok, _ := s.Register("alice", "Alice", "pw1234"); !ok {
		t.Fatalf("register failed")
	}
	reloaded, err := NewStore(blob)
	if err != nil {
		t.Fatalf("NewStore reload: %v", err)
	}
	cur, ok := reloaded.CurrentUser()
	if !ok || cur.Username != "alice" {
		t.Fatalf("session must survive a reload; got %+v ok=%v", cur, ok)
	}
	if len(reloaded.Users()) != 1 {
		t.Fatalf("users must survive a reload")
	}
}
