package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"room-booking/internal/data/entity"
	"room-booking/internal/data/repository"
)

// In-memory fakes of the repository interfaces. Reads hand out copies so a
// failed write cannot leak mutations into the stored state.

type fakeMemberRepo struct {
	members map[string]*entity.Member
	created []string
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[string]*entity.Member)}
}

func (f *fakeMemberRepo) Create(_ context.Context, member *entity.Member) error {
	if _, ok := f.members[member.MemberID]; ok {
		return fmt.Errorf("duplicate member %s", member.MemberID)
	}
	copied := *member
	f.members[member.MemberID] = &copied
	f.created = append(f.created, member.MemberID)
	return nil
}

func (f *fakeMemberRepo) FindByID(_ context.Context, memberID string) (*entity.Member, error) {
	member, ok := f.members[memberID]
	if !ok {
		return nil, nil
	}
	copied := *member
	return &copied, nil
}

func (f *fakeMemberRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Member, error) {
	var out []*entity.Member
	for _, m := range f.members {
		copied := *m
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeMemberRepo) CountAll(context.Context) (int64, error) {
	return int64(len(f.members)), nil
}

type fakeSessionRepo struct {
	sessions   map[string]*entity.Session
	failCreate bool
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	if f.failCreate {
		return fmt.Errorf("session store unavailable")
	}
	copied := *session
	f.sessions[session.Token.String()] = &copied
	return nil
}

func (f *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	session, ok := f.sessions[token]
	if !ok || session.RevokedAt != nil || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	session, ok := f.sessions[token]
	if !ok || session.RevokedAt != nil {
		return fmt.Errorf("session not found or already revoked")
	}
	now := time.Now()
	session.RevokedAt = &now
	return nil
}

func (f *fakeSessionRepo) RevokeAllMemberSessions(_ context.Context, memberID string) error {
	now := time.Now()
	for _, session := range f.sessions {
		if session.MemberID == memberID && session.RevokedAt == nil {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeSessionRepo) CleanExpiredSessions(context.Context) error { return nil }

type fakeRoomRepo struct {
	rooms     map[string]*entity.Room
	saveCalls int
}

func newFakeRoomRepo(rooms ...*entity.Room) *fakeRoomRepo {
	f := &fakeRoomRepo{rooms: make(map[string]*entity.Room)}
	for _, room := range rooms {
		copied := *room
		f.rooms[room.ID] = &copied
	}
	return f
}

func (f *fakeRoomRepo) FindByID(_ context.Context, id string) (*entity.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, nil
	}
	copied := *room
	return &copied, nil
}

func (f *fakeRoomRepo) FindAll(context.Context) ([]*entity.Room, error) {
	ids := make([]string, 0, len(f.rooms))
	for id := range f.rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []*entity.Room
	for _, id := range ids {
		copied := *f.rooms[id]
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeRoomRepo) CountAll(context.Context) (int64, error) {
	return int64(len(f.rooms)), nil
}

func (f *fakeRoomRepo) SaveAll(_ context.Context, rooms []*entity.Room) error {
	f.saveCalls++
	for _, room := range rooms {
		copied := *room
		f.rooms[room.ID] = &copied
	}
	return nil
}

// fakeLedgerRepo mimics the version-guarded document store. Setting
// conflicts > 0 makes that many upcoming writes lose the version race, with
// the stored version bumped as a concurrent writer would have.
type fakeLedgerRepo struct {
	entries   map[string]*entity.LedgerEntry
	conflicts int
	inserts   int
	updates   int
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{entries: make(map[string]*entity.LedgerEntry)}
}

func cloneEntry(e *entity.LedgerEntry) *entity.LedgerEntry {
	rooms := make(map[string][]entity.Booking, len(e.Rooms))
	for roomID, bookings := range e.Rooms {
		rooms[roomID] = append([]entity.Booking(nil), bookings...)
	}
	return &entity.LedgerEntry{DateKey: e.DateKey, Rooms: rooms, Version: e.Version}
}

func (f *fakeLedgerRepo) seed(entry *entity.LedgerEntry) {
	if entry.Version == 0 {
		entry.Version = 1
	}
	f.entries[entry.DateKey] = cloneEntry(entry)
}

func (f *fakeLedgerRepo) Find(_ context.Context, dateKey string) (*entity.LedgerEntry, error) {
	entry, ok := f.entries[dateKey]
	if !ok {
		return nil, nil
	}
	return cloneEntry(entry), nil
}

func (f *fakeLedgerRepo) FindAll(context.Context) ([]*entity.LedgerEntry, error) {
	keys := make([]string, 0, len(f.entries))
	for key := range f.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out []*entity.LedgerEntry
	for _, key := range keys {
		out = append(out, cloneEntry(f.entries[key]))
	}
	return out, nil
}

func (f *fakeLedgerRepo) Insert(_ context.Context, entry *entity.LedgerEntry) error {
	f.inserts++
	if _, ok := f.entries[entry.DateKey]; ok {
		return repository.ErrVersionConflict
	}
	stored := cloneEntry(entry)
	stored.Version = 1
	f.entries[entry.DateKey] = stored
	entry.Version = 1
	return nil
}

func (f *fakeLedgerRepo) Update(_ context.Context, entry *entity.LedgerEntry, expectedVersion int64) error {
	f.updates++
	stored, ok := f.entries[entry.DateKey]
	if f.conflicts > 0 {
		f.conflicts--
		if ok {
			stored.Version++
		}
		return repository.ErrVersionConflict
	}
	if !ok || stored.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	updated := cloneEntry(entry)
	updated.Version = expectedVersion + 1
	f.entries[entry.DateKey] = updated
	entry.Version = updated.Version
	return nil
}

func newTestRepository() (*repository.Repository, *fakeMemberRepo, *fakeSessionRepo, *fakeRoomRepo, *fakeLedgerRepo) {
	members := newFakeMemberRepo()
	sessions := newFakeSessionRepo()
	rooms := newFakeRoomRepo()
	ledger := newFakeLedgerRepo()

	repo := &repository.Repository{
		Member:  members,
		Session: sessions,
		Room:    rooms,
		Ledger:  ledger,
	}
	return repo, members, sessions, rooms, ledger
}
