package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"urevents/internal/model"
	"urevents/internal/repo"
)

// fakeRepo is an in-memory repo.Repository mirroring the SQL semantics:
// featured filter with id-descending order, date-ascending listings, and
// the inner join that hides orphaned registrations.
type fakeRepo struct {
	mu sync.Mutex

	admins map[string]model.Admin
	events map[int64]model.Event
	regs   []model.Registration
	msgs   []model.ContactMessage

	nextEventID int64
	nextRegID   int64
	nextMsgID   int64
	clock       time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		admins: map[string]model.Admin{},
		events: map[int64]model.Event{},
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns strictly increasing timestamps so created_at ordering is
// deterministic in tests.
func (f *fakeRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeRepo) GetAdminByUsername(_ context.Context, username string) (*model.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.admins[username]
	if !ok {
		return nil, repo.ErrAdminNotFound
	}
	return &a, nil
}

func (f *fakeRepo) SeedAdmin(_ context.Context, username, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.admins) > 0 {
		return nil
	}
	f.admins[username] = model.Admin{ID: 1, Username: username, PasswordHash: passwordHash}
	return nil
}

func (f *fakeRepo) CreateEvent(_ context.Context, e *model.Event) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextEventID++
	e.ID = f.nextEventID
	f.events[e.ID] = *e
	return e.ID, nil
}

func (f *fakeRepo) GetEventByID(_ context.Context, id int64) (*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, repo.ErrEventNotFound
	}
	return &e, nil
}

func (f *fakeRepo) sortedEvents(less func(a, b model.Event) bool) []model.Event {
	out := make([]model.Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func byDateAsc(a, b model.Event) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	return a.ID < b.ID
}

func byIDDesc(a, b model.Event) bool { return a.ID > b.ID }

func (f *fakeRepo) GetAllEvents(_ context.Context) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sortedEvents(byDateAsc), nil
}

func (f *fakeRepo) GetFeaturedEvents(_ context.Context, limit int) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.sortedEvents(byIDDesc)
	out := make([]model.Event, 0, limit)
	for _, e := range all {
		if !e.Featured {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeRepo) GetUpcomingEvents(_ context.Context, limit int) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.sortedEvents(byDateAsc)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeRepo) GetRecentEvents(_ context.Context, limit int) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.sortedEvents(byIDDesc)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeRepo) UpdateEvent(_ context.Context, e *model.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[e.ID]; !ok {
		return nil // UPDATE of a missing row matches zero rows, no error
	}
	f.events[e.ID] = *e
	return nil
}

func (f *fakeRepo) DeleteEvent(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.events, id)
	return nil
}

func (f *fakeRepo) CreateRegistration(_ context.Context, reg *model.Registration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextRegID++
	reg.ID = f.nextRegID
	reg.CreatedAt = f.tick()
	f.regs = append(f.regs, *reg)
	return reg.ID, nil
}

func (f *fakeRepo) GetRegistrationsWithEventTitle(_ context.Context) ([]model.RegistrationWithEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.RegistrationWithEvent
	for _, r := range f.regs {
		e, ok := f.events[r.EventID]
		if !ok {
			continue // inner join: orphans invisible
		}
		out = append(out, model.RegistrationWithEvent{Registration: r, EventTitle: e.Title})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRepo) CreateContactMessage(_ context.Context, msg *model.ContactMessage) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextMsgID++
	msg.ID = f.nextMsgID
	msg.CreatedAt = f.tick()
	f.msgs = append(f.msgs, *msg)
	return msg.ID, nil
}

func (f *fakeRepo) GetContactMessages(_ context.Context) ([]model.ContactMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.ContactMessage, len(f.msgs))
	copy(out, f.msgs)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRepo) MigrateUp(string) error   { return nil }
func (f *fakeRepo) MigrateDown(string) error { return nil }

// fakePublisher records every published notification payload.
type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *fakePublisher) Publish(message []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, message)
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}
