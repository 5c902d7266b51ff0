// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package moderation_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DmitryMustk/artdistrict/internal/moderation"
	"github.com/DmitryMustk/artdistrict/internal/notify"
	"github.com/DmitryMustk/artdistrict/internal/platform/apperr"
	"github.com/DmitryMustk/artdistrict/internal/platform/authz"
	"github.com/DmitryMustk/artdistrict/pkg/pointer"
)

// fakeEntity is the in-memory row backing the fake store.
type fakeEntity struct {
	kind      moderation.EntityKind
	id        string
	title     string
	ownerID   string
	status    moderation.Status
	comment   *string
	moderator *string
	banned    bool
	updatedAt time.Time
}

// fakeStore mimics the row-locked semantics of the PostgreSQL store: each
// mutating call reads, checks, and writes under one lock, so concurrent
// decisions on the same entity serialize and the loser observes the moved
// status.
type fakeStore struct {
	mu       sync.Mutex
	entities map[string]*fakeEntity

	submitCalls  int
	resolveCalls int
	banCalls     int
	listCalls    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{entities: make(map[string]*fakeEntity)}
}

func entityKey(kind moderation.EntityKind, id string) string {
	return string(kind) + "/" + id
}

func (store *fakeStore) put(entity *fakeEntity) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.entities[entityKey(entity.kind, entity.id)] = entity
}

func (store *fakeStore) get(kind moderation.EntityKind, id string) fakeEntity {
	store.mu.Lock()
	defer store.mu.Unlock()
	return *store.entities[entityKey(kind, id)]
}

func (store *fakeStore) Submit(ctx context.Context, kind moderation.EntityKind, id, ownerArtistID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.submitCalls++

	entity, ok := store.entities[entityKey(kind, id)]
	if !ok {
		return apperr.NotFound(kind.Resource())
	}
	if entity.ownerID != ownerArtistID {
		return apperr.Forbidden("Only the owner may submit")
	}
	if !moderation.CanTransition(entity.status, moderation.StatusOnModeration) {
		return apperr.InvalidTransition(fmt.Sprintf("Cannot submit from status %q", entity.status))
	}
	entity.status = moderation.StatusOnModeration
	entity.updatedAt = time.Now()
	return nil
}

func (store *fakeStore) Resolve(ctx context.Context, kind moderation.EntityKind, id string, decision moderation.Status, comment, moderatorID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.resolveCalls++

	entity, ok := store.entities[entityKey(kind, id)]
	if !ok {
		return apperr.NotFound(kind.Resource())
	}
	if !moderation.CanTransition(entity.status, decision) {
		return apperr.InvalidTransition(fmt.Sprintf("Cannot resolve from status %q", entity.status))
	}
	entity.status = decision
	entity.comment = &comment
	entity.moderator = &moderatorID
	entity.updatedAt = time.Now()
	return nil
}

func (store *fakeStore) SetBanned(ctx context.Context, kind moderation.EntityKind, id string, banned bool) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.banCalls++

	entity, ok := store.entities[entityKey(kind, id)]
	if !ok {
		return apperr.NotFound(kind.Resource())
	}
	entity.banned = banned
	return nil
}

func (store *fakeStore) ListQueue(ctx context.Context, kind moderation.EntityKind, order moderation.SortOrder, limit, offset int) ([]*moderation.QueueItem, int, error) {
	return store.list(kind, order, limit, offset, func(entity *fakeEntity) bool {
		return entity.status == moderation.StatusOnModeration
	})
}

func (store *fakeStore) ListBanned(ctx context.Context, kind moderation.EntityKind, order moderation.SortOrder, limit, offset int) ([]*moderation.QueueItem, int, error) {
	return store.list(kind, order, limit, offset, func(entity *fakeEntity) bool {
		return entity.banned
	})
}

func (store *fakeStore) list(kind moderation.EntityKind, order moderation.SortOrder, limit, offset int, match func(*fakeEntity) bool) ([]*moderation.QueueItem, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.listCalls++

	var rows []*fakeEntity
	for _, entity := range store.entities {
		if entity.kind == kind && match(entity) {
			rows = append(rows, entity)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].updatedAt.Equal(rows[j].updatedAt) {
			return rows[i].id < rows[j].id
		}
		if order == moderation.OrderAsc {
			return rows[i].updatedAt.Before(rows[j].updatedAt)
		}
		return rows[i].updatedAt.After(rows[j].updatedAt)
	})

	total := len(rows)
	if offset >= total {
		return []*moderation.QueueItem{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	items := make([]*moderation.QueueItem, 0, end-offset)
	for _, entity := range rows[offset:end] {
		items = append(items, &moderation.QueueItem{
			ID:                entity.id,
			Kind:              entity.kind,
			Title:             entity.title,
			OwnerArtistID:     entity.ownerID,
			Status:            entity.status,
			ModerationComment: entity.comment,
			ModeratorID:       entity.moderator,
			Banned:            entity.banned,
			UpdatedAt:         entity.updatedAt,
		})
	}
	return items, total, nil
}

// recordingDispatcher captures dispatched events, optionally failing.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []notify.Event
	fail   bool
}

func (dispatcher *recordingDispatcher) Dispatch(ctx context.Context, event notify.Event) error {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	if dispatcher.fail {
		return errors.New("queue unavailable")
	}
	dispatcher.events = append(dispatcher.events, event)
	return nil
}

func newTestService(store moderation.Store, dispatcher notify.Dispatcher) *moderation.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return moderation.NewService(store, dispatcher, logger)
}

func artistActor(artistID string) *authz.Actor {
	return &authz.Actor{
		ID:       "acc-" + artistID,
		Username: artistID,
		Roles:    []authz.Role{authz.RoleArtist},
		ArtistID: pointer.To(artistID),
	}
}

func moderatorActor() *authz.Actor {
	return &authz.Actor{ID: "acc-mod", Username: "mod", Roles: []authz.Role{authz.RoleModerator}}
}

func adminActor() *authz.Actor {
	return &authz.Actor{ID: "acc-admin", Username: "admin", Roles: []authz.Role{authz.RoleAdministrator}}
}

/*
TestService_Submit_Lifecycle walks the full happy path: draft submit, denial
with a comment, owner resubmit, approval. The denial comment survives the
resubmit untouched until the next decision overwrites it.
*/
func TestService_Submit_Lifecycle(t *testing.T) {
	store := newFakeStore()
	store.put(&fakeEntity{kind: moderation.KindArtist, id: "a1", title: "Mira", ownerID: "artist-1", status: moderation.StatusDraft})

	dispatcher := &recordingDispatcher{}
	service := newTestService(store, dispatcher)
	ctx := context.Background()
	owner := artistActor("artist-1")
	mod := moderatorActor()

	// Draft -> OnModeration
	require.NoError(t, service.Submit(ctx, owner, moderation.KindArtist, "a1"))
	assert.Equal(t, moderation.StatusOnModeration, store.get(moderation.KindArtist, "a1").status)

	// OnModeration -> Denied, with reviewer feedback
	require.NoError(t, service.Resolve(ctx, mod, moderation.KindArtist, "a1", moderation.StatusDenied, "Portfolio link is broken"))
	denied := store.get(moderation.KindArtist, "a1")
	assert.Equal(t, moderation.StatusDenied, denied.status)
	require.NotNil(t, denied.comment)
	assert.Equal(t, "Portfolio link is broken", *denied.comment)
	require.NotNil(t, denied.moderator)
	assert.Equal(t, "acc-mod", *denied.moderator)

	// Denied -> OnModeration (resubmit keeps the prior comment)
	require.NoError(t, service.Submit(ctx, owner, moderation.KindArtist, "a1"))
	resubmitted := store.get(moderation.KindArtist, "a1")
	assert.Equal(t, moderation.StatusOnModeration, resubmitted.status)
	require.NotNil(t, resubmitted.comment)
	assert.Equal(t, "Portfolio link is broken", *resubmitted.comment)

	// OnModeration -> Approved
	require.NoError(t, service.Resolve(ctx, mod, moderation.KindArtist, "a1", moderation.StatusApproved, ""))
	assert.Equal(t, moderation.StatusApproved, store.get(moderation.KindArtist, "a1").status)

	// One event per decision
	assert.Len(t, dispatcher.events, 2)
	assert.Equal(t, "denied", dispatcher.events[0].Decision)
	assert.Equal(t, "approved", dispatcher.events[1].Decision)
}

/*
TestService_Submit_GuardBeforeStore verifies that role and identity failures
abort before any store call.
*/
func TestService_Submit_GuardBeforeStore(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store, notify.Nop{})
	ctx := context.Background()

	// Nil actor
	err := service.Submit(ctx, nil, moderation.KindArtist, "a1")
	assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))

	// Role without artist membership
	err = service.Submit(ctx, moderatorActor(), moderation.KindArtist, "a1")
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

	// Artist role but no linked artist identity
	noIdentity := &authz.Actor{ID: "acc-x", Roles: []authz.Role{authz.RoleArtist}}
	err = service.Submit(ctx, noIdentity, moderation.KindArtist, "a1")
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

	assert.Zero(t, store.submitCalls)
}

/*
TestService_Submit_OwnershipAndNotFound checks the store-side failures
surfacing through the service unchanged.
*/
func TestService_Submit_OwnershipAndNotFound(t *testing.T) {
	store := newFakeStore()
	store.put(&fakeEntity{kind: moderation.KindProject, id: "p1", ownerID: "artist-1", status: moderation.StatusDraft})
	service := newTestService(store, notify.Nop{})
	ctx := context.Background()

	// Someone else's project
	err := service.Submit(ctx, artistActor("artist-2"), moderation.KindProject, "p1")
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))
	assert.Equal(t, moderation.StatusDraft, store.get(moderation.KindProject, "p1").status)

	// Unknown id
	err = service.Submit(ctx, artistActor("artist-1"), moderation.KindProject, "missing")
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))

	// Unknown kind fails validation before the store
	err = service.Submit(ctx, artistActor("artist-1"), "opportunity", "p1")
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
}

/*
TestService_Submit_IllegalEdge verifies that submitting an entity already
under review is rejected as an invalid transition.
*/
func TestService_Submit_IllegalEdge(t *testing.T) {
	store := newFakeStore()
	store.put(&fakeEntity{kind: moderation.KindArtist, id: "a1", ownerID: "artist-1", status: moderation.StatusOnModeration})
	service := newTestService(store, notify.Nop{})

	err := service.Submit(context.Background(), artistActor("artist-1"), moderation.KindArtist, "a1")
	assert.True(t, apperr.IsCode(err, "INVALID_TRANSITION"))
}

/*
TestService_Resolve_Validation covers decision and kind validation.
*/
func TestService_Resolve_Validation(t *testing.T) {
	store := newFakeStore()
	store.put(&fakeEntity{kind: moderation.KindArtist, id: "a1", ownerID: "artist-1", status: moderation.StatusOnModeration})
	service := newTestService(store, notify.Nop{})
	ctx := context.Background()
	mod := moderatorActor()

	// Draft and on-moderation are not decisions
	err := service.Resolve(ctx, mod, moderation.KindArtist, "a1", moderation.StatusDraft, "")
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
	err = service.Resolve(ctx, mod, moderation.KindArtist, "a1", moderation.StatusOnModeration, "")
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))

	// Unknown kind
	err = service.Resolve(ctx, mod, "guide", "a1", moderation.StatusApproved, "")
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))

	// Non-moderator
	err = service.Resolve(ctx, adminActor(), moderation.KindArtist, "a1", moderation.StatusApproved, "")
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

	assert.Zero(t, store.resolveCalls)
}

/*
TestService_Resolve_ConcurrentDecisions runs two moderators racing on the
same entity. Exactly one decision wins; the loser observes the moved status
and fails with INVALID_TRANSITION.
*/
func TestService_Resolve_ConcurrentDecisions(t *testing.T) {
	store := newFakeStore()
	store.put(&fakeEntity{kind: moderation.KindProject, id: "p1", ownerID: "artist-1", status: moderation.StatusOnModeration})
	dispatcher := &recordingDispatcher{}
	service := newTestService(store, dispatcher)
	ctx := context.Background()

	decisions := []moderation.Status{moderation.StatusApproved, moderation.StatusDenied}
	results := make([]error, len(decisions))

	var wg sync.WaitGroup
	for i, decision := range decisions {
		wg.Add(1)
		go func(i int, decision moderation.Status) {
			defer wg.Done()
			results[i] = service.Resolve(ctx, moderatorActor(), moderation.KindProject, "p1", decision, "")
		}(i, decision)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case apperr.IsCode(err, "INVALID_TRANSITION"):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, losses)

	// The stored status matches the winning decision and exactly one event
	// was dispatched.
	final := store.get(moderation.KindProject, "p1").status
	assert.Contains(t, decisions, final)
	assert.Len(t, dispatcher.events, 1)
	assert.Equal(t, string(final), dispatcher.events[0].Decision)
}

/*
TestService_Resolve_NotifyFailureDoesNotFail verifies the fire-and-forget
contract: a dispatcher failure never surfaces to the caller.
*/
func TestService_Resolve_NotifyFailureDoesNotFail(t *testing.T) {
	store := newFakeStore()
	store.put(&fakeEntity{kind: moderation.KindArtist, id: "a1", ownerID: "artist-1", status: moderation.StatusOnModeration})
	service := newTestService(store, &recordingDispatcher{fail: true})

	err := service.Resolve(context.Background(), moderatorActor(), moderation.KindArtist, "a1", moderation.StatusApproved, "")
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusApproved, store.get(moderation.KindArtist, "a1").status)
}

/*
TestService_SetBanned verifies the administrator-only ban flag is orthogonal
to the lifecycle status.
*/
func TestService_SetBanned(t *testing.T) {
	store := newFakeStore()
	store.put(&fakeEntity{kind: moderation.KindArtist, id: "a1", ownerID: "artist-1", status: moderation.StatusApproved})
	service := newTestService(store, notify.Nop{})
	ctx := context.Background()

	// Moderators cannot ban
	err := service.SetBanned(ctx, moderatorActor(), moderation.KindArtist, "a1", true)
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))
	assert.Zero(t, store.banCalls)

	require.NoError(t, service.SetBanned(ctx, adminActor(), moderation.KindArtist, "a1", true))
	banned := store.get(moderation.KindArtist, "a1")
	assert.True(t, banned.banned)
	assert.Equal(t, moderation.StatusApproved, banned.status)

	require.NoError(t, service.SetBanned(ctx, adminActor(), moderation.KindArtist, "a1", false))
	assert.False(t, store.get(moderation.KindArtist, "a1").banned)
}

/*
TestService_Queue_Pagination seeds eight pending artists and pages through
them with a window of six: six on page one, two on page two, and an empty
window with intact metadata beyond the last page.
*/
func TestService_Queue_Pagination(t *testing.T) {
	store := newFakeStore()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 8; i++ {
		store.put(&fakeEntity{
			kind:      moderation.KindArtist,
			id:        fmt.Sprintf("a%d", i),
			ownerID:   fmt.Sprintf("artist-%d", i),
			status:    moderation.StatusOnModeration,
			updatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	service := newTestService(store, notify.Nop{})
	ctx := context.Background()
	mod := moderatorActor()

	pageOne, err := service.Queue(ctx, mod, moderation.Query{Kind: moderation.KindArtist, Page: 1, PerPage: 6})
	require.NoError(t, err)
	require.NotNil(t, pageOne.Artists)
	assert.Nil(t, pageOne.Projects)
	assert.Len(t, pageOne.Artists.Items, 6)
	assert.Equal(t, 8, pageOne.Artists.Meta.Total)
	assert.Equal(t, 2, pageOne.Artists.Meta.TotalPages)
	// Default order is newest first
	assert.Equal(t, "a7", pageOne.Artists.Items[0].ID)

	pageTwo, err := service.Queue(ctx, mod, moderation.Query{Kind: moderation.KindArtist, Page: 2, PerPage: 6})
	require.NoError(t, err)
	assert.Len(t, pageTwo.Artists.Items, 2)
	assert.Equal(t, "a0", pageTwo.Artists.Items[1].ID)

	// Beyond the last page: empty items, metadata still reports the truth so
	// the caller can reset to page one.
	pageThree, err := service.Queue(ctx, mod, moderation.Query{Kind: moderation.KindArtist, Page: 3, PerPage: 6})
	require.NoError(t, err)
	assert.Empty(t, pageThree.Artists.Items)
	assert.Equal(t, 8, pageThree.Artists.Meta.Total)
	assert.True(t, pageThree.Artists.Meta.OutOfRange())
}

/*
TestService_Queue_CombinedView verifies that the kindless query windows
artists and projects independently with separate totals.
*/
func TestService_Queue_CombinedView(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		store.put(&fakeEntity{kind: moderation.KindArtist, id: fmt.Sprintf("a%d", i), ownerID: "x", status: moderation.StatusOnModeration, updatedAt: now})
	}
	for i := 0; i < 7; i++ {
		store.put(&fakeEntity{kind: moderation.KindProject, id: fmt.Sprintf("p%d", i), ownerID: "x", status: moderation.StatusOnModeration, updatedAt: now})
	}
	service := newTestService(store, notify.Nop{})

	page, err := service.Queue(context.Background(), moderatorActor(), moderation.Query{Page: 1, PerPage: 5})
	require.NoError(t, err)
	require.NotNil(t, page.Artists)
	require.NotNil(t, page.Projects)
	assert.Len(t, page.Artists.Items, 3)
	assert.Equal(t, 3, page.Artists.Meta.Total)
	assert.Len(t, page.Projects.Items, 5)
	assert.Equal(t, 7, page.Projects.Meta.Total)
}

/*
TestService_Queue_Validation covers query validation and page clamping.
*/
func TestService_Queue_Validation(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store, notify.Nop{})
	ctx := context.Background()
	mod := moderatorActor()

	// Non-positive window size is a contract violation, not clamped
	_, err := service.Queue(ctx, mod, moderation.Query{Kind: moderation.KindArtist, Page: 1, PerPage: 0})
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))

	_, err = service.Queue(ctx, mod, moderation.Query{Kind: "guide", Page: 1, PerPage: 6})
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))

	// Page below one clamps to one
	page, err := service.Queue(ctx, mod, moderation.Query{Kind: moderation.KindArtist, Page: -3, PerPage: 6})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Artists.Meta.Page)

	// Role guard
	_, err = service.Queue(ctx, artistActor("artist-1"), moderation.Query{Page: 1, PerPage: 6})
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))
}

/*
TestService_Banned_Listing verifies the administrator-only banned listing.
*/
func TestService_Banned_Listing(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store.put(&fakeEntity{kind: moderation.KindArtist, id: "a1", ownerID: "x", status: moderation.StatusApproved, banned: true, updatedAt: now})
	store.put(&fakeEntity{kind: moderation.KindArtist, id: "a2", ownerID: "x", status: moderation.StatusDraft, updatedAt: now})
	service := newTestService(store, notify.Nop{})
	ctx := context.Background()

	_, err := service.Banned(ctx, moderatorActor(), moderation.Query{Kind: moderation.KindArtist, Page: 1, PerPage: 6})
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

	page, err := service.Banned(ctx, adminActor(), moderation.Query{Kind: moderation.KindArtist, Page: 1, PerPage: 6})
	require.NoError(t, err)
	require.Len(t, page.Artists.Items, 1)
	assert.Equal(t, "a1", page.Artists.Items[0].ID)
	assert.True(t, page.Artists.Items[0].Banned)
}
