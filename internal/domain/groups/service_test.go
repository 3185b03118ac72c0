package groups

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type fakeStore struct {
	groups      map[string]Group
	memberships map[string]Membership
	nextID      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		groups:      make(map[string]Group),
		memberships: make(map[string]Membership),
	}
}

func membershipKey(userID, groupID string) string {
	return userID + "/" + groupID
}

func (f *fakeStore) CreateGroup(_ context.Context, group Group) (Group, error) {
	f.nextID++
	group.ID = fmt.Sprintf("g-%d", f.nextID)
	group.CreatedAt = time.Now().UTC()
	f.groups[group.ID] = group
	return group, nil
}

func (f *fakeStore) GetGroup(_ context.Context, id string) (Group, error) {
	group, ok := f.groups[id]
	if !ok {
		return Group{}, ErrNotFound
	}
	return group, nil
}

func (f *fakeStore) ListGroups(_ context.Context) ([]Group, error) {
	out := make([]Group, 0, len(f.groups))
	for _, g := range f.groups {
		out = append(out, g)
	}
	return out, nil
}

func (f *fakeStore) UpdateGroup(_ context.Context, group Group) error {
	if _, ok := f.groups[group.ID]; !ok {
		return ErrNotFound
	}
	f.groups[group.ID] = group
	return nil
}

func (f *fakeStore) DeleteGroup(_ context.Context, id string) (bool, error) {
	if _, ok := f.groups[id]; !ok {
		return false, nil
	}
	delete(f.groups, id)
	return true, nil
}

func (f *fakeStore) CreateMembership(_ context.Context, m Membership) (Membership, error) {
	key := membershipKey(m.UserID, m.GroupID)
	if _, ok := f.memberships[key]; ok {
		return Membership{}, ErrAlreadyMember
	}
	m.CreatedAt = time.Now().UTC()
	f.memberships[key] = m
	return m, nil
}

func (f *fakeStore) ListMemberships(_ context.Context, userID, groupID string) ([]Membership, error) {
	var out []Membership
	for _, m := range f.memberships {
		if userID != "" && m.UserID != userID {
			continue
		}
		if groupID != "" && m.GroupID != groupID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeStore) DeleteMembership(_ context.Context, userID, groupID string) (bool, error) {
	key := membershipKey(userID, groupID)
	if _, ok := f.memberships[key]; !ok {
		return false, nil
	}
	delete(f.memberships, key)
	return true, nil
}

func TestJoinDuplicateRejected(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	group, err := svc.Create(ctx, "Platform", "infra folks")
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	if _, err := svc.Join(ctx, "u1", group.ID); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if _, err := svc.Join(ctx, "u1", group.ID); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestJoinUnknownGroup(t *testing.T) {
	svc := NewService(newFakeStore())
	if _, err := svc.Join(context.Background(), "u1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeaveThenRejoin(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	group, _ := svc.Create(ctx, "Book Club", "")
	if _, err := svc.Join(ctx, "u1", group.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	removed, err := svc.Leave(ctx, "u1", group.ID)
	if err != nil || !removed {
		t.Fatalf("leave: removed=%v err=%v", removed, err)
	}
	removed, err = svc.Leave(ctx, "u1", group.ID)
	if err != nil {
		t.Fatalf("second leave: %v", err)
	}
	if removed {
		t.Fatal("expected second leave to report nothing removed")
	}
	if _, err := svc.Join(ctx, "u1", group.ID); err != nil {
		t.Fatalf("rejoin: %v", err)
	}
}

func TestUpdateMergesProvidedFields(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	group, _ := svc.Create(ctx, "Design", "visual design chapter")
	name := "Design Chapter"
	updated, err := svc.Update(ctx, group.ID, GroupUpdate{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Design Chapter" {
		t.Fatalf("name = %q", updated.Name)
	}
	if updated.Description != "visual design chapter" {
		t.Fatalf("description changed unexpectedly: %q", updated.Description)
	}
}
