package groups

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound      = errors.New("group not found")
	ErrAlreadyMember = errors.New("already a member of this group")
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) Create(ctx context.Context, name, description string) (Group, error) {
	return s.Store.CreateGroup(ctx, Group{
		Name:        strings.TrimSpace(name),
		Description: description,
	})
}

func (s *Service) Get(ctx context.Context, id string) (Group, error) {
	return s.Store.GetGroup(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Group, error) {
	return s.Store.ListGroups(ctx)
}

func (s *Service) Update(ctx context.Context, id string, patch GroupUpdate) (Group, error) {
	group, err := s.Store.GetGroup(ctx, id)
	if err != nil {
		return Group{}, err
	}
	if patch.Name != nil {
		group.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		group.Description = *patch.Description
	}
	if err := s.Store.UpdateGroup(ctx, group); err != nil {
		return Group{}, err
	}
	return group, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.Store.DeleteGroup(ctx, id)
}

// Join adds a user to a group; joining twice is an error.
func (s *Service) Join(ctx context.Context, userID, groupID string) (Membership, error) {
	if _, err := s.Store.GetGroup(ctx, groupID); err != nil {
		return Membership{}, err
	}
	return s.Store.CreateMembership(ctx, Membership{UserID: userID, GroupID: groupID})
}

func (s *Service) Leave(ctx context.Context, userID, groupID string) (bool, error) {
	return s.Store.DeleteMembership(ctx, userID, groupID)
}

func (s *Service) Memberships(ctx context.Context, userID, groupID string) ([]Membership, error) {
	return s.Store.ListMemberships(ctx, userID, groupID)
}
