package groups

import "context"

type StoreAPI interface {
	CreateGroup(ctx context.Context, group Group) (Group, error)
	GetGroup(ctx context.Context, id string) (Group, error)
	ListGroups(ctx context.Context) ([]Group, error)
	UpdateGroup(ctx context.Context, group Group) error
	DeleteGroup(ctx context.Context, id string) (bool, error)

	CreateMembership(ctx context.Context, m Membership) (Membership, error)
	ListMemberships(ctx context.Context, userID, groupID string) ([]Membership, error)
	DeleteMembership(ctx context.Context, userID, groupID string) (bool, error)
}
