package domain

// Owned is implemented by every entity that belongs to a single user and may
// only be changed by that user.
type Owned interface {
	OwnerID() uint
}
