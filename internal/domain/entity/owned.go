package entity

// Owned is implemented by records that belong to exactly one user.
type Owned interface {
	OwnerID() string
	SetOwnerID(id string)
}
