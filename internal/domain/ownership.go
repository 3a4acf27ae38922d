package domain

// Owned is implemented by every entity that only its creator may mutate.
type Owned interface {
	Owner() string
}

// AssertOwner fails with ErrNotOwner unless actor created e.
func AssertOwner[E Owned](actor *Identity, e E) error {
	if actor == nil {
		return ErrMissingIdentity
	}
	if e.Owner() != actor.ID {
		return ErrNotOwner
	}
	return nil
}
