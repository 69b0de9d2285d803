package service

// Actor identifies the authenticated caller for ownership checks. Services
// receive it as a plain value so they never depend on the transport layer.
type Actor struct {
	ID    string
	Admin bool
}

// Owns reports whether the actor may mutate a resource owned by ownerID.
func (a Actor) Owns(ownerID string) bool {
	return a.Admin || a.ID == ownerID
}
