package service

// EditPolicy decides whether an edit request targets the requester's own
// account, which unlocks the password fields.
type EditPolicy struct{}

// SelfEdit reports whether the logged-in username matches the username under
// edit. On a write the caller passes the SUBMITTED username, so a user
// renaming themselves mid-edit still counts as a self-edit for that request;
// on a read it passes the STORED username because nothing was submitted yet.
// Keep that distinction when calling.
func (EditPolicy) SelfEdit(loggedInUsername, targetUsername string) bool {
	return loggedInUsername != "" && loggedInUsername == targetUsername
}
