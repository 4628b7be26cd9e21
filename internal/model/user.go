package model

import "time"

// User represents an application account as stored in the `users`
// table.  Passwords are stored only as bcrypt hashes.  The Role field
// holds either "USER" or "ADMIN"; admins manage rooms and seasons
// while regular users book stays.
//
// Fields:
//  ID           - primary key identifier.
//  Username     - unique login name.
//  Email        - unique email address.
//  PasswordHash - bcrypt hashed password.
//  Role         - role name (USER or ADMIN).
//  CreatedAt    - timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
}
