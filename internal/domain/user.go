package domain

// User identifies a platform member. Account management lives elsewhere; only
// the name fields are needed here to populate ticket type creators.
type User struct {
	ID        string
	Firstname string
	Lastname  string
}
