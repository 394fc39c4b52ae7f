package models

type User struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// Viewer is the authenticated identity on whose behalf an operation
// runs. It is passed explicitly into every core operation; the core
// never reads identity from ambient state.
type Viewer struct {
	UserID string
	Email  string
}
