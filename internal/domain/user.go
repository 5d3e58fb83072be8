package domain

// User is the owning entity for a set of accounts. ClientCode is the stable
// external identifier (8 digits in practice) typed on the login screen;
// users are immutable once created.
type User struct {
	ClientCode string `json:"clientCode"`
	Name       string `json:"name"`
}

// CanonicalDemoClientCode identifies the single hard-coded demo user seeded
// on first start. Reset semantics are special-cased for it.
const CanonicalDemoClientCode = "12345678"

// CanonicalDemoUser returns the seeded demo user.
func CanonicalDemoUser() User {
	return User{
		ClientCode: CanonicalDemoClientCode,
		Name:       "Utilisateur Démo",
	}
}
