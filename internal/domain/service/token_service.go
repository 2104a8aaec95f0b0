package service

// TokenService defines the interface for issuing and validating bearer
// tokens. The subject is the username.
type TokenService interface {
	// IssueToken creates a signed token for the given username.
	IssueToken(username string) (string, error)

	// ValidateToken checks a token string and returns the embedded username.
	ValidateToken(tokenString string) (string, error)
}
