package auth

import "sync"

// Source holds the current identity for the running process. Sign-in swaps
// the identity in, sign-out clears it; readers get a consistent snapshot.
type Source struct {
	mu       sync.Mutex
	identity Identity
	signedIn bool
}

// NewSource returns an empty source with no signed-in user.
func NewSource() *Source {
	return &Source{}
}

// SignIn parses the token and stores the resulting identity.
func (s *Source) SignIn(token string) (Identity, error) {
	identity, err := IdentityFromToken(token)
	if err != nil {
		return Identity{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = identity
	s.signedIn = true
	return identity, nil
}

// SignOut clears the stored identity.
func (s *Source) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = Identity{}
	s.signedIn = false
}

// Identity returns the current identity and whether a user is signed in.
func (s *Source) Identity() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity, s.signedIn
}

// Token returns the current access token, or empty when signed out. The
// signature matches the API client's token provider.
func (s *Source) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity.Token
}
