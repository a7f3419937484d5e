package http

import "net/http"

// bearerTransport adds a bearer token to outgoing requests that do not carry
// an Authorization header already. The caller's request is never mutated.
type bearerTransport struct {
	token string
	next  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token == "" || req.Header.Get("Authorization") != "" {
		return t.next.RoundTrip(req)
	}

	authed := req.Clone(req.Context())
	authed.Header.Set("Authorization", "Bearer "+t.token)

	return t.next.RoundTrip(authed)
}

// WithAuthToken authenticates every request with token. An empty token disables the header.
func WithAuthToken(token string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &bearerTransport{token: token, next: rt}
	})
}
