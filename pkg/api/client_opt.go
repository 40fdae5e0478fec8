package api

import (
	"net/http"
)

type authOpt struct {
	token string
}

// Auth attaches an Authorization header, e.g. Auth("Bot", token).
func Auth(prefix, token string) *authOpt {
	return &authOpt{token: prefix + " " + token}
}

func (opt *authOpt) Do(req *http.Request) {
	req.Header.Set("Authorization", opt.token)
}
