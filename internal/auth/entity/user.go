package entity

import "errors"

// ErrGitHubRejected means GitHub refused the authorization code or token.
var ErrGitHubRejected = errors.New("github rejected the login")

// User is the GitHub account behind a session.
type User struct {
	Login     string
	Name      string
	AvatarURL string
}
