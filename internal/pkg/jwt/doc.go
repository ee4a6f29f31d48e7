// Package jwt signs and verifies the HS512 session tokens carried in the
// login cookie.
package jwt
