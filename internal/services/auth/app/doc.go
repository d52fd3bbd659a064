// Package app implements email and password accounts: sign-up, sign-in,
// sign-out, session validation and the post-sign-in redirect policy.
package app
