// Package user defines the account model behind email and password sign-in.
//
// Inputs are normalized and validated here before they are persisted, so the
// storage and web layers can treat an account as already canonical.
package user
