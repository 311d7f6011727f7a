//go:build !darwin

// Package loginitem registers or removes the application as an OS login
// item.
package loginitem

// Apply is a no-op on platforms without login-item registration.
func Apply(bool) error { return nil }
