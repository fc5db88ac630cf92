//go:build !nodevice

package device

const available = true
