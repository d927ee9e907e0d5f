//go:build !carvedebug

package carve

const boundsCheck = false
