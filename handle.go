//go:build !ios && !android && (amd64 || arm64)

package imgo

// HandleProxy is a rebindable, non-owning view of a native object. Rebinding
// only swaps the address; nothing is allocated, validated or released.
type HandleProxy struct {
	h Handle
}

// Rebind points the proxy at h.
func (p *HandleProxy) Rebind(h Handle) {
	p.h = h
}

// Handle returns the handle the proxy currently refers to.
func (p *HandleProxy) Handle() Handle {
	return p.h
}

// IsZero reports whether the proxy refers to nothing.
func (p *HandleProxy) IsZero() bool {
	return p.h.IsZero()
}

// forward calls fn with the active surface and the proxy's handle. A zero
// handle yields T's zero value and never reaches native.
func forward[T any](p *HandleProxy, fn func(n Native, h Handle) T) T {
	if p.h.IsZero() {
		var zero T
		return zero
	}
	return fn(current, p.h)
}

func forwardVoid(p *HandleProxy, fn func(n Native, h Handle)) {
	if p.h.IsZero() {
		return
	}
	fn(current, p.h)
}
