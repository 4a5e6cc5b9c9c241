// SPDX-License-Identifier: MPL-2.0

package theme

import "slices"

type (
	// Provider owns the current Mode for one component tree.
	//
	// Set and Toggle notify subscribers synchronously when the mode changes.
	// A Provider is meant to be used from the goroutine that drives the UI
	// and is not safe for concurrent mutation.
	Provider struct {
		mode        Mode
		subscribers []subscriber
		nextID      int
	}

	subscriber struct {
		id int
		fn func(Mode)
	}
)

// NewProvider returns a Provider starting in mode. An invalid mode starts light.
func NewProvider(mode Mode) *Provider {
	if ok, _ := mode.IsValid(); !ok {
		mode = ModeLight
	}
	return &Provider{mode: mode}
}

// Mode returns the current mode. A nil Provider reports ModeLight.
func (p *Provider) Mode() Mode {
	if p == nil {
		return ModeLight
	}
	return p.mode
}

// Palette returns the palette of the current mode.
func (p *Provider) Palette() Palette {
	return PaletteFor(p.Mode())
}

// Set switches to mode. Invalid modes are rejected; setting the current mode
// again is a no-op.
func (p *Provider) Set(mode Mode) error {
	if ok, errs := mode.IsValid(); !ok {
		return errs[0]
	}
	if mode == p.mode {
		return nil
	}
	p.mode = mode
	for _, s := range slices.Clone(p.subscribers) {
		s.fn(mode)
	}
	return nil
}

// Toggle switches between light and dark and returns the new mode.
func (p *Provider) Toggle() Mode {
	next := p.mode.Toggle()
	_ = p.Set(next) //nolint:errcheck // Toggle always yields a valid mode
	return next
}

// Subscribe registers fn to run after every mode change. The returned
// function unregisters it.
func (p *Provider) Subscribe(fn func(Mode)) (unsubscribe func()) {
	p.nextID++
	id := p.nextID
	p.subscribers = append(p.subscribers, subscriber{id: id, fn: fn})
	return func() {
		p.subscribers = slices.DeleteFunc(p.subscribers, func(s subscriber) bool { return s.id == id })
	}
}
