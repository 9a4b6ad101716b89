package mmap

import "errors"

// mapping is a live OS mapping of a whole file.
type mapping struct {
	data []byte
	// unmapView releases the mapped view.
	unmapView func() error
	// closeHandle releases the mapping object, if the platform has one.
	closeHandle func() error
}

// release unmaps the view, then closes the mapping handle.
func (m *mapping) release() error {
	var errs []error
	if m.unmapView != nil {
		if err := m.unmapView(); err != nil {
			errs = append(errs, err)
		}
	}
	if m.closeHandle != nil {
		if err := m.closeHandle(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
