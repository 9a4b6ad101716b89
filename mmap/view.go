package mmap

// View is a bounded window into a Region.
// It does not own the memory; the parent Region does.
type View struct {
	parent *Region
	offset int64
	size   int64
}

// View creates a new window of size bytes starting at offset.
func (r *Region) View(offset, size int64) (*View, error) {
	if r.closed.Load() {
		return nil, ErrClosed
	}
	if offset < 0 || size < 0 || offset > r.size || size > r.size-offset {
		return nil, ErrOutOfBounds
	}
	return &View{
		parent: r,
		offset: offset,
		size:   size,
	}, nil
}

// Data returns the bytes of the view, or ErrClosed once the parent is closed.
func (v *View) Data() ([]byte, error) {
	data, err := v.parent.Data()
	if err != nil {
		return nil, err
	}
	return data[v.offset : v.offset+v.size], nil
}

// Bytes returns the bytes of the view, or nil once the parent is closed.
func (v *View) Bytes() []byte {
	data, _ := v.Data()
	return data
}

// Offset returns the view's start within the parent region.
func (v *View) Offset() int64 {
	return v.offset
}

// Len returns the size of the view.
func (v *View) Len() int64 {
	return v.size
}

// Advise provides hints to the kernel about how this view will be accessed.
func (v *View) Advise(pattern AccessPattern) error {
	data, err := v.Data()
	if err != nil {
		return err
	}
	return osAdvise(data, pattern)
}
