package buffer

import (
	"fmt"
	"math"
	"runtime"
	"sync/atomic"
	"unsafe"

	"github.com/born-ml/hostkernel/internal/ndrange"
)

// storage is the reference-counted element store shared by buffer handles.
type storage[T any] struct {
	data     []T
	refCount atomic.Int32
}

// newStorage wraps data with refCount = 1.
func newStorage[T any](data []T) *storage[T] {
	s := &storage[T]{data: data}
	s.refCount.Store(1)
	return s
}

// addRef increments the reference count (for CopyHandle).
func (s *storage[T]) addRef() {
	s.refCount.Add(1)
}

// release decrements the reference count and drops the storage at 0.
// Borrowed memory is only dereferenced, never modified.
func (s *storage[T]) release() {
	if s.refCount.Add(-1) == 0 {
		s.data = nil
	}
}

// Buffer is a rank-typed array of T with owned or borrowed storage.
//
// Buffers follow shared-ownership semantics: CopyHandle returns a second
// handle on the same storage and both observe the same writes. Owned storage
// is dropped when the last handle is released.
//
// A borrowed buffer wraps the caller's slice without copying. The slice must
// stay valid, and must not be resliced or reallocated by the caller, for as
// long as the buffer or any view derived from it is in use.
type Buffer[T any] struct {
	store    *storage[T]
	extent   ndrange.Extent
	mode     StorageMode
	released atomic.Bool
}

// NewOwned allocates a zero-initialized buffer of the given extent.
func NewOwned[T any](extent ndrange.Extent) (*Buffer[T], error) {
	if err := extent.Validate(); err != nil {
		return nil, fmt.Errorf("invalid extent: %w", err)
	}
	data, err := allocate[T](extent.Size())
	if err != nil {
		return nil, fmt.Errorf("invalid extent %v: %w", extent, err)
	}
	return &Buffer[T]{
		store:  newStorage(data),
		extent: extent,
		mode:   Owned,
	}, nil
}

// allocate returns n zeroed elements, or an error when the allocation cannot
// be represented or is refused by the runtime.
func allocate[T any](n int) (data []T, err error) {
	var zero T
	if size := int(unsafe.Sizeof(zero)); size > 0 && n > math.MaxInt/size {
		return nil, fmt.Errorf("%d elements of %d bytes overflow the address space", n, size)
	}

	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(runtime.Error)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("allocate %d elements: %w", n, rerr)
		}
	}()
	return make([]T, n), nil
}

// NewBorrowed wraps data as a buffer of the given extent without allocating.
// data must hold at least extent.Size() elements; extra elements are ignored.
func NewBorrowed[T any](data []T, extent ndrange.Extent, readOnly bool) (*Buffer[T], error) {
	if err := extent.Validate(); err != nil {
		return nil, fmt.Errorf("invalid extent: %w", err)
	}
	n := extent.Size()
	if len(data) < n {
		return nil, fmt.Errorf("extent %v requires %d elements, but got %d", extent, n, len(data))
	}
	mode := Borrowed
	if readOnly {
		mode = BorrowedReadOnly
	}
	return &Buffer[T]{
		store:  newStorage(data[:n:n]),
		extent: extent,
		mode:   mode,
	}, nil
}

// NewFromSlice allocates a 1-D buffer holding a copy of src.
func NewFromSlice[T any](src []T) (*Buffer[T], error) {
	b, err := NewOwned[T](ndrange.NewExtent(len(src)))
	if err != nil {
		return nil, err
	}
	copy(b.store.data, src)
	return b, nil
}

// CopyHandle returns a new handle sharing this buffer's storage.
// It is safe to call concurrently with other CopyHandle and Release calls on
// live handles.
func (b *Buffer[T]) CopyHandle() *Buffer[T] {
	b.checkLive("copy handle")
	b.store.addRef()
	return &Buffer[T]{
		store:  b.store,
		extent: b.extent,
		mode:   b.mode,
	}
}

// Snapshot returns a new owned, writable buffer holding a copy of the
// current contents.
func (b *Buffer[T]) Snapshot() *Buffer[T] {
	data := b.data("snapshot")
	return &Buffer[T]{
		store:  newStorage(append([]T(nil), data...)),
		extent: b.extent,
		mode:   Owned,
	}
}

// Release drops this handle. Releasing a handle twice is a no-op.
func (b *Buffer[T]) Release() {
	if b.released.CompareAndSwap(false, true) {
		b.store.release()
	}
}

// IsUnique returns true if this is the only live handle on the storage.
func (b *Buffer[T]) IsUnique() bool {
	return b.store.refCount.Load() == 1
}

// Extent returns the buffer shape.
func (b *Buffer[T]) Extent() ndrange.Extent { return b.extent }

// Rank returns the number of dimensions.
func (b *Buffer[T]) Rank() int { return b.extent.Rank() }

// Len returns the number of elements.
func (b *Buffer[T]) Len() int { return b.extent.Size() }

// StorageMode reports whether the storage is owned or borrowed.
func (b *Buffer[T]) StorageMode() StorageMode { return b.mode }

// ReadOnly reports whether write views are refused. Fixed at construction.
func (b *Buffer[T]) ReadOnly() bool { return b.mode == BorrowedReadOnly }

// GetView returns a view of the buffer tagged with mode and target.
// Panics if mode writes and the buffer is read-only, or if the handle was
// released.
func (b *Buffer[T]) GetView(mode AccessMode, target Target) View[T] {
	if mode.Writes() && b.ReadOnly() {
		panic(fmt.Sprintf("get view: %s access to a read-only buffer", mode))
	}
	return View[T]{
		data:   b.data("get view"),
		extent: b.extent,
		mode:   mode,
		target: target,
	}
}

// HostView returns a view for host-side use: read-write unless the buffer
// is read-only.
func (b *Buffer[T]) HostView() View[T] {
	if b.ReadOnly() {
		return b.GetView(Read, HostBuffer)
	}
	return b.GetView(ReadWrite, HostBuffer)
}

// CopyOut copies the contents into a new slice in row-major order.
func (b *Buffer[T]) CopyOut() []T {
	return append([]T(nil), b.data("copy out")...)
}

func (b *Buffer[T]) data(op string) []T {
	b.checkLive(op)
	return b.store.data
}

func (b *Buffer[T]) checkLive(op string) {
	if b.released.Load() {
		panic(fmt.Sprintf("%s: buffer handle already released", op))
	}
}
