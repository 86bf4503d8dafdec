// Package buffer implements kernel-visible storage: buffers that own or
// borrow element storage, and views (accessors) that kernels index into.
package buffer

// AccessMode documents how a kernel intends to use a view.
// Only Writes() is checked, against read-only buffers.
type AccessMode int

// Supported access modes.
const (
	Read AccessMode = iota
	Write
	Atomic
	ReadWrite
	DiscardWrite
	DiscardReadWrite
)

// Writes reports whether the mode may modify the buffer.
func (m AccessMode) Writes() bool {
	return m != Read
}

// String returns a human-readable mode name.
func (m AccessMode) String() string {
	switch m {
	case Read:
		return "read"
	case Write:
		return "write"
	case Atomic:
		return "atomic"
	case ReadWrite:
		return "read_write"
	case DiscardWrite:
		return "discard_write"
	case DiscardReadWrite:
		return "discard_read_write"
	default:
		return "unknown"
	}
}

// Target documents where a view's data is expected to live.
type Target int

// Supported targets. The image targets are accepted as metadata only.
const (
	GlobalBuffer Target = iota
	ConstantBuffer
	Local
	HostBuffer
	Image
	HostImage
	ImageArray
)

// String returns a human-readable target name.
func (t Target) String() string {
	switch t {
	case GlobalBuffer:
		return "global_buffer"
	case ConstantBuffer:
		return "constant_buffer"
	case Local:
		return "local"
	case HostBuffer:
		return "host_buffer"
	case Image:
		return "image"
	case HostImage:
		return "host_image"
	case ImageArray:
		return "image_array"
	default:
		return "unknown"
	}
}

// StorageMode tells whether a buffer allocated its storage or wraps memory
// supplied by the caller.
type StorageMode int

// Storage modes.
const (
	Owned StorageMode = iota
	Borrowed
	BorrowedReadOnly
)

// String returns a human-readable storage mode name.
func (s StorageMode) String() string {
	switch s {
	case Owned:
		return "owned"
	case Borrowed:
		return "borrowed"
	case BorrowedReadOnly:
		return "borrowed_readonly"
	default:
		return "unknown"
	}
}
