// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package compute

import "github.com/born-ml/hostkernel/internal/buffer"

// Buffer is an array of T that owns or borrows its storage.
//
// Example:
//
//	host := []float32{1, 2, 3, 4}
//	in, _ := compute.NewBorrowed(host, compute.NewExtent(2, 2), true)
//	v := in.GetView(compute.Read, compute.GlobalBuffer)
//	x := v.Load(compute.NewIndex(1, 0)) // 3
type Buffer[T any] = buffer.Buffer[T]

// View is a bounds-checked accessor onto a Buffer.
type View[T any] = buffer.View[T]

// AccessMode documents how a kernel uses a view.
type AccessMode = buffer.AccessMode

// Target documents where a view's data lives.
type Target = buffer.Target

// StorageMode tells whether a buffer owns its storage.
type StorageMode = buffer.StorageMode

// Access modes.
const (
	Read             = buffer.Read
	Write            = buffer.Write
	Atomic           = buffer.Atomic
	ReadWrite        = buffer.ReadWrite
	DiscardWrite     = buffer.DiscardWrite
	DiscardReadWrite = buffer.DiscardReadWrite
)

// Targets.
const (
	GlobalBuffer   = buffer.GlobalBuffer
	ConstantBuffer = buffer.ConstantBuffer
	Local          = buffer.Local
	HostBuffer     = buffer.HostBuffer
	Image          = buffer.Image
	HostImage      = buffer.HostImage
	ImageArray     = buffer.ImageArray
)

// Storage modes.
const (
	Owned            = buffer.Owned
	Borrowed         = buffer.Borrowed
	BorrowedReadOnly = buffer.BorrowedReadOnly
)

// NewOwned allocates a zeroed buffer of the given extent.
func NewOwned[T any](extent Extent) (*Buffer[T], error) {
	return buffer.NewOwned[T](extent)
}

// NewBorrowed wraps data without copying. data must outlive the buffer and
// every view derived from it.
func NewBorrowed[T any](data []T, extent Extent, readOnly bool) (*Buffer[T], error) {
	return buffer.NewBorrowed(data, extent, readOnly)
}

// NewFromSlice allocates a 1-D buffer holding a copy of src.
func NewFromSlice[T any](src []T) (*Buffer[T], error) {
	return buffer.NewFromSlice(src)
}
