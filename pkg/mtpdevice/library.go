// Package mtpdevice implements the remote-realm collaborators of mtpsync:
// the inventory loader and plan executor that operate against an MTP
// device's object tree (spec.md §4.4, §4.6). The device library itself is
// treated as an opaque external dependency (spec.md §6.2) — this package
// never links against libmtp directly; it depends only on the Library
// interface below, which the embedding program supplies a real binding for,
// and which this package's own tests satisfy with an in-memory fake
// (fake.go).
package mtpdevice

import "io"

// RootID names the folder id that designates a storage volume's root,
// matching spec.md §6.2's "a root constant names the volume root".
const RootID uint32 = 0xFFFFFFFF

// RawDevice is an opaque handle to one attached, unopened device as
// returned by Library.EnumerateDevices. Index is its position in that
// enumeration, used for the CLI's numeric --device matching (spec.md §6.1).
type RawDevice struct {
	Index  int
	Handle any
}

// StorageVolume describes one storage volume exposed by an opened device.
type StorageVolume struct {
	ID          uint32
	FreeBytes   uint64
	MaxBytes    uint64
	Description string
}

// DeviceInfo is the friendly identity of an opened device.
type DeviceInfo struct {
	FriendlyName string
	Serial       string
	Storage      []StorageVolume
}

// ObjectType is the device library's type-enum, conveyed as a hint on send
// and reported on list (spec.md §6.2).
type ObjectType int

// Object is one entry returned by Library.ListFolder.
type Object struct {
	ID       uint32
	ParentID uint32
	Name     string
	Size     int64
	Type     ObjectType
	IsFolder bool
}

// ProgressFunc reports transferred/total bytes during SendFile/GetFile.
type ProgressFunc func(transferred, total int64)

// Library is the external device-library dependency mtpsync builds on
// (spec.md §6.2). An embedding program supplies a real implementation
// (typically a cgo binding to libmtp); mtpsync's own code, including its
// tests, interacts with devices only through this interface.
type Library interface {
	// Initialize prepares the library for use. Called once per process.
	Initialize() error

	// EnumerateDevices lists currently attached raw devices.
	EnumerateDevices() ([]RawDevice, error)

	// Open acquires exclusive access to a raw device and returns its
	// identity and storage volumes.
	Open(device RawDevice) (DeviceInfo, error)

	// Release relinquishes a previously opened device.
	Release(device RawDevice) error

	// ListFolder lists the immediate children of the folder named by id
	// within storageID. Use RootID for the volume root.
	ListFolder(device RawDevice, storageID uint32, id uint32) ([]Object, error)

	// CreateFolder creates a folder named name under parentID within
	// storageID, returning its new object id.
	CreateFolder(device RawDevice, storageID uint32, parentID uint32, name string) (uint32, error)

	// SendFile uploads the content read from local to the device, creating
	// an object under parentID within storageID with the given filename,
	// size, and type hint. Progress is reported through progress, which
	// may be nil.
	SendFile(device RawDevice, storageID uint32, parentID uint32, local io.Reader, filename string, size int64, typeHint ObjectType, progress ProgressFunc) (uint32, error)

	// GetFile downloads the object named by id to local. Progress is
	// reported through progress, which may be nil.
	GetFile(device RawDevice, id uint32, local io.Writer, progress ProgressFunc) error

	// DeleteObject deletes the object named by id.
	DeleteObject(device RawDevice, id uint32) error

	// DumpErrorStack writes the library's pending error stack to w and
	// clears it, matching spec.md §6.2 / §7's "error-stack dump/clear".
	DumpErrorStack(w io.Writer)
}
