// Package sys exposes the raw C-linkage surface of the vendor RTSA library.
//
// The shared library is loaded at runtime and its entry points are bound
// into a Library function table, so no cgo is involved and higher layers
// can be exercised against a hand-built table. Struct layouts in this
// package mirror the vendor header byte for byte; every struct passed to
// the vendor carries a leading cbsize field that callers must fill with
// the Go-side size of the struct.
package sys

import "unsafe"

// Memory selects the vendor library's internal buffer sizing tier. It is
// honored only by the first initialization in a process.
const (
	MemorySmall     uint32 = 0
	MemoryMedium    uint32 = 1
	MemoryLarge     uint32 = 2
	MemoryLudicrous uint32 = 3
)

// Config node type tags as reported by ConfigGetInfo.
const (
	ConfigTypeOther  uint32 = 0
	ConfigTypeGroup  uint32 = 1
	ConfigTypeBlob   uint32 = 2
	ConfigTypeNumber uint32 = 3
	ConfigTypeBool   uint32 = 4
	ConfigTypeEnum   uint32 = 5
	ConfigTypeString uint32 = 6
)

// Packet flag bits.
const (
	PacketSegmentStart uint64 = 0x1
	PacketSegmentEnd   uint64 = 0x2
	PacketStreamStart  uint64 = 0x4
	PacketStreamEnd    uint64 = 0x8
)

// Handle is one opaque session into the vendor library.
type Handle struct {
	D unsafe.Pointer
}

// Device is an opaque per-device token obtained from OpenDevice.
type Device struct {
	D unsafe.Pointer
}

// Config is a transient handle into the configuration tree. It is only
// meaningful within the call sequence that resolved it.
type Config struct {
	D unsafe.Pointer
}

// SerialLen is the bounded length of the serial number field, in wide
// characters including the terminator.
const SerialLen = 120

// DeviceInfo is the enumeration snapshot for one attached device.
type DeviceInfo struct {
	Cbsize       int64
	SerialNumber [SerialLen]WChar
	Ready        uint8
	Boost        uint8
	SuperSpeed   uint8
	Active       uint8
}

// ConfigInfo describes one configuration tree node. Name, Title, Unit and
// Options point into vendor-owned wide strings valid until the next config
// call on the same device.
type ConfigInfo struct {
	Cbsize          int64
	Name            *WChar
	Title           *WChar
	Type            uint32
	_               [4]byte
	MinValue        float64
	MaxValue        float64
	StepValue       float64
	Unit            *WChar
	Options         *WChar
	DisabledOptions uint64
}

// Packet is one buffer's worth of streaming samples plus timing and
// frequency metadata. FP32 points into vendor-owned memory that stays
// valid only until the next ConsumePackets call on the same channel.
//
// Num is the number of items in the packet, Size the number of floats per
// item and Stride the float distance between consecutive items.
type Packet struct {
	Cbsize         int64
	StreamID       uint64
	Flags          uint64
	StartTime      float64
	EndTime        float64
	StartFrequency float64
	StepFrequency  float64
	SpanFrequency  float64
	RBWFrequency   float64
	Num            int64
	Total          int64
	Size           int64
	Stride         int64
	FP32           *float32
}
