package rtsa

import (
	"errors"
	"time"
	"unsafe"

	"github.com/sdrkit/rtsa/sys"
)

// packetPollInterval is the sleep between polls of the blocking packet
// getter while the queue is empty.
const packetPollInterval = 5 * time.Millisecond

// PacketFlags is the packet flag bit set.
type PacketFlags uint64

func (f PacketFlags) SegmentStart() bool { return uint64(f)&sys.PacketSegmentStart != 0 }
func (f PacketFlags) SegmentEnd() bool   { return uint64(f)&sys.PacketSegmentEnd != 0 }
func (f PacketFlags) StreamStart() bool  { return uint64(f)&sys.PacketStreamStart != 0 }
func (f PacketFlags) StreamEnd() bool    { return uint64(f)&sys.PacketStreamEnd != 0 }

// Packet is a non-owning view over one vendor-allocated sample buffer.
// The sample memory stays valid only until the next Consume on the same
// channel; sample accessors panic once that happens. Metadata fields were
// copied out at retrieval time and stay readable.
type Packet struct {
	d       *Device
	channel int32
	gen     uint64
	raw     sys.Packet
}

func (p *Packet) StreamID() uint64        { return p.raw.StreamID }
func (p *Packet) Flags() PacketFlags      { return PacketFlags(p.raw.Flags) }
func (p *Packet) StartTime() float64      { return p.raw.StartTime }
func (p *Packet) EndTime() float64        { return p.raw.EndTime }
func (p *Packet) StartFrequency() float64 { return p.raw.StartFrequency }
func (p *Packet) StepFrequency() float64  { return p.raw.StepFrequency }
func (p *Packet) SpanFrequency() float64  { return p.raw.SpanFrequency }
func (p *Packet) RBWFrequency() float64   { return p.raw.RBWFrequency }

// Count is the number of items in this packet; Total the stream's running
// item count; Size the floats per item; Stride the float distance between
// consecutive items.
func (p *Packet) Count() int  { return int(p.raw.Num) }
func (p *Packet) Total() int  { return int(p.raw.Total) }
func (p *Packet) Size() int   { return int(p.raw.Size) }
func (p *Packet) Stride() int { return int(p.raw.Stride) }

func (p *Packet) ensureValid() {
	if p.d != nil && p.d.gens[p.channel] != p.gen {
		panic("rtsa: packet samples used after Consume")
	}
}

// Samples returns the raw float view over the packet's sample window,
// Count()*Stride() floats. The wrapper does not know whether the device
// is producing IQ or spectra; pick IQ or Spectrum to match the configured
// output format.
func (p *Packet) Samples() []float32 {
	p.ensureValid()
	n := p.raw.Num * p.raw.Stride
	if p.raw.FP32 == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice(p.raw.FP32, n)
}

// Spectrum returns the sample window typed as real spectrum bins.
func (p *Packet) Spectrum() []float32 {
	return p.Samples()
}

// IQ returns the sample window typed as interleaved complex samples. The
// packet must be laid out as packed float pairs.
func (p *Packet) IQ() []complex64 {
	p.ensureValid()
	if p.raw.Stride != 2 {
		panic("rtsa: IQ view requires packed complex layout (stride 2)")
	}
	if p.raw.FP32 == nil || p.raw.Num <= 0 {
		return nil
	}
	return unsafe.Slice((*complex64)(unsafe.Pointer(p.raw.FP32)), p.raw.Num)
}

// PacketsAvailable returns the current queue depth of a channel without
// blocking.
func (d *Device) PacketsAvailable(channel int) (int, error) {
	var n int32
	if err := statusError("avail packets", d.h.lib.AvailPackets(&d.dev, int32(channel), &n)); err != nil {
		return 0, err
	}
	return int(n), nil
}

// TryPacket polls a channel once. An empty queue surfaces as ErrEmpty;
// the caller decides the retry policy.
func (d *Device) TryPacket(channel int) (*Packet, error) {
	ch := int32(channel)
	p := &Packet{d: d, channel: ch, gen: d.gens[ch]}
	p.raw.Cbsize = int64(unsafe.Sizeof(p.raw))
	if err := statusError("get packet", d.h.lib.GetPacket(&d.dev, ch, 0, &p.raw)); err != nil {
		return nil, err
	}
	return p, nil
}

// Packet blocks until a packet is available on the channel, polling the
// non-blocking getter and sleeping a short fixed interval on empty. It has
// no cancellation; run it on a dedicated goroutine if you need to bail
// out. Any error other than empty aborts immediately.
func (d *Device) Packet(channel int) (*Packet, error) {
	for {
		p, err := d.TryPacket(channel)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, ErrEmpty) {
			return nil, err
		}
		time.Sleep(packetPollInterval)
	}
}

// Consume acknowledges exactly one packet on the channel, releasing its
// queue slot and invalidating every sample view handed out for it. Call it
// after each successfully retrieved packet, before requesting the next.
func (d *Device) Consume(channel int) error {
	ch := int32(channel)
	if err := statusError("consume packet", d.h.lib.ConsumePackets(&d.dev, ch, 1)); err != nil {
		return err
	}
	d.gens[ch]++
	return nil
}

// TxPacket is a caller-constructed packet for transmit-capable channels.
// Stride is the float distance between items; zero means packed complex
// pairs (stride 2).
type TxPacket struct {
	StreamID       uint64
	Flags          PacketFlags
	StartTime      float64
	EndTime        float64
	StartFrequency float64
	StepFrequency  float64
	SpanFrequency  float64
	RBWFrequency   float64
	Samples        []float32
	Stride         int
}

// SendPacket pushes a caller-constructed packet onto a transmit channel.
// The sample slice is only read for the duration of the call.
func (d *Device) SendPacket(channel int, tx *TxPacket) error {
	stride := tx.Stride
	if stride <= 0 {
		stride = 2
	}
	var raw sys.Packet
	raw.Cbsize = int64(unsafe.Sizeof(raw))
	raw.StreamID = tx.StreamID
	raw.Flags = uint64(tx.Flags)
	raw.StartTime = tx.StartTime
	raw.EndTime = tx.EndTime
	raw.StartFrequency = tx.StartFrequency
	raw.StepFrequency = tx.StepFrequency
	raw.SpanFrequency = tx.SpanFrequency
	raw.RBWFrequency = tx.RBWFrequency
	raw.Size = int64(stride)
	raw.Stride = int64(stride)
	raw.Num = int64(len(tx.Samples) / stride)
	raw.Total = raw.Num
	if len(tx.Samples) > 0 {
		raw.FP32 = &tx.Samples[0]
	}
	return statusError("send packet", d.h.lib.SendPacket(&d.dev, int32(channel), &raw))
}

// MasterStreamTime reads the device's current master stream clock.
func (d *Device) MasterStreamTime() (float64, error) {
	var t float64
	if err := statusError("master stream time", d.h.lib.GetMasterStreamTime(&d.dev, &t)); err != nil {
		return 0, err
	}
	return t, nil
}
