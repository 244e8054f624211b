package rtsa

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdrkit/rtsa/sys"
)

func iqPacket(samples []float32) fakePacket {
	return fakePacket{
		meta: sys.Packet{
			StreamID:       7,
			Flags:          sys.PacketStreamStart | sys.PacketSegmentStart,
			StartTime:      1.5,
			EndTime:        2.5,
			StartFrequency: 97e6,
			StepFrequency:  1e3,
			SpanFrequency:  2e6,
			RBWFrequency:   1e3,
			Num:            int64(len(samples) / 2),
			Total:          int64(len(samples) / 2),
			Size:           2,
			Stride:         2,
		},
		samples: samples,
	}
}

func TestTryPacketEmpty(t *testing.T) {
	v := newFakeVendor()
	_, d := openTestDevice(t, v)

	_, err := d.TryPacket(0)
	require.ErrorIs(t, err, ErrEmpty)
}

func TestTryPacketMetadata(t *testing.T) {
	v := newFakeVendor()
	_, d := openTestDevice(t, v)
	v.push(0, iqPacket([]float32{1, 2, 3, 4}))

	p, err := d.TryPacket(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), p.StreamID())
	assert.True(t, p.Flags().StreamStart())
	assert.True(t, p.Flags().SegmentStart())
	assert.False(t, p.Flags().StreamEnd())
	assert.False(t, p.Flags().SegmentEnd())
	assert.Equal(t, 1.5, p.StartTime())
	assert.Equal(t, 2.5, p.EndTime())
	assert.Equal(t, 97e6, p.StartFrequency())
	assert.Equal(t, 1e3, p.StepFrequency())
	assert.Equal(t, 2e6, p.SpanFrequency())
	assert.Equal(t, 1e3, p.RBWFrequency())
	assert.Equal(t, 2, p.Count())
	assert.Equal(t, 2, p.Total())
	assert.Equal(t, 2, p.Size())
	assert.Equal(t, 2, p.Stride())
}

func TestSampleViews(t *testing.T) {
	v := newFakeVendor()
	_, d := openTestDevice(t, v)
	v.push(0, iqPacket([]float32{1, 2, 3, 4}))

	p, err := d.TryPacket(0)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4}, p.Samples())
	assert.Equal(t, []float32{1, 2, 3, 4}, p.Spectrum())
	assert.Equal(t, []complex64{complex(1, 2), complex(3, 4)}, p.IQ())
}

func TestIQRequiresPackedLayout(t *testing.T) {
	v := newFakeVendor()
	_, d := openTestDevice(t, v)
	pkt := iqPacket([]float32{1, 2, 3})
	pkt.meta.Num = 1
	pkt.meta.Stride = 3
	v.push(0, pkt)

	p, err := d.TryPacket(0)
	require.NoError(t, err)
	assert.Panics(t, func() { p.IQ() })
	assert.Len(t, p.Samples(), 3)
}

func TestSamplesPanicAfterConsume(t *testing.T) {
	v := newFakeVendor()
	_, d := openTestDevice(t, v)
	v.push(0, iqPacket([]float32{1, 2}))
	v.push(0, iqPacket([]float32{3, 4}))

	p, err := d.TryPacket(0)
	require.NoError(t, err)
	_ = p.Samples()
	require.NoError(t, d.Consume(0))

	assert.Panics(t, func() { p.Samples() })
	assert.Panics(t, func() { p.IQ() })
	// Metadata was copied out and stays readable.
	assert.NotPanics(t, func() { _ = p.StreamID() })

	// A fresh view over the next packet is valid.
	next, err := d.TryPacket(0)
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 4}, next.Samples())
}

func TestConsumePerChannelGenerations(t *testing.T) {
	v := newFakeVendor()
	_, d := openTestDevice(t, v)
	v.push(0, iqPacket([]float32{1, 2}))
	v.push(1, iqPacket([]float32{3, 4}))

	p0, err := d.TryPacket(0)
	require.NoError(t, err)
	p1, err := d.TryPacket(1)
	require.NoError(t, err)

	require.NoError(t, d.Consume(0))
	assert.Panics(t, func() { p0.Samples() })
	assert.NotPanics(t, func() { p1.Samples() }, "consuming one channel must not invalidate another")
}

func TestPacketBlocksUntilData(t *testing.T) {
	v := newFakeVendor()
	_, d := openTestDevice(t, v)

	go func() {
		time.Sleep(20 * time.Millisecond)
		v.push(0, iqPacket([]float32{1, 2}))
	}()

	p, err := d.Packet(0)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, p.Samples())
	v.mu.Lock()
	polls := v.polls[0]
	v.mu.Unlock()
	assert.Greater(t, polls, 1, "blocking getter polls through the empty window")
}

func TestPacketAbortsOnHardError(t *testing.T) {
	v := newFakeVendor()
	v.failOps["getpacket"] = sys.ResultErrorBusy
	_, d := openTestDevice(t, v)

	_, err := d.Packet(0)
	require.ErrorIs(t, err, ErrBusy)
}

func TestPacketsAvailable(t *testing.T) {
	v := newFakeVendor()
	_, d := openTestDevice(t, v)

	n, err := d.PacketsAvailable(0)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	v.push(0, iqPacket([]float32{1, 2}))
	v.push(0, iqPacket([]float32{3, 4}))
	n, err = d.PacketsAvailable(0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSendPacket(t *testing.T) {
	v := newFakeVendor()
	_, d := openTestDevice(t, v)

	samples := []float32{1, 2, 3, 4, 5, 6}
	tx := &TxPacket{
		StreamID:       9,
		Flags:          PacketFlags(sys.PacketStreamEnd),
		StartTime:      10,
		EndTime:        11,
		StartFrequency: 2.4e9,
		Samples:        samples,
	}
	require.NoError(t, d.SendPacket(4, tx))

	v.mu.Lock()
	sent := v.sent[4]
	v.mu.Unlock()
	require.Len(t, sent, 1)
	raw := sent[0]
	assert.Equal(t, uint64(9), raw.StreamID)
	assert.Equal(t, uint64(sys.PacketStreamEnd), raw.Flags)
	assert.Equal(t, 10.0, raw.StartTime)
	assert.Equal(t, 11.0, raw.EndTime)
	assert.Equal(t, 2.4e9, raw.StartFrequency)
	// Default layout is packed complex pairs.
	assert.Equal(t, int64(2), raw.Stride)
	assert.Equal(t, int64(3), raw.Num)
	assert.Same(t, &samples[0], raw.FP32)
}

func TestMasterStreamTime(t *testing.T) {
	v := newFakeVendor()
	v.streamTime = 123.456
	_, d := openTestDevice(t, v)

	got, err := d.MasterStreamTime()
	require.NoError(t, err)
	assert.Equal(t, 123.456, got)
}
