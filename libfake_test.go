package rtsa

import (
	"strconv"
	"strings"
	"sync"
	"testing"
	"unsafe"

	"github.com/sdrkit/rtsa/sys"
)

// fakeNode is one node of the fake vendor config tree.
type fakeNode struct {
	name     string
	typ      uint32
	num      float64
	integer  int64
	str      string
	options  string
	trigger  bool // integer extraction answers invalid-config
	children []*fakeNode
}

func group(name string, children ...*fakeNode) *fakeNode {
	return &fakeNode{name: name, typ: sys.ConfigTypeGroup, children: children}
}

func (n *fakeNode) child(name string) *fakeNode {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// fakeVendor is an in-memory stand-in for the vendor library, driving the
// wrapper through a hand-built sys.Library function table.
type fakeVendor struct {
	mu sync.Mutex

	version uint32

	initCount     int
	shutdownCount int
	initialized   bool
	memory        uint32

	initResult     sys.Result
	shutdownResult sys.Result

	sessions int

	devices      []DeviceInfo
	enumFailAt   int        // index at which enumeration fails, -1 to disable
	enumFailWith sys.Result // status for enumFailAt

	rescanRetries int // remaining retry answers before rescan succeeds
	rescanCalls   int
	resetCalls    int

	hwState     string // "closed", "opened", "connected", "started"
	calls       []string
	failOps     map[string]sys.Result // op name -> forced status
	deviceState sys.Result            // GetDeviceState answer

	root   *fakeNode
	health *fakeNode

	queues     map[int32][]fakePacket
	sent       map[int32][]sys.Packet
	polls      map[int32]int
	streamTime float64
}

type fakePacket struct {
	meta    sys.Packet
	samples []float32
}

func newFakeVendor() *fakeVendor {
	return &fakeVendor{
		version:      3<<16 | 1,
		enumFailAt:   -1,
		hwState:      "closed",
		deviceState:  sys.ResultIdle,
		failOps:      map[string]sys.Result{},
		root:         group(""),
		health:       group(""),
		queues:       map[int32][]fakePacket{},
		sent:         map[int32][]sys.Packet{},
		polls:        map[int32]int{},
		streamTime:   0,
		initResult:   sys.ResultOK,
		shutdownResult: sys.ResultOK,
	}
}

func (v *fakeVendor) fail(op string) (sys.Result, bool) {
	r, ok := v.failOps[op]
	return r, ok
}

func (v *fakeVendor) lifecycle(op, pre, post string) sys.Result {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, op)
	if r, ok := v.fail(op); ok {
		return r
	}
	if v.hwState != pre {
		return sys.ResultError
	}
	v.hwState = post
	return sys.ResultOK
}

func (v *fakeVendor) nodeFor(c *sys.Config) *fakeNode {
	return (*fakeNode)(c.D)
}

func (v *fakeVendor) push(channel int32, p fakePacket) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.queues[channel] = append(v.queues[channel], p)
}

// library builds the sys.Library function table backed by the fake.
func (v *fakeVendor) library() *sys.Library {
	return &sys.Library{
		Version: func() uint32 { return v.version },

		Init: func(memory uint32) sys.Result {
			v.mu.Lock()
			defer v.mu.Unlock()
			if v.initResult != sys.ResultOK {
				return v.initResult
			}
			v.initCount++
			v.initialized = true
			v.memory = memory
			return sys.ResultOK
		},
		Shutdown: func() sys.Result {
			v.mu.Lock()
			defer v.mu.Unlock()
			v.shutdownCount++
			if v.shutdownResult != sys.ResultOK {
				return v.shutdownResult
			}
			v.initialized = false
			return sys.ResultOK
		},

		Open: func(h *sys.Handle) sys.Result {
			v.mu.Lock()
			defer v.mu.Unlock()
			if !v.initialized {
				return sys.ResultErrorNotInitialized
			}
			v.sessions++
			return sys.ResultOK
		},
		Close: func(h *sys.Handle) sys.Result {
			v.mu.Lock()
			defer v.mu.Unlock()
			v.sessions--
			return sys.ResultOK
		},

		RescanDevices: func(h *sys.Handle, timeout int32) sys.Result {
			v.mu.Lock()
			defer v.mu.Unlock()
			v.rescanCalls++
			if r, ok := v.fail("rescan"); ok {
				return r
			}
			if v.rescanRetries > 0 {
				v.rescanRetries--
				return sys.ResultRetry
			}
			return sys.ResultOK
		},
		ResetDevices: func(h *sys.Handle) sys.Result {
			v.mu.Lock()
			defer v.mu.Unlock()
			v.resetCalls++
			return sys.ResultOK
		},
		EnumDevice: func(h *sys.Handle, devType *sys.WChar, index int32, info *sys.DeviceInfo) sys.Result {
			v.mu.Lock()
			defer v.mu.Unlock()
			if int(index) == v.enumFailAt {
				return v.enumFailWith
			}
			if int(index) >= len(v.devices) {
				return sys.ResultEmpty
			}
			d := v.devices[index]
			copy(info.SerialNumber[:], sys.WString(d.Serial))
			info.Ready = boolByte(d.Ready)
			info.Boost = boolByte(d.Boost)
			info.SuperSpeed = boolByte(d.SuperSpeed)
			info.Active = boolByte(d.Active)
			return sys.ResultOK
		},

		OpenDevice: func(h *sys.Handle, d *sys.Device, devType, serial *sys.WChar) sys.Result {
			return v.lifecycle("open", "closed", "opened")
		},
		CloseDevice: func(h *sys.Handle, d *sys.Device) sys.Result {
			return v.lifecycle("close", "opened", "closed")
		},
		ConnectDevice: func(d *sys.Device) sys.Result {
			return v.lifecycle("connect", "opened", "connected")
		},
		DisconnectDevice: func(d *sys.Device) sys.Result {
			return v.lifecycle("disconnect", "connected", "opened")
		},
		StartDevice: func(d *sys.Device) sys.Result {
			return v.lifecycle("start", "connected", "started")
		},
		StopDevice: func(d *sys.Device) sys.Result {
			return v.lifecycle("stop", "started", "connected")
		},
		GetDeviceState: func(d *sys.Device) sys.Result {
			v.mu.Lock()
			defer v.mu.Unlock()
			return v.deviceState
		},

		ConfigRoot: func(d *sys.Device, c *sys.Config) sys.Result {
			c.D = unsafe.Pointer(v.root)
			return sys.ResultOK
		},
		ConfigHealth: func(d *sys.Device, c *sys.Config) sys.Result {
			c.D = unsafe.Pointer(v.health)
			return sys.ResultOK
		},
		ConfigFind: func(d *sys.Device, group, node *sys.Config, name *sys.WChar) sys.Result {
			cur := v.nodeFor(group)
			for _, seg := range strings.Split(sys.GoString(name), "/") {
				if cur = cur.child(seg); cur == nil {
					return sys.ResultErrorNotFound
				}
			}
			node.D = unsafe.Pointer(cur)
			return sys.ResultOK
		},
		ConfigFirst: func(d *sys.Device, group, node *sys.Config) sys.Result {
			g := v.nodeFor(group)
			if len(g.children) == 0 {
				return sys.ResultEmpty
			}
			node.D = unsafe.Pointer(g.children[0])
			return sys.ResultOK
		},
		ConfigNext: func(d *sys.Device, group, node *sys.Config) sys.Result {
			g := v.nodeFor(group)
			cur := v.nodeFor(node)
			for i, c := range g.children {
				if c == cur {
					if i+1 >= len(g.children) {
						return sys.ResultEmpty
					}
					node.D = unsafe.Pointer(g.children[i+1])
					return sys.ResultOK
				}
			}
			return sys.ResultErrorNotFound
		},
		ConfigGetInfo: func(d *sys.Device, c *sys.Config, info *sys.ConfigInfo) sys.Result {
			n := v.nodeFor(c)
			info.Type = n.typ
			nameW := sys.WString(n.name)
			info.Name = &nameW[0]
			if n.options != "" {
				optW := sys.WString(n.options)
				info.Options = &optW[0]
			}
			return sys.ResultOK
		},
		ConfigGetFloat: func(d *sys.Device, c *sys.Config, out *float64) sys.Result {
			*out = v.nodeFor(c).num
			return sys.ResultOK
		},
		ConfigGetInteger: func(d *sys.Device, c *sys.Config, out *int64) sys.Result {
			n := v.nodeFor(c)
			if n.trigger {
				return sys.ResultErrorInvalidConfig
			}
			*out = n.integer
			return sys.ResultOK
		},
		ConfigGetString: func(d *sys.Device, c *sys.Config, buf *sys.WChar, size *int64) sys.Result {
			w := sys.WString(v.nodeFor(c).str)
			if int64(len(w)) > *size {
				return sys.ResultErrorBufferSize
			}
			copy(unsafe.Slice(buf, *size), w)
			*size = int64(len(w)) - 1
			return sys.ResultOK
		},
		ConfigSetFloat: func(d *sys.Device, c *sys.Config, val float64) sys.Result {
			n := v.nodeFor(c)
			n.num = val
			n.integer = int64(val)
			return sys.ResultOK
		},
		ConfigSetInteger: func(d *sys.Device, c *sys.Config, val int64) sys.Result {
			n := v.nodeFor(c)
			n.integer = val
			n.num = float64(val)
			return sys.ResultOK
		},
		ConfigSetString: func(d *sys.Device, c *sys.Config, val *sys.WChar) sys.Result {
			n := v.nodeFor(c)
			s := sys.GoString(val)
			n.str = s
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				n.num = f
				n.integer = int64(f)
			}
			return sys.ResultOK
		},

		AvailPackets: func(d *sys.Device, channel int32, num *int32) sys.Result {
			v.mu.Lock()
			defer v.mu.Unlock()
			*num = int32(len(v.queues[channel]))
			return sys.ResultOK
		},
		GetPacket: func(d *sys.Device, channel, index int32, p *sys.Packet) sys.Result {
			v.mu.Lock()
			defer v.mu.Unlock()
			v.polls[channel]++
			if r, ok := v.fail("getpacket"); ok {
				return r
			}
			q := v.queues[channel]
			if len(q) == 0 {
				return sys.ResultEmpty
			}
			head := q[0]
			cb := p.Cbsize
			*p = head.meta
			p.Cbsize = cb
			if len(head.samples) > 0 {
				p.FP32 = &head.samples[0]
			}
			return sys.ResultOK
		},
		ConsumePackets: func(d *sys.Device, channel, num int32) sys.Result {
			v.mu.Lock()
			defer v.mu.Unlock()
			q := v.queues[channel]
			if int(num) > len(q) {
				return sys.ResultErrorInvalidParameter
			}
			v.queues[channel] = q[num:]
			return sys.ResultOK
		},
		SendPacket: func(d *sys.Device, channel int32, p *sys.Packet) sys.Result {
			v.mu.Lock()
			defer v.mu.Unlock()
			v.sent[channel] = append(v.sent[channel], *p)
			return sys.ResultOK
		},

		GetMasterStreamTime: func(d *sys.Device, t *float64) sys.Result {
			v.mu.Lock()
			defer v.mu.Unlock()
			*t = v.streamTime
			return sys.ResultOK
		},
	}
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// install routes the package's library loading to the fake for the
// duration of one test and resets the process-wide session state.
func (v *fakeVendor) install(t *testing.T) {
	t.Helper()
	libMu.Lock()
	prevLoad, prevTable, prevCount := loadLibrary, libTable, activeHandles
	loadLibrary = func() (*sys.Library, error) { return v.library(), nil }
	libTable = nil
	activeHandles = 0
	libMu.Unlock()
	t.Cleanup(func() {
		libMu.Lock()
		loadLibrary, libTable, activeHandles = prevLoad, prevTable, prevCount
		libMu.Unlock()
	})
}

// openTestDevice opens a handle and a device against the fake; both are
// cleaned up with the test.
func openTestDevice(t *testing.T, v *fakeVendor) (*Handle, *Device) {
	t.Helper()
	v.install(t)
	if len(v.devices) == 0 {
		v.devices = []DeviceInfo{{Serial: "V6-TEST-0001", Ready: true}}
	}
	h, err := Open()
	if err != nil {
		t.Fatalf("open handle: %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	d, err := h.Device()
	if err != nil {
		t.Fatalf("select device: %v", err)
	}
	t.Cleanup(d.Release)
	return h, d
}
