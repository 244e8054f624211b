package rtsa

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/sdrkit/rtsa/sys"
)

// ConfigItem is the normalized view of one configuration tree node. It is
// a closed variant: Group, Number, Bool, Button, Enum, String, Blob or
// Other for type tags this wrapper does not know.
type ConfigItem interface {
	isConfigItem()
}

// Group is a name-keyed mapping of child items. Sibling name collisions
// resolve last-write-wins.
type Group map[string]ConfigItem

// Number is a numeric node value.
type Number float64

// Bool is a boolean node value.
type Bool bool

// Button is a stateless trigger node: a bool-tagged node whose value
// cannot be read.
type Button struct{}

// Enum is a selection node: the selected option index plus the ordered
// option labels from the node metadata.
type Enum struct {
	Selected int
	Options  []string
}

// String is a text node value.
type String string

// Blob marks an opaque binary node; its contents are not extracted.
type Blob struct{}

// Other marks a node with an unknown vendor type tag.
type Other struct {
	Type uint32
}

func (Group) isConfigItem()  {}
func (Number) isConfigItem() {}
func (Bool) isConfigItem()   {}
func (Button) isConfigItem() {}
func (Enum) isConfigItem()   {}
func (String) isConfigItem() {}
func (Blob) isConfigItem()   {}
func (Other) isConfigItem()  {}

// Label returns the selected option label, or the numeric index when the
// selection is out of range of the decoded labels.
func (e Enum) Label() string {
	if e.Selected >= 0 && e.Selected < len(e.Options) {
		return e.Options[e.Selected]
	}
	return fmt.Sprintf("%d", e.Selected)
}

// Export converts a ConfigItem tree into plain maps and scalars suitable
// for JSON, YAML or TOML encoding.
func Export(item ConfigItem) any {
	switch v := item.(type) {
	case Group:
		out := make(map[string]any, len(v))
		for name, child := range v {
			out[name] = Export(child)
		}
		return out
	case Number:
		return float64(v)
	case Bool:
		return bool(v)
	case Button:
		return "<button>"
	case Enum:
		return v.Label()
	case String:
		return string(v)
	case Blob:
		return "<blob>"
	case Other:
		return fmt.Sprintf("<type %d>", v.Type)
	}
	return nil
}

// Config reads the entire configuration tree.
func (d *Device) Config() (ConfigItem, error) {
	var root sys.Config
	if err := statusError("config root", d.h.lib.ConfigRoot(&d.dev, &root)); err != nil {
		return nil, err
	}
	_, item, err := d.node(root)
	return item, err
}

// Health reads the health telemetry tree, which has the same shape as the
// configuration tree.
func (d *Device) Health() (ConfigItem, error) {
	var root sys.Config
	if err := statusError("health root", d.h.lib.ConfigHealth(&d.dev, &root)); err != nil {
		return nil, err
	}
	_, item, err := d.node(root)
	return item, err
}

// Get resolves a slash-delimited path from the configuration root and
// extracts the node's normalized value, recursing into groups.
func (d *Device) Get(path string) (ConfigItem, error) {
	node, err := d.find(path)
	if err != nil {
		return nil, err
	}
	_, item, err := d.node(node)
	return item, err
}

// Set writes a value as text through the string setter; the vendor
// library parses any scalar from its text form.
func (d *Device) Set(path, value string) error {
	node, err := d.find(path)
	if err != nil {
		return err
	}
	wv := sys.WString(value)
	return statusError("set config "+path, d.h.lib.ConfigSetString(&d.dev, &node, &wv[0]))
}

// SetFloat writes a numeric value through the typed float setter.
func (d *Device) SetFloat(path string, value float64) error {
	node, err := d.find(path)
	if err != nil {
		return err
	}
	return statusError("set config "+path, d.h.lib.ConfigSetFloat(&d.dev, &node, value))
}

// SetInteger writes an integer value through the typed integer setter.
func (d *Device) SetInteger(path string, value int64) error {
	node, err := d.find(path)
	if err != nil {
		return err
	}
	return statusError("set config "+path, d.h.lib.ConfigSetInteger(&d.dev, &node, value))
}

func (d *Device) find(path string) (sys.Config, error) {
	var root, node sys.Config
	if err := statusError("config root", d.h.lib.ConfigRoot(&d.dev, &root)); err != nil {
		return node, err
	}
	wp := sys.WString(path)
	if err := statusError("find config "+path, d.h.lib.ConfigFind(&d.dev, &root, &node, &wp[0])); err != nil {
		return node, err
	}
	return node, nil
}

// node classifies one tree node by its vendor type tag and extracts its
// value, returning the node name alongside.
func (d *Device) node(c sys.Config) (string, ConfigItem, error) {
	var info sys.ConfigInfo
	info.Cbsize = int64(unsafe.Sizeof(info))
	if err := statusError("config info", d.h.lib.ConfigGetInfo(&d.dev, &c, &info)); err != nil {
		return "", nil, err
	}
	name := sys.GoString(info.Name)

	switch info.Type {
	case sys.ConfigTypeGroup:
		g, err := d.group(c)
		return name, g, err

	case sys.ConfigTypeNumber:
		var v float64
		if err := statusError("get number "+name, d.h.lib.ConfigGetFloat(&d.dev, &c, &v)); err != nil {
			return "", nil, err
		}
		return name, Number(v), nil

	case sys.ConfigTypeBool:
		var v int64
		err := statusError("get bool "+name, d.h.lib.ConfigGetInteger(&d.dev, &c, &v))
		if errors.Is(err, ErrInvalidConfig) {
			// A bool that cannot be read is a stateless trigger.
			return name, Button{}, nil
		}
		if err != nil {
			return "", nil, err
		}
		return name, Bool(v != 0), nil

	case sys.ConfigTypeEnum:
		var v int64
		if err := statusError("get enum "+name, d.h.lib.ConfigGetInteger(&d.dev, &c, &v)); err != nil {
			return "", nil, err
		}
		var options []string
		if raw := sys.GoString(info.Options); raw != "" {
			options = strings.Split(raw, ";")
		}
		return name, Enum{Selected: int(v), Options: options}, nil

	case sys.ConfigTypeString:
		var buf [1024]sys.WChar
		size := int64(len(buf))
		if err := statusError("get string "+name, d.h.lib.ConfigGetString(&d.dev, &c, &buf[0], &size)); err != nil {
			return "", nil, err
		}
		if size > int64(len(buf)) {
			size = int64(len(buf))
		}
		return name, String(sys.GoStringN(buf[:size])), nil

	case sys.ConfigTypeBlob:
		return name, Blob{}, nil

	default:
		return name, Other{Type: info.Type}, nil
	}
}

// group walks a group's children depth-first via the first/next sibling
// protocol, stopping when the vendor library reports the siblings
// exhausted.
func (d *Device) group(c sys.Config) (Group, error) {
	g := Group{}
	var child sys.Config
	r := d.h.lib.ConfigFirst(&d.dev, &c, &child)
	for {
		if r == sys.ResultEmpty {
			return g, nil
		}
		if err := statusError("config children", r); err != nil {
			return nil, err
		}
		name, item, err := d.node(child)
		if err != nil {
			return nil, err
		}
		g[name] = item
		r = d.h.lib.ConfigNext(&d.dev, &c, &child)
	}
}
