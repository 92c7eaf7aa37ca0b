package eagle

import (
	"fmt"
	"io"
	"os"

	"github.com/drakedevel/eagle-tools/pkg/eagle/xmltree"
)

// ParseFile reads and parses an EAGLE document from a file.
func ParseFile(filename string, opts ...Option) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file, opts...)
}

// Parse reads and parses an EAGLE document from r.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := xmltree.Parse(r)
	if err != nil {
		return nil, err
	}
	return ParseTree(root, opts...)
}

// ParseTree classifies an already-read document tree and builds the
// matching model. The drawing is probed for board, library and schematic
// content in that order.
func ParseTree(root *xmltree.Node, opts ...Option) (*Document, error) {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}

	if root.Tag != "eagle" {
		return nil, fmt.Errorf("%w: root element <%s>", ErrNotEagleDocument, root.Tag)
	}
	version, _ := root.Attr("version")

	if n := root.Find("drawing", "board"); n != nil {
		board, err := parseBoard(n)
		if err != nil {
			return nil, err
		}
		return &Document{Kind: KindBoard, Version: version, Board: board}, nil
	}
	if n := root.Find("drawing", "library"); n != nil {
		lib, err := parseLibrary(cfg, n)
		if err != nil {
			return nil, err
		}
		return &Document{Kind: KindLibrary, Version: version, Library: lib}, nil
	}
	if n := root.Find("drawing", "schematic"); n != nil {
		sch, err := parseSchematic(cfg, n)
		if err != nil {
			return nil, err
		}
		return &Document{Kind: KindSchematic, Version: version, Schematic: sch}, nil
	}
	return nil, fmt.Errorf("%w: drawing holds no board, library or schematic", ErrUnrecognizedDocument)
}

func parseBoard(n *xmltree.Node) (*Board, error) {
	return nil, fmt.Errorf("%w: board documents", ErrUnsupported)
}

func parseLibrary(cfg config, n *xmltree.Node) (*Library, error) {
	lib := &Library{src: n}
	if name, ok := n.Attr("name"); ok {
		lib.Name = &name
	}
	lib.URN, _ = n.Attr("urn")
	lib.Description = textAt(n, "description")

	var err error
	if lib.Packages, err = parseMap(cfg, n, []string{"packages", "package"}, rawNode); err != nil {
		return nil, err
	}
	if lib.Symbols, err = parseMap(cfg, n, []string{"symbols", "symbol"}, rawNode); err != nil {
		return nil, err
	}
	lib.DeviceSets, err = parseMap(cfg, n, []string{"devicesets", "deviceset"}, func(c *xmltree.Node) (DeviceSet, error) {
		return parseDeviceSet(cfg, c)
	})
	if err != nil {
		return nil, err
	}
	return lib, nil
}

func parseDeviceSet(cfg config, n *xmltree.Node) (DeviceSet, error) {
	name, err := requireAttr(n, "name")
	if err != nil {
		return DeviceSet{}, err
	}
	prefix, _ := n.Attr("prefix")

	userValueTok, ok := n.Attr("uservalue")
	userValue, err := decodeBool(userValueTok, ok, boolPtr(false))
	if err != nil {
		return DeviceSet{}, fmt.Errorf("deviceset %q uservalue: %w", name, err)
	}

	ds := DeviceSet{
		Name:        name,
		Prefix:      prefix,
		UserValue:   userValue,
		Description: textAt(n, "description"),
	}
	if ds.Gates, err = parseMap(cfg, n, []string{"gates", "gate"}, rawNode); err != nil {
		return DeviceSet{}, err
	}

	// Variants live under the nested <devices> scope. The schema reuses the
	// device vocabulary at both levels, so this must not go through the
	// name-keyed extractor used for devicesets: a variant's name attribute
	// is optional and defaults to the empty string.
	variantNodes := n.FindAll("devices", "device")
	ds.Devices = make(map[string]Device, len(variantNodes))
	for _, vn := range variantNodes {
		variantName, _ := vn.Attr("name")
		if cfg.strictNames {
			if _, dup := ds.Devices[variantName]; dup {
				return DeviceSet{}, fmt.Errorf("%w: <device> %q in deviceset %q", ErrDuplicateName, variantName, name)
			}
		}
		device, err := parseDevice(cfg, vn)
		if err != nil {
			return DeviceSet{}, fmt.Errorf("deviceset %q: %w", name, err)
		}
		ds.Devices[variantName] = device
	}
	// The unnamed variant stands for "the device set's single device"; a
	// document mixing it with named variants is malformed. Enforced in
	// strict mode only, like the duplicate-name checks.
	if cfg.strictNames && len(ds.Devices) > 1 {
		if _, unnamed := ds.Devices[""]; unnamed {
			return DeviceSet{}, fmt.Errorf("deviceset %q: the unnamed variant must be its only variant", name)
		}
	}
	return ds, nil
}

func parseDevice(cfg config, n *xmltree.Node) (Device, error) {
	device := Device{}
	device.Name, _ = n.Attr("name")
	if pkg, ok := n.Attr("package"); ok {
		device.Package = &pkg
	}

	var err error
	device.Technologies, err = parseMap(cfg, n, []string{"technologies", "technology"}, func(c *xmltree.Node) (Technology, error) {
		return parseTechnology(cfg, c)
	})
	if err != nil {
		return Device{}, err
	}
	return device, nil
}

func parseTechnology(cfg config, n *xmltree.Node) (Technology, error) {
	name, err := requireAttr(n, "name")
	if err != nil {
		return Technology{}, err
	}
	attrs, err := attrMap(cfg, n)
	if err != nil {
		return Technology{}, err
	}
	return Technology{Name: name, Attributes: attrs}, nil
}

func parseSchematic(cfg config, n *xmltree.Node) (*Schematic, error) {
	sch := &Schematic{
		Description: textAt(n, "description"),
	}

	libraryNodes := n.FindAll("libraries", "library")
	sch.Libraries = make(map[LibraryRef]*Library, len(libraryNodes))
	for _, ln := range libraryNodes {
		lib, err := parseLibrary(cfg, ln)
		if err != nil {
			return nil, err
		}
		ref, err := lib.Ref()
		if err != nil {
			return nil, fmt.Errorf("embedded library: %w", err)
		}
		if cfg.strictNames {
			if _, dup := sch.Libraries[ref]; dup {
				return nil, fmt.Errorf("%w: <library> %q", ErrDuplicateName, ref.Name)
			}
		}
		sch.Libraries[ref] = lib
	}

	parts, err := parseMap(cfg, n, []string{"parts", "part"}, func(c *xmltree.Node) (*Part, error) {
		return parsePart(cfg, c)
	})
	if err != nil {
		return nil, err
	}
	sch.Parts = parts
	return sch, nil
}

func parsePart(cfg config, n *xmltree.Node) (*Part, error) {
	part := &Part{}

	var err error
	if part.Name, err = requireAttr(n, "name"); err != nil {
		return nil, err
	}
	if part.Library, err = requireAttr(n, "library"); err != nil {
		return nil, fmt.Errorf("part %q: %w", part.Name, err)
	}
	if part.DeviceSet, err = requireAttr(n, "deviceset"); err != nil {
		return nil, fmt.Errorf("part %q: %w", part.Name, err)
	}
	if part.Device, err = requireAttr(n, "device"); err != nil {
		return nil, fmt.Errorf("part %q: %w", part.Name, err)
	}

	part.LibraryURN, _ = n.Attr("library_urn")
	part.Technology, _ = n.Attr("technology")
	if value, ok := n.Attr("value"); ok {
		part.Value = &value
	}

	if part.Attributes, err = attrMap(cfg, n); err != nil {
		return nil, fmt.Errorf("part %q: %w", part.Name, err)
	}
	return part, nil
}
