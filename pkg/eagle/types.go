// Package eagle parses EAGLE CAD documents (libraries, schematics, boards)
// into a typed model and resolves schematic part references against the
// libraries embedded alongside them.
//
// The model uses EAGLE's own vocabulary: a device set (<deviceset>) is a
// schematic part type, each of its devices (<device>) is one concrete
// package variant, and each technology (<technology>) is a
// manufacturing-specific attribute set under a device.
package eagle

import (
	"github.com/drakedevel/eagle-tools/pkg/eagle/xmltree"
)

// DocumentKind identifies which content a parsed document holds.
type DocumentKind int

const (
	KindBoard DocumentKind = iota
	KindLibrary
	KindSchematic
)

func (k DocumentKind) String() string {
	switch k {
	case KindBoard:
		return "board"
	case KindLibrary:
		return "library"
	case KindSchematic:
		return "schematic"
	}
	return "unknown"
}

// Document is the result of parsing one EAGLE file. Exactly one of the
// payload fields matching Kind is non-nil; callers switch on Kind.
type Document struct {
	Kind    DocumentKind
	Version string // root version attribute, read through unvalidated

	Board     *Board
	Library   *Library
	Schematic *Schematic
}

// Board is a placeholder: board documents are recognized by the classifier
// but never constructed.
type Board struct{}

// LibraryRef identifies a library by name plus optional URN. Two refs are
// the same library only if both fields match; an empty URN is a distinct
// identity from any non-empty one.
type LibraryRef struct {
	Name string
	URN  string
}

// Technology is a manufacturing variant of a device, carrying its
// attribute overrides (part numbers, markings, tolerance grades).
type Technology struct {
	Name       string
	Attributes map[string]string
}

// Device is one concrete package variant of a device set. Name may be the
// empty string: the format permits device sets with a single unnamed
// variant.
type Device struct {
	Name         string
	Package      *string
	Technologies map[string]Technology
}

// DeviceSet is a schematic part type: prefix, value policy, gate layout and
// the package variants it comes in.
type DeviceSet struct {
	Name        string
	Prefix      string
	UserValue   bool
	Description *string
	Gates       map[string]*xmltree.Node
	Devices     map[string]Device
}

// Library is a named collection of packages, symbols and device sets.
// Name is nil when the source element carries no name attribute, as is the
// case for standalone library documents.
type Library struct {
	Name        *string
	URN         string
	Description *string
	Packages    map[string]*xmltree.Node
	Symbols     map[string]*xmltree.Node
	DeviceSets  map[string]DeviceSet

	src *xmltree.Node
}

// Ref derives the library's identity key. Deriving a ref from a nameless
// library fails with ErrMissingIdentity.
func (l *Library) Ref() (LibraryRef, error) {
	if l.Name == nil {
		return LibraryRef{}, ErrMissingIdentity
	}
	return LibraryRef{Name: *l.Name, URN: l.URN}, nil
}

// Source returns the element the library was parsed from, for consumers
// that re-serialize it (library extraction).
func (l *Library) Source() *xmltree.Node {
	return l.src
}

// Part is a schematic component instance. Library, DeviceSet and Device
// name the selection; the referenced entities are looked up lazily via
// Schematic.ResolvePart, never held directly.
type Part struct {
	Name       string
	Library    string
	LibraryURN string
	DeviceSet  string
	Device     string
	Technology string
	Value      *string
	Attributes map[string]string
}

// LibraryRef is the key under which the part's library appears in the
// schematic's library mapping.
func (p *Part) LibraryRef() LibraryRef {
	return LibraryRef{Name: p.Library, URN: p.LibraryURN}
}

// Schematic is a parsed schematic document: its embedded libraries keyed by
// ref and its part instances keyed by name.
type Schematic struct {
	Description *string
	Libraries   map[LibraryRef]*Library
	Parts       map[string]*Part
}
