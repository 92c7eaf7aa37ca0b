package eagle

import "fmt"

// ResolvedPart holds the concrete entities named by a part's selection
// chain. The contained maps are shared with the schematic's model and must
// be treated as read-only.
type ResolvedPart struct {
	Part       *Part
	Library    *Library
	DeviceSet  DeviceSet
	Device     Device
	Technology Technology
}

// ResolvePart walks a part's selection chain: library ref into the
// schematic's libraries, then device set, device and technology by name.
// Each missing step fails with ErrUnresolvedReference naming the segment.
// Parsing never performs this lookup; a schematic is allowed to reference
// libraries that were not embedded alongside it.
func (s *Schematic) ResolvePart(p *Part) (*ResolvedPart, error) {
	lib, ok := s.Libraries[p.LibraryRef()]
	if !ok {
		return nil, fmt.Errorf("%w: part %q: library %q (urn %q) is not loaded",
			ErrUnresolvedReference, p.Name, p.Library, p.LibraryURN)
	}
	ds, ok := lib.DeviceSets[p.DeviceSet]
	if !ok {
		return nil, fmt.Errorf("%w: part %q: deviceset %q not in library %q",
			ErrUnresolvedReference, p.Name, p.DeviceSet, p.Library)
	}
	device, ok := ds.Devices[p.Device]
	if !ok {
		return nil, fmt.Errorf("%w: part %q: device %q not in deviceset %q",
			ErrUnresolvedReference, p.Name, p.Device, p.DeviceSet)
	}
	tech, ok := device.Technologies[p.Technology]
	if !ok {
		return nil, fmt.Errorf("%w: part %q: technology %q not in device %q of deviceset %q",
			ErrUnresolvedReference, p.Name, p.Technology, p.Device, p.DeviceSet)
	}
	return &ResolvedPart{
		Part:       p,
		Library:    lib,
		DeviceSet:  ds,
		Device:     device,
		Technology: tech,
	}, nil
}

// EffectiveAttributes overlays the part's instance attributes onto the
// resolved technology's attribute set; the part's value wins on collision.
// The result is a fresh copy: technologies are shared by every part that
// selects them and are never mutated.
func (r *ResolvedPart) EffectiveAttributes() map[string]string {
	out := make(map[string]string, len(r.Technology.Attributes)+len(r.Part.Attributes))
	for k, v := range r.Technology.Attributes {
		out[k] = v
	}
	for k, v := range r.Part.Attributes {
		out[k] = v
	}
	return out
}

// Name renders the resolved part's compound device name.
func (r *ResolvedPart) Name() string {
	var tech *string
	if r.Technology.Name != "" {
		tech = &r.Technology.Name
	}
	return FormatDeviceName(r.DeviceSet.Name, &r.Device.Name, tech)
}
