package eagle

import "strings"

// FormatDeviceName builds the human-readable compound name of a concrete
// device from its device set name. A "?" placeholder is replaced by the
// device (variant) name and a "*" placeholder by the technology name; when
// a name is supplied but its placeholder is absent, the name is appended
// instead. Nil means not supplied and leaves the result untouched.
func FormatDeviceName(deviceSet string, device, technology *string) string {
	result := deviceSet
	if device != nil {
		if strings.Contains(result, "?") {
			result = strings.ReplaceAll(result, "?", *device)
		} else {
			result += *device
		}
	}
	if technology != nil {
		if strings.Contains(result, "*") {
			result = strings.ReplaceAll(result, "*", *technology)
		} else {
			result += *technology
		}
	}
	return result
}
