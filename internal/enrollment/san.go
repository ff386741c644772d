package enrollment

import (
	"slices"
	"strings"
)

// BuildSANList applies the multi domain policy and returns the comma joined SAN list.
// A single domain certificate keeps the common name when it is the only SAN;
// a multi domain certificate never repeats the common name.
func BuildSANList(commonName string, sans []string, multiDomain bool) string {
	all := make([]string, 0, len(sans))
	for _, san := range sans {
		if san = strings.TrimSpace(san); san != "" {
			all = append(all, san)
		}
	}

	if commonName != "" && slices.Contains(all, commonName) {
		if multiDomain || len(all) > 1 {
			all = slices.DeleteFunc(all, func(s string) bool { return s == commonName })
		}
	}

	return strings.Join(all, ",")
}
