package gotemplate

import (
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"
)

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("inputtype") {
		_ = pongo2.RegisterFilter("inputtype", filterInputType)
	}
	if !pongo2.FilterExists("bytesize") {
		_ = pongo2.RegisterFilter("bytesize", filterByteSize)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterInputType maps a widget name onto the HTML input type attribute.
func filterInputType(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	switch in.String() {
	case "email", "tel", "date", "number", "file", "radio":
		return pongo2.AsValue(in.String()), nil
	default:
		return pongo2.AsValue("text"), nil
	}
}

func filterByteSize(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	size := in.Integer()
	switch {
	case size >= 1<<20:
		return pongo2.AsValue(formatUnit(size, 1<<20, "MB")), nil
	case size >= 1<<10:
		return pongo2.AsValue(formatUnit(size, 1<<10, "KB")), nil
	default:
		return pongo2.AsValue(formatUnit(size, 1, "B")), nil
	}
}

func formatUnit(size, unit int, suffix string) string {
	whole := size / unit
	tenth := (size % unit) * 10 / unit
	if unit == 1 || tenth == 0 {
		return strconv.Itoa(whole) + " " + suffix
	}
	return strconv.Itoa(whole) + "." + strconv.Itoa(tenth) + " " + suffix
}
