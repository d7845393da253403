package library

import "testing"

func TestExifBagString(t *testing.T) {
	bag := ExifBag{
		GroupTIFF: {TagModel: "iPhone 15 Pro"},
		GroupExif: {TagLensModel: 42}, // wrong type
		"Empty":   nil,
	}

	tests := []struct {
		name       string
		group, tag string
		expected   string
		ok         bool
	}{
		{"present", GroupTIFF, TagModel, "iPhone 15 Pro", true},
		{"wrong type", GroupExif, TagLensModel, "", false},
		{"missing tag", GroupTIFF, "Make", "", false},
		{"missing group", GroupGPS, TagAltitude, "", false},
		{"nil group map", "Empty", "x", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := bag.String(tc.group, tc.tag)
			if got != tc.expected || ok != tc.ok {
				t.Errorf("String(%q, %q) = (%q, %v); want (%q, %v)",
					tc.group, tc.tag, got, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestExifBagFloat(t *testing.T) {
	bag := ExifBag{
		GroupGPS: {
			TagAltitude: 312.5,
			TagSpeed:    "12.4",
			"Course":    int64(270),
			"Satellite": "not-a-number",
			"Null":      nil,
		},
	}

	tests := []struct {
		name       string
		group, tag string
		expected   float64
		ok         bool
	}{
		{"float64", GroupGPS, TagAltitude, 312.5, true},
		{"numeric string", GroupGPS, TagSpeed, 12.4, true},
		{"int64", GroupGPS, "Course", 270, true},
		{"garbage string", GroupGPS, "Satellite", 0, false},
		{"nil value", GroupGPS, "Null", 0, false},
		{"missing", GroupGPS, "Heading", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := bag.Float(tc.group, tc.tag)
			if got != tc.expected || ok != tc.ok {
				t.Errorf("Float(%q, %q) = (%f, %v); want (%f, %v)",
					tc.group, tc.tag, got, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestExifBagNil(t *testing.T) {
	var bag ExifBag

	if _, ok := bag.String(GroupTIFF, TagModel); ok {
		t.Error("nil bag should report absence for String")
	}
	if _, ok := bag.Float(GroupGPS, TagAltitude); ok {
		t.Error("nil bag should report absence for Float")
	}
}
