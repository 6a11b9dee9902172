package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestStripExtension(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "photo.jpg", want: "photo"},
		{name: "multiple_dots", in: "floor.plan.v2.pdf", want: "floor.plan.v2"},
		{name: "no_extension", in: "README", want: "README"},
		{name: "leading_dot_only", in: ".env", want: ".env"},
		{name: "empty", in: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := stripExtension(tc.in)
			if got != tc.want {
				t.Fatalf("stripExtension(%q)=%q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeObjectName(t *testing.T) {
	got := sanitizeObjectName("scans/march/door.png")
	if got != "scans_march_door.png" {
		t.Fatalf("sanitizeObjectName: got %q", got)
	}
}

func TestIntakeObjectKeyShape(t *testing.T) {
	itemID := uuid.New()
	key := intakeObjectKey(itemID, "door hinge.png")

	if !strings.HasPrefix(key, "intake/"+itemID.String()+"/") {
		t.Fatalf("key %q missing item prefix", key)
	}
	if !strings.HasSuffix(key, "-door hinge.png") {
		t.Fatalf("key %q missing original filename suffix", key)
	}
	if strings.Count(key, "/") != 2 {
		t.Fatalf("key %q should have exactly two path segments before the object name", key)
	}
}

func TestAssetObjectKeysAreUniquePerCall(t *testing.T) {
	assetID := uuid.New()
	first := assetObjectKey(assetID, "door.png")
	second := assetObjectKey(assetID, "door.png")
	if first == second {
		t.Fatalf("expected distinct keys for repeated uploads of the same filename, got %q twice", first)
	}
}
