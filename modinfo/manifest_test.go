package modinfo

import "testing"

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := Manifest{Package: "example"}

	if err := WriteManifest(dir, want); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}

	got, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestTypeInfoEncode(t *testing.T) {
	ti := TypeInfo{Functions: map[string]string{"add": "(Int, Int) -> Int"}}
	data, err := ti.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if data[len(data)-1] != 0 {
		t.Fatalf("Encode did not NUL-terminate")
	}

	got, err := decodeTypeInfo(string(data[:len(data)-1]))
	if err != nil {
		t.Fatalf("decodeTypeInfo: %v", err)
	}
	if got.Functions["add"] != ti.Functions["add"] {
		t.Errorf("got %+v, want %+v", got, ti)
	}
}
