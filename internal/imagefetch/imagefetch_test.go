package imagefetch

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
)

func TestFromDataURL(t *testing.T) {
	raw := []byte("image-bytes")
	encoded := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{"data url", "data:image/png;base64," + encoded, raw, false},
		{"bare base64", encoded, raw, false},
		{"unpadded base64", base64.RawStdEncoding.EncodeToString(raw), raw, false},
		{"surrounding whitespace", "  " + encoded + "  ", raw, false},
		{"empty", "", nil, true},
		{"data url without comma", "data:image/png;base64", nil, true},
		{"not base64", "!!definitely not!!", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromDataURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromDataURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !bytes.Equal(got, tt.want) {
				t.Errorf("FromDataURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitGCSURI(t *testing.T) {
	tests := []struct {
		name       string
		uri        string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{"valid", "gs://proofs/2024/receipt.png", "proofs", "2024/receipt.png", false},
		{"no scheme", "proofs/receipt.png", "", "", true},
		{"bucket only", "gs://proofs", "", "", true},
		{"empty object", "gs://proofs/", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, object, err := splitGCSURI(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitGCSURI(%q) error = %v, wantErr %v", tt.uri, err, tt.wantErr)
			}
			if bucket != tt.wantBucket || object != tt.wantObject {
				t.Errorf("splitGCSURI(%q) = (%q, %q), want (%q, %q)",
					tt.uri, bucket, object, tt.wantBucket, tt.wantObject)
			}
		})
	}
}

func TestLoad_LocalFile(t *testing.T) {
	raw := []byte("local image")
	path := filepath.Join(t.TempDir(), "receipt.png")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Errorf("Load() = %q, want %q", got, raw)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_DataURL(t *testing.T) {
	raw := []byte("payload")
	ref := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	got, err := Load(context.Background(), ref)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Errorf("Load() = %q, want %q", got, raw)
	}
}
