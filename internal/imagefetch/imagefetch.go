// Package imagefetch loads receipt and proof images from the places callers
// reference them: GCS URIs, data URLs, bare base64 payloads and local paths.
package imagefetch

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// FromGCS downloads the object bytes behind a "gs://bucket/path" URI.
// It assumes Application Default Credentials are configured.
func FromGCS(ctx context.Context, gcsURI string) ([]byte, error) {
	bucketName, objectPath, err := splitGCSURI(gcsURI)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("imagefetch: creating storage client: %w", err)
	}
	defer client.Close()

	return readObject(ctx, client, bucketName, objectPath)
}

// FromPublicGCS is FromGCS without credentials, for world-readable buckets.
func FromPublicGCS(ctx context.Context, gcsURI string) ([]byte, error) {
	bucketName, objectPath, err := splitGCSURI(gcsURI)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx, option.WithoutAuthentication())
	if err != nil {
		return nil, fmt.Errorf("imagefetch: creating storage client: %w", err)
	}
	defer client.Close()

	return readObject(ctx, client, bucketName, objectPath)
}

func readObject(ctx context.Context, client *storage.Client, bucketName, objectPath string) ([]byte, error) {
	rc, err := client.Bucket(bucketName).Object(objectPath).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("imagefetch: reading object %s/%s: %w", bucketName, objectPath, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("imagefetch: reading bytes: %w", err)
	}
	return data, nil
}

func splitGCSURI(gcsURI string) (bucket, object string, err error) {
	if !strings.HasPrefix(gcsURI, "gs://") {
		return "", "", fmt.Errorf("imagefetch: invalid GCS URI: %s", gcsURI)
	}
	trimmed := strings.TrimPrefix(gcsURI, "gs://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", "", fmt.Errorf("imagefetch: invalid GCS URI (no object path): %s", gcsURI)
	}
	return parts[0], parts[1], nil
}

// FromDataURL decodes a base64 image payload. A data-URL scheme marker
// ("data:image/png;base64,....") is stripped before decoding; a bare base64
// string is accepted as-is.
func FromDataURL(encoded string) ([]byte, error) {
	s := strings.TrimSpace(encoded)
	if s == "" {
		return nil, fmt.Errorf("imagefetch: empty image payload")
	}
	if strings.HasPrefix(s, "data:") {
		idx := strings.Index(s, ",")
		if idx == -1 {
			return nil, fmt.Errorf("imagefetch: malformed data URL")
		}
		s = s[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		// Some producers omit padding.
		data, err = base64.RawStdEncoding.DecodeString(s)
	}
	if err != nil {
		return nil, fmt.Errorf("imagefetch: decode base64: %w", err)
	}
	return data, nil
}

// Load dispatches on the reference format: GCS URI, data URL, or local file
// path.
func Load(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case strings.HasPrefix(ref, "gs://"):
		return FromGCS(ctx, ref)
	case strings.HasPrefix(ref, "data:"):
		return FromDataURL(ref)
	default:
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("imagefetch: read file %q: %w", ref, err)
		}
		return data, nil
	}
}
