package cos

import (
	"context"
	"fmt"
	"strings"

	"foley-demo-prep/internal"
)

// ResolutionSource says which strategy produced a URL.
type ResolutionSource string

const (
	SourceSigned ResolutionSource = "signed"
	SourcePublic ResolutionSource = "public"
)

// Resolution is the outcome of resolving one object path to a URL.
// SignErr is set only when the signer failed and the public URL was used.
type Resolution struct {
	URL     string
	Source  ResolutionSource
	SignErr error
}

// Resolver turns a remote object path into a URL: signed when the signer
// cooperates, otherwise the deterministic public bucket URL. The fallback
// only works for objects with public read access, which is what the demo
// bucket historically allowed.
type Resolver struct {
	signer Signer
	bucket string
	region string
}

func NewResolver(cfg internal.Config, signer Signer) *Resolver {
	return &Resolver{signer: signer, bucket: cfg.COSBucket, region: cfg.COSRegion}
}

func (r *Resolver) Resolve(ctx context.Context, remotePath string) Resolution {
	url, err := r.signer.SignURL(ctx, remotePath)
	if err != nil {
		return Resolution{
			URL:     PublicURL(r.bucket, r.region, remotePath),
			Source:  SourcePublic,
			SignErr: err,
		}
	}
	return Resolution{URL: url, Source: SourceSigned}
}

// PublicURL builds the unauthenticated COS object URL:
// https://<bucket>.cos.<region>.myqcloud.com/<path>.
func PublicURL(bucket, region, remotePath string) string {
	return fmt.Sprintf("https://%s.cos.%s.myqcloud.com/%s", bucket, region, remotePath)
}

// ExtractRemotePaths recovers object paths from previously stored URLs by
// cutting each URL at the demo path marker. URLs that don't contain the
// marker (hand-edited or foreign entries) are left out.
func ExtractRemotePaths(urls map[string]string, marker string) map[string]string {
	paths := make(map[string]string)
	for name, u := range urls {
		_, after, ok := strings.Cut(u, "/"+marker)
		if !ok {
			continue
		}
		paths[name] = marker + after
	}
	return paths
}
