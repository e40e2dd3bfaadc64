package ingest

import (
	"context"
	"fmt"
	"net/http"
)

// metadataUserKey is the blob metadata header carrying the uploader's id,
// attached by the client when it PUTs through the signed upload URL.
const metadataUserKey = "x-ms-meta-userid"

// BlobMetadataOwner resolves the owning identity from metadata stored on
// the uploaded object itself. The storage-event trigger has no live
// caller, so the userid tag is the only link back to a user; its absence
// is terminal before any parsing begins.
func BlobMetadataOwner(blobURL string) OwnerResolver {
	return func(ctx context.Context) (Identity, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, blobURL, nil)
		if err != nil {
			return Identity{}, &SourceError{URL: blobURL, Err: err}
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return Identity{}, &SourceError{URL: blobURL, Err: err}
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return Identity{}, &SourceError{URL: blobURL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
		}

		userId := resp.Header.Get(metadataUserKey)
		if userId == "" {
			return Identity{}, fmt.Errorf("blob %s has no %s metadata", blobURL, metadataUserKey)
		}
		return Identity{ID: userId}, nil
	}
}
