package storage

import (
	"context"
	"fmt"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// uploadURLTTL is how long an issued upload URL stays valid.
const uploadURLTTL = 15 * time.Minute

// UploadGrant is a time-limited upload URL paired with the public delivery
// URL the asset will be served from once uploaded.
type UploadGrant struct {
	UploadURL  string `json:"upload_url"`
	PublicURL  string `json:"public_url"`
	ResourceID string `json:"resource_id"`
}

// Uploader issues signed upload URLs against the application's object
// storage bucket.
type Uploader struct {
	client *gcs.Client
	bucket string
}

// NewUploader creates an Uploader for the given bucket
func NewUploader(ctx context.Context, bucket string) (*Uploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("upload bucket not configured")
	}
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing storage client: %w", err)
	}
	return &Uploader{client: client, bucket: bucket}, nil
}

// IssueUploadURL returns a signed PUT URL scoped to the owner's namespace
// plus the public URL the object will be readable at.
func (u *Uploader) IssueUploadURL(ctx context.Context, ownerID, contentType string) (*UploadGrant, error) {
	resourceID := uuid.NewString()
	object := fmt.Sprintf("uploads/%s/%s", ownerID, resourceID)

	signedURL, err := u.client.Bucket(u.bucket).SignedURL(object, &gcs.SignedURLOptions{
		Method:      "PUT",
		Expires:     time.Now().Add(uploadURLTTL),
		ContentType: contentType,
		Scheme:      gcs.SigningSchemeV4,
	})
	if err != nil {
		return nil, fmt.Errorf("error signing upload URL: %w", err)
	}

	return &UploadGrant{
		UploadURL:  signedURL,
		PublicURL:  fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, object),
		ResourceID: resourceID,
	}, nil
}

// Close releases the underlying storage client
func (u *Uploader) Close() error {
	return u.client.Close()
}
