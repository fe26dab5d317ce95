// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides an S3-compatible object storage client for
// uploading, deleting, and serving media files. It wraps the AWS SDK v2
// and is configured for path-style access (required by CEPH/Hetzner).
// Every call runs under a bounded timeout with a few retries so a slow
// storage backend fails a request instead of hanging it.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sethvargo/go-retry"
)

const (
	// opTimeout bounds a single storage attempt.
	opTimeout = 5 * time.Second

	// maxRetries is the number of additional attempts after the first.
	maxRetries = 3
)

// Client wraps an S3 client for media operations on the public bucket.
type Client struct {
	s3        *s3.Client
	bucket    string
	endpoint  string
	publicURL string // optional CDN/direct URL for public files
	folder    string // key prefix for uploads
}

// New creates an S3 storage client configured for CEPH/Hetzner with
// path-style addressing. Returns (nil, nil) if endpoint or credentials
// are empty, allowing the app to start without storage.
func New(endpoint, region, accessKey, secretKey, bucket, publicURL, folder string) (*Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}

	// Strip trailing slash from endpoint for consistent URL building.
	endpoint = strings.TrimRight(endpoint, "/")

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:        s3Client,
		bucket:    bucket,
		endpoint:  endpoint,
		publicURL: strings.TrimRight(publicURL, "/"),
		folder:    strings.Trim(folder, "/"),
	}, nil
}

// withRetry runs op under the timeout/retry policy. Fibonacci backoff
// starting at 250ms keeps total worst-case latency under a second or two.
func withRetry(ctx context.Context, op func(context.Context) error) error {
	backoff := retry.WithMaxRetries(maxRetries, retry.NewFibonacci(250*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		opCtx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()
		if err := op(opCtx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

// Key builds the object key for an uploaded file, under the configured
// folder prefix.
func (c *Client) Key(filename string) string {
	if c.folder == "" {
		return filename
	}
	return c.folder + "/" + filename
}

// Upload stores an object with a public-read ACL so it can be served
// directly from the bucket. Body must be seekable for retries, so callers
// pass the buffered upload bytes through a bytes.Reader.
func (c *Client) Upload(ctx context.Context, key, contentType string, body io.ReadSeeker, size int64) error {
	err := withRetry(ctx, func(ctx context.Context) error {
		if _, err := body.Seek(0, io.SeekStart); err != nil {
			return err
		}
		_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(c.bucket),
			Key:           aws.String(key),
			Body:          body,
			ContentLength: aws.Int64(size),
			ContentType:   aws.String(contentType),
			ACL:           s3types.ObjectCannedACLPublicRead,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s: %w", key, err)
	}
	return nil
}

// Delete removes an object from the bucket.
func (c *Client) Delete(ctx context.Context, key string) error {
	err := withRetry(ctx, func(ctx context.Context) error {
		_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(c.bucket),
			Key:    aws.String(key),
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}

// FileURL returns the public URL for an object key.
// Uses the configured public URL if set, otherwise builds a path-style URL.
func (c *Client) FileURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.bucket + "/" + key
}

// ExtractKey extracts the object key from a public file URL.
// Returns the key and true if the URL matches the storage URL pattern,
// or ("", false) if it doesn't belong to this storage.
func (c *Client) ExtractKey(rawURL string) (string, bool) {
	// Try publicURL prefix first (CDN or custom domain).
	if c.publicURL != "" {
		prefix := c.publicURL + "/"
		if strings.HasPrefix(rawURL, prefix) {
			return rawURL[len(prefix):], true
		}
	}

	// Try endpoint/bucket prefix (path-style S3).
	prefix := c.endpoint + "/" + c.bucket + "/"
	if strings.HasPrefix(rawURL, prefix) {
		return rawURL[len(prefix):], true
	}

	return "", false
}
