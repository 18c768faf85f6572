// internal/app/system/attachments/attachments.go

// Package attachments delegates song file storage to S3. The server
// never transfers file bytes itself: uploads and downloads happen
// through time-limited presigned URLs, and this package only issues
// authorizations, lists keys, and deletes keys. Keys are derived
// deterministically as "{songID}/{fileName}".
package attachments

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrUnsupportedType is returned for a fileType outside the allow-list.
// The songs routes report it as a 401, matching the rest of the
// authorization failures on the attachment surface.
var ErrUnsupportedType = errors.New("unsupported attachment content type")

// allowedTypes is the MIME allow-list for uploads. The presigned PUT is
// constrained to the requested type, so a client cannot swap the type
// after authorization.
var allowedTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/gif":       true,
	"audio/mpeg":      true,
	"text/plain":      true,
}

// AllowedType reports whether a MIME type may be uploaded.
func AllowedType(fileType string) bool {
	return allowedTypes[strings.ToLower(strings.TrimSpace(fileType))]
}

type objectAPI interface {
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type presignAPI interface {
	PresignPutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Store issues presigned authorizations against one bucket.
type Store struct {
	objects objectAPI
	presign presignAPI
	bucket  string
	expiry  time.Duration
}

// New connects with static credentials. Expiry bounds every issued URL;
// after it passes the storage layer itself rejects the request.
func New(ctx context.Context, region, accessKey, secretKey, bucket string, expiry time.Duration) (*Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("attachment bucket is required")
	}
	if expiry <= 0 {
		expiry = 10 * time.Minute
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &Store{
		objects: client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		expiry:  expiry,
	}, nil
}

// newWithAPIs is the test seam.
func newWithAPIs(objects objectAPI, presign presignAPI, bucket string, expiry time.Duration) *Store {
	return &Store{objects: objects, presign: presign, bucket: bucket, expiry: expiry}
}

// Key derives the object key for a song attachment. Any path components
// in fileName are stripped so a client cannot escape the song's prefix.
func Key(songID, fileName string) string {
	return songID + "/" + path.Base(fileName)
}

// UploadURL issues a presigned PUT for the derived key, constrained to
// the allow-listed content type. Returns the URL and the key.
func (s *Store) UploadURL(ctx context.Context, songID, fileName, fileType string) (string, string, error) {
	if !AllowedType(fileType) {
		return "", "", ErrUnsupportedType
	}
	key := Key(songID, fileName)
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", "", fmt.Errorf("presign upload for %q: %w", key, err)
	}
	return req.URL, key, nil
}

// List returns the user-facing file names under the song's prefix, with
// the "{songID}/" prefix stripped.
func (s *Store) List(ctx context.Context, songID string) ([]string, error) {
	prefix := songID + "/"
	names := []string{}
	var token *string
	for {
		out, err := s.objects.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", prefix, err)
		}
		for _, obj := range out.Contents {
			if obj.Key == nil {
				continue
			}
			name := strings.TrimPrefix(*obj.Key, prefix)
			if name != "" {
				names = append(names, name)
			}
		}
		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		token = out.NextContinuationToken
	}
	return names, nil
}

// DownloadURL issues a presigned GET for one attachment.
func (s *Store) DownloadURL(ctx context.Context, songID, fileName string) (string, error) {
	key := Key(songID, fileName)
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("presign download for %q: %w", key, err)
	}
	return req.URL, nil
}

// Delete removes one attachment key outright.
func (s *Store) Delete(ctx context.Context, songID, fileName string) error {
	key := Key(songID, fileName)
	if _, err := s.objects.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
