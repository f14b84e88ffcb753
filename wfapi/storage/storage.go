package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"code.cloudfoundry.org/lager/v3"
	"code.cloudfoundry.org/lager/v3/lagerctx"
	"github.com/cenkalti/backoff/v5"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/gx4ki/middlelayer/wfapi"
)

// ErrObjectNotFound reports a key with no stored object behind it.
var ErrObjectNotFound = errors.New("object not found")

const (
	presignExpiry        = 15 * time.Minute
	ensureBucketAttempts = 5
)

// UserBucket names the result bucket all of a user's objects live in.
func UserBucket(user string) string {
	return user + "-storage"
}

// Key layout inside the result bucket. Inputs are staged per service;
// outputs land under the workflow that produced them.

func InputKey(serviceID, resource string) string {
	return serviceID + "/inputs/" + resource
}

func InputPrefix(serviceID string) string {
	return serviceID + "/inputs/"
}

func OutputPrefix(serviceID string) string {
	return serviceID + "/outputs/"
}

// DestinationPath is the key prefix handed to the data side-car; it uploads
// each result file directly beneath it.
func DestinationPath(serviceID, workflowID string) string {
	return serviceID + "/outputs/" + workflowID
}

func ResultPrefix(serviceID, workflowID string) string {
	return DestinationPath(serviceID, workflowID) + "/"
}

func ResultKey(serviceID, workflowID, file string) string {
	return ResultPrefix(serviceID, workflowID) + file
}

// Config carries the object-store connection settings, one to one with the
// minio section of the configuration file.
type Config struct {
	Endpoint  string `long:"endpoint" ini-name:"endpoint" env:"MINIO_ENDPOINT" description:"Object store host:port."`
	AccessKey string `long:"access-key" ini-name:"access_key" env:"MINIO_ACCESS_KEY" description:"Object store access key."`
	SecretKey string `long:"secret-key" ini-name:"secret_key" env:"MINIO_SECRET_KEY" description:"Object store secret key."`
	Secure    bool   `long:"secure" ini-name:"secure" env:"MINIO_SECURE" description:"Use TLS for object store connections."`
}

// Object describes one stored object under the result bucket.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Store is the object-store side of the control plane: the per-user result
// bucket that inputs are staged in and exported outputs land in.
type Store struct {
	client *minio.Client
	cfg    Config
	bucket string
}

// NewStore builds a client for the user's result bucket. No connection is
// made here; call EnsureBucket before serving requests.
func NewStore(cfg Config, user string) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("create object store client: %w", err)
	}

	return &Store{
		client: client,
		cfg:    cfg,
		bucket: UserBucket(user),
	}, nil
}

// Bucket returns the name of the result bucket.
func (s *Store) Bucket() string {
	return s.bucket
}

// Credentials returns the connection settings in the shape the data side-car
// expects inside a WorkflowStoreInfo.
func (s *Store) Credentials() wfapi.StoreCredentials {
	return wfapi.StoreCredentials{
		Endpoint:  s.cfg.Endpoint,
		AccessKey: s.cfg.AccessKey,
		SecretKey: s.cfg.SecretKey,
		Secure:    s.cfg.Secure,
	}
}

// EnsureBucket creates the result bucket if it does not exist yet, retrying
// with exponential backoff so a concurrently starting object store does not
// fail the whole startup.
func (s *Store) EnsureBucket(ctx context.Context) error {
	logger := lagerctx.FromContext(ctx).Session("ensure-bucket", lager.Data{
		"bucket": s.bucket,
	})

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			logger.Error("bucket-exists-failed", err)
			return struct{}{}, err
		}
		if exists {
			return struct{}{}, nil
		}
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			logger.Error("make-bucket-failed", err)
			return struct{}{}, err
		}
		logger.Info("created")
		return struct{}{}, nil
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(ensureBucketAttempts))
	if err != nil {
		return fmt.Errorf("ensure bucket %q: %w", s.bucket, err)
	}

	return nil
}

// PutObject stores the reader's content under key. size may be -1 when
// unknown; the client then falls back to multipart streaming.
func (s *Store) PutObject(ctx context.Context, key string, data io.Reader, size int64, contentType string) error {
	logger := lagerctx.FromContext(ctx).Session("put-object", lager.Data{
		"key": key,
	})

	info, err := s.client.PutObject(ctx, s.bucket, key, data, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		logger.Error("failed", err)
		return fmt.Errorf("put object %q: %w", key, err)
	}

	logger.Debug("stored", lager.Data{"bytes": info.Size})
	return nil
}

// GetObject reads the full content stored under key. A missing object
// surfaces as ErrObjectNotFound.
func (s *Store) GetObject(ctx context.Context, key string) ([]byte, error) {
	logger := lagerctx.FromContext(ctx).Session("get-object", lager.Data{
		"key": key,
	})

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		logger.Error("failed", err)
		return nil, classify("get object", key, err)
	}
	defer obj.Close()

	// the client defers the request until the first read, so a missing key
	// only shows up here
	data, err := io.ReadAll(obj)
	if err != nil {
		logger.Error("read-failed", err)
		return nil, classify("get object", key, err)
	}

	return data, nil
}

// ListObjects returns every object whose key starts with prefix. Keys are
// returned in full, prefix included.
func (s *Store) ListObjects(ctx context.Context, prefix string) ([]Object, error) {
	var objects []Object
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, fmt.Errorf("list objects under %q: %w", prefix, info.Err)
		}
		objects = append(objects, Object{
			Key:          info.Key,
			Size:         info.Size,
			LastModified: info.LastModified,
		})
	}

	return objects, nil
}

// PresignedGetURL returns a short-lived URL granting anonymous read access
// to the object under key. The object's existence is not checked.
func (s *Store) PresignedGetURL(ctx context.Context, key string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, presignExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign object %q: %w", key, err)
	}

	return u.String(), nil
}

func classify(op, key string, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
		return fmt.Errorf("%s %q: %w", op, key, ErrObjectNotFound)
	}
	return fmt.Errorf("%s %q: %w", op, key, err)
}
