// Package publish uploads a built marquee bundle to S3.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrNoCredentials is returned by NewS3Client when the AWS credential
// environment variables are unset.
var ErrNoCredentials = errors.New("publish: AWS credentials not set")

// ErrNotDir is returned when the bundle path is not a directory.
var ErrNotDir = errors.New("publish: bundle is not a directory")

// PutObjectAPI is the part of the S3 client the publisher uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Object is one uploaded file.
type Object struct {
	Key         string
	Size        int64
	ContentType string
}

// Result summarizes a publish.
type Result struct {
	Objects []Object
	Bytes   int64
}

// Publisher uploads files under a key prefix in one bucket.
type Publisher struct {
	client PutObjectAPI
	bucket string
	prefix string
	dryRun bool
	logger *slog.Logger
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Publisher) { p.logger = l }
}

// WithDryRun lists what would be uploaded without calling S3.
func WithDryRun(dryRun bool) Option {
	return func(p *Publisher) { p.dryRun = dryRun }
}

// New creates a publisher. prefix may be empty.
func New(client PutObjectAPI, bucket, prefix string, opts ...Option) *Publisher {
	p := &Publisher{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: slog.Default().With("component", "publish"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewS3Client builds an S3 client for region from the standard AWS
// environment variables.
func NewS3Client(region string) (*s3.Client, error) {
	id := os.Getenv("AWS_ACCESS_KEY_ID")
	secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return nil, ErrNoCredentials
	}
	token := os.Getenv("AWS_SESSION_TOKEN")

	creds := aws.NewCredentialsCache(aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    token,
			Source:          "environment",
		}, nil
	}))
	return s3.New(s3.Options{
		Region:      region,
		Credentials: creds,
	}), nil
}

// Key returns the object key for a file at rel (slash separated) inside
// the bundle.
func (p *Publisher) Key(rel string) string {
	if p.prefix == "" {
		return rel
	}
	return p.prefix + "/" + rel
}

// Publish uploads every regular file under dir. Files are uploaded in
// lexical order with index.html last so a half-finished publish never
// serves a page referencing missing assets.
func (p *Publisher) Publish(ctx context.Context, dir string) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDir, dir)
	}

	files, err := collect(dir)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		obj, err := p.upload(ctx, dir, rel)
		if err != nil {
			return res, err
		}
		res.Objects = append(res.Objects, obj)
		res.Bytes += obj.Size
	}
	p.logger.Info("published", "bucket", p.bucket, "prefix", p.prefix, "files", len(res.Objects), "bytes", res.Bytes, "dry_run", p.dryRun)
	return res, nil
}

func (p *Publisher) upload(ctx context.Context, dir, rel string) (Object, error) {
	full := filepath.Join(dir, filepath.FromSlash(rel))
	f, err := os.Open(full)
	if err != nil {
		return Object{}, fmt.Errorf("publish: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return Object{}, fmt.Errorf("publish: %w", err)
	}
	obj := Object{Key: p.Key(rel), Size: st.Size(), ContentType: ContentType(rel)}
	if p.dryRun {
		p.logger.Info("would upload", "key", obj.Key, "size", obj.Size)
		return obj, nil
	}

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(obj.Key),
		Body:          f,
		ContentLength: aws.Int64(obj.Size),
		ContentType:   aws.String(obj.ContentType),
		CacheControl:  aws.String(CacheControl(rel)),
	})
	if err != nil {
		return Object{}, fmt.Errorf("publish: upload %s: %w", obj.Key, err)
	}
	p.logger.Debug("uploaded", "key", obj.Key, "size", obj.Size)
	return obj, nil
}

// collect returns the slash-separated relative paths of regular files
// under dir, sorted, with any root index.html moved last.
func collect(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("publish: walk %s: %w", dir, err)
	}
	sort.SliceStable(files, func(i, j int) bool {
		if (files[i] == "index.html") != (files[j] == "index.html") {
			return files[j] == "index.html"
		}
		return files[i] < files[j]
	})
	return files, nil
}

// ContentType returns the MIME type for a bundle file.
func ContentType(name string) string {
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".wasm":
		return "application/wasm"
	case ".js", ".mjs":
		return "text/javascript; charset=utf-8"
	case "":
		return "application/octet-stream"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
		return "application/octet-stream"
	}
}

// CacheControl returns the Cache-Control header for a bundle file. HTML
// must revalidate so a publish takes effect immediately.
func CacheControl(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".html") {
		return "no-cache"
	}
	return "public, max-age=3600"
}
