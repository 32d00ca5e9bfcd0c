package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"

	"cvBuilder/internal/config"
)

// Client 存放异步导出的 PDF。内部客户端负责读写，公开客户端只用于签发下载链接，
// 这样链接里的 Host 是浏览器可达的地址。
type Client struct {
	internalClient *minio.Client
	publicClient   *minio.Client
	bucketName     string
}

func parseBucketLookup(raw string) (minio.BucketLookupType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "auto":
		return minio.BucketLookupAuto, nil
	case "dns":
		return minio.BucketLookupDNS, nil
	case "path":
		return minio.BucketLookupPath, nil
	}
	return minio.BucketLookupAuto, fmt.Errorf("invalid minio bucket lookup %q", raw)
}

func newMinio(cfg config.MinIOConfig, host string, secure bool, lookup minio.BucketLookupType) (*minio.Client, error) {
	return minio.New(host, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure:       secure,
		Region:       cfg.Region,
		BucketLookup: lookup,
	})
}

// NewClient 初始化 MinIO 客户端，确保 Bucket 存在，并为导出前缀设置过期规则。
func NewClient(cfg config.MinIOConfig) (*Client, error) {
	lookup, err := parseBucketLookup(cfg.BucketLookup)
	if err != nil {
		return nil, err
	}

	internalClient, err := newMinio(cfg, cfg.Endpoint, cfg.UseSSL, lookup)
	if err != nil {
		return nil, fmt.Errorf("init internal minio client: %w", err)
	}

	public, err := url.Parse(cfg.PublicEndpoint)
	if err != nil {
		return nil, fmt.Errorf("parse minio public endpoint: %w", err)
	}
	if public.Host == "" {
		return nil, errors.New("invalid minio public endpoint, host missing")
	}
	publicClient, err := newMinio(cfg, public.Host, public.Scheme == "https", lookup)
	if err != nil {
		return nil, fmt.Errorf("init public minio client: %w", err)
	}

	c := &Client{
		internalClient: internalClient,
		publicClient:   publicClient,
		bucketName:     cfg.Bucket,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := c.ensureBucket(ctx, cfg); err != nil {
		return nil, err
	}
	if cfg.ExportRetentionDays > 0 {
		if err := c.expireExports(ctx, cfg.ExportRetentionDays); err != nil {
			// 部分 S3 兼容实现不支持 lifecycle，过期 PDF 仍会在会话结束时被清理
			slog.Default().Warn("set export lifecycle failed", slog.String("bucket", cfg.Bucket), slog.Any("error", err))
		}
	}
	return c, nil
}

func (c *Client) ensureBucket(ctx context.Context, cfg config.MinIOConfig) error {
	exists, err := c.internalClient.BucketExists(ctx, c.bucketName)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", c.bucketName, err)
	}
	if exists {
		return nil
	}
	if !cfg.AutoCreateBucket {
		return fmt.Errorf("bucket %q does not exist (auto create disabled)", c.bucketName)
	}
	if err := c.internalClient.MakeBucket(ctx, c.bucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
		return fmt.Errorf("make bucket %q: %w", c.bucketName, err)
	}
	return nil
}

func (c *Client) expireExports(ctx context.Context, days int) error {
	rules := lifecycle.NewConfiguration()
	rules.Rules = []lifecycle.Rule{{
		ID:         "expire-cv-exports",
		Status:     "Enabled",
		RuleFilter: lifecycle.Filter{Prefix: exportsRoot + "/"},
		Expiration: lifecycle.Expiration{Days: lifecycle.ExpirationDays(days)},
	}}
	return c.internalClient.SetBucketLifecycle(ctx, c.bucketName, rules)
}

// UploadFile 把导出的 PDF 写入私有 Bucket。
func (c *Client) UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error) {
	// 同一导出不会被覆盖写，浏览器可以放心缓存
	info, err := c.internalClient.PutObject(ctx, c.bucketName, objectName, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "private, max-age=86400, immutable",
	})
	if err != nil {
		return nil, fmt.Errorf("put object %q: %w", objectName, err)
	}
	return &info, nil
}

// OpenObject 读取对象并返回其大小；对象不存在时错误满足 IsNoSuchKey。
func (c *Client) OpenObject(ctx context.Context, objectKey string) (io.ReadCloser, int64, error) {
	obj, err := c.internalClient.GetObject(ctx, c.bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, fmt.Errorf("get object %q: %w", objectKey, err)
	}
	// GetObject 是惰性的，Stat 才会真正访问服务端。
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, 0, fmt.Errorf("stat object %q: %w", objectKey, err)
	}
	return obj, info.Size, nil
}

// GeneratePresignedURL 生成限时下载链接；fileName 非空时浏览器按附件下载并使用该文件名。
func (c *Client) GeneratePresignedURL(ctx context.Context, objectKey string, duration time.Duration, fileName string) (string, error) {
	var params url.Values
	if fileName != "" {
		params = url.Values{}
		params.Set("response-content-disposition", ContentDisposition(fileName))
		params.Set("response-content-type", "application/pdf")
	}
	presigned, err := c.publicClient.PresignedGetObject(ctx, c.bucketName, objectKey, duration, params)
	if err != nil {
		return "", fmt.Errorf("presign %q: %w", objectKey, err)
	}
	return presigned.String(), nil
}

// DeleteObject 删除单个对象，对象不存在视为成功。
func (c *Client) DeleteObject(ctx context.Context, objectKey string) error {
	objectKey = strings.TrimSpace(objectKey)
	if objectKey == "" {
		return nil
	}
	err := c.internalClient.RemoveObject(ctx, c.bucketName, objectKey, minio.RemoveObjectOptions{})
	if err != nil && !IsNoSuchKey(err) {
		return fmt.Errorf("remove object %q: %w", objectKey, err)
	}
	return nil
}

// DeletePrefix 批量删除前缀下的全部对象，用于结束会话时清理它的导出。
func (c *Client) DeletePrefix(ctx context.Context, prefix string) error {
	prefix = strings.TrimSpace(prefix)
	// 空前缀会清空整个 Bucket
	if prefix == "" || prefix == "/" {
		return errors.New("refusing to delete an empty prefix")
	}

	listed := c.internalClient.ListObjects(ctx, c.bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	var listErr error
	toRemove := make(chan minio.ObjectInfo)
	go func() {
		defer close(toRemove)
		for object := range listed {
			if object.Err != nil {
				listErr = object.Err
				return
			}
			select {
			case toRemove <- object:
			case <-ctx.Done():
				return
			}
		}
	}()

	var errs []error
	for rerr := range c.internalClient.RemoveObjects(ctx, c.bucketName, toRemove, minio.RemoveObjectsOptions{}) {
		if rerr.Err != nil && !IsNoSuchKey(rerr.Err) {
			errs = append(errs, fmt.Errorf("remove %q: %w", rerr.ObjectName, rerr.Err))
		}
	}
	// RemoveObjects 的结果通道关闭时 toRemove 已被读完，listErr 不再被写
	if listErr != nil {
		errs = append(errs, fmt.Errorf("list objects under %q: %w", prefix, listErr))
	}
	return errors.Join(errs...)
}
