package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OSSStorage menyimpan objek di Aliyun OSS dengan prefix direktori tetap.
type OSSStorage struct {
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string
}

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

func NewOSSStorageFromEnv(prefix string) (*OSSStorage, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	sts := getEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var (
		client *oss.Client
		err    error
	)
	if sts != "" {
		client, err = oss.New(endpoint, ak, sk, oss.SecurityToken(sts))
	} else {
		client, err = oss.New(endpoint, ak, sk)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	log.Printf("[OSS] bucket %s siap (prefix=%s)", bucketName, prefix)
	return &OSSStorage{
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

func (s *OSSStorage) objectKey(filename string) string {
	base := path.Base(filename)
	if s.Prefix == "" {
		return base
	}
	return s.Prefix + "/" + base
}

func (s *OSSStorage) publicURL(key string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, host, key)
}

func (s *OSSStorage) Store(_ context.Context, filename string, data []byte) (string, error) {
	key := s.objectKey(filename)
	ct := mime.TypeByExtension(path.Ext(filename))
	opts := []oss.Option{oss.ContentDisposition("inline")}
	if ct != "" {
		opts = append(opts, oss.ContentType(ct))
	}
	if err := s.Bucket.PutObject(key, bytes.NewReader(data), opts...); err != nil {
		return "", fmt.Errorf("oss put %s: %w", key, err)
	}
	return s.publicURL(key), nil
}

func (s *OSSStorage) Delete(_ context.Context, publicURL string) error {
	u, err := url.Parse(publicURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return fmt.Errorf("empty object key in %q", publicURL)
	}
	return s.Bucket.DeleteObject(key)
}
