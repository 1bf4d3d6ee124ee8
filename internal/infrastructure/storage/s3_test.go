package storage

import (
	"context"
	"testing"

	"clinical-study/config"
)

func TestNewS3UploaderRequiresBucket(t *testing.T) {
	if _, err := NewS3Uploader(context.Background(), config.ExportConfig{}); err == nil {
		t.Fatal("expected an error without bucket")
	}
}

func TestObjectKey(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")

	u, err := NewS3Uploader(context.Background(), config.ExportConfig{
		S3Bucket:    "study-exports",
		S3Region:    "eu-central-1",
		S3Endpoint:  "http://localhost:9000",
		S3PathStyle: true,
		S3Prefix:    "exports/",
	})
	if err != nil {
		t.Fatalf("NewS3Uploader: %v", err)
	}
	if got := u.ObjectKey("export_2024-05-01.csv"); got != "exports/export_2024-05-01.csv" {
		t.Errorf("unexpected key %q", got)
	}
}
