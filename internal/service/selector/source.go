package selector

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Source はビルド成果物のファイル一覧の取得元
type Source interface {
	// List はルートからの相対パス（"/" 区切り、先頭スラッシュなし）を決定的な順序で返す
	List(ctx context.Context) ([]string, error)
	String() string
}

// LocalSource はローカルのビルドディレクトリ
type LocalSource struct {
	Root string
}

// List は隠しファイルを含むすべてのファイルを辞書順に返す。ディレクトリは含まない
func (s LocalSource) List(ctx context.Context) ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || isDirSymlink(path, d) {
			return nil
		}
		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ディレクトリ %s の一覧取得に失敗: %w", s.Root, err)
	}
	return files, nil
}

// isDirSymlink はディレクトリを指すシンボリックリンクかどうかを返す。リンク切れはファイル扱い
func isDirSymlink(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (s LocalSource) String() string {
	return s.Root
}

// S3Source はS3に配置済みのサイト
type S3Source struct {
	Client s3.ListObjectsV2APIClient
	Bucket string
	Prefix string // 空、または "/" で終わる
}

// NewS3Source は s3://bucket/prefix 形式のURLからS3Sourceを作成する
func NewS3Source(client s3.ListObjectsV2APIClient, s3url string) (*S3Source, error) {
	bucket, prefix, err := ParseS3URL(s3url)
	if err != nil {
		return nil, err
	}
	return &S3Source{Client: client, Bucket: bucket, Prefix: prefix}, nil
}

// List はプレフィックス配下のオブジェクトキーをプレフィックスを除いて返す。
// "/" で終わるディレクトリマーカーは含まない
func (s *S3Source) List(ctx context.Context) ([]string, error) {
	var files []string

	paginator := s3.NewListObjectsV2Paginator(s.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.Bucket),
		Prefix: aws.String(s.Prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("S3オブジェクト一覧取得エラー: %w", err)
		}
		for _, obj := range page.Contents {
			key := strings.TrimPrefix(aws.ToString(obj.Key), s.Prefix)
			if key == "" || strings.HasSuffix(key, "/") {
				continue
			}
			files = append(files, key)
		}
	}
	return files, nil
}

func (s *S3Source) String() string {
	return "s3://" + s.Bucket + "/" + s.Prefix
}

// ParseS3URL は s3://bucket/prefix/ 形式を分解する
func ParseS3URL(s3url string) (bucket, prefix string, err error) {
	if !strings.HasPrefix(s3url, "s3://") {
		return "", "", fmt.Errorf("⚠️ S3パスは s3:// で始めてください: %s", s3url)
	}
	parts := strings.SplitN(strings.TrimPrefix(s3url, "s3://"), "/", 2)
	bucket = parts[0]
	if bucket == "" {
		return "", "", fmt.Errorf("⚠️ バケット名がありません: %s", s3url)
	}
	if len(parts) > 1 {
		prefix = parts[1]
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return bucket, prefix, nil
}
