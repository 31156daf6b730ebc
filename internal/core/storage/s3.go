package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// staging 上传 URL 的有效期
const uploadURLTTL = time.Hour

type Opts struct {
	Endpoint       string
	PublicEndpoint string
	Bucket         string
	Region         string
	AccessKeyID    string
	SecretKey      string
}

// Service S3 兼容对象存储。客户端先把文件传到 tmp/ 下的 staging key，
// 确认后服务端 copy 到正式 key 并返回公开 URL。
type Service struct {
	client         *s3.Client
	presign        *s3.PresignClient
	bucket         string
	publicEndpoint string
}

func New(ctx context.Context, o Opts) (*Service, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(o.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKeyID, o.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
			so.UsePathStyle = true
		}
	})
	return &Service{
		client:         client,
		presign:        s3.NewPresignClient(client),
		bucket:         o.Bucket,
		publicEndpoint: strings.TrimRight(o.PublicEndpoint, "/"),
	}, nil
}

// GenerateUploadURL 为 staging key 生成 1 小时有效的签名 PUT URL
func (s *Service) GenerateUploadURL(ctx context.Context, tmpKey string) (string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(tmpKey),
	}, s3.WithPresignExpires(uploadURLTTL))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// SaveObject staging 对象要落位的正式 key 描述
type SaveObject struct {
	Name  string // 实体名，如 "user"
	ID    string // 实体 ID
	Field string // 字段名，如 "avatar"
}

// Save 把 staging 对象 copy 到 service/{name}/{id}/{field}/{filename}，
// 返回公开访问 URL。filename 取 tmpKey 末段去掉随机前缀后的部分。
func (s *Service) Save(ctx context.Context, tmpKey string, obj SaveObject) (string, error) {
	fileName := stagingFileName(tmpKey)
	if fileName == "" {
		return "", fmt.Errorf("no file name in staging key %q", tmpKey)
	}

	uploadKey := fmt.Sprintf("service/%s/%s/%s/%s", obj.Name, obj.ID, obj.Field, fileName)
	_, err := s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.bucket),
		Key:        aws.String(uploadKey),
		CopySource: aws.String("/" + s.bucket + "/" + tmpKey),
	})
	if err != nil {
		return "", err
	}
	return s.publicEndpoint + "/" + uploadKey, nil
}

// stagingFileName staging key 形如 tmp/{rand}-{original-name}，
// 取最后一个路径段并去掉第一个 "-" 之前的随机串
func stagingFileName(tmpKey string) string {
	last := tmpKey
	if i := strings.LastIndexByte(tmpKey, '/'); i >= 0 {
		last = tmpKey[i+1:]
	}
	parts := strings.Split(last, "-")
	if len(parts) < 2 {
		return ""
	}
	return strings.Join(parts[1:], "-")
}
