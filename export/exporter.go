// Package export turns call summary pages into CSV files on S3 so an
// admin can hand the records to billing or QA without database access.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
	"github.com/axiomconsultancy/axiom-admin-go/console"
)

type Exporter struct {
	session  *session.Session
	bucket   string
	region   string
	uploader *s3manager.Uploader
	s3Client *s3.S3
}

func NewExporter(region, bucket string) *Exporter {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create AWS session")
	}

	log.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("AWS session created successfully")

	return &Exporter{
		session:  sess,
		bucket:   bucket,
		region:   region,
		uploader: s3manager.NewUploader(sess),
		s3Client: s3.New(sess),
	}
}

// ExportSummaries writes the summaries as a CSV object and returns its
// public URL.
func (e *Exporter) ExportSummaries(ctx context.Context, summaries []axiom.Summary) (string, error) {
	data, err := CSV(summaries)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("exports/summaries_%s.csv", uuid.NewString())

	log.Info().
		Str("bucket", e.bucket).
		Str("key", key).
		Int("summaries", len(summaries)).
		Int("content_size", len(data)).
		Msg("Starting summary export upload")

	uploadInput := &s3manager.UploadInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/csv"),
	}

	result, err := e.uploader.UploadWithContext(ctx, uploadInput)
	if err != nil {
		log.Error().
			Err(err).
			Str("bucket", e.bucket).
			Str("key", key).
			Msg("Summary export upload failed")
		return "", fmt.Errorf("failed to upload summary export to S3: %w", err)
	}

	_, aclErr := e.s3Client.PutObjectAclWithContext(ctx, &s3.PutObjectAclInput{
		Bucket: aws.String(e.bucket),
		Key:    aws.String(key),
		ACL:    aws.String("public-read"),
	})
	if aclErr != nil {
		log.Warn().
			Err(aclErr).
			Str("bucket", e.bucket).
			Str("key", key).
			Msg("Failed to set public-read ACL on export, file may not be publicly accessible")
	}

	publicURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", e.bucket, e.region, key)

	log.Info().
		Str("s3_url", publicURL).
		Str("s3_location", result.Location).
		Str("key", key).
		Msg("Summary export uploaded successfully")

	return publicURL, nil
}

// CSV renders summaries for export: a created_at column followed by
// the field columns in their table order, one row per summary with
// empty cells for fields a record does not carry.
func CSV(summaries []axiom.Summary) ([]byte, error) {
	fields := console.SummaryFieldOrder(summaries)

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	header := append([]string{"created_at"}, fields...)
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, summary := range summaries {
		row := make([]string, 0, len(header))
		row = append(row, summary.CreatedAt)
		for _, field := range fields {
			row = append(row, summary.Fields[field])
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buffer.Bytes(), nil
}
