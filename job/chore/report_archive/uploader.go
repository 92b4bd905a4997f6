// Package report_archive 将机柜容量报表归档到对象存储.
package report_archive

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"dcim-ng/job/email/capacity_report"
	"dcim-ng/models/portal"
	"dcim-ng/internal/rackspace"
)

// 归档对象键格式：reports/rack-capacity/2006/01/rack-capacity-20060102.xlsx
const (
	keyPrefix          = "reports/rack-capacity"
	elevationKeyPrefix = "reports/elevations"
	keyDateLayout      = "20060102"
	keyPathLayout      = "2006/01"

	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeSVG  = "image/svg+xml"
)

// ReportArchiver 生成容量报表并上传到 S3.
type ReportArchiver struct {
	s3Client *s3.Client
	db       *gorm.DB
	bucket   string
	logger   *zap.Logger
}

// NewReportArchiver 创建新的归档器实例.
func NewReportArchiver(s3Client *s3.Client, db *gorm.DB, bucket string) *ReportArchiver {
	logger, err := zap.NewProduction()
	if err != nil {
		logger, _ = zap.NewDevelopment()
	}
	return &ReportArchiver{
		s3Client: s3Client,
		db:       db,
		bucket:   bucket,
		logger:   logger,
	}
}

// Run 采集容量数据、生成工作簿并上传，返回归档对象键.
func (a *ReportArchiver) Run(ctx context.Context) (string, error) {
	sites, err := capacity_report.CollectSiteCapacity(ctx, a.db)
	if err != nil {
		return "", fmt.Errorf("failed to collect capacity data: %w", err)
	}
	if len(sites) == 0 {
		a.logger.Info("No racks found, skipping report archive.")
		return "", nil
	}

	workbook, err := capacity_report.GenerateCapacityWorkbook(sites)
	if err != nil {
		return "", fmt.Errorf("failed to generate capacity workbook: %w", err)
	}

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		return "", fmt.Errorf("failed to serialize workbook: %w", err)
	}

	key := archiveKey(time.Now())
	_, err = a.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentTypeXLSX),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report to s3: %w", err)
	}

	a.logger.Info("Capacity report archived",
		zap.String("bucket", a.bucket),
		zap.String("key", key),
		zap.Int("bytes", buf.Len()),
	)

	if err := a.archiveElevations(ctx, time.Now()); err != nil {
		return "", err
	}
	return key, nil
}

// archiveElevations 渲染每个机柜的正面立面图并逐一上传
func (a *ReportArchiver) archiveElevations(ctx context.Context, t time.Time) error {
	var racks []portal.Rack
	if err := a.db.WithContext(ctx).Order("site_id, name").Find(&racks).Error; err != nil {
		return fmt.Errorf("failed to query racks for elevation archive: %w", err)
	}

	for i := range racks {
		rack := &racks[i]
		var deviceModels []portal.Device
		if err := a.db.WithContext(ctx).Where("rack_id = ?", rack.ID).Find(&deviceModels).Error; err != nil {
			return fmt.Errorf("failed to query devices of rack %d: %w", rack.ID, err)
		}

		body := renderFrontElevation(rack, deviceModels)
		key := elevationKey(t, rack.Name)
		_, err := a.s3Client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(a.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(body),
			ContentType: aws.String(contentTypeSVG),
		})
		if err != nil {
			return fmt.Errorf("failed to upload elevation of rack %d to s3: %w", rack.ID, err)
		}
	}

	a.logger.Info("Rack elevations archived",
		zap.String("bucket", a.bucket),
		zap.Int("rackCount", len(racks)),
	)
	return nil
}

// archiveKey 构造按年月分层的对象键
func archiveKey(t time.Time) string {
	return fmt.Sprintf("%s/%s/rack-capacity-%s.xlsx",
		keyPrefix, t.Format(keyPathLayout), t.Format(keyDateLayout))
}

// renderFrontElevation 渲染机柜正面立面图.
// 渲染器要求展开模式的条目，多U设备占用的每个半步都要标注设备引用.
func renderFrontElevation(rack *portal.Rack, deviceModels []portal.Device) []byte {
	devices := make([]rackspace.Device, 0, len(deviceModels))
	for i := range deviceModels {
		d := &deviceModels[i]
		devices = append(devices, rackspace.Device{
			ID:                     d.ID,
			Name:                   d.Name,
			Position:               rackspace.UnitFromDecimal(d.Position),
			UHeight:                rackspace.UnitFromDecimal(d.UHeight),
			Face:                   d.Face,
			IsFullDepth:            d.IsFullDepth,
			ExcludeFromUtilization: d.ExcludeFromUtilization,
		})
	}

	cfg := rackspace.Config{
		UHeight:      rack.UHeight,
		StartingUnit: rack.StartingUnit,
		DescUnits:    rack.DescUnits,
	}
	entries := rackspace.RackUnits(cfg, devices, rackspace.ElevationQuery{
		Face:          rackspace.FaceFront,
		ExpandDevices: true,
	})

	var svg bytes.Buffer
	rackspace.RenderElevationSVG(&svg,
		rackspace.ElevationTitle(rack.Name, rackspace.FaceFront),
		entries, rackspace.DefaultSVGParams())
	return svg.Bytes()
}

// elevationKey 构造立面图对象键，按日期和机柜名区分
func elevationKey(t time.Time, rackName string) string {
	return fmt.Sprintf("%s/%s/%s-front.svg",
		elevationKeyPrefix, t.Format(keyDateLayout), rackName)
}
