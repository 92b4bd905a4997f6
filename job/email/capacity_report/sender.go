package capacity_report

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"
	"sort"
	"time"

	"dcim-ng/models/portal"
	"dcim-ng/internal/rackspace"

	"github.com/Masterminds/sprig/v3"
	"github.com/jinzhu/now"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed template.html
var templateFS embed.FS

// DateFormat defines the standard date format used in the report.
const DateFormat = "2006-01-02"

// 利用率告警阈值（%）
const highWaterThreshold = 80.0

// CapacityReportSender handles the generation and sending of rack capacity reports.
type CapacityReportSender struct {
	db           *gorm.DB
	smtpHost     string
	smtpPort     int
	smtpUser     string
	smtpPassword string
	fromEmail    string
	toEmails     []string
	logger       *zap.Logger
}

// NewCapacityReportSender creates a new instance of CapacityReportSender.
func NewCapacityReportSender(db *gorm.DB, smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string, toEmails []string) *CapacityReportSender {
	logger, err := zap.NewProduction()
	if err != nil {
		logger, _ = zap.NewDevelopment()
	}
	return &CapacityReportSender{
		db:           db,
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUser:     smtpUser,
		smtpPassword: smtpPassword,
		fromEmail:    fromEmail,
		toEmails:     toEmails,
		logger:       logger,
	}
}

// Run executes the report generation and sending process.
func (s *CapacityReportSender) Run(ctx context.Context) error {
	s.logger.Info("Starting rack capacity report generation...")

	sites, err := CollectSiteCapacity(ctx, s.db)
	if err != nil {
		s.logger.Error("Failed to collect capacity data", zap.Error(err))
		return fmt.Errorf("failed to collect capacity data: %w", err)
	}
	if len(sites) == 0 {
		s.logger.Info("No racks found, skipping capacity report.")
		return nil
	}

	reportData := s.prepareTemplateData(sites)

	emailBody, err := s.generateEmailContent(reportData)
	if err != nil {
		s.logger.Error("Failed to generate email content", zap.Error(err))
		return fmt.Errorf("failed to generate email content: %w", err)
	}

	subject := fmt.Sprintf("每日机柜容量报告 - %s", reportData.ReportDate)
	if err := s.sendEmail(subject, emailBody); err != nil {
		s.logger.Error("Failed to send capacity report email", zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("Rack capacity report sent successfully.")
	return nil
}

// CollectSiteCapacity 汇总各站点机柜的空间与电力利用率.
func CollectSiteCapacity(ctx context.Context, db *gorm.DB) ([]SiteCapacitySummary, error) {
	var racks []portal.Rack
	err := db.WithContext(ctx).Preload("Site").Order("site_id, name").Find(&racks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query racks: %w", err)
	}

	siteMap := make(map[string]*SiteCapacitySummary)
	for i := range racks {
		rack := &racks[i]
		detail, err := rackCapacity(ctx, db, rack)
		if err != nil {
			return nil, err
		}

		siteName := "未分配站点"
		if rack.Site != nil {
			siteName = rack.Site.Name
		}
		summary, ok := siteMap[siteName]
		if !ok {
			summary = &SiteCapacitySummary{SiteName: siteName}
			siteMap[siteName] = summary
		}
		summary.TotalRacks++
		summary.TotalUnits += rack.UHeight
		summary.NewDevicesToday += detail.NewDevicesToday
		summary.AvgUtilization += detail.SpaceUtilization
		if detail.SpaceUtilization > highWaterThreshold {
			summary.HighWaterRacks++
		}
		summary.Racks = append(summary.Racks, detail)
	}

	summaries := make([]SiteCapacitySummary, 0, len(siteMap))
	for _, summary := range siteMap {
		if summary.TotalRacks > 0 {
			summary.AvgUtilization /= float64(summary.TotalRacks)
		}
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].SiteName < summaries[j].SiteName
	})
	return summaries, nil
}

// rackCapacity 计算单个机柜的容量明细
func rackCapacity(ctx context.Context, db *gorm.DB, rack *portal.Rack) (RackCapacityDetail, error) {
	detail := RackCapacityDetail{
		RackName:   rack.Name,
		FacilityID: rack.FacilityID,
		UHeight:    rack.UHeight,
	}

	var deviceModels []portal.Device
	if err := db.WithContext(ctx).Where("rack_id = ?", rack.ID).Find(&deviceModels).Error; err != nil {
		return detail, fmt.Errorf("failed to query devices of rack %d: %w", rack.ID, err)
	}
	detail.DeviceCount = len(deviceModels)

	todayStart := now.BeginningOfDay()
	for i := range deviceModels {
		if time.Time(deviceModels[i].CreatedAt).After(todayStart) {
			detail.NewDevicesToday++
		}
	}

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

	var reservationModels []portal.RackReservation
	if err := db.WithContext(ctx).Where("rack_id = ?", rack.ID).Find(&reservationModels).Error; err != nil {
		return detail, fmt.Errorf("failed to query reservations of rack %d: %w", rack.ID, err)
	}
	reservations := make([]rackspace.Reservation, 0, len(reservationModels))
	for i := range reservationModels {
		r := &reservationModels[i]
		units, err := r.UnitList()
		if err != nil {
			return detail, fmt.Errorf("failed to parse units of reservation %d: %w", r.ID, err)
		}
		engineUnits := make([]rackspace.Unit, 0, len(units))
		for _, u := range units {
			engineUnits = append(engineUnits, rackspace.UnitFromInt(u))
		}
		reservations = append(reservations, rackspace.Reservation{ID: r.ID, Units: engineUnits})
	}

	cfg := rackspace.Config{
		UHeight:      rack.UHeight,
		StartingUnit: rack.StartingUnit,
		DescUnits:    rack.DescUnits,
	}
	detail.SpaceUtilization = rackspace.Utilization(cfg, devices, reservations)

	var feedModels []portal.PowerFeed
	if err := db.WithContext(ctx).Where("rack_id = ?", rack.ID).Find(&feedModels).Error; err != nil {
		return detail, fmt.Errorf("failed to query power feeds of rack %d: %w", rack.ID, err)
	}
	feeds := make([]rackspace.PowerFeed, 0, len(feedModels))
	feedIDs := make([]int64, 0, len(feedModels))
	for i := range feedModels {
		feeds = append(feeds, rackspace.PowerFeed{
			ID:             feedModels[i].ID,
			AvailablePower: feedModels[i].AvailablePower,
		})
		feedIDs = append(feedIDs, feedModels[i].ID)
	}
	var ports []rackspace.PowerPort
	if len(feedIDs) > 0 {
		var portModels []portal.PowerPort
		if err := db.WithContext(ctx).Where("power_feed_id IN ?", feedIDs).Find(&portModels).Error; err != nil {
			return detail, fmt.Errorf("failed to query power ports of rack %d: %w", rack.ID, err)
		}
		for i := range portModels {
			ports = append(ports, rackspace.PowerPort{
				PowerFeedID:   portModels[i].PowerFeedID,
				AllocatedDraw: portModels[i].AllocatedDraw,
			})
		}
	}
	detail.PowerUtilization = rackspace.PowerUtilization(feeds, ports)

	return detail, nil
}

// prepareTemplateData structures the fetched data for the HTML template.
func (s *CapacityReportSender) prepareTemplateData(sites []SiteCapacitySummary) ReportTemplateData {
	location, _ := time.LoadLocation("Asia/Shanghai")
	return ReportTemplateData{
		ReportDate: time.Now().In(location).Format(DateFormat),
		Sites:      sites,
	}
}

// generateEmailContent renders the HTML email body using the template and data.
func (s *CapacityReportSender) generateEmailContent(data ReportTemplateData) (string, error) {
	tmpl, err := template.New("capacityReport").Funcs(sprig.HtmlFuncMap()).ParseFS(templateFS, "template.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "template.html", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return buf.String(), nil
}

// sendEmail sends the generated report via SMTP.
func (s *CapacityReportSender) sendEmail(subject, body string) error {
	auth := smtp.PlainAuth("", s.smtpUser, s.smtpPassword, s.smtpHost)
	addr := fmt.Sprintf("%s:%d", s.smtpHost, s.smtpPort)

	msg := "From: " + s.fromEmail + "\r\n" +
		"To: " + s.toEmails[0]
	for i := 1; i < len(s.toEmails); i++ {
		msg += "," + s.toEmails[i]
	}
	msg += "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	msg += body

	s.logger.Info("Sending email", zap.String("to", fmt.Sprintf("%v", s.toEmails)), zap.String("subject", subject))
	if err := smtp.SendMail(addr, auth, s.fromEmail, s.toEmails, []byte(msg)); err != nil {
		return fmt.Errorf("smtp.SendMail failed: %w", err)
	}
	return nil
}
