package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dcim-ng/job/chore/report_archive"
	"dcim-ng/job/email/capacity_report"
	pkgredis "dcim-ng/pkg/redis"
)

var (
	rootCmd = &cobra.Command{
		Use:   "job",
		Short: "DCIM job runner",
		Long:  `DCIM job runner is a CLI tool for running various jobs including capacity report emails and report archiving tasks.`,
	}

	// 全局标志
	mysqlDSN  string
	s3Bucket  string
	redisAddr string // 非空时通过 Redis 锁串行化任务
)

// 任务锁的持有时长，覆盖单次任务的最长执行时间
const jobLockTTL = 30 * time.Minute

func init() {
	// 全局标志
	rootCmd.PersistentFlags().StringVar(&mysqlDSN, "mysql-dsn", "", "MySQL connection string (default: root:root@tcp(127.0.0.1:3306)/dcim?charset=utf8mb4&parseTime=True&loc=Local)")
	rootCmd.PersistentFlags().StringVar(&s3Bucket, "s3-bucket", "", "S3 bucket name")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis-addr", "", "Redis address for job locking (optional)")

	// 添加子命令
	rootCmd.AddCommand(choreCmd)
	rootCmd.AddCommand(emailCmd)
}

// chore 命令
var choreCmd = &cobra.Command{
	Use:   "chore",
	Short: "Run chore jobs",
	Long:  `Run chore jobs for data processing and archiving.`,
}

// email 命令
var emailCmd = &cobra.Command{
	Use:   "email",
	Short: "Run email notification jobs",
	Long:  `Run email notification jobs for various alerts and reports.`,
}

// report-archive 命令
var reportArchiveCmd = &cobra.Command{
	Use:   "report-archive",
	Short: "Archive rack capacity report to S3",
	Long:  `Generate the rack capacity workbook and upload it to the S3 archive bucket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if s3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required")
		}

		release, err := acquireJobLock(pkgredis.ReportArchiveLockKey)
		if err != nil {
			return err
		}
		defer release()

		// 初始化数据库连接
		db, err := initDB(mysqlDSN)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}

		// 初始化S3客户端
		s3Client, err := initS3Client()
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}

		archiver := report_archive.NewReportArchiver(s3Client, db, s3Bucket)
		key, err := archiver.Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to archive capacity report: %w", err)
		}
		if key != "" {
			log.Printf("capacity report archived to s3://%s/%s", s3Bucket, key)
		}
		return nil
	},
}

// capacity-report 命令
var (
	smtpHost     string
	smtpPort     int
	smtpUser     string
	smtpPassword string
	fromEmail    string
	toEmails     string

	capacityReportCmd = &cobra.Command{
		Use:   "capacity-report",
		Short: "Send rack capacity report email",
		Long:  `Generate and send the daily rack capacity report email to specified recipients.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			release, err := acquireJobLock(pkgredis.CapacityReportLockKey)
			if err != nil {
				return err
			}
			defer release()

			// 初始化数据库连接
			db, err := initDB(mysqlDSN)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			// 解析收件人列表
			recipients := strings.Split(toEmails, ",")
			if len(recipients) == 0 {
				return fmt.Errorf("at least one recipient email is required")
			}

			sender := capacity_report.NewCapacityReportSender(
				db,
				smtpHost,
				smtpPort,
				smtpUser,
				smtpPassword,
				fromEmail,
				recipients,
			)
			if err := sender.Run(cmd.Context()); err != nil {
				return fmt.Errorf("failed to send capacity report: %w", err)
			}
			return nil
		},
	}
)

func init() {
	choreCmd.AddCommand(reportArchiveCmd)
	emailCmd.AddCommand(capacityReportCmd)

	// 添加capacity-report命令的标志
	capacityReportCmd.Flags().StringVar(&smtpHost, "smtp-host", "", "SMTP server host")
	capacityReportCmd.Flags().IntVar(&smtpPort, "smtp-port", 587, "SMTP server port")
	capacityReportCmd.Flags().StringVar(&smtpUser, "smtp-user", "", "SMTP username")
	capacityReportCmd.Flags().StringVar(&smtpPassword, "smtp-password", "", "SMTP password")
	capacityReportCmd.Flags().StringVar(&fromEmail, "from", "", "Sender email address")
	capacityReportCmd.Flags().StringVar(&toEmails, "to", "", "Comma-separated list of recipient email addresses")

	// 标记必需的标志
	capacityReportCmd.MarkFlagRequired("smtp-host")
	capacityReportCmd.MarkFlagRequired("smtp-user")
	capacityReportCmd.MarkFlagRequired("smtp-password")
	capacityReportCmd.MarkFlagRequired("from")
	capacityReportCmd.MarkFlagRequired("to")
}

// acquireJobLock 在配置了 Redis 时获取任务锁，避免多实例重复执行.
// 未配置 Redis 时直接放行.
func acquireJobLock(key string) (func(), error) {
	if redisAddr == "" {
		return func() {}, nil
	}
	if err := pkgredis.Init("default", redisAddr, os.Getenv("DCIM_REDIS_PASSWORD")); err != nil {
		return nil, fmt.Errorf("failed to connect redis: %w", err)
	}
	handler := pkgredis.NewRedisHandler("default")

	holder := fmt.Sprintf("job-%d", os.Getpid())
	acquired, err := handler.AcquireLock(key, holder, jobLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire job lock %s: %w", key, err)
	}
	if !acquired {
		return nil, fmt.Errorf("job lock %s is held by another instance", key)
	}
	return func() { handler.Delete(key) }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
