package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"dcim-ng/models/portal"
	"dcim-ng/server/portal/internal/service"
)

var _ = Describe("RackReservationService", func() {
	var (
		ctx       context.Context
		db        *gorm.DB
		dbPath    string
		svc       *service.RackReservationService
		rackID    int64
		logger, _ = zap.NewDevelopment()
	)

	BeforeEach(func() {
		ctx = context.Background()
		db, dbPath = newTestDB()
		svc = service.NewRackReservationService(db, logger)

		Expect(db.Create(&portal.Site{BaseModel: portal.BaseModel{ID: 1}, Name: "site-a"}).Error).To(Succeed())
		rack := portal.Rack{Name: "A01", SiteID: 1, Status: portal.RackStatusActive,
			RackDimensions: portal.RackDimensions{UHeight: 10, StartingUnit: 1, Width: portal.RackWidth19IN}}
		Expect(db.Create(&rack).Error).To(Succeed())
		rackID = rack.ID
	})

	AfterEach(func() {
		closeTestDB(db, dbPath)
	})

	Describe("CreateReservation", func() {
		It("should persist units and read them back", func() {
			resp, err := svc.CreateReservation(ctx, &service.RackReservationDTO{
				RackID:      rackID,
				Units:       []int{3, 4, 5},
				UserName:    "admin",
				Description: "switch install window",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Units).To(Equal([]int{3, 4, 5}))

			fetched, err := svc.GetReservation(ctx, resp.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched.Units).To(Equal([]int{3, 4, 5}))
			Expect(fetched.RackName).To(Equal("A01"))
		})

		It("should reject units outside the rack", func() {
			_, err := svc.CreateReservation(ctx, &service.RackReservationDTO{
				RackID:      rackID,
				Units:       []int{9, 10, 11},
				UserName:    "admin",
				Description: "overflow",
			})
			Expect(err).To(HaveOccurred())
			Expect(service.IsBadRequest(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("invalid unit(s) for 10U rack"))
		})

		It("should reject units held by another reservation", func() {
			_, err := svc.CreateReservation(ctx, &service.RackReservationDTO{
				RackID:      rackID,
				Units:       []int{3, 4},
				UserName:    "admin",
				Description: "first",
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.CreateReservation(ctx, &service.RackReservationDTO{
				RackID:      rackID,
				Units:       []int{4, 5},
				UserName:    "other",
				Description: "second",
			})
			Expect(err).To(HaveOccurred())
			Expect(service.IsBadRequest(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("already been reserved"))
		})

		It("should report out-of-range units before conflicts", func() {
			_, err := svc.CreateReservation(ctx, &service.RackReservationDTO{
				RackID:      rackID,
				Units:       []int{5},
				UserName:    "admin",
				Description: "first",
			})
			Expect(err).NotTo(HaveOccurred())

			// 既越界又冲突时优先报越界
			_, err = svc.CreateReservation(ctx, &service.RackReservationDTO{
				RackID:      rackID,
				Units:       []int{5, 11},
				UserName:    "other",
				Description: "second",
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("invalid unit(s)"))
		})
	})

	Describe("UpdateReservation", func() {
		It("should not conflict with its own units", func() {
			created, err := svc.CreateReservation(ctx, &service.RackReservationDTO{
				RackID:      rackID,
				Units:       []int{3, 4},
				UserName:    "admin",
				Description: "hold",
			})
			Expect(err).NotTo(HaveOccurred())

			updated, err := svc.UpdateReservation(ctx, created.ID, &service.RackReservationDTO{
				RackID:      rackID,
				Units:       []int{4, 5},
				UserName:    "admin",
				Description: "shifted",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Units).To(Equal([]int{4, 5}))
		})

		It("should still conflict with other reservations", func() {
			first, err := svc.CreateReservation(ctx, &service.RackReservationDTO{
				RackID: rackID, Units: []int{3}, UserName: "admin", Description: "first",
			})
			Expect(err).NotTo(HaveOccurred())
			_, err = svc.CreateReservation(ctx, &service.RackReservationDTO{
				RackID: rackID, Units: []int{7}, UserName: "other", Description: "second",
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.UpdateReservation(ctx, first.ID, &service.RackReservationDTO{
				RackID: rackID, Units: []int{7}, UserName: "admin", Description: "move onto second",
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("already been reserved"))
		})
	})

	Describe("DeleteReservation", func() {
		It("should return not found for a missing id", func() {
			err := svc.DeleteReservation(ctx, 9999)
			Expect(service.IsNotFound(err)).To(BeTrue())
		})
	})
})
