package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"dcim-ng/models/portal"
	"dcim-ng/server/portal/internal/service"
	"dcim-ng/internal/rackspace"
)

// recordingPublisher 记录发布的机柜变更事件
type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) PublishRackChange(rackID int64, action string) error {
	p.events = append(p.events, action)
	return nil
}

var _ = Describe("RackService", func() {
	var (
		ctx       context.Context
		db        *gorm.DB
		dbPath    string
		publisher *recordingPublisher
		svc       *service.RackService
		logger, _ = zap.NewDevelopment()
	)

	BeforeEach(func() {
		ctx = context.Background()
		db, dbPath = newTestDB()
		publisher = &recordingPublisher{}
		svc = service.NewRackService(db, logger, publisher)

		Expect(db.Create(&portal.Site{BaseModel: portal.BaseModel{ID: 1}, Name: "site-a"}).Error).To(Succeed())
		Expect(db.Create(&portal.Location{BaseModel: portal.BaseModel{ID: 1}, SiteID: 1, Name: "floor-2"}).Error).To(Succeed())
		Expect(db.Create(&portal.Location{BaseModel: portal.BaseModel{ID: 2}, SiteID: 99, Name: "other-floor"}).Error).To(Succeed())
	})

	AfterEach(func() {
		closeTestDB(db, dbPath)
	})

	Describe("CreateRack", func() {
		It("should apply defaults for height, starting unit and status", func() {
			resp, err := svc.CreateRack(ctx, &service.RackCreateDTO{Name: "A01", SiteID: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.UHeight).To(Equal(42))
			Expect(resp.StartingUnit).To(Equal(1))
			Expect(resp.Status).To(Equal(portal.RackStatusActive))
			Expect(publisher.events).To(Equal([]string{service.RackActionCreated}))
		})

		It("should copy physical attributes from the assigned rack type", func() {
			rackType := &portal.RackType{
				Manufacturer: "APC",
				Model:        "AR3100",
				Slug:         "apc-ar3100",
				RackDimensions: portal.RackDimensions{
					Width:        portal.RackWidth19IN,
					UHeight:      48,
					StartingUnit: 1,
					DescUnits:    true,
				},
			}
			Expect(db.Create(rackType).Error).To(Succeed())

			resp, err := svc.CreateRack(ctx, &service.RackCreateDTO{
				Name:       "A02",
				SiteID:     1,
				RackTypeID: rackType.ID,
				UHeight:    10, // 被型号属性覆盖
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.UHeight).To(Equal(48))
			Expect(resp.DescUnits).To(BeTrue())
		})

		It("should reject a rack whose location belongs to another site", func() {
			_, err := svc.CreateRack(ctx, &service.RackCreateDTO{Name: "A03", SiteID: 1, LocationID: 2})
			Expect(err).To(HaveOccurred())
			Expect(service.IsBadRequest(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("parent site"))
		})

		It("should reject heights above the maximum", func() {
			_, err := svc.CreateRack(ctx, &service.RackCreateDTO{Name: "A04", SiteID: 1, UHeight: 101})
			Expect(err).To(HaveOccurred())
			Expect(service.IsBadRequest(err)).To(BeTrue())
		})
	})

	Describe("UpdateRack", func() {
		var rackID int64

		BeforeEach(func() {
			resp, err := svc.CreateRack(ctx, &service.RackCreateDTO{Name: "B01", SiteID: 1, UHeight: 42})
			Expect(err).NotTo(HaveOccurred())
			rackID = resp.ID
		})

		It("should reject shrinking below the topmost installed device", func() {
			device := &portal.Device{Name: "srv-1", RackID: rackID, Position: 40, UHeight: 2, Face: portal.DeviceFaceFront}
			Expect(db.Create(device).Error).To(Succeed())

			// 顶部设备占用 [40,42)，最小高度为41
			_, err := svc.UpdateRack(ctx, rackID, &service.RackUpdateDTO{SiteID: 1, UHeight: 40})
			Expect(err).To(HaveOccurred())
			Expect(service.IsBadRequest(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("at least 41U"))

			// 恰好容纳时允许
			resp, err := svc.UpdateRack(ctx, rackID, &service.RackUpdateDTO{SiteID: 1, UHeight: 41})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.UHeight).To(Equal(41))
		})

		It("should reject raising the starting unit above the lowest device", func() {
			device := &portal.Device{Name: "srv-2", RackID: rackID, Position: 3, UHeight: 1, Face: portal.DeviceFaceFront}
			Expect(db.Create(device).Error).To(Succeed())

			_, err := svc.UpdateRack(ctx, rackID, &service.RackUpdateDTO{SiteID: 1, UHeight: 42, StartingUnit: 5})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("begin at 3 or less"))
		})

		It("should not persist any change when validation fails", func() {
			device := &portal.Device{Name: "srv-3", RackID: rackID, Position: 40, UHeight: 2, Face: portal.DeviceFaceFront}
			Expect(db.Create(device).Error).To(Succeed())

			_, err := svc.UpdateRack(ctx, rackID, &service.RackUpdateDTO{Name: "renamed", SiteID: 1, UHeight: 10})
			Expect(err).To(HaveOccurred())

			var rack portal.Rack
			Expect(db.First(&rack, rackID).Error).To(Succeed())
			Expect(rack.Name).To(Equal("B01"))
			Expect(rack.UHeight).To(Equal(42))
		})
	})

	Describe("GetAvailableUnits", func() {
		var rackID int64

		BeforeEach(func() {
			resp, err := svc.CreateRack(ctx, &service.RackCreateDTO{Name: "C01", SiteID: 1, UHeight: 4})
			Expect(err).NotTo(HaveOccurred())
			rackID = resp.ID
		})

		It("should return every fitting half-step position for an empty rack", func() {
			resp, err := svc.GetAvailableUnits(ctx, rackID, service.AvailableUnitsQuery{})
			Expect(err).NotTo(HaveOccurred())
			// 逆生成序，4.5处放不下一个整U
			Expect(resp.Units).To(Equal([]float64{4, 3.5, 3, 2.5, 2, 1.5, 1}))
		})

		It("should only return positions with enough contiguous space", func() {
			device := &portal.Device{Name: "srv-4", RackID: rackID, Position: 2, UHeight: 1, Face: portal.DeviceFaceFront, IsFullDepth: true}
			Expect(db.Create(device).Error).To(Succeed())

			resp, err := svc.GetAvailableUnits(ctx, rackID, service.AvailableUnitsQuery{UHeight: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Units).To(Equal([]float64{3}))
		})
	})

	Describe("GetUtilization", func() {
		It("should combine space and power utilization", func() {
			resp, err := svc.CreateRack(ctx, &service.RackCreateDTO{Name: "D01", SiteID: 1, UHeight: 4})
			Expect(err).NotTo(HaveOccurred())
			rackID := resp.ID

			device := &portal.Device{Name: "srv-5", RackID: rackID, Position: 1, UHeight: 1, Face: portal.DeviceFaceFront, IsFullDepth: true}
			Expect(db.Create(device).Error).To(Succeed())

			feed := &portal.PowerFeed{RackID: rackID, Name: "PF-1", Voltage: 100, Amperage: 10, MaxUtilization: 100}
			feed.AvailablePower = feed.CalcAvailablePower()
			Expect(db.Create(feed).Error).To(Succeed())
			port := &portal.PowerPort{DeviceID: device.ID, Name: "PSU1", PowerFeedID: feed.ID, AllocatedDraw: 250}
			Expect(db.Create(port).Error).To(Succeed())

			utilization, err := svc.GetUtilization(ctx, rackID)
			Expect(err).NotTo(HaveOccurred())
			Expect(utilization.SpaceUtilization).To(BeNumerically("==", 25))
			Expect(utilization.PowerUtilization).To(BeNumerically("==", 25))
		})
	})

	Describe("RenderElevation", func() {
		It("should render an SVG document with the rack title", func() {
			resp, err := svc.CreateRack(ctx, &service.RackCreateDTO{Name: "E01", SiteID: 1, UHeight: 4})
			Expect(err).NotTo(HaveOccurred())

			body, err := svc.RenderElevation(ctx, resp.ID, "front", rackspace.DefaultSVGParams(), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(body)).To(ContainSubstring("<svg"))
			Expect(string(body)).To(ContainSubstring("E01 (front)"))
		})
	})

	Describe("DeleteRack", func() {
		It("should cascade delete reservations and publish an event", func() {
			resp, err := svc.CreateRack(ctx, &service.RackCreateDTO{Name: "F01", SiteID: 1, UHeight: 42})
			Expect(err).NotTo(HaveOccurred())

			reservation := &portal.RackReservation{RackID: resp.ID, UserName: "admin", Description: "hold"}
			Expect(reservation.SetUnitList([]int{1, 2})).To(Succeed())
			Expect(db.Create(reservation).Error).To(Succeed())

			Expect(svc.DeleteRack(ctx, resp.ID)).To(Succeed())

			var count int64
			Expect(db.Model(&portal.RackReservation{}).Where("rack_id = ?", resp.ID).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
			Expect(publisher.events).To(ContainElement(service.RackActionDeleted))
		})
	})
})
