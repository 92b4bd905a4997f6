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

var _ = Describe("RackTypeService", func() {
	var (
		ctx       context.Context
		db        *gorm.DB
		dbPath    string
		svc       *service.RackTypeService
		logger, _ = zap.NewDevelopment()
	)

	BeforeEach(func() {
		ctx = context.Background()
		db, dbPath = newTestDB()
		svc = service.NewRackTypeService(db, logger)

		Expect(db.Create(&portal.Site{BaseModel: portal.BaseModel{ID: 1}, Name: "site-a"}).Error).To(Succeed())
	})

	AfterEach(func() {
		closeTestDB(db, dbPath)
	})

	newDTO := func(uHeight int) *service.RackTypeDTO {
		return &service.RackTypeDTO{
			Manufacturer: "APC",
			Model:        "AR3100",
			Slug:         "apc-ar3100",
			UHeight:      uHeight,
			StartingUnit: 1,
		}
	}

	Describe("CreateRackType", func() {
		It("should apply dimension defaults", func() {
			resp, err := svc.CreateRackType(ctx, &service.RackTypeDTO{
				Manufacturer: "Dell",
				Model:        "4820",
				Slug:         "dell-4820",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.UHeight).To(Equal(42))
			Expect(resp.StartingUnit).To(Equal(1))
			Expect(resp.Width).To(Equal(portal.RackWidth19IN))
		})

		It("should reject out-of-range heights", func() {
			_, err := svc.CreateRackType(ctx, newDTO(120))
			Expect(err).To(HaveOccurred())
			Expect(service.IsBadRequest(err)).To(BeTrue())
		})
	})

	Describe("UpdateRackType", func() {
		It("should propagate physical attributes to attached racks", func() {
			created, err := svc.CreateRackType(ctx, newDTO(42))
			Expect(err).NotTo(HaveOccurred())

			racks := []portal.Rack{
				{Name: "A01", SiteID: 1, RackTypeID: created.ID, Status: portal.RackStatusActive,
					RackDimensions: portal.RackDimensions{UHeight: 42, StartingUnit: 1, Width: portal.RackWidth19IN}},
				{Name: "A02", SiteID: 1, RackTypeID: created.ID, Status: portal.RackStatusActive,
					RackDimensions: portal.RackDimensions{UHeight: 42, StartingUnit: 1, Width: portal.RackWidth19IN}},
				{Name: "B01", SiteID: 1, Status: portal.RackStatusActive,
					RackDimensions: portal.RackDimensions{UHeight: 24, StartingUnit: 1, Width: portal.RackWidth19IN}},
			}
			for i := range racks {
				Expect(db.Create(&racks[i]).Error).To(Succeed())
			}

			dto := newDTO(48)
			dto.DescUnits = true
			_, err = svc.UpdateRackType(ctx, created.ID, dto)
			Expect(err).NotTo(HaveOccurred())

			var attached []portal.Rack
			Expect(db.Where("rack_type_id = ?", created.ID).Order("name").Find(&attached).Error).To(Succeed())
			Expect(attached).To(HaveLen(2))
			for i := range attached {
				Expect(attached[i].UHeight).To(Equal(48))
				Expect(attached[i].DescUnits).To(BeTrue())
			}

			// 未关联的机柜不受影响
			var detached portal.Rack
			Expect(db.Where("name = ?", "B01").First(&detached).Error).To(Succeed())
			Expect(detached.UHeight).To(Equal(24))
		})
	})

	Describe("DeleteRackType", func() {
		It("should detach racks but keep their copied attributes", func() {
			created, err := svc.CreateRackType(ctx, newDTO(48))
			Expect(err).NotTo(HaveOccurred())

			rack := portal.Rack{Name: "A01", SiteID: 1, RackTypeID: created.ID, Status: portal.RackStatusActive,
				RackDimensions: portal.RackDimensions{UHeight: 48, StartingUnit: 1, Width: portal.RackWidth19IN}}
			Expect(db.Create(&rack).Error).To(Succeed())

			Expect(svc.DeleteRackType(ctx, created.ID)).To(Succeed())

			var reloaded portal.Rack
			Expect(db.First(&reloaded, rack.ID).Error).To(Succeed())
			Expect(reloaded.RackTypeID).To(BeZero())
			Expect(reloaded.UHeight).To(Equal(48))

			_, err = svc.GetRackType(ctx, created.ID)
			Expect(service.IsNotFound(err)).To(BeTrue())
		})
	})
})
