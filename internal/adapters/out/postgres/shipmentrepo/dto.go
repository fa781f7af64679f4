// Package shipmentrepo provides data transfer objects and mapping functions for shipment persistence.
// A shipment is stored as one row in "shipments" with its booked items in "shipment_items".
package shipmentrepo

import (
	"errors"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment aggregates.
type ShipmentDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	TrackingCode   string    `gorm:"type:varchar(64);not null;index"`
	IdempotencyKey string    `gorm:"type:varchar(128);not null"`
	Status         int       `gorm:"type:smallint;not null;index"`

	Sender           PartyDTO `gorm:"embedded;embeddedPrefix:sender_"`
	Receiver         PartyDTO `gorm:"embedded;embeddedPrefix:receiver_"`
	ServiceType      int      `gorm:"type:smallint;not null"`
	DeclaredValue    int64    `gorm:"not null"`
	Category         string   `gorm:"type:varchar(64)"`
	PickupDate       time.Time
	PickupSlot       string `gorm:"type:varchar(32)"`
	InspectionPolicy string `gorm:"type:varchar(32)"`
	PaymentMethod    string `gorm:"type:varchar(32)"`
	Payer            string `gorm:"type:varchar(16)"`
	IntakeNote       string `gorm:"type:text"`

	Pricing        PricingDTO        `gorm:"embedded;embeddedPrefix:pricing_"`
	Reconciliation ReconciliationDTO `gorm:"embedded;embeddedPrefix:reconciliation_"`

	ItemDeviation  bool
	PriceDeviation bool
	PaymentPending bool

	PaymentRecorded bool
	PaidMethod      string `gorm:"type:varchar(32)"`
	PaidAmount      int64

	CheckInShift string `gorm:"type:varchar(32)"`
	CheckInAt    *time.Time

	Problems []string `gorm:"type:jsonb;serializer:json"`
	Note     string   `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Items []ItemDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

type PartyDTO struct {
	Name         string `gorm:"type:varchar(255)"`
	Phone        string `gorm:"type:varchar(32)"`
	Address      string `gorm:"type:varchar(512)"`
	ProvinceCode string `gorm:"type:varchar(16)"`
	ProvinceName string `gorm:"type:varchar(128)"`
	WardCode     string `gorm:"type:varchar(16)"`
	WardName     string `gorm:"type:varchar(128)"`
}

// PricingDTO is the quote snapshot. A NULL estimated fee means unknown.
type PricingDTO struct {
	EstimatedFee     *int64
	BasePrice        int64
	ExtraWeightPrice int64
	RouteType        string `gorm:"type:varchar(32)"`
	VehicleType      string `gorm:"type:varchar(32)"`
	SLAClass         string `gorm:"column:sla_class;type:varchar(32)"`
	ChargeableWeight float64
	ActualWeight     float64
	VolumetricWeight float64
}

// ReconciliationDTO holds the Check-Item measurement. Recorded is false until
// the step has run.
type ReconciliationDTO struct {
	Recorded        bool
	WeightGrams     float64
	Length          float64
	Width           float64
	Height          float64
	Scale           float64
	ActualFee       *int64
	PriceDifference *int64
}

// ItemDTO is one booked item. Items keep their booking order through Position.
type ItemDTO struct {
	ShipmentID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position      int       `gorm:"primaryKey;autoIncrement:false"`
	Name          string    `gorm:"type:varchar(255);not null"`
	ServiceType   int       `gorm:"type:smallint;not null"`
	WeightGrams   float64
	Length        float64
	Width         float64
	Height        float64
	Size          string `gorm:"type:varchar(4)"`
	Category      string `gorm:"type:varchar(64)"`
	DeclaredValue int64
}

func (ItemDTO) TableName() string {
	return "shipment_items"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	snap := s.Snapshot()
	id := snap.ID.Bytes()

	items := make([]ItemDTO, 0, len(snap.Intake.Items))
	for i, it := range snap.Intake.Items {
		items = append(items, ItemDTO{
			ShipmentID:    id,
			Position:      i,
			Name:          it.Name(),
			ServiceType:   int(it.ServiceType()),
			WeightGrams:   it.Weight().Grams(),
			Length:        it.Dimensions().Length(),
			Width:         it.Dimensions().Width(),
			Height:        it.Dimensions().Height(),
			Size:          string(it.Size()),
			Category:      it.Category(),
			DeclaredValue: it.DeclaredValue(),
		})
	}

	dto := ShipmentDTO{
		ID:               id,
		OrderID:          snap.OrderID,
		TrackingCode:     snap.TrackingCode,
		IdempotencyKey:   snap.IdempotencyKey,
		Status:           int(snap.Status),
		Sender:           partyFromDomain(snap.Intake.Sender),
		Receiver:         partyFromDomain(snap.Intake.Receiver),
		ServiceType:      int(snap.Intake.ServiceType),
		DeclaredValue:    snap.Intake.DeclaredValue,
		Category:         snap.Intake.Category,
		PickupDate:       snap.Intake.PickupDate,
		PickupSlot:       snap.Intake.PickupSlot,
		InspectionPolicy: string(snap.Intake.InspectionPolicy),
		PaymentMethod:    string(snap.Intake.PaymentMethod),
		Payer:            string(snap.Intake.Payer),
		IntakeNote:       snap.Intake.Note,
		Pricing: PricingDTO{
			EstimatedFee:     snap.Pricing.EstimatedFee.Pointer(),
			BasePrice:        snap.Pricing.BasePrice,
			ExtraWeightPrice: snap.Pricing.ExtraWeightPrice,
			RouteType:        snap.Pricing.RouteType,
			VehicleType:      snap.Pricing.VehicleType,
			SLAClass:         snap.Pricing.SLAClass,
			ChargeableWeight: snap.Pricing.ChargeableWeight,
			ActualWeight:     snap.Pricing.ActualWeight,
			VolumetricWeight: snap.Pricing.VolumetricWeight,
		},
		ItemDeviation:  snap.Deviations.Item,
		PriceDeviation: snap.Deviations.Price,
		PaymentPending: snap.Deviations.PaymentPending,
		Problems:       snap.Problems,
		Note:           snap.Note,
		CreatedAt:      snap.CreatedAt,
		UpdatedAt:      snap.UpdatedAt,
		Items:          items,
	}

	if r := snap.Reconciliation; r != nil {
		dto.Reconciliation = ReconciliationDTO{
			Recorded:        true,
			WeightGrams:     r.Measurement.Weight.Grams(),
			Length:          r.Measurement.Dimensions.Length(),
			Width:           r.Measurement.Dimensions.Width(),
			Height:          r.Measurement.Dimensions.Height(),
			Scale:           r.Scale,
			ActualFee:       r.ActualFee.Pointer(),
			PriceDifference: r.PriceDifference.Pointer(),
		}
	}
	if p := snap.Payment; p != nil {
		dto.PaymentRecorded = true
		dto.PaidMethod = string(p.Method)
		dto.PaidAmount = p.Amount
	}
	if c := snap.CheckIn; c != nil {
		at := c.At
		dto.CheckInShift = c.Shift
		dto.CheckInAt = &at
	}

	return dto
}

func partyFromDomain(p shipment.Party) PartyDTO {
	return PartyDTO{
		Name:         p.Name,
		Phone:        p.Phone,
		Address:      p.Address,
		ProvinceCode: p.Province.Code,
		ProvinceName: p.Province.Name,
		WardCode:     p.Ward.Code,
		WardName:     p.Ward.Name,
	}
}

func (p PartyDTO) toDomain() shipment.Party {
	return shipment.Party{
		Name:     p.Name,
		Phone:    p.Phone,
		Address:  p.Address,
		Province: shipment.Region{Code: p.ProvinceCode, Name: p.ProvinceName},
		Ward:     shipment.Region{Code: p.WardCode, Name: p.WardName},
	}
}

// toDomain rebuilds the aggregate with RestoreShipment. Items go through
// NewItem again so a corrupted row surfaces as a validation error.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]shipment.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	estimated, err := kernel.FeeFromPointer(dto.Pricing.EstimatedFee)
	if err != nil {
		return nil, err
	}

	snap := shipment.Snapshot{
		ID:             id,
		OrderID:        dto.OrderID,
		TrackingCode:   dto.TrackingCode,
		IdempotencyKey: dto.IdempotencyKey,
		Intake: shipment.Intake{
			Sender:           dto.Sender.toDomain(),
			Receiver:         dto.Receiver.toDomain(),
			ServiceType:      shipment.ServiceType(dto.ServiceType),
			Items:            items,
			DeclaredValue:    dto.DeclaredValue,
			Category:         dto.Category,
			PickupDate:       dto.PickupDate,
			PickupSlot:       dto.PickupSlot,
			InspectionPolicy: shipment.InspectionPolicy(dto.InspectionPolicy),
			PaymentMethod:    shipment.PaymentMethod(dto.PaymentMethod),
			Payer:            shipment.Payer(dto.Payer),
			Note:             dto.IntakeNote,
		},
		Status: shipment.Status(dto.Status),
		Pricing: shipment.PricingBreakdown{
			EstimatedFee:     estimated,
			BasePrice:        dto.Pricing.BasePrice,
			ExtraWeightPrice: dto.Pricing.ExtraWeightPrice,
			RouteType:        dto.Pricing.RouteType,
			VehicleType:      dto.Pricing.VehicleType,
			SLAClass:         dto.Pricing.SLAClass,
			ChargeableWeight: dto.Pricing.ChargeableWeight,
			ActualWeight:     dto.Pricing.ActualWeight,
			VolumetricWeight: dto.Pricing.VolumetricWeight,
		},
		Deviations: shipment.Deviations{
			Item:           dto.ItemDeviation,
			Price:          dto.PriceDeviation,
			PaymentPending: dto.PaymentPending,
		},
		Problems:  dto.Problems,
		Note:      dto.Note,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	}

	if dto.Reconciliation.Recorded {
		r, recErr := dto.Reconciliation.toDomain()
		if recErr != nil {
			return nil, recErr
		}
		snap.Reconciliation = &r
	}
	if dto.PaymentRecorded {
		snap.Payment = &shipment.Payment{
			Method: shipment.PaymentMethod(dto.PaidMethod),
			Amount: dto.PaidAmount,
		}
	}
	if dto.CheckInAt != nil {
		snap.CheckIn = &shipment.CheckIn{Shift: dto.CheckInShift, At: *dto.CheckInAt}
	}

	return shipment.RestoreShipment(snap)
}

func itemToDomain(dto ItemDTO) (shipment.Item, error) {
	weight, weightErr := kernel.NewWeight(dto.WeightGrams)
	dims, dimsErr := kernel.NewDimensions(dto.Length, dto.Width, dto.Height)
	if err := errors.Join(weightErr, dimsErr); err != nil {
		return shipment.Item{}, err
	}

	return shipment.NewItem(
		dto.Name,
		shipment.ServiceType(dto.ServiceType),
		weight,
		dims,
		shipment.SizeClass(dto.Size),
		dto.Category,
		dto.DeclaredValue,
	)
}

func (r ReconciliationDTO) toDomain() (shipment.Reconciliation, error) {
	weight, weightErr := kernel.NewWeight(r.WeightGrams)
	dims, dimsErr := kernel.NewDimensions(r.Length, r.Width, r.Height)
	actual, actualErr := kernel.FeeFromPointer(r.ActualFee)
	diff, diffErr := kernel.FeeFromPointer(r.PriceDifference)
	if err := errors.Join(weightErr, dimsErr, actualErr, diffErr); err != nil {
		return shipment.Reconciliation{}, err
	}

	return shipment.Reconciliation{
		Measurement:     shipment.Measurement{Weight: weight, Dimensions: dims},
		Scale:           r.Scale,
		ActualFee:       actual,
		PriceDifference: diff,
	}, nil
}
