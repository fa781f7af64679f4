package shipment

import "parcel/internal/core/domain/model/checklist"

// Checklist item names. Callers submit them as flags with a step.
const (
	ItemLabelMatches             = "label_matches"
	ItemContentsMatchDeclaration = "contents_match_declaration"
	ItemPackagingIntact          = "packaging_intact"
	ItemWeightDiffers            = "weight_differs"
	ItemSizeDiffers              = "size_differs"
	ItemContentsDiffer           = "contents_differ"
	ItemPackagingDamaged         = "packaging_damaged"

	// Derived by the shipment from the payment amount. Caller input is ignored.
	ItemAmountMatchesFee = "amount_matches_fee"

	ItemCustomerInformed         = "customer_informed"
	ItemCustomerAcceptedCharge   = "customer_accepted_charge"
	ItemCustomerAcceptedAdjusted = "customer_accepted_adjusted_fee"
	ItemPaymentReceived          = "payment_received"
	ItemCollectOnDelivery        = "collect_on_delivery"
	ItemPaymentLinkSent          = "payment_link_sent"
	ItemParcelLabeled            = "parcel_labeled"
	ItemParcelSealed             = "parcel_sealed"
	ItemReconciliationMade       = "reconciliation_created"
	ItemParcelScannedIn          = "parcel_scanned_in"
	ItemLoadedOnVehicle          = "loaded_on_vehicle"
	ItemSealApplied              = "seal_applied"
	ItemSealIntact               = "seal_intact"
	ItemShipperAssigned          = "shipper_assigned"
	ItemParcelHandedOver         = "parcel_handed_over"
	ItemReceiverVerified         = "receiver_verified"
	ItemHandedToReceiver         = "parcel_handed_to_receiver"
	ItemReceiverAbsent           = "receiver_absent"
	ItemRedeliveryScheduled      = "redelivery_scheduled"
	ItemReturnApproved           = "return_approved"
	ItemReturnLabelPrinted       = "return_label_printed"
	ItemSenderReceived           = "sender_received_parcel"
	ItemSenderUnreachable        = "sender_unreachable"
	ItemSenderDeclined           = "sender_declined_return"
	ItemStorageExpired           = "storage_period_expired"
	ItemResolutionRecorded       = "resolution_recorded"

	// Problems that move a shipment to ISSUE.
	ItemVehicleChanged  = "vehicle_changed"
	ItemAccidentOrDelay = "accident_or_delay"
	ItemSealDamaged     = "seal_damaged"
	ItemWrongAddress    = "wrong_address"
	ItemCustomerRefused = "customer_refused"
	ItemCouldNotContact = "could_not_contact"
)

// Gate templates, all unchecked. Gates are values, so handing them out is safe.
var (
	checkItemGate = checklist.MustNewGate("check item", checklist.All,
		ItemLabelMatches, ItemContentsMatchDeclaration, ItemPackagingIntact)
	itemDeviationGate = checklist.MustNewGate("item deviation", checklist.Any,
		ItemWeightDiffers, ItemSizeDiffers, ItemContentsDiffer, ItemPackagingDamaged)

	// The charge confirmed here is the reconciled fee, which may be above the
	// quote. A raised fee is recorded as a price deviation, not as a gate item.
	checkPriceGate = checklist.MustNewGate("check price", checklist.All,
		ItemCustomerInformed, ItemCustomerAcceptedCharge)
	priceAdjustmentGate = checklist.MustNewGate("price adjustment", checklist.All,
		ItemCustomerAcceptedAdjusted)

	paymentConfirmedGate = checklist.MustNewGate("payment confirmed", checklist.All,
		ItemPaymentReceived, ItemAmountMatchesFee)
	paymentPendingGate = checklist.MustNewGate("payment pending", checklist.Any,
		ItemCollectOnDelivery, ItemPaymentLinkSent)

	completePickupGate = checklist.MustNewGate("complete pickup", checklist.All,
		ItemParcelLabeled, ItemParcelSealed)
	originCheckInGate = checklist.MustNewGate("origin check-in", checklist.All,
		ItemReconciliationMade, ItemParcelScannedIn)
	dispatchGate = checklist.MustNewGate("dispatch", checklist.All,
		ItemLoadedOnVehicle, ItemSealApplied)
	destinationCheckInGate = checklist.MustNewGate("destination check-in", checklist.All,
		ItemSealIntact, ItemParcelScannedIn)
	startDeliveryGate = checklist.MustNewGate("start delivery", checklist.All,
		ItemShipperAssigned, ItemParcelHandedOver)

	deliveredGate = checklist.MustNewGate("delivered", checklist.All,
		ItemReceiverVerified, ItemHandedToReceiver)
	deliveryFailedGate = checklist.MustNewGate("delivery failed", checklist.Any,
		ItemReceiverAbsent, ItemCustomerRefused, ItemWrongAddress, ItemCouldNotContact)
	redeliverGate = checklist.MustNewGate("redeliver", checklist.All,
		ItemRedeliveryScheduled)

	createReturnGate = checklist.MustNewGate("create return", checklist.All,
		ItemReturnApproved)
	shipReturnGate = checklist.MustNewGate("ship return", checklist.All,
		ItemReturnLabelPrinted, ItemLoadedOnVehicle)
	arriveOriginGate = checklist.MustNewGate("arrive origin", checklist.All,
		ItemParcelScannedIn)
	returnCompletedGate = checklist.MustNewGate("return completed", checklist.All,
		ItemSenderReceived)
	disposeGate = checklist.MustNewGate("dispose", checklist.Any,
		ItemSenderUnreachable, ItemSenderDeclined, ItemStorageExpired)

	problemGate = checklist.MustNewGate("problem", checklist.Any,
		ItemVehicleChanged, ItemAccidentOrDelay, ItemSealDamaged,
		ItemWrongAddress, ItemCustomerRefused, ItemCouldNotContact)
	closeGate = checklist.MustNewGate("close", checklist.All,
		ItemResolutionRecorded)
)
