package transformers

import (
	"github.com/finmarkets/checkout.api.finmarkets.io/models"
)

// CheckoutTransformer transforms checkout resource data between rest and database models
type CheckoutTransformer struct{}

// TransformToDB transforms a checkout resource rest model into a checkout resource database model
func (ct CheckoutTransformer) TransformToDB(rest models.CheckoutResourceRest) models.CheckoutResourceDB {
	checkoutResourceData := models.CheckoutResourceDataDB{
		Amount:        rest.Amount,
		Currency:      rest.Currency,
		Brand:         rest.Brand,
		DiscountCode:  rest.DiscountCode,
		PaymentMethod: rest.PaymentMethod,
		Status:        rest.Status,
		Reference:     rest.Reference,
		CreatedAt:     rest.CreatedAt,
		CompletedAt:   rest.CompletedAt,
	}

	checkoutResourceData.CreatedBy = models.CreatedByDB(rest.CreatedBy)
	checkoutResourceData.Links = models.CheckoutLinksDB(rest.Links)

	checkoutResource := models.CheckoutResourceDB{
		ID:                    rest.MetaData.ID,
		RedirectURI:           rest.MetaData.RedirectURI,
		State:                 rest.MetaData.State,
		ExternalOrderID:       rest.MetaData.ExternalOrderID,
		ExternalTransactionID: rest.MetaData.ExternalTransactionID,
		DiscountAttempt:       rest.MetaData.DiscountAttempt,
		Data:                  checkoutResourceData,
	}

	return checkoutResource
}

// TransformToRest transforms a checkout resource database model into a checkout resource rest model
func (ct CheckoutTransformer) TransformToRest(dbResource models.CheckoutResourceDB) models.CheckoutResourceRest {
	checkoutResource := models.CheckoutResourceRest{
		Amount:        dbResource.Data.Amount,
		Currency:      dbResource.Data.Currency,
		Brand:         dbResource.Data.Brand,
		DiscountCode:  dbResource.Data.DiscountCode,
		PaymentMethod: dbResource.Data.PaymentMethod,
		Status:        dbResource.Data.Status,
		Reference:     dbResource.Data.Reference,
		CreatedAt:     dbResource.Data.CreatedAt,
		CompletedAt:   dbResource.Data.CompletedAt,
		CreatedBy:     models.CreatedByRest(dbResource.Data.CreatedBy),
		Links:         models.CheckoutLinksRest(dbResource.Data.Links),
		MetaData: models.CheckoutMetaDataRest{
			ID:                    dbResource.ID,
			RedirectURI:           dbResource.RedirectURI,
			State:                 dbResource.State,
			ExternalOrderID:       dbResource.ExternalOrderID,
			ExternalTransactionID: dbResource.ExternalTransactionID,
			DiscountAttempt:       dbResource.DiscountAttempt,
		},
	}
	return checkoutResource
}
