package endpoint

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ariebrainware/clinic-records/model"
	"github.com/ariebrainware/clinic-records/util"
	"github.com/ariebrainware/clinic-records/validation"
)

var paymentTypeLifecycle = softDeletable{
	entity: model.TablePaymentTypes,
	label:  "payment type",
	find: func(c *gin.Context, db *gorm.DB, id uint) (model.SoftDeletable, error) {
		d, err := model.FindPaymentType(c.Request.Context(), db, id)
		return &d, err
	},
	purge: func(c *gin.Context, db *gorm.DB, id uint) error {
		return model.DeletePaymentType(c.Request.Context(), db, id)
	},
}

// ListPaymentTypes godoc
// @Summary      List payment types
// @Description  Get a paginated list of payment types. Deleted ones are left out unless include_deleted is true.
// @Tags         PaymentType
// @Produce      json
// @Param        limit query int false "Limit number of results"
// @Param        offset query int false "Offset for pagination"
// @Param        include_deleted query bool false "Include soft-deleted payment types"
// @Success      200 {object} util.APIResponse{data=object} "Payment types retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /payment-types [get]
func ListPaymentTypes(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	paymentTypes, total, err := model.ListPaymentTypes(c.Request.Context(), db, listOptions(c))
	if err != nil {
		respondError(c, model.TablePaymentTypes, "Failed to retrieve payment types", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Payment types retrieved",
		Data: map[string]interface{}{"total": total, "total_fetched": len(paymentTypes), "payment_types": paymentTypes},
	})
}

// GetPaymentType godoc
// @Summary      Get a payment type
// @Tags         PaymentType
// @Produce      json
// @Param        id path int true "Payment type ID"
// @Success      200 {object} util.APIResponse{data=model.PaymentType} "Payment type retrieved"
// @Failure      404 {object} util.APIResponse "Payment type not found"
// @Router       /payment-types/{id} [get]
func GetPaymentType(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}
	id, ok := getIDParam(c)
	if !ok {
		return
	}

	paymentType, err := model.FindPaymentType(c.Request.Context(), db, id)
	if err != nil {
		respondError(c, model.TablePaymentTypes, "Failed to retrieve payment type", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Payment type retrieved",
		Data: paymentType,
	})
}

// CreatePaymentType godoc
// @Summary      Create a payment type
// @Tags         PaymentType
// @Accept       json
// @Produce      json
// @Param        request body validation.PaymentTypeForm true "Payment type information"
// @Success      201 {object} util.APIResponse{data=model.PaymentType} "Payment type created"
// @Failure      400 {object} util.APIResponse "Invalid input"
// @Failure      409 {object} util.APIResponse "Name already in use"
// @Router       /payment-types [post]
func CreatePaymentType(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	var form validation.PaymentTypeForm
	if !bindJSON(c, &form) {
		return
	}
	if err := validatorFor(db).PaymentType(c.Request.Context(), &form, 0); err != nil {
		respondError(c, model.TablePaymentTypes, "Invalid payment type", err)
		return
	}

	var paymentType model.PaymentType
	form.Apply(&paymentType)
	if err := model.Create(c.Request.Context(), db, &paymentType); err != nil {
		respondError(c, model.TablePaymentTypes, "Failed to create payment type", err)
		return
	}

	recordChange(c, model.TablePaymentTypes, util.ActionCreate, paymentType.ID, "Payment type created")
	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Payment type created",
		Data: paymentType,
	})
}

// UpdatePaymentType godoc
// @Summary      Update a payment type
// @Description  Fields left out of the body keep their stored values.
// @Tags         PaymentType
// @Accept       json
// @Produce      json
// @Param        id path int true "Payment type ID"
// @Param        request body validation.PaymentTypeForm true "Payment type fields to change"
// @Success      200 {object} util.APIResponse{data=model.PaymentType} "Payment type updated"
// @Failure      400 {object} util.APIResponse "Invalid input"
// @Failure      404 {object} util.APIResponse "Payment type not found"
// @Router       /payment-types/{id} [patch]
func UpdatePaymentType(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}
	id, ok := getIDParam(c)
	if !ok {
		return
	}

	paymentType, err := model.FindPaymentType(c.Request.Context(), db, id)
	if err != nil {
		respondError(c, model.TablePaymentTypes, "Failed to retrieve payment type", err)
		return
	}

	form := validation.NewPaymentTypeForm(paymentType)
	if !bindJSON(c, &form) {
		return
	}
	if err := validatorFor(db).PaymentType(c.Request.Context(), &form, id); err != nil {
		respondError(c, model.TablePaymentTypes, "Invalid payment type", err)
		return
	}

	form.Apply(&paymentType)
	if err := model.Update(c.Request.Context(), db, &paymentType); err != nil {
		respondError(c, model.TablePaymentTypes, "Failed to update payment type", err)
		return
	}

	recordChange(c, model.TablePaymentTypes, util.ActionUpdate, id, "Payment type updated")
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Payment type updated",
		Data: paymentType,
	})
}

// DeletePaymentType godoc
// @Summary      Delete a payment type
// @Description  Soft delete a payment type by ID. Its appointments are kept.
// @Tags         PaymentType
// @Produce      json
// @Param        id path int true "Payment type ID"
// @Success      200 {object} util.APIResponse{data=model.PaymentType} "Payment type deleted"
// @Failure      404 {object} util.APIResponse "Payment type not found"
// @Router       /payment-types/{id} [delete]
func DeletePaymentType(c *gin.Context) {
	paymentTypeLifecycle.softDelete(c)
}

// RestorePaymentType godoc
// @Summary      Restore a payment type
// @Tags         PaymentType
// @Produce      json
// @Param        id path int true "Payment type ID"
// @Success      200 {object} util.APIResponse{data=model.PaymentType} "Payment type restored"
// @Failure      404 {object} util.APIResponse "Payment type not found"
// @Router       /payment-types/{id}/restore [post]
func RestorePaymentType(c *gin.Context) {
	paymentTypeLifecycle.restore(c)
}

// PurgePaymentType godoc
// @Summary      Remove a payment type
// @Description  Physically remove a payment type together with the appointments paid with it.
// @Tags         PaymentType
// @Produce      json
// @Param        id path int true "Payment type ID"
// @Success      200 {object} util.APIResponse "Payment type removed"
// @Failure      404 {object} util.APIResponse "Payment type not found"
// @Router       /payment-types/{id}/purge [delete]
func PurgePaymentType(c *gin.Context) {
	paymentTypeLifecycle.physicalDelete(c)
}
