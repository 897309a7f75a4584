package endpoint

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ariebrainware/clinic-records/model"
	"github.com/ariebrainware/clinic-records/util"
	"github.com/ariebrainware/clinic-records/validation"
)

// ListPredeterminedPrices godoc
// @Summary      List predetermined prices
// @Tags         PredeterminedPrice
// @Produce      json
// @Param        limit query int false "Limit number of results"
// @Param        offset query int false "Offset for pagination"
// @Success      200 {object} util.APIResponse{data=object} "Predetermined prices retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /predetermined-prices [get]
func ListPredeterminedPrices(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	prices, total, err := model.ListPredeterminedPrices(c.Request.Context(), db, listOptions(c))
	if err != nil {
		respondError(c, model.TablePredeterminedPrices, "Failed to retrieve predetermined prices", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Predetermined prices retrieved",
		Data: map[string]interface{}{"total": total, "total_fetched": len(prices), "predetermined_prices": prices},
	})
}

// GetPredeterminedPrice godoc
// @Summary      Get a predetermined price
// @Tags         PredeterminedPrice
// @Produce      json
// @Param        id path int true "Predetermined price ID"
// @Success      200 {object} util.APIResponse{data=model.PredeterminedPrice} "Predetermined price retrieved"
// @Failure      404 {object} util.APIResponse "Predetermined price not found"
// @Router       /predetermined-prices/{id} [get]
func GetPredeterminedPrice(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}
	id, ok := getIDParam(c)
	if !ok {
		return
	}

	price, err := model.FindPredeterminedPrice(c.Request.Context(), db, id)
	if err != nil {
		respondError(c, model.TablePredeterminedPrices, "Failed to retrieve predetermined price", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Predetermined price retrieved",
		Data: price,
	})
}

// CreatePredeterminedPrice godoc
// @Summary      Create a predetermined price
// @Tags         PredeterminedPrice
// @Accept       json
// @Produce      json
// @Param        request body validation.PredeterminedPriceForm true "Predetermined price information"
// @Success      201 {object} util.APIResponse{data=model.PredeterminedPrice} "Predetermined price created"
// @Failure      400 {object} util.APIResponse "Invalid input"
// @Failure      409 {object} util.APIResponse "Name already in use"
// @Router       /predetermined-prices [post]
func CreatePredeterminedPrice(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	var form validation.PredeterminedPriceForm
	if !bindJSON(c, &form) {
		return
	}
	if err := validatorFor(db).PredeterminedPrice(c.Request.Context(), &form, 0); err != nil {
		respondError(c, model.TablePredeterminedPrices, "Invalid predetermined price", err)
		return
	}

	var price model.PredeterminedPrice
	form.Apply(&price)
	if err := model.Create(c.Request.Context(), db, &price); err != nil {
		respondError(c, model.TablePredeterminedPrices, "Failed to create predetermined price", err)
		return
	}

	recordChange(c, model.TablePredeterminedPrices, util.ActionCreate, price.ID, price.String()+" created")
	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Predetermined price created",
		Data: price,
	})
}

// UpdatePredeterminedPrice godoc
// @Summary      Update a predetermined price
// @Description  Fields left out of the body keep their stored values.
// @Tags         PredeterminedPrice
// @Accept       json
// @Produce      json
// @Param        id path int true "Predetermined price ID"
// @Param        request body validation.PredeterminedPriceForm true "Predetermined price fields to change"
// @Success      200 {object} util.APIResponse{data=model.PredeterminedPrice} "Predetermined price updated"
// @Failure      400 {object} util.APIResponse "Invalid input"
// @Failure      404 {object} util.APIResponse "Predetermined price not found"
// @Router       /predetermined-prices/{id} [patch]
func UpdatePredeterminedPrice(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}
	id, ok := getIDParam(c)
	if !ok {
		return
	}

	price, err := model.FindPredeterminedPrice(c.Request.Context(), db, id)
	if err != nil {
		respondError(c, model.TablePredeterminedPrices, "Failed to retrieve predetermined price", err)
		return
	}

	form := validation.NewPredeterminedPriceForm(price)
	if !bindJSON(c, &form) {
		return
	}
	if err := validatorFor(db).PredeterminedPrice(c.Request.Context(), &form, id); err != nil {
		respondError(c, model.TablePredeterminedPrices, "Invalid predetermined price", err)
		return
	}

	form.Apply(&price)
	if err := model.Update(c.Request.Context(), db, &price); err != nil {
		respondError(c, model.TablePredeterminedPrices, "Failed to update predetermined price", err)
		return
	}

	recordChange(c, model.TablePredeterminedPrices, util.ActionUpdate, id, price.String()+" updated")
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Predetermined price updated",
		Data: price,
	})
}

// DeletePredeterminedPrice godoc
// @Summary      Delete a predetermined price
// @Description  Remove a predetermined price together with the appointments priced with it
// @Tags         PredeterminedPrice
// @Produce      json
// @Param        id path int true "Predetermined price ID"
// @Success      200 {object} util.APIResponse "Predetermined price removed"
// @Failure      404 {object} util.APIResponse "Predetermined price not found"
// @Router       /predetermined-prices/{id} [delete]
func DeletePredeterminedPrice(c *gin.Context) {
	removeRecord(c, model.TablePredeterminedPrices, "predetermined price", func(c *gin.Context, db *gorm.DB, id uint) error {
		return model.DeletePredeterminedPrice(c.Request.Context(), db, id)
	})
}
