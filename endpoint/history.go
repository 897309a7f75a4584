package endpoint

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ariebrainware/clinic-records/model"
	"github.com/ariebrainware/clinic-records/util"
	"github.com/ariebrainware/clinic-records/validation"
)

var historyLifecycle = softDeletable{
	entity: model.TableHistories,
	label:  "history",
	find: func(c *gin.Context, db *gorm.DB, id uint) (model.SoftDeletable, error) {
		h, err := model.FindHistory(c.Request.Context(), db, id)
		return &h, err
	},
	purge: func(c *gin.Context, db *gorm.DB, id uint) error {
		return model.DeleteHistory(c.Request.Context(), db, id)
	},
}

// ListHistories godoc
// @Summary      List clinical histories
// @Description  Get a paginated list of histories, optionally for a single patient
// @Tags         History
// @Produce      json
// @Param        patient_id query int false "Only histories of this patient"
// @Param        limit query int false "Limit number of results"
// @Param        offset query int false "Offset for pagination"
// @Param        include_deleted query bool false "Include soft-deleted histories"
// @Success      200 {object} util.APIResponse{data=object} "Histories retrieved"
// @Failure      400 {object} util.APIResponse "Invalid patient_id"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /histories [get]
func ListHistories(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	var patientID uint64
	if raw := c.Query("patient_id"); raw != "" {
		var err error
		patientID, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			util.CallUserError(c, util.APIErrorParams{
				Msg: "Invalid patient_id",
				Err: err,
			})
			return
		}
	}

	histories, total, err := model.ListHistories(c.Request.Context(), db, uint(patientID), listOptions(c))
	if err != nil {
		respondError(c, model.TableHistories, "Failed to retrieve histories", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Histories retrieved",
		Data: map[string]interface{}{"total": total, "total_fetched": len(histories), "histories": histories},
	})
}

// GetHistory godoc
// @Summary      Get a clinical history
// @Tags         History
// @Produce      json
// @Param        id path int true "History ID"
// @Success      200 {object} util.APIResponse{data=model.History} "History retrieved"
// @Failure      404 {object} util.APIResponse "History not found"
// @Router       /histories/{id} [get]
func GetHistory(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}
	id, ok := getIDParam(c)
	if !ok {
		return
	}

	history, err := model.FindHistory(c.Request.Context(), db, id)
	if err != nil {
		respondError(c, model.TableHistories, "Failed to retrieve history", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "History retrieved",
		Data: history,
	})
}

// CreateHistory godoc
// @Summary      Create a clinical history
// @Tags         History
// @Accept       json
// @Produce      json
// @Param        request body validation.HistoryForm true "History information"
// @Success      201 {object} util.APIResponse{data=model.History} "History created"
// @Failure      400 {object} util.APIResponse "Invalid input"
// @Router       /histories [post]
func CreateHistory(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	var form validation.HistoryForm
	if !bindJSON(c, &form) {
		return
	}
	if err := validatorFor(db).History(c.Request.Context(), &form, 0); err != nil {
		respondError(c, model.TableHistories, "Invalid history", err)
		return
	}

	var history model.History
	form.Apply(&history)
	if err := model.Create(c.Request.Context(), db, &history); err != nil {
		respondError(c, model.TableHistories, "Failed to create history", err)
		return
	}

	recordChange(c, model.TableHistories, util.ActionCreate, history.ID, history.String()+" created")
	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "History created",
		Data: history,
	})
}

// UpdateHistory godoc
// @Summary      Update a clinical history
// @Description  Fields left out of the body keep their stored values.
// @Tags         History
// @Accept       json
// @Produce      json
// @Param        id path int true "History ID"
// @Param        request body validation.HistoryForm true "History fields to change"
// @Success      200 {object} util.APIResponse{data=model.History} "History updated"
// @Failure      400 {object} util.APIResponse "Invalid input"
// @Failure      404 {object} util.APIResponse "History not found"
// @Router       /histories/{id} [patch]
func UpdateHistory(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}
	id, ok := getIDParam(c)
	if !ok {
		return
	}

	history, err := model.FindHistory(c.Request.Context(), db, id)
	if err != nil {
		respondError(c, model.TableHistories, "Failed to retrieve history", err)
		return
	}

	form := validation.NewHistoryForm(history)
	if !bindJSON(c, &form) {
		return
	}
	if err := validatorFor(db).History(c.Request.Context(), &form, id); err != nil {
		respondError(c, model.TableHistories, "Invalid history", err)
		return
	}

	form.Apply(&history)
	if err := model.Update(c.Request.Context(), db, &history); err != nil {
		respondError(c, model.TableHistories, "Failed to update history", err)
		return
	}

	recordChange(c, model.TableHistories, util.ActionUpdate, id, history.String()+" updated")
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "History updated",
		Data: history,
	})
}

// DeleteHistory godoc
// @Summary      Delete a clinical history
// @Description  Soft delete a history by ID
// @Tags         History
// @Produce      json
// @Param        id path int true "History ID"
// @Success      200 {object} util.APIResponse{data=model.History} "History deleted"
// @Failure      404 {object} util.APIResponse "History not found"
// @Router       /histories/{id} [delete]
func DeleteHistory(c *gin.Context) {
	historyLifecycle.softDelete(c)
}

// RestoreHistory godoc
// @Summary      Restore a clinical history
// @Tags         History
// @Produce      json
// @Param        id path int true "History ID"
// @Success      200 {object} util.APIResponse{data=model.History} "History restored"
// @Failure      404 {object} util.APIResponse "History not found"
// @Router       /histories/{id}/restore [post]
func RestoreHistory(c *gin.Context) {
	historyLifecycle.restore(c)
}

// PurgeHistory godoc
// @Summary      Remove a clinical history
// @Tags         History
// @Produce      json
// @Param        id path int true "History ID"
// @Success      200 {object} util.APIResponse "History removed"
// @Failure      404 {object} util.APIResponse "History not found"
// @Router       /histories/{id}/purge [delete]
func PurgeHistory(c *gin.Context) {
	historyLifecycle.physicalDelete(c)
}
