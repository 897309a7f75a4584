package endpoint

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ariebrainware/clinic-records/model"
	"github.com/ariebrainware/clinic-records/util"
	"github.com/ariebrainware/clinic-records/validation"
)

// ListAppointments godoc
// @Summary      List appointments
// @Tags         Appointment
// @Produce      json
// @Param        limit query int false "Limit number of results"
// @Param        offset query int false "Offset for pagination"
// @Success      200 {object} util.APIResponse{data=object} "Appointments retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointments [get]
func ListAppointments(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	appointments, total, err := model.ListAppointments(c.Request.Context(), db, listOptions(c))
	if err != nil {
		respondError(c, model.TableAppointments, "Failed to retrieve appointments", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointments retrieved",
		Data: map[string]interface{}{"total": total, "total_fetched": len(appointments), "appointments": appointments},
	})
}

// GetAppointment godoc
// @Summary      Get an appointment
// @Tags         Appointment
// @Produce      json
// @Param        id path int true "Appointment ID"
// @Success      200 {object} util.APIResponse{data=model.Appointment} "Appointment retrieved"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Router       /appointments/{id} [get]
func GetAppointment(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}
	id, ok := getIDParam(c)
	if !ok {
		return
	}

	appointment, err := model.FindAppointment(c.Request.Context(), db, id)
	if err != nil {
		respondError(c, model.TableAppointments, "Failed to retrieve appointment", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointment retrieved",
		Data: appointment,
	})
}

// CreateAppointment godoc
// @Summary      Create an appointment
// @Description  Book an appointment. Dates in the past are accepted.
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Param        request body validation.AppointmentForm true "Appointment information"
// @Success      201 {object} util.APIResponse{data=model.Appointment} "Appointment created"
// @Failure      400 {object} util.APIResponse "Invalid input"
// @Router       /appointments [post]
func CreateAppointment(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	var form validation.AppointmentForm
	if !bindJSON(c, &form) {
		return
	}
	if err := validatorFor(db).Appointment(c.Request.Context(), &form, 0); err != nil {
		respondError(c, model.TableAppointments, "Invalid appointment", err)
		return
	}

	var appointment model.Appointment
	form.Apply(&appointment)
	if err := model.Create(c.Request.Context(), db, &appointment); err != nil {
		respondError(c, model.TableAppointments, "Failed to create appointment", err)
		return
	}

	recordChange(c, model.TableAppointments, util.ActionCreate, appointment.ID, appointment.String()+" created")
	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Appointment created",
		Data: appointment,
	})
}

// UpdateAppointment godoc
// @Summary      Update an appointment
// @Description  Fields left out of the body keep their stored values.
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Param        id path int true "Appointment ID"
// @Param        request body validation.AppointmentForm true "Appointment fields to change"
// @Success      200 {object} util.APIResponse{data=model.Appointment} "Appointment updated"
// @Failure      400 {object} util.APIResponse "Invalid input"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Router       /appointments/{id} [patch]
func UpdateAppointment(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}
	id, ok := getIDParam(c)
	if !ok {
		return
	}

	appointment, err := model.FindAppointment(c.Request.Context(), db, id)
	if err != nil {
		respondError(c, model.TableAppointments, "Failed to retrieve appointment", err)
		return
	}

	form := validation.NewAppointmentForm(appointment)
	if !bindJSON(c, &form) {
		return
	}
	if err := validatorFor(db).Appointment(c.Request.Context(), &form, id); err != nil {
		respondError(c, model.TableAppointments, "Invalid appointment", err)
		return
	}

	form.Apply(&appointment)
	if err := model.Update(c.Request.Context(), db, &appointment); err != nil {
		respondError(c, model.TableAppointments, "Failed to update appointment", err)
		return
	}

	recordChange(c, model.TableAppointments, util.ActionUpdate, id, appointment.String()+" updated")
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointment updated",
		Data: appointment,
	})
}

// DeleteAppointment godoc
// @Summary      Delete an appointment
// @Tags         Appointment
// @Produce      json
// @Param        id path int true "Appointment ID"
// @Success      200 {object} util.APIResponse "Appointment removed"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Router       /appointments/{id} [delete]
func DeleteAppointment(c *gin.Context) {
	removeRecord(c, model.TableAppointments, "appointment", func(c *gin.Context, db *gorm.DB, id uint) error {
		return model.DeleteAppointment(c.Request.Context(), db, id)
	})
}
