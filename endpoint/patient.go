package endpoint

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ariebrainware/clinic-records/model"
	"github.com/ariebrainware/clinic-records/util"
	"github.com/ariebrainware/clinic-records/validation"
)

// ListPatients godoc
// @Summary      List all patients
// @Description  Get a paginated list of patients
// @Tags         Patient
// @Produce      json
// @Param        limit query int false "Limit number of results"
// @Param        offset query int false "Offset for pagination"
// @Success      200 {object} util.APIResponse{data=object} "Patients retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients [get]
func ListPatients(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	patients, totalPatient, err := model.ListPatients(c.Request.Context(), db, listOptions(c))
	if err != nil {
		respondError(c, model.TablePatients, "Failed to retrieve patients", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patients retrieved",
		Data: map[string]interface{}{"total": totalPatient, "total_fetched": len(patients), "patients": patients},
	})
}

// GetPatient godoc
// @Summary      Get a patient
// @Description  Get a patient with its document type, which is included even when soft-deleted
// @Tags         Patient
// @Produce      json
// @Param        id path int true "Patient ID"
// @Success      200 {object} util.APIResponse{data=model.Patient} "Patient retrieved"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /patients/{id} [get]
func GetPatient(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}
	id, ok := getIDParam(c)
	if !ok {
		return
	}

	patient, err := model.FindPatient(c.Request.Context(), db, id)
	if err != nil {
		respondError(c, model.TablePatients, "Failed to retrieve patient", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient retrieved",
		Data: patient,
	})
}

// CreatePatient godoc
// @Summary      Create a new patient
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        request body validation.PatientForm true "Patient information"
// @Success      201 {object} util.APIResponse{data=model.Patient} "Patient created"
// @Failure      400 {object} util.APIResponse "Invalid input"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients [post]
func CreatePatient(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	var form validation.PatientForm
	if !bindJSON(c, &form) {
		return
	}
	if err := validatorFor(db).Patient(c.Request.Context(), &form, 0); err != nil {
		respondError(c, model.TablePatients, "Invalid patient", err)
		return
	}

	var patient model.Patient
	form.Apply(&patient)
	if err := model.Create(c.Request.Context(), db, &patient); err != nil {
		respondError(c, model.TablePatients, "Failed to create patient", err)
		return
	}

	recordChange(c, model.TablePatients, util.ActionCreate, patient.ID, "Patient created")
	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Patient created",
		Data: patient,
	})
}

// UpdatePatient godoc
// @Summary      Update patient information
// @Description  Update an existing patient. Fields left out of the body keep their stored values.
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        id path int true "Patient ID"
// @Param        request body validation.PatientForm true "Patient fields to change"
// @Success      200 {object} util.APIResponse{data=model.Patient} "Patient updated"
// @Failure      400 {object} util.APIResponse "Invalid input"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /patients/{id} [patch]
func UpdatePatient(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}
	id, ok := getIDParam(c)
	if !ok {
		return
	}

	patient, err := model.FindPatient(c.Request.Context(), db, id)
	if err != nil {
		respondError(c, model.TablePatients, "Failed to retrieve patient", err)
		return
	}

	form := validation.NewPatientForm(patient)
	if !bindJSON(c, &form) {
		return
	}
	if err := validatorFor(db).Patient(c.Request.Context(), &form, id); err != nil {
		respondError(c, model.TablePatients, "Invalid patient", err)
		return
	}

	form.Apply(&patient)
	// The preloaded document type may no longer match document_type_id.
	patient.DocumentType = nil
	if err := model.Update(c.Request.Context(), db, &patient); err != nil {
		respondError(c, model.TablePatients, "Failed to update patient", err)
		return
	}

	recordChange(c, model.TablePatients, util.ActionUpdate, id, "Patient updated")
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient updated",
		Data: patient,
	})
}

// DeletePatient godoc
// @Summary      Delete a patient
// @Description  Remove a patient together with all of its histories
// @Tags         Patient
// @Produce      json
// @Param        id path int true "Patient ID"
// @Success      200 {object} util.APIResponse "Patient removed"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /patients/{id} [delete]
func DeletePatient(c *gin.Context) {
	removeRecord(c, model.TablePatients, "patient", func(c *gin.Context, db *gorm.DB, id uint) error {
		return model.DeletePatient(c.Request.Context(), db, id)
	})
}
