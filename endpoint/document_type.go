package endpoint

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ariebrainware/clinic-records/model"
	"github.com/ariebrainware/clinic-records/util"
	"github.com/ariebrainware/clinic-records/validation"
)

var documentTypeLifecycle = softDeletable{
	entity: model.TableDocumentTypes,
	label:  "document type",
	find: func(c *gin.Context, db *gorm.DB, id uint) (model.SoftDeletable, error) {
		d, err := model.FindDocumentType(c.Request.Context(), db, id)
		return &d, err
	},
	purge: func(c *gin.Context, db *gorm.DB, id uint) error {
		return model.DeleteDocumentType(c.Request.Context(), db, id)
	},
}

// ListDocumentTypes godoc
// @Summary      List document types
// @Description  Get a paginated list of document types. Deleted ones are left out unless include_deleted is true.
// @Tags         DocumentType
// @Produce      json
// @Param        limit query int false "Limit number of results"
// @Param        offset query int false "Offset for pagination"
// @Param        include_deleted query bool false "Include soft-deleted document types"
// @Success      200 {object} util.APIResponse{data=object} "Document types retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /document-types [get]
func ListDocumentTypes(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	documentTypes, total, err := model.ListDocumentTypes(c.Request.Context(), db, listOptions(c))
	if err != nil {
		respondError(c, model.TableDocumentTypes, "Failed to retrieve document types", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Document types retrieved",
		Data: map[string]interface{}{"total": total, "total_fetched": len(documentTypes), "document_types": documentTypes},
	})
}

// GetDocumentType godoc
// @Summary      Get a document type
// @Tags         DocumentType
// @Produce      json
// @Param        id path int true "Document type ID"
// @Success      200 {object} util.APIResponse{data=model.DocumentType} "Document type retrieved"
// @Failure      404 {object} util.APIResponse "Document type not found"
// @Router       /document-types/{id} [get]
func GetDocumentType(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}
	id, ok := getIDParam(c)
	if !ok {
		return
	}

	documentType, err := model.FindDocumentType(c.Request.Context(), db, id)
	if err != nil {
		respondError(c, model.TableDocumentTypes, "Failed to retrieve document type", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Document type retrieved",
		Data: documentType,
	})
}

// CreateDocumentType godoc
// @Summary      Create a document type
// @Tags         DocumentType
// @Accept       json
// @Produce      json
// @Param        request body validation.DocumentTypeForm true "Document type information"
// @Success      201 {object} util.APIResponse{data=model.DocumentType} "Document type created"
// @Failure      400 {object} util.APIResponse "Invalid input"
// @Failure      409 {object} util.APIResponse "Name already in use"
// @Router       /document-types [post]
func CreateDocumentType(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	var form validation.DocumentTypeForm
	if !bindJSON(c, &form) {
		return
	}
	if err := validatorFor(db).DocumentType(c.Request.Context(), &form, 0); err != nil {
		respondError(c, model.TableDocumentTypes, "Invalid document type", err)
		return
	}

	var documentType model.DocumentType
	form.Apply(&documentType)
	if err := model.Create(c.Request.Context(), db, &documentType); err != nil {
		respondError(c, model.TableDocumentTypes, "Failed to create document type", err)
		return
	}

	recordChange(c, model.TableDocumentTypes, util.ActionCreate, documentType.ID, "Document type created")
	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Document type created",
		Data: documentType,
	})
}

// UpdateDocumentType godoc
// @Summary      Update a document type
// @Description  Fields left out of the body keep their stored values.
// @Tags         DocumentType
// @Accept       json
// @Produce      json
// @Param        id path int true "Document type ID"
// @Param        request body validation.DocumentTypeForm true "Document type fields to change"
// @Success      200 {object} util.APIResponse{data=model.DocumentType} "Document type updated"
// @Failure      400 {object} util.APIResponse "Invalid input"
// @Failure      404 {object} util.APIResponse "Document type not found"
// @Router       /document-types/{id} [patch]
func UpdateDocumentType(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}
	id, ok := getIDParam(c)
	if !ok {
		return
	}

	documentType, err := model.FindDocumentType(c.Request.Context(), db, id)
	if err != nil {
		respondError(c, model.TableDocumentTypes, "Failed to retrieve document type", err)
		return
	}

	form := validation.NewDocumentTypeForm(documentType)
	if !bindJSON(c, &form) {
		return
	}
	if err := validatorFor(db).DocumentType(c.Request.Context(), &form, id); err != nil {
		respondError(c, model.TableDocumentTypes, "Invalid document type", err)
		return
	}

	form.Apply(&documentType)
	if err := model.Update(c.Request.Context(), db, &documentType); err != nil {
		respondError(c, model.TableDocumentTypes, "Failed to update document type", err)
		return
	}

	recordChange(c, model.TableDocumentTypes, util.ActionUpdate, id, "Document type updated")
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Document type updated",
		Data: documentType,
	})
}

// DeleteDocumentType godoc
// @Summary      Delete a document type
// @Description  Soft delete a document type by ID. Patients keep their reference to it.
// @Tags         DocumentType
// @Produce      json
// @Param        id path int true "Document type ID"
// @Success      200 {object} util.APIResponse{data=model.DocumentType} "Document type deleted"
// @Failure      404 {object} util.APIResponse "Document type not found"
// @Router       /document-types/{id} [delete]
func DeleteDocumentType(c *gin.Context) {
	documentTypeLifecycle.softDelete(c)
}

// RestoreDocumentType godoc
// @Summary      Restore a document type
// @Tags         DocumentType
// @Produce      json
// @Param        id path int true "Document type ID"
// @Success      200 {object} util.APIResponse{data=model.DocumentType} "Document type restored"
// @Failure      404 {object} util.APIResponse "Document type not found"
// @Router       /document-types/{id}/restore [post]
func RestoreDocumentType(c *gin.Context) {
	documentTypeLifecycle.restore(c)
}

// PurgeDocumentType godoc
// @Summary      Remove a document type
// @Description  Physically remove a document type. Patients referencing it have the reference cleared.
// @Tags         DocumentType
// @Produce      json
// @Param        id path int true "Document type ID"
// @Success      200 {object} util.APIResponse "Document type removed"
// @Failure      404 {object} util.APIResponse "Document type not found"
// @Router       /document-types/{id}/purge [delete]
func PurgeDocumentType(c *gin.Context) {
	documentTypeLifecycle.physicalDelete(c)
}
