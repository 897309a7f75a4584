package endpoint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ariebrainware/clinic-records/metrics"
	"github.com/ariebrainware/clinic-records/middleware"
	"github.com/ariebrainware/clinic-records/model"
	"github.com/ariebrainware/clinic-records/util"
	"github.com/ariebrainware/clinic-records/validation"
)

var (
	rules    = validation.New(nil)
	recorder *metrics.Metrics
)

// SetMetrics sets the metrics updated by the handlers on committed changes
// and rejected fields. Call this during application startup.
func SetMetrics(m *metrics.Metrics) {
	recorder = m
}

func ensureDB(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return nil, false
	}
	return db, true
}

func validatorFor(db *gorm.DB) *validation.Validator {
	return rules.WithLookup(validation.NewGormLookup(db))
}

func getIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid ID",
			Err: fmt.Errorf("id must be a positive integer"),
		})
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the request body into dst. An empty body leaves dst as is.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return false
	}
	return true
}

// listOptions reads limit, offset and include_deleted from the query string.
func listOptions(c *gin.Context) model.ListOptions {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	includeDeleted, _ := strconv.ParseBool(c.Query("include_deleted"))
	return model.ListOptions{
		Limit:          limit,
		Offset:         offset,
		IncludeDeleted: includeDeleted,
	}
}

// respondError writes the response for err: rejected fields are 400, a missing
// record is 404, a violated unique index is 409 and anything else is 500.
func respondError(c *gin.Context, entity, msg string, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		if recorder != nil {
			for _, fe := range verrs {
				recorder.RecordValidationFailure(entity, fe.Field)
			}
		}
		util.CallUserError(c, util.APIErrorParams{
			Msg:  msg,
			Err:  err,
			Data: map[string]interface{}{"errors": verrs},
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Record not found",
			Err: err,
		})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		util.CallConflict(c, util.APIErrorParams{
			Msg: msg,
			Err: err,
		})
	default:
		util.CallServerError(c, util.APIErrorParams{
			Msg: msg,
			Err: err,
		})
	}
}

// recordChange audits and counts a committed change.
func recordChange(c *gin.Context, entity string, action util.RecordAction, id uint, msg string) {
	if recorder != nil {
		recorder.RecordChange(entity, string(action))
	}
	util.LogRecordEvent(util.RecordEvent{
		Action:   action,
		Entity:   entity,
		RecordID: id,
		IP:       c.ClientIP(),
		Message:  msg,
		Details: map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		},
	})
}

// softDeletable describes the lifecycle endpoints shared by entities that can
// be marked deleted.
type softDeletable struct {
	entity string
	label  string
	find   func(c *gin.Context, db *gorm.DB, id uint) (model.SoftDeletable, error)
	purge  func(c *gin.Context, db *gorm.DB, id uint) error
}

func (s softDeletable) softDelete(c *gin.Context) {
	s.transition(c, util.ActionSoftDelete, "deleted", model.SoftDelete)
}

func (s softDeletable) restore(c *gin.Context) {
	s.transition(c, util.ActionRestore, "restored", model.Restore)
}

func (s softDeletable) transition(c *gin.Context, action util.RecordAction, verb string,
	apply func(ctx context.Context, db *gorm.DB, rec model.SoftDeletable) error) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}
	id, ok := getIDParam(c)
	if !ok {
		return
	}

	rec, err := s.find(c, db, id)
	if err != nil {
		respondError(c, s.entity, "Failed to retrieve "+s.label, err)
		return
	}
	if err := apply(c.Request.Context(), db, rec); err != nil {
		respondError(c, s.entity, fmt.Sprintf("Failed to mark %s %s", s.label, verb), err)
		return
	}

	msg := fmt.Sprintf("%s %s", capitalize(s.label), verb)
	recordChange(c, s.entity, action, id, msg)
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  msg,
		Data: rec,
	})
}

func (s softDeletable) physicalDelete(c *gin.Context) {
	removeRecord(c, s.entity, s.label, s.purge)
}

// removeRecord physically removes the record named by the id parameter.
func removeRecord(c *gin.Context, entity, label string, remove func(c *gin.Context, db *gorm.DB, id uint) error) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}
	id, ok := getIDParam(c)
	if !ok {
		return
	}

	if err := remove(c, db, id); err != nil {
		respondError(c, entity, "Failed to remove "+label, err)
		return
	}

	msg := fmt.Sprintf("%s removed", capitalize(label))
	recordChange(c, entity, util.ActionDelete, id, msg)
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  msg,
		Data: map[string]interface{}{"id": id},
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
