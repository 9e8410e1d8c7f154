package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/harborline/stafftrack/internal/pkg/errs"
	"github.com/harborline/stafftrack/internal/pkg/policy"
	"github.com/harborline/stafftrack/internal/pkg/queryx"
)

// actorFrom pulls the identity the auth middleware resolved. Routes are
// always behind that middleware; a missing actor means an unauthenticated
// request slipped through, which the zero Actor correctly denies.
func actorFrom(c *gin.Context) policy.Actor {
	if v, ok := c.Get("actor"); ok {
		if a, ok := v.(policy.Actor); ok {
			return a
		}
	}
	return policy.Actor{}
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errs.Validation(name, "must be a valid UUID")
	}
	return id, nil
}

// uuidQuery parses an optional UUID query param; nil when absent.
func uuidQuery(c *gin.Context, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errs.Validation(name, "must be a valid UUID")
	}
	return &id, nil
}

// dateQuery parses an optional YYYY-MM-DD query param; nil when absent.
func dateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := queryx.ParseDate(raw)
	if err != nil {
		return nil, errs.Validation(name, "must be a date in YYYY-MM-DD format")
	}
	return &t, nil
}

// boolQuery applies the lenient boolean convention: unparseable values mean
// "filter not applied", never an error.
func boolQuery(c *gin.Context, name string) *bool {
	b, ok := queryx.ParseBool(c.Query(name))
	if !ok {
		return nil
	}
	return &b
}

// orderingQuery resolves order_by/order_dir against the whitelist, silently
// ignoring unknown fields.
func orderingQuery(c *gin.Context, allowed map[string]string) *queryx.Ordering {
	o, ok := queryx.ParseOrdering(c.Query("order_by"), c.Query("order_dir"), allowed)
	if !ok {
		return nil
	}
	return &o
}

func parseDateField(value, field string) (time.Time, error) {
	t, err := queryx.ParseDate(value)
	if err != nil {
		return time.Time{}, errs.Validation(field, "must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

func parseOptionalDateField(value *string, field string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseDateField(*value, field)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func uuidField(value, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errs.Validation(field, "must be a valid UUID")
	}
	return id, nil
}
