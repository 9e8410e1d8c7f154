package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/harborline/stafftrack/internal/config"
	"github.com/harborline/stafftrack/internal/modules/model"
	"github.com/harborline/stafftrack/internal/modules/serializer"
	"github.com/harborline/stafftrack/internal/pkg/policy"
)

const (
	// CtxActor is the gin context key carrying the resolved policy.Actor.
	CtxActor = "actor"
	// CtxStaff carries the requester's Staff row when one is linked.
	CtxStaff = "staff"
)

// StaffAuth authenticates requests with a bearer JWT and resolves the token
// subject to a Staff profile. A bad or missing token aborts with 401. A valid
// token with no linked Staff row does NOT abort here: the actor is marked
// profile-less so the policy layer can reject with its distinct "no profile"
// signal instead of a generic denial.
func StaffAuth(cfg *config.Config, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		var opts []jwt.ParserOption
		if cfg.Auth.Issuer != "" {
			opts = append(opts, jwt.WithIssuer(cfg.Auth.Issuer))
		}
		claims := jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(cfg.Auth.JWTSecret), nil
		}, opts...)
		if err != nil || !token.Valid || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		actor := policy.Actor{Authenticated: true}

		var staff model.Staff
		err = db.WithContext(c.Request.Context()).First(&staff, "auth_subject = ?", claims.Subject).Error
		switch {
		case err == nil:
			actor.HasProfile = true
			actor.StaffID = staff.ID
			actor.Role = policy.Role(staff.Role)
			c.Set(CtxStaff, &staff)
		case errors.Is(err, gorm.ErrRecordNotFound):
			// provisioning gap, leave HasProfile false
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}

		// Tag the current span for telemetry filtering
		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() && actor.HasProfile {
			span.SetAttributes(attribute.String("staff_id", actor.StaffID.String()))
		}

		c.Set(CtxActor, actor)
		c.Next()
	}
}
