package healthz

import (
	"net/http"

	"github.com/finansmart/backend/internal/httputil"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Controller struct {
	DB *gorm.DB
}

type Response struct {
	Error string `json:"error" example:"sql: database is closed"` // The reason the service is unhealthy
}

func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.GET("", co.Get)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get health
// @Description	Returns the application health and, if not healthy, an error
// @Tags			General
// @Produce		json
// @Success		204
// @Failure		500	{object}	Response
// @Router			/healthz [get]
func (co Controller) Get(c *gin.Context) {
	sqlDB, err := co.DB.DB()
	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("healthz")
		c.JSON(http.StatusInternalServerError, Response{Error: err.Error()})
		return
	}

	err = sqlDB.PingContext(c.Request.Context())
	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("healthz")
		c.JSON(http.StatusInternalServerError, Response{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
