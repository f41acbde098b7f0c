package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aaliyatanseeq-hub/events/internal/console"
	"github.com/aaliyatanseeq-hub/events/internal/models"
)

// ShowConsole renders the console page for the current phase.
func ShowConsole(ctrl *console.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "console.tmpl", ctrl.Page())
	}
}

// DiscoverEvents runs an event discovery cycle from the submitted form.
// Binding failures fall through to the controller, which records the
// validation banner without issuing a network call.
func DiscoverEvents(ctrl *console.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form console.EventForm
		_ = c.ShouldBind(&form)
		_ = ctrl.DiscoverEvents(c.Request.Context(), form)
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// DiscoverAttendees runs an attendee discovery cycle from the submitted form.
func DiscoverAttendees(ctrl *console.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form console.AttendeeForm
		_ = c.ShouldBind(&form)
		if err := ctrl.DiscoverAttendees(c.Request.Context(), form); err == nil {
			_ = ctrl.SetPhase(console.PhaseAttendees)
		}
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// ToggleCard flips one attendee detail card between collapsed and expanded.
func ToggleCard(ctrl *console.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid card index"))
			return
		}
		if err := ctrl.ToggleCard(index); err != nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse(err.Error()))
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// SetPhase switches between the event and attendee views.
func SetPhase(ctrl *console.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ctrl.SetPhase(console.Phase(c.Param("name"))); err != nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse(err.Error()))
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// State exposes the current view state as JSON for programmatic clients.
func State(ctrl *console.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(ctrl.Page(), "current console state"))
	}
}

// Health reports liveness without touching the upstream discovery service.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "healthy",
			"service":        "events-console",
			"api_calls_made": 0,
		})
	}
}
