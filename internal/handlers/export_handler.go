package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aaliyatanseeq-hub/events/internal/console"
	"github.com/aaliyatanseeq-hub/events/internal/export"
	"github.com/aaliyatanseeq-hub/events/internal/models"
)

// ExportRecords streams the current collection for :kind as a :format file
// download. The whole file is assembled locally; an empty collection aborts
// with a banner and produces nothing.
func ExportRecords(ctrl *console.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind := c.Param("kind")
		format := export.Format(c.Param("format"))

		if format != export.FormatCSV && format != export.FormatJSON {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(fmt.Sprintf("unsupported export format %q", format)))
			return
		}

		file, err := ctrl.Export(kind, format)
		if err != nil {
			// Banner already set by the controller; bounce back to the console.
			c.Redirect(http.StatusSeeOther, "/")
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
		c.Data(http.StatusOK, file.ContentType, file.Data)
	}
}
