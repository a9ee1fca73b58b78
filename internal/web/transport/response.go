package transport

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON body of a successful request.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// SendSuccess responds 200 with data wrapped in a Response.
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// SendAttachment responds 200 with body as a downloadable file.
func SendAttachment(c *gin.Context, fileName, contentType string, body []byte) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, contentType, body)
}
