package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jobdeck/jobboard-api/internal/apperrors"
)

// All responses share the envelope {status, message?, data?}. Handler errors
// funnel through Fail so nothing store-level leaks to the client.

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"status": true, "data": data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"status": true, "data": data})
}

func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"status": true, "message": msg})
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": msg})
}

func Fail(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logrus.WithError(err).Error("request failed")
	}
	c.JSON(status, gin.H{"status": false, "message": apperrors.ClientMessage(err)})
}
